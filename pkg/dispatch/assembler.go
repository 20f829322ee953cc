package dispatch

import (
	"fmt"
	"net/mail"
	"net/url"
	"strings"

	"github.com/postwave/postwave/pkg/mailer"
)

// MaxBinaryBytes caps the summed size of a message's binary parts. SES
// rejects raw messages above 10 MiB; the ceiling leaves headroom for
// headers, HTML, and base64 expansion.
const MaxBinaryBytes = 9 << 20

// Assembler turns dispatch requests into wire-ready messages.
type Assembler struct {
	fromAddress     string
	fromName        string
	unsubscribeBase string
}

// NewAssembler builds an assembler. unsubscribeBase is the public base URL
// unsubscribe links point at, without a trailing slash.
func NewAssembler(fromAddress, fromName, unsubscribeBase string) *Assembler {
	return &Assembler{
		fromAddress:     fromAddress,
		fromName:        fromName,
		unsubscribeBase: strings.TrimSuffix(unsubscribeBase, "/"),
	}
}

func (a *Assembler) from() mail.Address {
	return mail.Address{Name: a.fromName, Address: a.fromAddress}
}

// AssemblePlain builds a structured message for the provider to serialize.
func (a *Assembler) AssemblePlain(req PlainRequest, recipients []string) mailer.Message {
	from := a.from()
	return mailer.Message{
		From:     from.String(),
		To:       recipients,
		Subject:  req.Subject,
		HTMLBody: req.Body,
	}
}

// AssembleNewsletter builds one personalized raw message per recipient: the
// shared body gets inline-image display blocks once, then each copy gets its
// own unsubscribe footer and one-click unsubscribe headers.
func (a *Assembler) AssembleNewsletter(req NewsletterRequest, recipient string) (mailer.RawMessage, error) {
	if err := checkBinaryBudget(req.Images); err != nil {
		return mailer.RawMessage{}, err
	}

	body := injectImageBlocks(req.Body, req.Images)
	unsubURL := a.unsubscribeURL(recipient)
	body = SlotUnsubscribe.Inject(body, unsubscribeFooter(unsubURL))

	data, err := buildRelated(rawEnvelope{
		From:     a.from(),
		To:       []string{recipient},
		Subject:  req.Subject,
		HTMLBody: body,
		Extra: []Header{
			{Key: "List-Unsubscribe", Value: fmt.Sprintf("<%s>", unsubURL)},
			{Key: "List-Unsubscribe-Post", Value: "List-Unsubscribe=One-Click"},
			{Key: "Precedence", Value: "bulk"},
			{Key: "X-Auto-Response-Suppress", Value: "OOF, DR, RN, NRN, AutoReply"},
		},
	}, req.Images)
	if err != nil {
		return mailer.RawMessage{}, err
	}
	return mailer.RawMessage{From: a.fromAddress, To: []string{recipient}, Data: data}, nil
}

// AssembleTransactional builds one raw message addressed to every recipient,
// with attachments carried as downloadable parts.
func (a *Assembler) AssembleTransactional(req TransactionalRequest, recipients []string) (mailer.RawMessage, error) {
	if err := checkBinaryBudget(req.Attachments); err != nil {
		return mailer.RawMessage{}, err
	}

	data, err := buildMixed(rawEnvelope{
		From:     a.from(),
		To:       recipients,
		Subject:  req.Subject,
		HTMLBody: req.Body,
	}, req.Attachments)
	if err != nil {
		return mailer.RawMessage{}, err
	}
	return mailer.RawMessage{From: a.fromAddress, To: recipients, Data: data}, nil
}

func (a *Assembler) unsubscribeURL(recipient string) string {
	return fmt.Sprintf("%s/unsubscribe?email=%s", a.unsubscribeBase, url.QueryEscape(recipient))
}

func unsubscribeFooter(unsubURL string) string {
	return fmt.Sprintf(
		`<div style="margin-top:24px;padding-top:12px;border-top:1px solid #ddd;font-size:12px;color:#888;">`+
			`You are receiving this email because you subscribed to our list. `+
			`<a href="%s" style="color:#888;">Unsubscribe</a></div>`,
		unsubURL,
	)
}

// injectImageBlocks appends a display block for every image the body does
// not already reference by content identifier. Authors who place their own
// cid: references keep full control of layout.
func injectImageBlocks(body string, images []Part) string {
	var blocks strings.Builder
	for _, img := range images {
		cid := ContentIDFor(img.Filename)
		if strings.Contains(body, "cid:"+cid) {
			continue
		}
		fmt.Fprintf(&blocks,
			`<div style="margin:16px 0;"><img src="cid:%s" alt="%s" style="width:100%%;max-width:100%%;"/></div>`,
			cid, img.Filename)
	}
	if blocks.Len() == 0 {
		return SlotImages.Inject(body, "")
	}
	return SlotImages.Inject(body, blocks.String())
}

func checkBinaryBudget(parts []Part) error {
	total := 0
	for _, p := range parts {
		total += len(p.Data)
		if total > MaxBinaryBytes {
			return NewPayloadTooLargeError(total)
		}
	}
	return nil
}
