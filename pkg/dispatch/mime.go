package dispatch

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"mime/quotedprintable"
	"net/http"
	"net/mail"
	"net/textproto"
	"strings"

	"github.com/postwave/postwave/pkg/errx"
)

// Header is one transport-level header on a raw message.
type Header struct {
	Key   string
	Value string
}

// rawEnvelope holds everything needed to serialize one raw MIME message.
type rawEnvelope struct {
	From     mail.Address
	To       []string
	Subject  string
	HTMLBody string
	Extra    []Header
}

// buildRelated serializes a multipart/related message: an HTML root part
// plus inline image parts referenced by Content-ID.
func buildRelated(env rawEnvelope, images []Part) ([]byte, error) {
	return buildMultipart(env, "multipart/related", func(w *multipart.Writer) error {
		if err := writeHTMLPart(w, env.HTMLBody); err != nil {
			return err
		}
		for _, img := range images {
			if err := writeInlinePart(w, img); err != nil {
				return err
			}
		}
		return nil
	})
}

// buildMixed serializes a multipart/mixed message: an HTML part plus
// downloadable attachment parts.
func buildMixed(env rawEnvelope, attachments []Part) ([]byte, error) {
	return buildMultipart(env, "multipart/mixed", func(w *multipart.Writer) error {
		if err := writeHTMLPart(w, env.HTMLBody); err != nil {
			return err
		}
		for _, att := range attachments {
			if err := writeAttachmentPart(w, att); err != nil {
				return err
			}
		}
		return nil
	})
}

func buildMultipart(env rawEnvelope, contentType string, writeParts func(*multipart.Writer) error) ([]byte, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	writeHeader(&buf, "From", env.From.String())
	writeHeader(&buf, "To", strings.Join(env.To, ", "))
	writeHeader(&buf, "Subject", mime.QEncoding.Encode("utf-8", env.Subject))
	writeHeader(&buf, "MIME-Version", "1.0")
	for _, h := range env.Extra {
		writeHeader(&buf, h.Key, h.Value)
	}
	writeHeader(&buf, "Content-Type", fmt.Sprintf("%s; boundary=%q", contentType, mw.Boundary()))
	buf.WriteString("\r\n")

	if err := writeParts(mw); err != nil {
		return nil, err
	}
	if err := mw.Close(); err != nil {
		return nil, errx.Wrap(err, "failed to finalize MIME message", errx.TypeInternal)
	}
	return buf.Bytes(), nil
}

func writeHeader(buf *bytes.Buffer, key, value string) {
	fmt.Fprintf(buf, "%s: %s\r\n", key, value)
}

func writeHTMLPart(w *multipart.Writer, body string) error {
	part, err := w.CreatePart(textproto.MIMEHeader{
		"Content-Type":              {`text/html; charset="UTF-8"`},
		"Content-Transfer-Encoding": {"quoted-printable"},
	})
	if err != nil {
		return errx.Wrap(err, "failed to create HTML part", errx.TypeInternal)
	}
	qp := quotedprintable.NewWriter(part)
	if _, err := qp.Write([]byte(body)); err != nil {
		return errx.Wrap(err, "failed to write HTML part", errx.TypeInternal)
	}
	return qp.Close()
}

func writeInlinePart(w *multipart.Writer, img Part) error {
	cid := ContentIDFor(img.Filename)
	part, err := w.CreatePart(textproto.MIMEHeader{
		"Content-Type":              {partContentType(img)},
		"Content-Transfer-Encoding": {"base64"},
		"Content-ID":                {fmt.Sprintf("<%s>", cid)},
		"Content-Disposition":       {fmt.Sprintf("inline; filename=%q", img.Filename)},
	})
	if err != nil {
		return errx.Wrap(err, "failed to create inline part", errx.TypeInternal)
	}
	return writeBase64(part, img.Data)
}

func writeAttachmentPart(w *multipart.Writer, att Part) error {
	part, err := w.CreatePart(textproto.MIMEHeader{
		"Content-Type":              {partContentType(att)},
		"Content-Transfer-Encoding": {"base64"},
		"Content-Disposition":       {fmt.Sprintf("attachment; filename=%q", att.Filename)},
	})
	if err != nil {
		return errx.Wrap(err, "failed to create attachment part", errx.TypeInternal)
	}
	return writeBase64(part, att.Data)
}

func partContentType(p Part) string {
	if p.ContentType != "" {
		return p.ContentType
	}
	if detected := http.DetectContentType(p.Data); detected != "" {
		return detected
	}
	return "application/octet-stream"
}

// writeBase64 emits data base64-encoded in 76-column lines per RFC 2045.
func writeBase64(w io.Writer, data []byte) error {
	encoded := base64.StdEncoding.EncodeToString(data)
	const lineLen = 76
	for len(encoded) > 0 {
		n := min(lineLen, len(encoded))
		if _, err := fmt.Fprintf(w, "%s\r\n", encoded[:n]); err != nil {
			return errx.Wrap(err, "failed to write base64 content", errx.TypeInternal)
		}
		encoded = encoded[n:]
	}
	return nil
}

// ContentIDFor derives an inline image's content identifier from its
// filename, with whitespace collapsed to underscores.
func ContentIDFor(filename string) string {
	return strings.Join(strings.Fields(filename), "_")
}
