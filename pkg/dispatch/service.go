package dispatch

import (
	"context"
	"fmt"
	"time"

	"github.com/postwave/postwave/pkg/kernel"
	"github.com/postwave/postwave/pkg/logx"
	"github.com/postwave/postwave/pkg/mailer"
)

// Service runs the dispatch pipeline end to end: resolve recipients,
// assemble messages, transmit through the gateway, write the audit log.
type Service struct {
	resolver    *Resolver
	assembler   *Assembler
	gateway     mailer.Gateway
	logs        LogRepository
	suppression SuppressionChecker
	archive     Archiver
}

// NewService wires the dispatcher. suppression and archive may be nil.
func NewService(
	resolver *Resolver,
	assembler *Assembler,
	gateway mailer.Gateway,
	logs LogRepository,
	suppression SuppressionChecker,
	archive Archiver,
) *Service {
	return &Service{
		resolver:    resolver,
		assembler:   assembler,
		gateway:     gateway,
		logs:        logs,
		suppression: suppression,
		archive:     archive,
	}
}

// SendPlain transmits one structured message to the full recipient set in a
// single gateway call. Atomic: a gateway failure surfaces as an error and
// writes no log.
func (s *Service) SendPlain(ctx context.Context, userID kernel.UserID, req PlainRequest) (*SendResult, error) {
	recipients, err := s.recipients(ctx, userID, req.Address)
	if err != nil {
		return nil, err
	}

	msg := s.assembler.AssemblePlain(req, recipients)
	messageID, err := s.gateway.SendEmail(ctx, msg)
	if err != nil {
		return nil, NewGatewayFailedError(err)
	}
	logx.WithFields(logx.Fields{"user_id": userID, "message_id": messageID, "recipients": len(recipients)}).
		Info("plain email sent")

	if err := s.writeLog(ctx, userID, req.Subject, req.Body, recipients, nil, len(recipients), 0); err != nil {
		return nil, err
	}
	return &SendResult{
		Message:    "Email sent",
		Recipients: recipients,
		SentCount:  len(recipients),
	}, nil
}

// SendNewsletter fans out one personalized raw message per recipient.
// Individual gateway failures are recorded and skipped; the remaining
// recipients are still attempted. One log row records the whole fan-out
// with success status and the real sent/failed counts.
func (s *Service) SendNewsletter(ctx context.Context, userID kernel.UserID, req NewsletterRequest) (*SendResult, error) {
	recipients, err := s.recipients(ctx, userID, req.Address)
	if err != nil {
		return nil, err
	}

	// Check the binary budget up front so size violations abort the whole
	// send before any recipient is contacted.
	if err := checkBinaryBudget(req.Images); err != nil {
		return nil, err
	}

	logID := kernel.NewLogID()
	var result FanoutResult
	for _, addr := range recipients {
		raw, err := s.assembler.AssembleNewsletter(req, addr)
		if err == nil {
			_, err = s.gateway.SendRawEmail(ctx, raw)
		}
		if err != nil {
			logx.WithFields(logx.Fields{"user_id": userID, "recipient": addr, "error": err.Error()}).
				Warn("newsletter send failed for recipient")
		} else {
			s.archiveCopy(ctx, userID, logID, addr, raw.Data)
		}
		result.Outcomes = append(result.Outcomes, SendOutcome{Address: addr, Err: err})
	}

	imageNames := partNames(req.Images)
	if err := s.writeLogWithID(ctx, logID, userID, req.Subject, req.Body, recipients, imageNames, result.SentCount(), result.FailedCount()); err != nil {
		return nil, err
	}
	return &SendResult{
		Message:     "Newsletter email sent successfully",
		Recipients:  recipients,
		Attachments: imageNames,
		SentCount:   result.SentCount(),
		FailedCount: result.FailedCount(),
	}, nil
}

// SendTransactional transmits one raw multipart message addressed to the
// full recipient set. Atomic like SendPlain.
func (s *Service) SendTransactional(ctx context.Context, userID kernel.UserID, req TransactionalRequest) (*SendResult, error) {
	recipients, err := s.recipients(ctx, userID, req.Address)
	if err != nil {
		return nil, err
	}

	raw, err := s.assembler.AssembleTransactional(req, recipients)
	if err != nil {
		return nil, err
	}
	messageID, err := s.gateway.SendRawEmail(ctx, raw)
	if err != nil {
		return nil, NewGatewayFailedError(err)
	}
	logx.WithFields(logx.Fields{"user_id": userID, "message_id": messageID, "recipients": len(recipients)}).
		Info("transactional email sent")

	logID := kernel.NewLogID()
	s.archiveCopy(ctx, userID, logID, "message", raw.Data)

	attachmentNames := partNames(req.Attachments)
	if err := s.writeLogWithID(ctx, logID, userID, req.Subject, req.Body, recipients, attachmentNames, len(recipients), 0); err != nil {
		return nil, err
	}
	return &SendResult{
		Message:     "Transactional email sent successfully",
		Recipients:  recipients,
		Attachments: attachmentNames,
		SentCount:   len(recipients),
	}, nil
}

// Logs returns the user's send history, newest first, with bodies trimmed
// for list display.
func (s *Service) Logs(ctx context.Context, userID kernel.UserID, opts kernel.PaginationOptions) (kernel.Paginated[EmailLog], error) {
	page, err := s.logs.FindByUser(ctx, userID, opts.Normalize())
	if err != nil {
		return kernel.Paginated[EmailLog]{}, err
	}
	// Truncate copies, never the repository's rows.
	items := make([]EmailLog, len(page.Items))
	copy(items, page.Items)
	for i := range items {
		items[i].Body = truncateBody(items[i].Body, 100)
	}
	page.Items = items
	return page, nil
}

// recipients resolves the addressing input and drops suppressed addresses.
// A set that suppression empties out entirely counts as no recipients.
func (s *Service) recipients(ctx context.Context, userID kernel.UserID, spec AddressSpec) ([]string, error) {
	resolved, err := s.resolver.Resolve(ctx, userID, spec)
	if err != nil {
		return nil, err
	}
	if s.suppression == nil {
		return resolved, nil
	}

	kept := resolved[:0]
	for _, addr := range resolved {
		suppressed, err := s.suppression.IsSuppressed(ctx, addr)
		if err != nil {
			// Suppression store trouble never blocks a send.
			logx.Errorf("suppression check failed for %s: %v", addr, err)
			suppressed = false
		}
		if !suppressed {
			kept = append(kept, addr)
		}
	}
	if len(kept) == 0 {
		return nil, NewNoRecipientsError()
	}
	return kept, nil
}

func (s *Service) archiveCopy(ctx context.Context, userID kernel.UserID, logID kernel.LogID, name string, data []byte) {
	if s.archive == nil {
		return
	}
	key := fmt.Sprintf("%s/%s/%s.eml", userID, logID, name)
	if err := s.archive.Store(ctx, key, data); err != nil {
		logx.Errorf("failed to archive message %s: %v", key, err)
	}
}

func (s *Service) writeLog(ctx context.Context, userID kernel.UserID, subject, body string, recipients, attachments []string, sent, failed int) error {
	return s.writeLogWithID(ctx, kernel.NewLogID(), userID, subject, body, recipients, attachments, sent, failed)
}

func (s *Service) writeLogWithID(ctx context.Context, id kernel.LogID, userID kernel.UserID, subject, body string, recipients, attachments []string, sent, failed int) error {
	log := EmailLog{
		ID:          id,
		UserID:      userID,
		Subject:     subject,
		Body:        body,
		Recipients:  recipients,
		Attachments: attachments,
		SentCount:   sent,
		FailedCount: failed,
		Status:      StatusSuccess,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.logs.Save(ctx, log); err != nil {
		return NewLogWriteError(err)
	}
	return nil
}

func partNames(parts []Part) []string {
	if len(parts) == 0 {
		return nil
	}
	names := make([]string, 0, len(parts))
	for _, p := range parts {
		names = append(names, p.Filename)
	}
	return names
}

func truncateBody(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
