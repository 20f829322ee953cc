// Package dispatch implements the email-dispatch pipeline: recipient
// resolution, message assembly, gateway transmission, and send logging.
package dispatch

import (
	"time"

	"github.com/postwave/postwave/pkg/kernel"
)

// AddressSpec is the tagged addressing input of a send request. The three
// sources compose: explicit addresses, group expansions, and the
// all-contacts flag all union into one recipient set.
type AddressSpec struct {
	Explicit  []string `json:"to_emails"`
	GroupIDs  []string `json:"group_ids"`
	SendToAll bool     `json:"send_to_all"`
}

// Part is a named binary payload: an inline image or an attachment.
type Part struct {
	Filename    string
	ContentType string
	Data        []byte
}

// PlainRequest is a plain HTML send.
type PlainRequest struct {
	Subject string      `json:"subject"`
	Body    string      `json:"body"`
	Address AddressSpec `json:"address"`
}

// NewsletterRequest is a personalized fan-out send with inline images.
type NewsletterRequest struct {
	Subject string
	Body    string
	Address AddressSpec
	Images  []Part
}

// TransactionalRequest is a single multipart send with attachments.
type TransactionalRequest struct {
	Subject     string
	Body        string
	Address     AddressSpec
	Attachments []Part
}

// SendOutcome is the result of one recipient's gateway call in fan-out mode.
type SendOutcome struct {
	Address string
	Err     error
}

// FanoutResult collects per-recipient outcomes of a fan-out send.
type FanoutResult struct {
	Outcomes []SendOutcome
}

// SentCount returns the number of successful sends.
func (r FanoutResult) SentCount() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Err == nil {
			n++
		}
	}
	return n
}

// FailedCount returns the number of failed sends.
func (r FanoutResult) FailedCount() int {
	return len(r.Outcomes) - r.SentCount()
}

// SendResult is the API-level outcome of a dispatch request.
type SendResult struct {
	Message     string   `json:"message"`
	Recipients  []string `json:"recipients"`
	Attachments []string `json:"attachments,omitempty"`
	SentCount   int      `json:"sent_count"`
	FailedCount int      `json:"failed_count"`
}

// EmailLog is the append-only audit record of one dispatch attempt. Never
// mutated after insertion.
type EmailLog struct {
	ID          kernel.LogID  `json:"id"`
	UserID      kernel.UserID `json:"user_id"`
	Subject     string        `json:"subject"`
	Body        string        `json:"body"`
	Recipients  []string      `json:"sent_to"`
	Attachments []string      `json:"attachments,omitempty"`
	SentCount   int           `json:"sent_count"`
	FailedCount int           `json:"failed_count"`
	Status      string        `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
}

// StatusSuccess is the status every written log carries. Fan-out sends log
// success even when some recipients failed; the counts carry the real
// outcome.
const StatusSuccess = "success"
