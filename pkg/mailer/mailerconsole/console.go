// Package mailerconsole logs emails instead of sending them. Development use.
package mailerconsole

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/postwave/postwave/pkg/logx"
	"github.com/postwave/postwave/pkg/mailer"
)

// ConsoleGateway implements mailer.Gateway against the terminal.
type ConsoleGateway struct{}

// NewConsoleGateway creates the console gateway.
func NewConsoleGateway() *ConsoleGateway {
	return &ConsoleGateway{}
}

// SendEmail logs the structured message.
func (g *ConsoleGateway) SendEmail(_ context.Context, msg mailer.Message) (string, error) {
	logx.WithFields(logx.Fields{
		"from":    msg.From,
		"to":      strings.Join(msg.To, ", "),
		"subject": msg.Subject,
	}).Info("mailer/console: email sent (dev mode)")

	if msg.HTMLBody != "" {
		logx.Debugf("mailer/console: html body:\n%s", msg.HTMLBody)
	}
	return uuid.NewString(), nil
}

// SendRawEmail logs the raw message size and destinations.
func (g *ConsoleGateway) SendRawEmail(_ context.Context, msg mailer.RawMessage) (string, error) {
	logx.WithFields(logx.Fields{
		"from":  msg.From,
		"to":    strings.Join(msg.To, ", "),
		"bytes": len(msg.Data),
	}).Info("mailer/console: raw email sent (dev mode)")
	return uuid.NewString(), nil
}
