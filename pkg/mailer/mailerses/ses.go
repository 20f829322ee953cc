// Package mailerses implements the mail gateway on AWS SES.
package mailerses

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/postwave/postwave/pkg/mailer"
)

// SESGateway implements mailer.Gateway using AWS SES.
type SESGateway struct {
	client      *ses.Client
	fromAddress string
}

// NewSESGateway creates the SES gateway with a default sender address.
func NewSESGateway(client *ses.Client, fromAddress string) *SESGateway {
	return &SESGateway{client: client, fromAddress: fromAddress}
}

// SendEmail sends a structured message via SES SendEmail.
func (g *SESGateway) SendEmail(ctx context.Context, msg mailer.Message) (string, error) {
	if len(msg.To) == 0 {
		return "", mailer.NewInvalidMessageError("no recipients")
	}

	from := msg.From
	if from == "" {
		from = g.fromAddress
	}

	body := &types.Body{}
	if msg.HTMLBody != "" {
		body.Html = &types.Content{Data: aws.String(msg.HTMLBody), Charset: aws.String("UTF-8")}
	}
	if msg.TextBody != "" {
		body.Text = &types.Content{Data: aws.String(msg.TextBody), Charset: aws.String("UTF-8")}
	}

	input := &ses.SendEmailInput{
		Source:      aws.String(from),
		Destination: &types.Destination{ToAddresses: msg.To},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(msg.Subject), Charset: aws.String("UTF-8")},
			Body:    body,
		},
	}
	if msg.ReplyTo != "" {
		input.ReplyToAddresses = []string{msg.ReplyTo}
	}

	out, err := g.client.SendEmail(ctx, input)
	if err != nil {
		return "", mailer.NewSendFailedError(err).
			WithDetail("to", msg.To).
			WithDetail("subject", msg.Subject)
	}
	return aws.ToString(out.MessageId), nil
}

// SendRawEmail transmits a pre-built MIME blob via SES SendRawEmail.
func (g *SESGateway) SendRawEmail(ctx context.Context, msg mailer.RawMessage) (string, error) {
	if len(msg.To) == 0 {
		return "", mailer.NewInvalidMessageError("no recipients")
	}

	from := msg.From
	if from == "" {
		from = g.fromAddress
	}

	out, err := g.client.SendRawEmail(ctx, &ses.SendRawEmailInput{
		Source:       aws.String(from),
		Destinations: msg.To,
		RawMessage:   &types.RawMessage{Data: msg.Data},
	})
	if err != nil {
		return "", mailer.NewSendFailedError(err).WithDetail("to", msg.To)
	}
	return aws.ToString(out.MessageId), nil
}
