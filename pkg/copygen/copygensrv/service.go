// Package copygensrv assembles prompts and parses model output into
// ready-to-send email copy.
package copygensrv

import (
	"context"
	"fmt"
	"strings"

	"github.com/postwave/postwave/pkg/copygen"
)

const systemPrompt = "You are a top marketing email copywriter. " +
	"Your task is to write emails that are highly attractive, persuasive, and convert readers into customers. " +
	"Keep the tone according to the user's input and include key points if provided."

const defaultTone = "professional"

// Service drives copy generation against a pluggable provider.
type Service struct {
	generator copygen.Generator
}

// NewService creates the service.
func NewService(generator copygen.Generator) *Service {
	return &Service{generator: generator}
}

// Generate drafts a subject line and HTML body for the request.
func (s *Service) Generate(ctx context.Context, req copygen.CopyRequest) (*copygen.GeneratedCopy, error) {
	raw, err := s.generator.Generate(ctx, systemPrompt, buildUserPrompt(req))
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(raw) == "" {
		return nil, copygen.NewEmptyResponseError()
	}
	result := parseCopy(raw, req.SubjectHint)
	return &result, nil
}

func buildUserPrompt(req copygen.CopyRequest) string {
	tone := req.Tone
	if tone == "" {
		tone = defaultTone
	}
	keyPoints := "None"
	if len(req.KeyPoints) > 0 {
		keyPoints = strings.Join(req.KeyPoints, ", ")
	}
	return fmt.Sprintf(
		"Subject hint: %s\nTone: %s\nAudience: %s\nKey points: %s\n\n"+
			"Generate a subject line and a complete HTML email body. "+
			"Format the response as:\nSubject: <subject line>\nBody: <html body>",
		req.SubjectHint, tone, req.Audience, keyPoints,
	)
}

// parseCopy splits model output on the Subject:/Body: labels. Output that
// does not carry both labels is treated as body text, with the subject
// falling back to the hint.
func parseCopy(raw, subjectHint string) copygen.GeneratedCopy {
	if strings.Contains(raw, "Subject:") && strings.Contains(raw, "Body:") {
		head, tail, _ := strings.Cut(raw, "Body:")
		subject := strings.TrimSpace(strings.Replace(head, "Subject:", "", 1))
		return copygen.GeneratedCopy{
			Subject: subject,
			Body:    strings.TrimSpace(tail),
		}
	}
	subject := subjectHint
	if subject == "" {
		subject = "Marketing Email"
	}
	return copygen.GeneratedCopy{Subject: subject, Body: strings.TrimSpace(raw)}
}
