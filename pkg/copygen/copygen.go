// Package copygen generates marketing email copy with an LLM provider.
package copygen

import "context"

// CopyRequest describes the email the user wants drafted.
type CopyRequest struct {
	SubjectHint string   `json:"subject_hint"`
	Tone        string   `json:"tone"`
	Audience    string   `json:"audience"`
	KeyPoints   []string `json:"key_points"`
}

// GeneratedCopy is a drafted subject line and HTML body.
type GeneratedCopy struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Generator produces raw model output for a system/user prompt pair.
type Generator interface {
	Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}
