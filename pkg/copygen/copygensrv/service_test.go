package copygensrv_test

import (
	"context"
	"strings"
	"testing"

	"github.com/postwave/postwave/pkg/copygen"
	"github.com/postwave/postwave/pkg/copygen/copygensrv"
)

type stubGenerator struct {
	response   string
	err        error
	lastSystem string
	lastUser   string
}

func (g *stubGenerator) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	g.lastSystem = systemPrompt
	g.lastUser = userPrompt
	return g.response, g.err
}

func TestGenerateSplitsLabeledOutput(t *testing.T) {
	gen := &stubGenerator{response: "Subject: Big Spring Sale\nBody: <html><body>Save now!</body></html>"}
	svc := copygensrv.NewService(gen)

	got, err := svc.Generate(context.Background(), copygen.CopyRequest{SubjectHint: "sale"})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if got.Subject != "Big Spring Sale" {
		t.Errorf("Subject = %q", got.Subject)
	}
	if got.Body != "<html><body>Save now!</body></html>" {
		t.Errorf("Body = %q", got.Body)
	}
}

func TestGenerateFallsBackToHintWhenUnlabeled(t *testing.T) {
	gen := &stubGenerator{response: "<html><body>Just a body</body></html>"}
	svc := copygensrv.NewService(gen)

	got, err := svc.Generate(context.Background(), copygen.CopyRequest{SubjectHint: "Spring Sale"})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if got.Subject != "Spring Sale" {
		t.Errorf("Subject = %q, want hint fallback", got.Subject)
	}
	if got.Body != gen.response {
		t.Errorf("Body = %q", got.Body)
	}
}

func TestGenerateDefaultSubjectWithoutHint(t *testing.T) {
	gen := &stubGenerator{response: "plain text"}
	svc := copygensrv.NewService(gen)

	got, err := svc.Generate(context.Background(), copygen.CopyRequest{})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if got.Subject != "Marketing Email" {
		t.Errorf("Subject = %q", got.Subject)
	}
}

func TestGeneratePromptCarriesRequestFields(t *testing.T) {
	gen := &stubGenerator{response: "Subject: s\nBody: b"}
	svc := copygensrv.NewService(gen)

	_, err := svc.Generate(context.Background(), copygen.CopyRequest{
		SubjectHint: "launch",
		Tone:        "witty",
		Audience:    "developers",
		KeyPoints:   []string{"fast", "cheap"},
	})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	for _, want := range []string{"launch", "witty", "developers", "fast, cheap"} {
		if !strings.Contains(gen.lastUser, want) {
			t.Errorf("user prompt missing %q:\n%s", want, gen.lastUser)
		}
	}
	if !strings.Contains(gen.lastSystem, "copywriter") {
		t.Errorf("system prompt = %q", gen.lastSystem)
	}
}

func TestGenerateRejectsEmptyModelOutput(t *testing.T) {
	svc := copygensrv.NewService(&stubGenerator{response: "   "})
	if _, err := svc.Generate(context.Background(), copygen.CopyRequest{}); err == nil {
		t.Fatal("Generate() expected error for empty output")
	}
}
