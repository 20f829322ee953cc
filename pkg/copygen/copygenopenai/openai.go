// Package copygenopenai implements copy generation on the OpenAI chat API.
package copygenopenai

import (
	"context"
	"os"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/postwave/postwave/pkg/copygen"
)

// OpenAIGenerator implements copygen.Generator using chat completions.
type OpenAIGenerator struct {
	client    openai.Client
	model     string
	maxTokens int
}

// NewOpenAIGenerator creates the generator. An empty apiKey falls back to
// the OPENAI_API_KEY environment variable.
func NewOpenAIGenerator(apiKey, model string, maxTokens int, opts ...option.RequestOption) *OpenAIGenerator {
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}
	if model == "" {
		model = "gpt-4o-mini"
	}
	if maxTokens <= 0 {
		maxTokens = 500
	}

	options := append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)
	return &OpenAIGenerator{
		client:    openai.NewClient(options...),
		model:     model,
		maxTokens: maxTokens,
	}
}

// Generate runs one chat completion and returns the raw text.
func (g *OpenAIGenerator) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	completion, err := g.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: g.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(userPrompt),
		},
		Temperature: openai.Float(0.8),
		MaxTokens:   openai.Int(int64(g.maxTokens)),
	})
	if err != nil {
		return "", copygen.NewGenerationFailedError(err)
	}
	if len(completion.Choices) == 0 {
		return "", copygen.NewEmptyResponseError()
	}
	return completion.Choices[0].Message.Content, nil
}
