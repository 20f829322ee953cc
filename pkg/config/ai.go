package config

// AIConfig configures the copy-generation provider.
type AIConfig struct {
	Provider        string // "openai" or "anthropic"
	OpenAIKey       string
	OpenAIModel     string
	AnthropicKey    string
	AnthropicModel  string
	MaxOutputTokens int
}

func loadAIConfig() AIConfig {
	return AIConfig{
		Provider:        getEnv("AI_PROVIDER", "openai"),
		OpenAIKey:       getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:     getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		AnthropicKey:    getEnv("ANTHROPIC_API_KEY", ""),
		AnthropicModel:  getEnv("ANTHROPIC_MODEL", "claude-sonnet-4-5"),
		MaxOutputTokens: getEnvInt("AI_MAX_OUTPUT_TOKENS", 500),
	}
}
