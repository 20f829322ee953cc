package config

// MailConfig configures the outbound mail gateway.
type MailConfig struct {
	Provider        string // "ses" or "console"
	FromAddress     string
	FromName        string
	AWSRegion       string
	UnsubscribeBase string // base URL the List-Unsubscribe links point at
	SuppressionOn   bool
}

func loadMailConfig() MailConfig {
	return MailConfig{
		Provider:        getEnv("MAIL_PROVIDER", "console"),
		FromAddress:     getEnv("MAIL_FROM_ADDRESS", "noreply@postwave.io"),
		FromName:        getEnv("MAIL_FROM_NAME", "Postwave"),
		AWSRegion:       getEnv("MAIL_AWS_REGION", getEnv("AWS_REGION", "us-east-1")),
		UnsubscribeBase: getEnv("MAIL_UNSUBSCRIBE_BASE", "http://localhost:8080"),
		SuppressionOn:   getEnvBool("MAIL_SUPPRESSION_ENABLED", true),
	}
}
