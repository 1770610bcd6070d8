package types

// Per-kind alert channel configuration. The channel row stores an opaque
// JSON blob; each sender decodes only the variant for its own kind.

type EmailConfig struct {
	Email string `json:"email"`
}

type WebhookConfig struct {
	URL     string            `json:"url"`
	Headers map[string]string `json:"headers,omitempty"`
}

type SlackConfig struct {
	WebhookURL string `json:"webhook_url"`
}
