package config

// Platforms the retry service can run on. Only mobile talks to Stripe.
const (
	PlatformMobile = "mobile"
	PlatformWeb    = "web"
)

type ServiceConfig struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"`
	Version     string `mapstructure:"version"`
	ClientURL   string `mapstructure:"client_url"`
	Platform    string `mapstructure:"platform"`
}

type StripeConfig struct {
	SecretKey     string `mapstructure:"secret_key"`
	WebhookSecret string `mapstructure:"webhook_secret"`
	// APIURL overrides the Stripe API base URL; empty uses the default.
	APIURL string `mapstructure:"api_url"`
}
