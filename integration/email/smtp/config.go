package smtp

// TLS modes.
const (
	ModeSTARTTLS = "starttls"
	ModeTLS      = "tls"
	ModePlain    = "plain"
)

// Config is the SMTP sender configuration. Username may be empty for
// relays that accept unauthenticated mail.
type Config struct {
	Host         string `env:"SMTP_HOST"`
	Port         int    `env:"SMTP_PORT" envDefault:"587"`
	Username     string `env:"SMTP_USERNAME"`
	Password     string `env:"SMTP_PASSWORD"`
	TLSMode      string `env:"SMTP_TLS_MODE" envDefault:"starttls"`
	SenderEmail  string `env:"SENDER_EMAIL"`
	SupportEmail string `env:"SUPPORT_EMAIL"`
}
