package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/caarlos0/env/v6"
)

const (
	MailTransportSMTP     = "smtp"
	MailTransportSES      = "ses"
	MailTransportDisabled = "disabled"
)

type Config struct {
	IsTestMode     bool     `env:"TEST_MODE"`
	Debug          bool     `env:"DEBUG"`
	ListenAddress  string   `env:"LISTEN_ADDRESS" envDefault:"0.0.0.0:8080"`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envDefault:"*"`

	LdapURL                   string        `env:"LDAP_URL,required,notEmpty"`
	LdapBaseDN                string        `env:"LDAP_BASE_DN,required,notEmpty"`
	LdapBindDN                string        `env:"LDAP_BIND_DN,required,notEmpty"`
	LdapBindPassword          string        `env:"LDAP_BIND_PASSWORD,required,notEmpty"`
	LdapAnonymousLookup       bool          `env:"LDAP_ANONYMOUS_LOOKUP"`
	LdapTimeout               time.Duration `env:"LDAP_TIMEOUT" envDefault:"10s"`
	LdapInsecureSkipTLSVerify bool          `env:"LDAP_INSECURE_SKIP_TLS_VERIFY"`

	RedisURL      string `env:"REDIS_URL,required,notEmpty"`
	PostgresqlURL string `env:"POSTGRESQL_URL,required,notEmpty"`

	TokenLength     int           `env:"TOKEN_LENGTH" envDefault:"15"`
	PasswordLength  int           `env:"PASSWORD_LENGTH" envDefault:"8"`
	ResetRequestTTL time.Duration `env:"RESET_REQUEST_TTL" envDefault:"1h"`
	ConfirmBaseURL  url.URL       `env:"CONFIRM_BASE_URL,required,notEmpty"`

	NotificationsEnabled bool          `env:"NOTIFICATIONS_ENABLED" envDefault:"true"`
	MailTransport        string        `env:"MAIL_TRANSPORT" envDefault:"smtp"`
	MailFrom             string        `env:"MAIL_FROM,required,notEmpty"`
	SMTPAddress          string        `env:"SMTP_ADDRESS" envDefault:"127.0.0.1:25"`
	SMTPTimeout          time.Duration `env:"SMTP_TIMEOUT" envDefault:"10s"`

	AwsRegion    string `env:"AWS_REGION"`
	AwsAccessKey string `env:"AWS_ACCESS_KEY"`
	AwsSecretKey string `env:"AWS_SECRET_KEY"`

	SentryDsn string `env:"SENTRY_DSN"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	switch cfg.MailTransport {
	case MailTransportSMTP, MailTransportSES, MailTransportDisabled:
	default:
		return nil, fmt.Errorf("invalid MAIL_TRANSPORT value: %q", cfg.MailTransport)
	}
	if cfg.MailTransport == MailTransportSES && cfg.AwsRegion == "" {
		return nil, fmt.Errorf("AWS_REGION must be set when MAIL_TRANSPORT is %q", MailTransportSES)
	}
	if cfg.TokenLength < 8 {
		return nil, fmt.Errorf("TOKEN_LENGTH must be at least 8")
	}
	if cfg.PasswordLength < 8 {
		return nil, fmt.Errorf("PASSWORD_LENGTH must be at least 8")
	}

	return cfg, nil
}
