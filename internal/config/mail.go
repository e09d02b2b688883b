package config

import (
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"
)

const defaultMailFrom = `"Toko Luvyn" <no-reply@luvyn.com>`

// MailConfig describes the SMTP relay used for order confirmations.
type MailConfig struct {
	Host     string `envconfig:"SMTP_HOST"`
	Port     int    `envconfig:"SMTP_PORT" default:"587"`
	User     string `envconfig:"EMAIL_USER"`
	Password string `envconfig:"EMAIL_PASS"`
	From     string `envconfig:"EMAIL_FROM"`
}

// Enabled reports whether a relay host is configured.
func (m MailConfig) Enabled() bool {
	return m.Host != ""
}

// Addr joins host and port.
func (m MailConfig) Addr() string {
	return fmt.Sprintf("%s:%d", m.Host, m.Port)
}

// LoadMail reads SMTP settings from the process environment.
func LoadMail() (MailConfig, error) {
	var cfg MailConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return MailConfig{}, fmt.Errorf("load mail config: %w", err)
	}

	if cfg.User == "" {
		cfg.User = os.Getenv("GMAIL_USER")
	}
	if cfg.From == "" {
		cfg.From = defaultMailFrom
	}
	if cfg.Port <= 0 {
		cfg.Port = 587
	}
	return cfg, nil
}
