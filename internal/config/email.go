package config

import (
	"fmt"
	"net/mail"
)

type EmailProvider string

const (
	EmailSendgrid EmailProvider = "sendgrid"
	EmailSMTP     EmailProvider = "smtp"
	EmailSES      EmailProvider = "ses"
)

type EmailTemplatesConfig struct {
	Welcome  string `mapstructure:"welcome"`
	Purchase string `mapstructure:"purchase"`
	Sale     string `mapstructure:"sale"`
}

type SMTPConfig struct {
	Host     string         `mapstructure:"host"`
	Port     int            `mapstructure:"port"`
	Username string         `mapstructure:"username"`
	Password RedactedString `mapstructure:"password"`
}

type EmailConfig struct {
	Provider    EmailProvider        `mapstructure:"provider"`
	APIKey      RedactedString       `mapstructure:"apiKey"`
	FromAddress string               `mapstructure:"fromAddress"`
	FromName    string               `mapstructure:"fromName"`
	Templates   EmailTemplatesConfig `mapstructure:"templates"`
	SMTP        SMTPConfig           `mapstructure:"smtp"`
}

func (c EmailConfig) Validate(e RunningEnvironment) error {
	switch c.Provider {
	case EmailSendgrid, EmailSES:
		if c.APIKey == "" {
			return fmt.Errorf("email api key is not set for provider %s", c.Provider)
		}
	case EmailSMTP:
		if c.SMTP.Host == "" {
			return fmt.Errorf("email smtp host is not set")
		}
		if err := validatePort("email smtp", c.SMTP.Port); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown email provider %q (must be one of sendgrid, smtp or ses)", string(c.Provider))
	}
	if _, err := mail.ParseAddress(c.FromAddress); err != nil {
		return fmt.Errorf("email from address %q is not valid: %w", c.FromAddress, err)
	}
	if c.FromName == "" {
		return fmt.Errorf("email from name is not set")
	}
	return nil
}
