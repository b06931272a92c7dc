package config

import (
	"fmt"
	"net/url"
	"slices"
)

type AppConfig struct {
	Name          string             `mapstructure:"name"`
	Port          int                `mapstructure:"port"`
	Environment   RunningEnvironment `mapstructure:"environment"`
	BaseURL       *url.URL           `mapstructure:"baseUrl"`
	CorsOrigin    []string           `mapstructure:"corsOrigin"`
	MaxUploadSize ByteSize           `mapstructure:"maxUploadSize"`
	SessionSecret RedactedString     `mapstructure:"sessionSecret"`
}

func (c AppConfig) Validate(e RunningEnvironment) error {
	if c.Name == "" {
		return fmt.Errorf("app name is not set")
	}
	if err := validatePort("app", c.Port); err != nil {
		return err
	}
	if err := c.Environment.Validate(); err != nil {
		return err
	}
	if c.BaseURL == nil {
		return fmt.Errorf("app base url is not set")
	}
	if c.BaseURL.Scheme != "http" && c.BaseURL.Scheme != "https" || c.BaseURL.Host == "" {
		return fmt.Errorf("app base url %q has to be an absolute http(s) url", c.BaseURL.String())
	}
	if e == Production && c.BaseURL.Scheme != "https" {
		return fmt.Errorf("app base url has to use https in production")
	}
	if e == Production && slices.Contains(c.CorsOrigin, "*") {
		return fmt.Errorf("app cors origin cannot be \"*\" in production")
	}
	if c.MaxUploadSize <= 0 {
		return fmt.Errorf("app max upload size needs to be greater than 0")
	}
	if c.SessionSecret == "" {
		return fmt.Errorf("app session secret is not set")
	}
	if e == Production && !IsPlaceholder(string(c.SessionSecret)) && len(c.SessionSecret) < minProductionSecretLength {
		return fmt.Errorf(
			"app session secret has to be at least %d bytes long in production, the provided one is %d long",
			minProductionSecretLength,
			len(c.SessionSecret),
		)
	}
	return nil
}
