package config

import (
	"fmt"
	"time"
)

const minProductionSecretLength int = 32

type JWTConfig struct {
	Secret    RedactedString `mapstructure:"secret"`
	ExpiresIn time.Duration  `mapstructure:"expiresIn"`
	Issuer    string         `mapstructure:"issuer"`
	Audience  string         `mapstructure:"audience"`
}

func (c JWTConfig) Validate(e RunningEnvironment) error {
	if c.Secret == "" {
		return fmt.Errorf("jwt secret is not set")
	}
	if e == Production && !IsPlaceholder(string(c.Secret)) && len(c.Secret) < minProductionSecretLength {
		return fmt.Errorf(
			"jwt secret has to be at least %d bytes long in production, the provided one is %d long",
			minProductionSecretLength,
			len(c.Secret),
		)
	}
	if c.Issuer == "" {
		return fmt.Errorf("jwt issuer is not set")
	}
	if c.Audience == "" {
		return fmt.Errorf("jwt audience is not set")
	}
	if c.ExpiresIn <= 0 {
		return fmt.Errorf("jwt expiration (%s) needs to be greater than 0", c.ExpiresIn)
	}
	return nil
}
