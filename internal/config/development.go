package config

import "fmt"

type DevelopmentConfig struct {
	EnableSwagger           bool `mapstructure:"enableSwagger"`
	MockPayments            bool `mapstructure:"mockPayments"`
	SeedDatabase            bool `mapstructure:"seedDatabase"`
	BypassEmailVerification bool `mapstructure:"bypassEmailVerification"`
}

func (c DevelopmentConfig) Validate(e RunningEnvironment) error {
	if e != Production {
		return nil
	}
	if c.MockPayments {
		return fmt.Errorf("development.mockPayments cannot be enabled in production")
	}
	if c.SeedDatabase {
		return fmt.Errorf("development.seedDatabase cannot be enabled in production")
	}
	if c.BypassEmailVerification {
		return fmt.Errorf("development.bypassEmailVerification cannot be enabled in production")
	}
	return nil
}
