package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/SwissDataScienceCenter/code-marketplace/internal/mperrors"
)

type RunningEnvironment string

const Development RunningEnvironment = "development"
const Production RunningEnvironment = "production"

func (e RunningEnvironment) Validate() error {
	switch e {
	case Development, Production:
		return nil
	default:
		return fmt.Errorf("app environment %q is not one of development or production", string(e))
	}
}

// Config is the complete marketplace configuration. It is loaded once at startup and is
// not modified afterwards.
type Config struct {
	Database    DatabaseConfig    `mapstructure:"database"`
	JWT         JWTConfig         `mapstructure:"jwt"`
	Stripe      StripeConfig      `mapstructure:"stripe"`
	App         AppConfig         `mapstructure:"app"`
	Email       EmailConfig       `mapstructure:"email"`
	Storage     StorageConfig     `mapstructure:"storage"`
	Security    SecurityConfig    `mapstructure:"security"`
	Logging     LoggingConfig     `mapstructure:"logging"`
	Redis       RedisConfig       `mapstructure:"redis"`
	Development DevelopmentConfig `mapstructure:"development"`
}

// Sections lists the top level keys of the configuration in declaration order.
var Sections = []string{
	"database",
	"jwt",
	"stripe",
	"app",
	"email",
	"storage",
	"security",
	"logging",
	"redis",
	"development",
}

func (c *Config) Environment() RunningEnvironment {
	return c.App.Environment
}

type sectionValidator struct {
	name     string
	validate func() error
}

func (c *Config) validators() []sectionValidator {
	e := c.App.Environment
	return []sectionValidator{
		{"database", func() error { return c.Database.Validate(e) }},
		{"jwt", func() error { return c.JWT.Validate(e) }},
		{"stripe", func() error { return c.Stripe.Validate(e, c.Development.MockPayments) }},
		{"app", func() error { return c.App.Validate(e) }},
		{"email", func() error { return c.Email.Validate(e) }},
		{"storage", func() error { return c.Storage.Validate(e, c.App.MaxUploadSize) }},
		{"security", func() error { return c.Security.Validate(e) }},
		{"logging", func() error { return c.Logging.Validate(e) }},
		{"redis", func() error { return c.Redis.Validate(e) }},
		{"development", func() error { return c.Development.Validate(e) }},
	}
}

// Validate checks every section and reports all the failures at once. In production any active
// field still holding a placeholder value is an error as well.
func (c *Config) Validate() error {
	errs := []error{}
	for _, v := range c.validators() {
		if err := v.validate(); err != nil {
			errs = append(errs, err)
		}
	}
	if c.App.Environment == Production {
		if placeholders := c.ActivePlaceholders(); len(placeholders) > 0 {
			errs = append(errs, fmt.Errorf("%w: %s", mperrors.ErrPlaceholderValue, strings.Join(placeholders, ", ")))
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errors.Join(errs...)
}
