package config

import (
	"fmt"
	"time"
)

// bcrypt accepts costs between 4 and 31 and ignores password bytes past the 72nd.
const minBcryptRounds int = 4
const maxBcryptRounds int = 31
const minProductionBcryptRounds int = 10
const maxPasswordLength int = 72

type RateLimitingConfig struct {
	WindowMs               int  `mapstructure:"windowMs"`
	MaxRequests            int  `mapstructure:"maxRequests"`
	SkipSuccessfulRequests bool `mapstructure:"skipSuccessfulRequests"`
}

func (c RateLimitingConfig) Window() time.Duration {
	return time.Duration(c.WindowMs) * time.Millisecond
}

type SecurityConfig struct {
	RateLimiting             RateLimitingConfig `mapstructure:"rateLimiting"`
	BcryptRounds             int                `mapstructure:"bcryptRounds"`
	RequireEmailVerification bool               `mapstructure:"requireEmailVerification"`
	PasswordMinLength        int                `mapstructure:"passwordMinLength"`
	SessionTimeout           int                `mapstructure:"sessionTimeout"`
}

func (c SecurityConfig) SessionDuration() time.Duration {
	return time.Duration(c.SessionTimeout) * time.Millisecond
}

func (c SecurityConfig) Validate(e RunningEnvironment) error {
	if c.RateLimiting.WindowMs <= 0 {
		return fmt.Errorf("rate limiting window (%d ms) needs to be greater than 0", c.RateLimiting.WindowMs)
	}
	if c.RateLimiting.MaxRequests <= 0 {
		return fmt.Errorf("rate limiting max requests (%d) needs to be greater than 0", c.RateLimiting.MaxRequests)
	}
	if c.BcryptRounds < minBcryptRounds || c.BcryptRounds > maxBcryptRounds {
		return fmt.Errorf("bcrypt rounds (%d) must be between %d and %d", c.BcryptRounds, minBcryptRounds, maxBcryptRounds)
	}
	if e == Production && c.BcryptRounds < minProductionBcryptRounds {
		return fmt.Errorf("bcrypt rounds (%d) cannot be less than %d in production", c.BcryptRounds, minProductionBcryptRounds)
	}
	if c.PasswordMinLength < 1 || c.PasswordMinLength > maxPasswordLength {
		return fmt.Errorf("password min length (%d) must be between 1 and %d", c.PasswordMinLength, maxPasswordLength)
	}
	if c.SessionTimeout <= 0 {
		return fmt.Errorf("session timeout (%d ms) needs to be greater than 0", c.SessionTimeout)
	}
	return nil
}
