package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func getValidSecurityConfig() SecurityConfig {
	return SecurityConfig{
		RateLimiting: RateLimitingConfig{
			WindowMs:    900000,
			MaxRequests: 100,
		},
		BcryptRounds:             12,
		RequireEmailVerification: true,
		PasswordMinLength:        8,
		SessionTimeout:           86400000,
	}
}

func TestValidSecurityConfig(t *testing.T) {
	config := getValidSecurityConfig()

	err := config.Validate(Production)

	assert.NoError(t, err)
	assert.Equal(t, 15*time.Minute, config.RateLimiting.Window())
	assert.Equal(t, 24*time.Hour, config.SessionDuration())
}

func TestInvalidRateLimitingWindow(t *testing.T) {
	config := getValidSecurityConfig()
	config.RateLimiting.WindowMs = -1

	err := config.Validate(Production)

	assert.ErrorContains(t, err, "rate limiting window (-1 ms) needs to be greater than 0")
}

func TestInvalidBcryptRounds(t *testing.T) {
	config := getValidSecurityConfig()
	config.BcryptRounds = 3

	err := config.Validate(Development)

	assert.ErrorContains(t, err, "bcrypt rounds (3) must be between 4 and 31")
}

func TestLowBcryptRoundsInProduction(t *testing.T) {
	config := getValidSecurityConfig()
	config.BcryptRounds = 6

	assert.NoError(t, config.Validate(Development))
	assert.ErrorContains(t, config.Validate(Production), "bcrypt rounds (6) cannot be less than 10 in production")
}

func TestInvalidPasswordMinLength(t *testing.T) {
	config := getValidSecurityConfig()
	config.PasswordMinLength = 80

	err := config.Validate(Production)

	assert.ErrorContains(t, err, "password min length (80) must be between 1 and 72")
}

func TestInvalidSessionTimeout(t *testing.T) {
	config := getValidSecurityConfig()
	config.SessionTimeout = 0

	err := config.Validate(Production)

	assert.ErrorContains(t, err, "session timeout (0 ms) needs to be greater than 0")
}
