package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func getValidJWTConfig() JWTConfig {
	return JWTConfig{
		Secret:    "eBfR0WfHBTrRrVdLpsTYmWtPwJfQqOEq",
		ExpiresIn: 24 * time.Hour,
		Issuer:    "code-marketplace",
		Audience:  "marketplace-users",
	}
}

func TestValidJWTConfig(t *testing.T) {
	config := getValidJWTConfig()

	err := config.Validate(Production)

	assert.NoError(t, err)
}

func TestShortJWTSecret(t *testing.T) {
	config := getValidJWTConfig()
	config.Secret = "short-secret"

	assert.NoError(t, config.Validate(Development))
	assert.ErrorContains(t, config.Validate(Production), "jwt secret has to be at least 32 bytes long in production, the provided one is 12 long")
}

func TestMissingJWTSecret(t *testing.T) {
	config := getValidJWTConfig()
	config.Secret = ""

	err := config.Validate(Development)

	assert.ErrorContains(t, err, "jwt secret is not set")
}

func TestInvalidJWTExpiration(t *testing.T) {
	config := getValidJWTConfig()
	config.ExpiresIn = 0

	err := config.Validate(Production)

	assert.ErrorContains(t, err, "jwt expiration (0s) needs to be greater than 0")
}
