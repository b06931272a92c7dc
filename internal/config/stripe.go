package config

import (
	"fmt"
	"math"
	"regexp"
	"strings"
)

type StripeMode string

const StripeTestMode StripeMode = "test"
const StripeLiveMode StripeMode = "live"

var currencyPattern = regexp.MustCompile(`^[a-z]{3}$`)

type StripeConfig struct {
	PublicKey             string         `mapstructure:"publicKey"`
	SecretKey             RedactedString `mapstructure:"secretKey"`
	WebhookSecret         RedactedString `mapstructure:"webhookSecret"`
	MarketplaceFeePercent float64        `mapstructure:"marketplaceFeePercent"`
	Currency              string         `mapstructure:"currency"`
}

// Fee returns the marketplace share of amount, both in the smallest currency unit. Halves are
// rounded up.
func (c StripeConfig) Fee(amount int64) int64 {
	if amount <= 0 {
		return 0
	}
	return int64(math.Floor(float64(amount)*c.MarketplaceFeePercent/100 + 0.5))
}

// Mode derives test or live mode from the secret key. It returns an empty mode when the key
// has no recognized prefix.
func (c StripeConfig) Mode() StripeMode {
	return keyMode(string(c.SecretKey), "sk_", "rk_")
}

func keyMode(key string, prefixes ...string) StripeMode {
	for _, prefix := range prefixes {
		switch {
		case strings.HasPrefix(key, prefix+"test_"):
			return StripeTestMode
		case strings.HasPrefix(key, prefix+"live_"):
			return StripeLiveMode
		}
	}
	return ""
}

func (c StripeConfig) Validate(e RunningEnvironment, mockPayments bool) error {
	if !currencyPattern.MatchString(c.Currency) {
		return fmt.Errorf("stripe currency %q has to be a lowercase three letter ISO code", c.Currency)
	}
	if c.MarketplaceFeePercent < 0 || c.MarketplaceFeePercent >= 100 {
		return fmt.Errorf("stripe marketplace fee (%g%%) must be between 0 and 100", c.MarketplaceFeePercent)
	}
	if mockPayments {
		return nil
	}
	if c.PublicKey == "" {
		return fmt.Errorf("stripe public key is not set (enable development.mockPayments to run without stripe)")
	}
	if c.SecretKey == "" {
		return fmt.Errorf("stripe secret key is not set (enable development.mockPayments to run without stripe)")
	}
	if c.WebhookSecret == "" {
		return fmt.Errorf("stripe webhook secret is not set")
	}
	// placeholders are reported separately
	if IsPlaceholder(c.PublicKey) || IsPlaceholder(string(c.SecretKey)) || IsPlaceholder(string(c.WebhookSecret)) {
		return nil
	}
	publicMode := keyMode(c.PublicKey, "pk_")
	if publicMode == "" {
		return fmt.Errorf("stripe public key has to start with pk_test_ or pk_live_")
	}
	secretMode := c.Mode()
	if secretMode == "" {
		return fmt.Errorf("stripe secret key has to start with sk_test_, sk_live_, rk_test_ or rk_live_")
	}
	if publicMode != secretMode {
		return fmt.Errorf("stripe public key is a %s key but the secret key is a %s key", publicMode, secretMode)
	}
	if !strings.HasPrefix(string(c.WebhookSecret), "whsec_") {
		return fmt.Errorf("stripe webhook secret has to start with whsec_")
	}
	return nil
}
