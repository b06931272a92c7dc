package config

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"time"
)

// SSLMode is the postgres sslmode. The boolean false of the template maps to disable and
// true maps to require.
type SSLMode string

const (
	SSLDisable    SSLMode = "disable"
	SSLAllow      SSLMode = "allow"
	SSLPrefer     SSLMode = "prefer"
	SSLRequire    SSLMode = "require"
	SSLVerifyCA   SSLMode = "verify-ca"
	SSLVerifyFull SSLMode = "verify-full"
)

func (m SSLMode) valid() bool {
	switch m {
	case SSLDisable, SSLAllow, SSLPrefer, SSLRequire, SSLVerifyCA, SSLVerifyFull:
		return true
	}
	return false
}

type PoolConfig struct {
	Min                  int `mapstructure:"min"`
	Max                  int `mapstructure:"max"`
	AcquireTimeoutMillis int `mapstructure:"acquireTimeoutMillis"`
	IdleTimeoutMillis    int `mapstructure:"idleTimeoutMillis"`
}

func (p PoolConfig) AcquireTimeout() time.Duration {
	return time.Duration(p.AcquireTimeoutMillis) * time.Millisecond
}

func (p PoolConfig) IdleTimeout() time.Duration {
	return time.Duration(p.IdleTimeoutMillis) * time.Millisecond
}

func (p PoolConfig) Validate() error {
	if p.Min < 0 {
		return fmt.Errorf("database pool min (%d) cannot be negative", p.Min)
	}
	if p.Max < 1 {
		return fmt.Errorf("database pool max (%d) needs to be greater than 0", p.Max)
	}
	if p.Min > p.Max {
		return fmt.Errorf("database pool min (%d) cannot be greater than max (%d)", p.Min, p.Max)
	}
	if p.AcquireTimeoutMillis <= 0 {
		return fmt.Errorf("database pool acquire timeout (%d ms) needs to be greater than 0", p.AcquireTimeoutMillis)
	}
	if p.IdleTimeoutMillis <= 0 {
		return fmt.Errorf("database pool idle timeout (%d ms) needs to be greater than 0", p.IdleTimeoutMillis)
	}
	return nil
}

type DatabaseConfig struct {
	Host     string         `mapstructure:"host"`
	Name     string         `mapstructure:"name"`
	User     string         `mapstructure:"user"`
	Password RedactedString `mapstructure:"password"`
	Port     int            `mapstructure:"port"`
	SSL      SSLMode        `mapstructure:"ssl"`
	Pool     PoolConfig     `mapstructure:"pool"`
}

func (c DatabaseConfig) Address() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// ConnectionString returns the postgres URL for the database. It contains the password, do
// not log it.
func (c DatabaseConfig) ConnectionString() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password.Value()),
		Host:     c.Address(),
		Path:     "/" + c.Name,
		RawQuery: url.Values{"sslmode": []string{string(c.SSL)}}.Encode(),
	}
	return u.String()
}

func (c DatabaseConfig) Validate(e RunningEnvironment) error {
	if c.Host == "" {
		return fmt.Errorf("database host is not set")
	}
	if err := validatePort("database", c.Port); err != nil {
		return err
	}
	if c.Name == "" {
		return fmt.Errorf("database name is not set")
	}
	if c.User == "" {
		return fmt.Errorf("database user is not set")
	}
	if !c.SSL.valid() {
		return fmt.Errorf(
			"database ssl mode %q is not one of disable, allow, prefer, require, verify-ca, verify-full",
			string(c.SSL),
		)
	}
	if e == Production && c.SSL == SSLDisable {
		return fmt.Errorf("database ssl cannot be disabled in production")
	}
	return c.Pool.Validate()
}

func validatePort(section string, port int) error {
	if port < 1 || port > 65535 {
		return fmt.Errorf("%s port (%d) must be between 1 and 65535", section, port)
	}
	return nil
}
