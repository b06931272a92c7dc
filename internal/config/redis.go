package config

import (
	"fmt"
	"net"
	"strconv"
)

const maxRedisDB int = 15

type RedisConfig struct {
	Host      string         `mapstructure:"host"`
	Port      int            `mapstructure:"port"`
	Password  RedactedString `mapstructure:"password"`
	DB        int            `mapstructure:"db"`
	KeyPrefix string         `mapstructure:"keyPrefix"`
}

func (c RedisConfig) Address() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// Configured reports whether a real redis host has been provided.
func (c RedisConfig) Configured() bool {
	return c.Host != "" && !IsPlaceholder(c.Host)
}

func (c RedisConfig) Validate(e RunningEnvironment) error {
	if c.Host == "" {
		return fmt.Errorf("redis host is not set")
	}
	if err := validatePort("redis", c.Port); err != nil {
		return err
	}
	if c.DB < 0 || c.DB > maxRedisDB {
		return fmt.Errorf("redis db (%d) must be between 0 and %d", c.DB, maxRedisDB)
	}
	return nil
}
