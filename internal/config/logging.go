package config

import (
	"fmt"
	"log/slog"
)

type LogFileConfig struct {
	Enabled  bool     `mapstructure:"enabled"`
	Filename string   `mapstructure:"filename"`
	MaxFiles int      `mapstructure:"maxFiles"`
	MaxSize  ByteSize `mapstructure:"maxSize"`
}

type LogConsoleConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

type LoggingConfig struct {
	Level   string           `mapstructure:"level"`
	File    LogFileConfig    `mapstructure:"file"`
	Console LogConsoleConfig `mapstructure:"console"`
}

// SlogLevel converts the configured level, one of debug, info, warn or error.
func (c LoggingConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	switch c.Level {
	case "debug", "info", "warn", "error":
	default:
		return level, fmt.Errorf("unknown logging level %q (must be one of debug, info, warn or error)", c.Level)
	}
	err := level.UnmarshalText([]byte(c.Level))
	return level, err
}

func (c LoggingConfig) Validate(e RunningEnvironment) error {
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	if !c.File.Enabled && !c.Console.Enabled {
		return fmt.Errorf("at least one of the file or console logging sinks has to be enabled")
	}
	if c.File.Enabled {
		if c.File.Filename == "" {
			return fmt.Errorf("logging file name is not set")
		}
		if c.File.MaxFiles < 1 {
			return fmt.Errorf("logging max files (%d) needs to be greater than 0", c.File.MaxFiles)
		}
		if c.File.MaxSize <= 0 {
			return fmt.Errorf("logging max file size needs to be greater than 0")
		}
	}
	return nil
}
