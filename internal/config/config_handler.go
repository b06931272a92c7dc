package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/SwissDataScienceCenter/code-marketplace/internal/mperrors"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes the environment variables that override configuration keys, e.g.
// MARKETPLACE_STRIPE_SECRETKEY overrides stripe.secretKey.
const EnvPrefix string = "MARKETPLACE"

// envAliases are additional environment variables accepted for some keys. The prefixed
// variable still takes precedence.
var envAliases = map[string][]string{
	"app.port":        {"PORT"},
	"app.environment": {"APP_ENV"},
}

type ConfigHandler struct {
	mainViper   *viper.Viper
	secretViper *viper.Viper
	lock        *sync.Mutex
}

type ConfigHandlerOption func(*configHandlerOptions)

type configHandlerOptions struct {
	location string
}

// WithConfigLocation adds a directory that is searched for the configuration files before
// any other.
func WithConfigLocation(dir string) ConfigHandlerOption {
	return func(o *configHandlerOptions) {
		o.location = dir
	}
}

// NewConfigHandler creates a configuration handler that reads the configuration files, merges
// them and can watch them for changes. Please note that the merges replace whole arrays - they
// do not merge arrays. The secret file always overwrites anything in the regular file and
// environment variables overwrite both, so the order of preference from most preferred to least
// is environment variables, secret config, regular config, defaults.
func NewConfigHandler(options ...ConfigHandlerOption) *ConfigHandler {
	opts := configHandlerOptions{}
	for _, opt := range options {
		opt(&opts)
	}
	main := viper.New()
	main.SetConfigType("yaml")
	main.SetConfigName("config")
	secret := viper.New()
	secret.SetConfigType("yaml")
	secret.SetConfigName("secret_config")
	// Viper will look through the list of paths and use the first one where there is a file
	// so the explicit location and the env variable will always take precedence over the rest
	configPaths := []string{}
	if opts.location != "" {
		configPaths = append(configPaths, opts.location)
	}
	configPathEnv := os.Getenv("CONFIG_LOCATION")
	if configPathEnv != "" {
		configPaths = append(configPaths, configPathEnv)
	}
	configPaths = append(configPaths, "/etc/marketplace", ".")
	for _, path := range configPaths {
		main.AddConfigPath(path)
		secret.AddConfigPath(path)
	}
	return &ConfigHandler{secretViper: secret, mainViper: main, lock: &sync.Mutex{}}
}

func (c *ConfigHandler) HandleChanges(callback func(Config, error)) {
	c.mainViper.OnConfigChange(func(e fsnotify.Event) {
		slog.Info("main config file changed", "path", e.Name)
		callback(c.Config())
	})
	c.secretViper.OnConfigChange(func(e fsnotify.Event) {
		slog.Info("secret config file changed", "path", e.Name)
		callback(c.Config())
	})
}

func (c *ConfigHandler) Watch() {
	c.mainViper.WatchConfig()
	c.secretViper.WatchConfig()
}

// Files returns the configuration files used by the last load.
func (c *ConfigHandler) Files() []string {
	c.lock.Lock()
	defer c.lock.Unlock()
	output := []string{}
	for _, v := range []*viper.Viper{c.mainViper, c.secretViper} {
		if used := v.ConfigFileUsed(); used != "" {
			output = append(output, used)
		}
	}
	return output
}

func envKey(key string) string {
	return EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

func (c *ConfigHandler) bindEnv() error {
	for _, key := range c.mainViper.AllKeys() {
		names := append([]string{key, envKey(key)}, envAliases[key]...)
		err := c.mainViper.BindEnv(names...)
		if err != nil {
			return fmt.Errorf("config: unable to bind env for %s: %w", key, err)
		}
	}
	return nil
}

func (c *ConfigHandler) merge() error {
	err := c.secretViper.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			slog.Debug("could not find any secret config files - only the public file and environment variables will be used")
			return nil
		}
		return err
	}
	// here the secret config will overwrite anything from the non-secret configuration
	return c.mainViper.MergeConfigMap(c.secretViper.AllSettings())
}

func (c *ConfigHandler) load() (Config, error) {
	var output Config
	err := c.mainViper.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("%w: %w", mperrors.ErrConfigNotFound, err)
		}
		return Config{}, err
	}
	err = c.merge()
	if err != nil {
		return Config{}, err
	}
	setDefaults(c.mainViper, defaults)
	setDefaults(c.mainViper, environmentDefaults(Development, 0))
	// the env variables will overwrite stuff in both configuration files if set
	err = c.bindEnv()
	if err != nil {
		return Config{}, err
	}
	environment := RunningEnvironment(c.mainViper.GetString("app.environment"))
	setDefaults(c.mainViper, environmentDefaults(environment, c.mainViper.GetInt("app.port")))
	err = c.mainViper.Unmarshal(&output, viper.DecodeHook(decodeHook()))
	if err != nil {
		return Config{}, err
	}
	if output.App.Environment != Production {
		if placeholders := output.ActivePlaceholders(); len(placeholders) > 0 {
			slog.Warn("the configuration contains placeholder values", "keys", placeholders)
		}
	}
	return output, nil
}

// Load reads and decodes the configuration without validating it.
func (c *ConfigHandler) Load() (Config, error) {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.load()
}

// Config reads, decodes and validates the configuration.
func (c *ConfigHandler) Config() (Config, error) {
	c.lock.Lock()
	defer c.lock.Unlock()
	output, err := c.load()
	if err != nil {
		return Config{}, err
	}
	err = output.Validate()
	if err != nil {
		return Config{}, fmt.Errorf("%w: %w", mperrors.ErrInvalidConfig, err)
	}
	return output, nil
}
