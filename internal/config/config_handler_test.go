package config

import (
	"os"
	"path"
	"strings"
	"testing"
	"time"

	"github.com/SwissDataScienceCenter/code-marketplace/internal/mperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const productionConfig = `---
database:
  host: db.example.org
  name: marketplace
  user: marketplace_app
  port: 5432
jwt:
  expiresIn: 7d
stripe:
  publicKey: pk_live_51Habc
  currency: chf
  marketplaceFeePercent: 2.5
app:
  environment: production
  port: 8443
  baseUrl: https://marketplace.example.org
  corsOrigin:
    - https://marketplace.example.org
    - https://admin.marketplace.example.org
email:
  provider: sendgrid
  fromAddress: noreply@marketplace.example.org
redis:
  host: redis.example.org
`

const productionSecrets = `---
database:
  password: db-password
jwt:
  secret: eBfR0WfHBTrRrVdLpsTYmWtPwJfQqOEq
stripe:
  secretKey: sk_live_51Habc
  webhookSecret: whsec_abc
app:
  sessionSecret: KNb0TX3VoTgr8z6Zt6o2TJqEoZV9cYvA
email:
  apiKey: SG.abcdef
redis:
  password: redis-password
`

func writeFile(t *testing.T, fpath string, contents []byte) {
	err := os.WriteFile(fpath, contents, 0600)
	require.NoError(t, err)
}

func createSecretFile(t *testing.T, dir string) {
	contents := `---
jwt:
  secret: jwt-secret-from-secret-file
stripe:
  secretKey: sk_test_from_secret_file
database:
  password: db-password-from-secret-file
`
	writeFile(t, path.Join(dir, "secret_config.yaml"), []byte(contents))
}

func TestReadConfig(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("CONFIG_LOCATION", tmpDir)
	writeFile(t, path.Join(tmpDir, "config.yaml"), Template())
	createSecretFile(t, tmpDir)
	ch := NewConfigHandler()
	config, err := ch.Config()
	require.NoError(t, err)
	assert.NotEqual(t, config, Config{})
	assert.Equal(t, Development, config.App.Environment)
	assert.Equal(t, "http://localhost:3000", config.App.BaseURL.String())
	assert.Equal(t, []string{"*"}, config.App.CorsOrigin)
	assert.Equal(t, ByteSize(50*1024*1024), config.App.MaxUploadSize)
	assert.Equal(t, ByteSize(50*1024*1024), config.Storage.Local.MaxFileSize)
	assert.Equal(t, ByteSize(10*1024*1024), config.Logging.File.MaxSize)
	assert.Equal(t, 24*time.Hour, config.JWT.ExpiresIn)
	assert.Equal(t, SSLDisable, config.Database.SSL)
	assert.Equal(t, 1000, config.Security.RateLimiting.MaxRequests)
	assert.Equal(t, "debug", config.Logging.Level)
	assert.True(t, config.Logging.Console.Enabled)
	assert.True(t, config.Development.SeedDatabase)
	assert.Equal(t, RedactedString("jwt-secret-from-secret-file"), config.JWT.Secret)
	assert.Equal(t, RedactedString("sk_test_from_secret_file"), config.Stripe.SecretKey)
	assert.Equal(t, RedactedString("db-password-from-secret-file"), config.Database.Password)
	assert.Equal(t, "PLACEHOLDER_DB_HOST", config.Database.Host)
	assert.Equal(t, "marketplace:", config.Redis.KeyPrefix)
	assert.Len(t, ch.Files(), 2)
}

func TestReadConfigWithEnvVars(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("CONFIG_LOCATION", tmpDir)
	writeFile(t, path.Join(tmpDir, "config.yaml"), Template())
	createSecretFile(t, tmpDir)
	t.Setenv("MARKETPLACE_JWT_SECRET", "jwt-secret-from-env")
	t.Setenv("MARKETPLACE_DATABASE_HOST", "db.example.org")
	t.Setenv("MARKETPLACE_DATABASE_SSL", "verify-full")
	t.Setenv("MARKETPLACE_APP_CORSORIGIN", "https://a.example.org,https://b.example.org")
	t.Setenv("MARKETPLACE_APP_MAXUPLOADSIZE", "100mb")
	t.Setenv("PORT", "8080")
	ch := NewConfigHandler()
	config, err := ch.Config()
	require.NoError(t, err)
	assert.Equal(t, RedactedString("jwt-secret-from-env"), config.JWT.Secret)
	assert.Equal(t, RedactedString("sk_test_from_secret_file"), config.Stripe.SecretKey)
	assert.Equal(t, "db.example.org", config.Database.Host)
	assert.Equal(t, SSLVerifyFull, config.Database.SSL)
	assert.Equal(t, []string{"https://a.example.org", "https://b.example.org"}, config.App.CorsOrigin)
	assert.Equal(t, ByteSize(100*1024*1024), config.App.MaxUploadSize)
	assert.Equal(t, 8080, config.App.Port)
	assert.Equal(t, "http://localhost:8080", config.App.BaseURL.String())
}

func TestPrefixedEnvVarWinsOverAlias(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, path.Join(tmpDir, "config.yaml"), Template())
	t.Setenv("PORT", "8080")
	t.Setenv("MARKETPLACE_APP_PORT", "9090")
	ch := NewConfigHandler(WithConfigLocation(tmpDir))
	config, err := ch.Config()
	require.NoError(t, err)
	assert.Equal(t, 9090, config.App.Port)
}

func TestReadProductionConfig(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, path.Join(tmpDir, "config.yaml"), []byte(productionConfig))
	writeFile(t, path.Join(tmpDir, "secret_config.yaml"), []byte(productionSecrets))
	ch := NewConfigHandler(WithConfigLocation(tmpDir))
	config, err := ch.Config()
	require.NoError(t, err)
	assert.Equal(t, Production, config.App.Environment)
	assert.Equal(t, SSLRequire, config.Database.SSL)
	assert.Equal(t, 100, config.Security.RateLimiting.MaxRequests)
	assert.Equal(t, "warn", config.Logging.Level)
	assert.False(t, config.Logging.Console.Enabled)
	assert.Equal(t, DevelopmentConfig{}, config.Development)
	assert.Equal(t, 7*24*time.Hour, config.JWT.ExpiresIn)
	assert.Equal(t, "chf", config.Stripe.Currency)
	assert.Equal(t, 2.5, config.Stripe.MarketplaceFeePercent)
	assert.Equal(t, "https://marketplace.example.org", config.App.BaseURL.String())
	assert.Len(t, config.App.CorsOrigin, 2)
	assert.Equal(t, StorageLocal, config.Storage.Type)
	assert.Equal(t, 12, config.Security.BcryptRounds)
}

func TestProductionRejectsTemplate(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, path.Join(tmpDir, "config.yaml"), Template())
	t.Setenv("APP_ENV", "production")
	t.Setenv("MARKETPLACE_APP_BASEURL", "https://marketplace.example.org")
	ch := NewConfigHandler(WithConfigLocation(tmpDir))
	_, err := ch.Config()
	assert.ErrorIs(t, err, mperrors.ErrInvalidConfig)
	assert.ErrorIs(t, err, mperrors.ErrPlaceholderValue)
	assert.ErrorContains(t, err, "development.seedDatabase cannot be enabled in production")
	assert.ErrorContains(t, err, "jwt.secret")
	assert.NotContains(t, err.Error(), "storage.s3")
}

func TestLoadDoesNotValidate(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, path.Join(tmpDir, "config.yaml"), Template())
	t.Setenv("APP_ENV", "production")
	ch := NewConfigHandler(WithConfigLocation(tmpDir))
	config, err := ch.Load()
	require.NoError(t, err)
	assert.Equal(t, Production, config.App.Environment)
	assert.Nil(t, config.App.BaseURL)
}

func TestMissingConfigFile(t *testing.T) {
	ch := NewConfigHandler(WithConfigLocation(t.TempDir()))
	_, err := ch.Config()
	assert.ErrorIs(t, err, mperrors.ErrConfigNotFound)
}

func TestInvalidSizeInConfigFile(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, path.Join(tmpDir, "config.yaml"), []byte("app:\n  maxUploadSize: lots\n"))
	ch := NewConfigHandler(WithConfigLocation(tmpDir))
	_, err := ch.Load()
	assert.ErrorContains(t, err, "cannot parse size \"lots\"")
}

func TestBooleanDatabaseSSL(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, path.Join(tmpDir, "config.yaml"), []byte("database:\n  ssl: true\n"))
	ch := NewConfigHandler(WithConfigLocation(tmpDir))
	config, err := ch.Load()
	require.NoError(t, err)
	assert.Equal(t, SSLRequire, config.Database.SSL)
}

func TestUppercaseDatabaseSSL(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, path.Join(tmpDir, "config.yaml"), []byte("database:\n  ssl: disable\n"))
	t.Setenv("MARKETPLACE_DATABASE_SSL", "VERIFY-FULL")
	ch := NewConfigHandler(WithConfigLocation(tmpDir))
	config, err := ch.Load()
	require.NoError(t, err)
	assert.Equal(t, SSLVerifyFull, config.Database.SSL)
}

func TestEmptyBaseURLInProduction(t *testing.T) {
	tmpDir := t.TempDir()
	withoutBaseURL := strings.Replace(productionConfig, "  baseUrl: https://marketplace.example.org\n", "", 1)
	require.NotEqual(t, productionConfig, withoutBaseURL)
	writeFile(t, path.Join(tmpDir, "config.yaml"), []byte(withoutBaseURL))
	writeFile(t, path.Join(tmpDir, "secret_config.yaml"), []byte(productionSecrets))
	ch := NewConfigHandler(WithConfigLocation(tmpDir))
	var err error
	require.NotPanics(t, func() {
		_, err = ch.Config()
	})
	assert.ErrorIs(t, err, mperrors.ErrInvalidConfig)
	assert.ErrorContains(t, err, "app base url is not set")
}

func TestExplicitlyEmptyBaseURL(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, path.Join(tmpDir, "config.yaml"), []byte("app:\n  baseUrl: \"\"\n"))
	ch := NewConfigHandler(WithConfigLocation(tmpDir))
	config, err := ch.Load()
	require.NoError(t, err)
	assert.Nil(t, config.App.BaseURL)
	_, err = ch.Config()
	assert.ErrorContains(t, err, "app base url is not set")
}

func TestHandleChanges(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := path.Join(tmpDir, "config.yaml")
	writeFile(t, configPath, Template())
	ch := NewConfigHandler(WithConfigLocation(tmpDir))
	_, err := ch.Config()
	require.NoError(t, err)
	changes := make(chan Config, 10)
	ch.HandleChanges(func(c Config, err error) {
		if err == nil {
			changes <- c
		}
	})
	ch.Watch()
	updated := strings.Replace(string(Template()), "  name: Code Marketplace\n", "  name: Updated Marketplace\n", 1)
	writeFile(t, configPath, []byte(updated))
	select {
	case c := <-changes:
		assert.Equal(t, "Updated Marketplace", c.App.Name)
	case <-time.After(5 * time.Second):
		t.Fatal("the configuration change was not reported")
	}
}
