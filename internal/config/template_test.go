package config

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

var secretKeys = []string{
	"jwt.secret",
	"stripe.secretKey",
	"stripe.webhookSecret",
	"database.password",
	"redis.password",
	"email.apiKey",
	"app.sessionSecret",
}

func parseTemplate(t *testing.T, document []byte) map[string]any {
	var output map[string]any
	err := yaml.Unmarshal(document, &output)
	require.NoError(t, err)
	return output
}

func lookup(t *testing.T, settings map[string]any, key string) any {
	var current any = settings
	for _, part := range strings.Split(key, ".") {
		section, ok := current.(map[string]any)
		require.True(t, ok, "%s is not a mapping", key)
		current, ok = section[part]
		require.True(t, ok, "%s is missing", key)
	}
	return current
}

func TestTemplateSecretsArePlaceholders(t *testing.T) {
	settings := parseTemplate(t, Template())

	for _, key := range secretKeys {
		value, ok := lookup(t, settings, key).(string)
		require.True(t, ok, "%s is not a string", key)
		assert.True(t, strings.HasPrefix(value, "PLACEHOLDER_"), "%s holds %q", key, value)
	}
}

func TestTemplateSections(t *testing.T) {
	settings := parseTemplate(t, Template())

	sections := []string{}
	for section := range settings {
		sections = append(sections, section)
	}

	assert.ElementsMatch(t, Sections, sections)
}

func TestTemplateEnumerations(t *testing.T) {
	settings := parseTemplate(t, Template())

	assert.Contains(t, []string{"local", "s3", "gcs"}, lookup(t, settings, "storage.type"))
	assert.Contains(t, []string{"sendgrid", "smtp", "ses"}, lookup(t, settings, "email.provider"))
}

func TestTemplateNumbersArePositive(t *testing.T) {
	settings := parseTemplate(t, Template())

	for _, key := range []string{
		"security.bcryptRounds",
		"security.passwordMinLength",
		"database.port",
		"app.port",
		"redis.port",
		"email.smtp.port",
	} {
		value, ok := lookup(t, settings, key).(int)
		require.True(t, ok, "%s is not an integer", key)
		assert.Greater(t, value, 0, key)
	}
}

func TestTemplateIsACopy(t *testing.T) {
	first := Template()
	first[0] = 'X'

	assert.NotEqual(t, first[0], Template()[0])
}

func TestFillSecrets(t *testing.T) {
	random := bytes.NewReader(bytes.Repeat([]byte{0x01}, 64))

	document, err := FillSecrets(Template(), random)

	require.NoError(t, err)
	settings := parseTemplate(t, document)
	assert.Equal(t, "AQEBAQEBAQEBAQEBAQEBAQEBAQEBAQEBAQEBAQEBAQE=", lookup(t, settings, "jwt.secret"))
	assert.Equal(t, "AQEBAQEBAQEBAQEBAQEBAQEBAQEBAQEBAQEBAQEBAQE=", lookup(t, settings, "app.sessionSecret"))
	assert.Equal(t, "PLACEHOLDER_DB_PASSWORD", lookup(t, settings, "database.password"))
	assert.Contains(t, string(document), "# openssl rand -base64 32")
}

func TestFillSecretsKeepsRealValues(t *testing.T) {
	document := []byte("jwt:\n  secret: already-set\napp:\n  sessionSecret: PLACEHOLDER_SESSION_SECRET\n")
	random := bytes.NewReader(bytes.Repeat([]byte{0x01}, 32))

	output, err := FillSecrets(document, random)

	require.NoError(t, err)
	settings := parseTemplate(t, output)
	assert.Equal(t, "already-set", lookup(t, settings, "jwt.secret"))
	assert.NotEqual(t, "PLACEHOLDER_SESSION_SECRET", lookup(t, settings, "app.sessionSecret"))
}

func TestFillSecretsMissingKey(t *testing.T) {
	document := []byte("jwt:\n  secret: PLACEHOLDER_JWT_SECRET\n")

	_, err := FillSecrets(document, bytes.NewReader(make([]byte, 64)))

	assert.ErrorContains(t, err, "cannot find app.sessionSecret in the configuration document")
}
