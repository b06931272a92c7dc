package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// defaults holds the value of every key that the template does not have to provide. The
// secrets default to empty strings so that every key can be set from the environment.
var defaults = map[string]any{
	"database.host":                                "",
	"database.name":                                "",
	"database.user":                                "",
	"database.password":                            "",
	"database.port":                                5432,
	"database.pool.min":                            2,
	"database.pool.max":                            10,
	"database.pool.acquireTimeoutMillis":           30000,
	"database.pool.idleTimeoutMillis":              30000,
	"jwt.secret":                                   "",
	"jwt.expiresIn":                                "24h",
	"jwt.issuer":                                   "code-marketplace",
	"jwt.audience":                                 "marketplace-users",
	"stripe.publicKey":                             "",
	"stripe.secretKey":                             "",
	"stripe.webhookSecret":                         "",
	"stripe.marketplaceFeePercent":                 1.0,
	"stripe.currency":                              "usd",
	"app.name":                                     "Code Marketplace",
	"app.port":                                     3000,
	"app.environment":                              string(Development),
	"app.maxUploadSize":                            "50mb",
	"app.sessionSecret":                            "",
	"email.provider":                               string(EmailSendgrid),
	"email.apiKey":                                 "",
	"email.fromAddress":                            "noreply@yourmarketplace.com",
	"email.fromName":                               "Code Marketplace",
	"email.templates.welcome":                      "",
	"email.templates.purchase":                     "",
	"email.templates.sale":                         "",
	"email.smtp.host":                              "",
	"email.smtp.port":                              587,
	"email.smtp.username":                          "",
	"email.smtp.password":                          "",
	"storage.type":                                 string(StorageLocal),
	"storage.local.uploadsPath":                    "./uploads",
	"storage.local.maxFileSize":                    50 * 1024 * 1024,
	"storage.local.allowedExtensions":              []string{".zip", ".tar.gz", ".js", ".php", ".html", ".css", ".json"},
	"storage.s3.bucket":                            "",
	"storage.s3.region":                            "",
	"storage.s3.accessKeyId":                       "",
	"storage.s3.secretAccessKey":                   "",
	"storage.gcs.bucket":                           "",
	"storage.gcs.projectId":                        "",
	"storage.gcs.credentialsFile":                  "",
	"security.rateLimiting.windowMs":               15 * 60 * 1000,
	"security.rateLimiting.skipSuccessfulRequests": false,
	"security.bcryptRounds":                        12,
	"security.requireEmailVerification":            true,
	"security.passwordMinLength":                   8,
	"security.sessionTimeout":                      24 * 60 * 60 * 1000,
	"logging.file.enabled":                         true,
	"logging.file.filename":                        "marketplace.log",
	"logging.file.maxFiles":                        5,
	"logging.file.maxSize":                         "10m",
	"redis.host":                                   "",
	"redis.port":                                   6379,
	"redis.password":                               "",
	"redis.db":                                     0,
	"redis.keyPrefix":                              "marketplace:",
}

// environmentDefaults returns the defaults that differ between development and production.
func environmentDefaults(e RunningEnvironment, port int) map[string]any {
	if e == Production {
		return map[string]any{
			"database.ssl":                        string(SSLRequire),
			"app.baseUrl":                         "",
			"app.corsOrigin":                      []string{},
			"security.rateLimiting.maxRequests":   100,
			"logging.level":                       "warn",
			"logging.console.enabled":             false,
			"development.enableSwagger":           false,
			"development.mockPayments":            false,
			"development.seedDatabase":            false,
			"development.bypassEmailVerification": false,
		}
	}
	return map[string]any{
		"database.ssl":                        string(SSLDisable),
		"app.baseUrl":                         fmt.Sprintf("http://localhost:%d", port),
		"app.corsOrigin":                      []string{"*"},
		"security.rateLimiting.maxRequests":   1000,
		"logging.level":                       "debug",
		"logging.console.enabled":             true,
		"development.enableSwagger":           true,
		"development.mockPayments":            false,
		"development.seedDatabase":            true,
		"development.bypassEmailVerification": false,
	}
}

func setDefaults(v *viper.Viper, values map[string]any) {
	for key, value := range values {
		v.SetDefault(key, value)
	}
}
