package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "credential-service", cfg.AppName)
	assert.Equal(t, DriverPostgres, cfg.StoreDriver)
	assert.Equal(t, 5, cfg.PasswordMinLength)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 32, cfg.TokenBytes)
	assert.Equal(t, 3*time.Second, cfg.StoreTimeout)
	assert.False(t, cfg.MailSendEnabled)
	assert.Empty(t, cfg.ESAddrs())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("STORE_DRIVER", "MEMORY")
	t.Setenv("PASSWORD_MIN_LENGTH", "8")
	t.Setenv("TOKEN_TTL", "15m")
	t.Setenv("MAIL_SEND_ENABLED", "true")
	t.Setenv("ELASTICSEARCH_ADDRS", "http://a:9200, ,http://b:9200")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://app.example.com")

	cfg := Load()

	assert.Equal(t, DriverMemory, cfg.StoreDriver)
	assert.Equal(t, 8, cfg.PasswordMinLength)
	assert.Equal(t, 15*time.Minute, cfg.TokenTTL)
	assert.True(t, cfg.MailSendEnabled)
	assert.Equal(t, []string{"http://a:9200", "http://b:9200"}, cfg.ESAddrs())
	assert.Equal(t, []string{"https://app.example.com"}, cfg.CORSOrigins())
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("PASSWORD_MIN_LENGTH", "five")
	t.Setenv("TOKEN_TTL", "soon")
	t.Setenv("MAIL_SEND_ENABLED", "maybe")

	cfg := Load()

	assert.Equal(t, 5, cfg.PasswordMinLength)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.False(t, cfg.MailSendEnabled)
}

func TestPostgresDSN(t *testing.T) {
	cfg := &Config{DBUser: "u", DBPassword: "p", DBHost: "h", DBPort: "5432", DBName: "d", DBSSLMode: "disable"}
	assert.Equal(t, "postgres://u:p@h:5432/d?sslmode=disable", cfg.PostgresDSN())
}

func TestValidate_StoreDriver(t *testing.T) {
	assert.NoError(t, (&Config{StoreDriver: DriverPostgres}).Validate())
	assert.NoError(t, (&Config{StoreDriver: DriverMemory}).Validate())

	t.Setenv("STORE_DRIVER", "mem")
	err := Load().Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"mem"`)
}
