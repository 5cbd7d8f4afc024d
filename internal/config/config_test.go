package config

import (
	"os"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Port:            "8080",
		Env:             "development",
		DBDriver:        "postgres",
		DBPassword:      "secure-password",
		DBSSLMode:       "require",
		JWTSecret:       "secure-secret-at-least-32-chars-long",
		SessionTTLHours: 24,
		BcryptCost:      10,
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(c *Config)
		expectError bool
	}{
		{"Valid development", func(c *Config) {}, false},
		{"Missing port", func(c *Config) { c.Port = "" }, true},
		{"Missing JWT secret", func(c *Config) { c.JWTSecret = "" }, true},
		{"Unknown driver", func(c *Config) { c.DBDriver = "mysql" }, true},
		{"SQLite driver", func(c *Config) { c.DBDriver = "sqlite" }, false},
		{"Bcrypt cost too low", func(c *Config) { c.BcryptCost = 3 }, true},
		{"Bcrypt cost too high", func(c *Config) { c.BcryptCost = 32 }, true},
		{"Zero session TTL", func(c *Config) { c.SessionTTLHours = 0 }, true},
		{"Production valid", func(c *Config) { c.Env = "production" }, false},
		{"Production default secret", func(c *Config) {
			c.Env = "production"
			c.JWTSecret = defaultJWTSecret
		}, true},
		{"Production short secret", func(c *Config) {
			c.Env = "prod"
			c.JWTSecret = "short"
		}, true},
		{"Production sqlite", func(c *Config) {
			c.Env = "production"
			c.DBDriver = "sqlite"
		}, true},
		{"Production weak DB password", func(c *Config) {
			c.Env = "production"
			c.DBPassword = "password"
		}, true},
		{"Production SSL disabled", func(c *Config) {
			c.Env = "production"
			c.DBSSLMode = "disable"
		}, true},
		{"Production cheap bcrypt", func(c *Config) {
			c.Env = "production"
			c.BcryptCost = 4
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(c)

			err := c.Validate()
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadConfig_DefaultsAndNormalization(t *testing.T) {
	defer os.Unsetenv("APP_ENV")
	defer os.Unsetenv("DB_SSLMODE")
	defer os.Unsetenv("DB_DRIVER")
	defer viper.Reset()

	os.Setenv("APP_ENV", "test")
	os.Setenv("DB_SSLMODE", "  DISABLE  ")
	os.Setenv("DB_DRIVER", " SQLite ")

	c, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "disable", c.DBSSLMode)
	assert.Equal(t, "sqlite", c.DBDriver)
	assert.Equal(t, "8375", c.Port)
	assert.Equal(t, 10, c.BcryptCost)
	assert.Equal(t, 24*7, c.SessionTTLHours)
	assert.True(t, c.SeedCities)
	assert.False(t, c.IsProduction())
}

func TestLoadConfig_MissingProfileFile(t *testing.T) {
	defer os.Unsetenv("APP_ENV")
	defer viper.Reset()

	os.Setenv("APP_ENV", "staging-without-file")

	_, err := LoadConfig()
	assert.Error(t, err)
}
