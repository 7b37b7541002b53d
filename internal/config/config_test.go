package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Port:             "8380",
		Env:              "development",
		SessionSecret:    "dev-session-secret-change-in-production",
		DBDriver:         "sqlite",
		DBPath:           ":memory:",
		TMDBAPIKey:       "test-key",
		CatalogTimeoutMS: 5000,
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		expectError bool
	}{
		{"valid development config", func(c *Config) {}, false},
		{"missing port", func(c *Config) { c.Port = "" }, true},
		{"missing session secret", func(c *Config) { c.SessionSecret = "" }, true},
		{"unknown db driver", func(c *Config) { c.DBDriver = "oracle" }, true},
		{"non-positive catalog timeout", func(c *Config) { c.CatalogTimeoutMS = 0 }, true},
		{"production with default session secret", func(c *Config) {
			c.Env = "production"
		}, true},
		{"production with short session secret", func(c *Config) {
			c.Env = "production"
			c.SessionSecret = "short"
		}, true},
		{"production without tmdb api key", func(c *Config) {
			c.Env = "production"
			c.SessionSecret = "a-sufficiently-long-production-secret-value"
			c.TMDBAPIKey = ""
		}, true},
		{"production with weak postgres password", func(c *Config) {
			c.Env = "production"
			c.SessionSecret = "a-sufficiently-long-production-secret-value"
			c.DBDriver = "postgres"
			c.DBPassword = "password"
		}, true},
		{"valid production config", func(c *Config) {
			c.Env = "production"
			c.SessionSecret = "a-sufficiently-long-production-secret-value"
		}, false},
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

func TestLoadConfig_Defaults(t *testing.T) {
	defer viper.Reset()

	c, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", c.DBDriver)
	assert.Equal(t, "https://api.themoviedb.org/3", c.TMDBBaseURL)
	assert.Equal(t, "https://image.tmdb.org/t/p/w500", c.TMDBImageBaseURL)
	assert.Equal(t, 5000, c.CatalogTimeoutMS)
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	defer viper.Reset()

	t.Setenv("TMDB_API_KEY", "from-env")
	t.Setenv("PORT", "9999")

	c, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "from-env", c.TMDBAPIKey)
	assert.Equal(t, "9999", c.Port)
}
