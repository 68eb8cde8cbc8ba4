/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suparena/smartcare/errors"
)

// isolate clears variables that would leak in from the host environment.
func isolate(t *testing.T) {
	for _, name := range []string{
		"SMARTCARE_ENV", "FLASK_ENV", "APP_VERSION", "SMARTCARE_DEBUG", "SMARTCARE_HTTP_HOST", "SMARTCARE_HTTP_PORT", "PORT",
		"SMARTCARE_LANGUAGES", "SMARTCARE_DEFAULT_LANGUAGE", "SMARTCARE_CACHE_TTL", "SMARTCARE_STORE",
		"SMARTCARE_DDB_TABLE", "AWS_REGION", "SMARTCARE_DDB_ENDPOINT", "SMARTCARE_STORE_TIMEOUT",
		"SMARTCARE_LOG_LEVEL", "SMARTCARE_LOG_FORMAT", "SMARTCARE_DDB_PAGE_SIZE",
	} {
		t.Setenv(name, "")
		os.Unsetenv(name)
	}
}

func noEnvFile(t *testing.T) string {
	return filepath.Join(t.TempDir(), "missing.env")
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("", noEnvFile(t))
	require.NoError(t, err)

	assert.Equal(t, EnvDevelopment, cfg.App.Env)
	assert.True(t, cfg.Debug())
	assert.Equal(t, "127.0.0.1:5001", cfg.Addr())
	assert.Equal(t, []string{"ru", "en"}, cfg.Languages.Supported)
	assert.Equal(t, "ru", cfg.Languages.Default)
	assert.Equal(t, time.Hour, cfg.Cache.TTL)
	assert.Equal(t, BackendDynamoDB, cfg.Store.Backend)
	assert.Equal(t, 3*time.Second, cfg.Store.Timeout)
	assert.Equal(t, int32(100), cfg.Store.PageSize)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)

	set, err := cfg.LanguageSet()
	require.NoError(t, err)
	assert.Equal(t, "ru", set.Default())
}

func TestLoadProduction(t *testing.T) {
	isolate(t)
	t.Setenv("SMARTCARE_ENV", "production")
	t.Setenv("PORT", "10000")

	cfg, err := Load("", noEnvFile(t))
	require.NoError(t, err)

	assert.False(t, cfg.Debug())
	assert.Equal(t, "0.0.0.0:10000", cfg.Addr())
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestDebugOverride(t *testing.T) {
	isolate(t)
	t.Setenv("SMARTCARE_ENV", "production")
	t.Setenv("SMARTCARE_DEBUG", "true")

	cfg, err := Load("", noEnvFile(t))
	require.NoError(t, err)
	assert.True(t, cfg.Debug())
}

func TestLoadEnvFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("SMARTCARE_DDB_TABLE=smartcare-dev\nSMARTCARE_CACHE_TTL=5m\n"), 0o600))
	t.Cleanup(func() {
		os.Unsetenv("SMARTCARE_DDB_TABLE")
		os.Unsetenv("SMARTCARE_CACHE_TTL")
	})

	cfg, err := Load("", path)
	require.NoError(t, err)
	assert.Equal(t, "smartcare-dev", cfg.Store.Table)
	assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)
}

func TestLoadYAMLFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "smartcare.yaml")
	yml := `
app:
  env: testing
store:
  backend: memory
  timeout: 500ms
languages:
  supported: [en, ru]
  default: en
`
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o600))
	t.Setenv("SMARTCARE_STORE", "none")

	cfg, err := Load(path, noEnvFile(t))
	require.NoError(t, err)

	assert.Equal(t, EnvTesting, cfg.App.Env)
	assert.True(t, cfg.Debug())
	assert.Equal(t, BackendNone, cfg.Store.Backend, "environment overrides file")
	assert.Equal(t, 500*time.Millisecond, cfg.Store.Timeout)
	assert.Equal(t, "en", cfg.Languages.Default)
	assert.Equal(t, "0.0.0.0", cfg.HTTP.Host)
}

func TestValidate(t *testing.T) {
	isolate(t)
	base, err := Load("", noEnvFile(t))
	require.NoError(t, err)

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown env", func(c *Config) { c.App.Env = "staging" }},
		{"bad debug", func(c *Config) { c.App.Debug = "maybe" }},
		{"bad port", func(c *Config) { c.HTTP.Port = 70000 }},
		{"bad default language", func(c *Config) { c.Languages.Default = "de" }},
		{"unknown backend", func(c *Config) { c.Store.Backend = "firestore" }},
		{"zero store timeout", func(c *Config) { c.Store.Timeout = 0 }},
		{"bad log format", func(c *Config) { c.Log.Format = "xml" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := *base
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, errors.IsValidationError(err))
		})
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	isolate(t)
	t.Setenv("SMARTCARE_STORE", "firestore")

	_, err := Load("", noEnvFile(t))
	assert.Error(t, err)
}
