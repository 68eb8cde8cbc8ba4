/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package config

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"slices"
	"strconv"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"

	"github.com/suparena/smartcare/errors"
	"github.com/suparena/smartcare/language"
)

// Environments.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
	EnvTesting     = "testing"
)

// Store backends.
const (
	BackendDynamoDB = "dynamodb"
	BackendMemory   = "memory"
	BackendNone     = "none"
)

// Config is the full service configuration.
type Config struct {
	App       AppConfig      `yaml:"app"`
	HTTP      HTTPConfig     `yaml:"http"`
	Languages LanguageConfig `yaml:"languages"`
	Cache     CacheConfig    `yaml:"cache"`
	Store     StoreConfig    `yaml:"store"`
	Log       LogConfig      `yaml:"log"`
}

type AppConfig struct {
	Name string `yaml:"name" env:"SMARTCARE_APP_NAME" env-default:"smart_care"`
	// Version overrides the build version reported by the health endpoint.
	Version string `yaml:"version" env:"APP_VERSION"`
	Env  string `yaml:"env" env:"SMARTCARE_ENV,FLASK_ENV" env-default:"development"`
	// Debug is "true", "false" or empty to derive it from Env.
	Debug string `yaml:"debug" env:"SMARTCARE_DEBUG"`
}

type HTTPConfig struct {
	// Host defaults to 127.0.0.1 in development and 0.0.0.0 elsewhere.
	Host            string        `yaml:"host" env:"SMARTCARE_HTTP_HOST"`
	Port            int           `yaml:"port" env:"SMARTCARE_HTTP_PORT,PORT" env-default:"5001"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"SMARTCARE_HTTP_READ_TIMEOUT" env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"SMARTCARE_HTTP_WRITE_TIMEOUT" env-default:"15s"`
	RequestTimeout  time.Duration `yaml:"request_timeout" env:"SMARTCARE_HTTP_REQUEST_TIMEOUT" env-default:"30s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SMARTCARE_HTTP_SHUTDOWN_TIMEOUT" env-default:"10s"`
	LanguageCookie  string        `yaml:"language_cookie" env:"SMARTCARE_LANGUAGE_COOKIE" env-default:"smartcare_lang"`
}

type LanguageConfig struct {
	Supported []string `yaml:"supported" env:"SMARTCARE_LANGUAGES" env-separator:"," env-default:"ru,en"`
	Default   string   `yaml:"default" env:"SMARTCARE_DEFAULT_LANGUAGE" env-default:"ru"`
}

type CacheConfig struct {
	// TTL <= 0 disables caching.
	TTL time.Duration `yaml:"ttl" env:"SMARTCARE_CACHE_TTL" env-default:"1h"`
}

type StoreConfig struct {
	Backend   string        `yaml:"backend" env:"SMARTCARE_STORE" env-default:"dynamodb"`
	Table     string        `yaml:"table" env:"SMARTCARE_DDB_TABLE"`
	Region    string        `yaml:"region" env:"AWS_REGION" env-default:"us-east-1"`
	Endpoint  string        `yaml:"endpoint" env:"SMARTCARE_DDB_ENDPOINT"`
	AccessKey string        `yaml:"access_key" env:"AWS_ACCESS_KEY_ID"`
	SecretKey string        `yaml:"secret_key" env:"AWS_SECRET_ACCESS_KEY"`
	Timeout   time.Duration `yaml:"timeout" env:"SMARTCARE_STORE_TIMEOUT" env-default:"3s"`
	PageSize  int32         `yaml:"page_size" env:"SMARTCARE_DDB_PAGE_SIZE" env-default:"100"`
}

type LogConfig struct {
	// Level defaults to debug when Debug is on, info otherwise.
	Level string `yaml:"level" env:"SMARTCARE_LOG_LEVEL"`
	// Format is "json" or "console"; defaults to console in development.
	Format string `yaml:"format" env:"SMARTCARE_LOG_FORMAT"`
}

// Load reads configuration. Variables from envFiles (".env" when none are
// given) are exported first unless already set; missing files are ignored.
// When path is set the YAML file is read and environment variables override
// it.
func Load(path string, envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !stderrors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load env file: %w", err)
	}

	var cfg Config
	var err error
	if path != "" {
		err = cleanenv.ReadConfig(path, &cfg)
	} else {
		err = cleanenv.ReadEnv(&cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration: %w", err)
	}

	cfg.applyProfile()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyProfile fills settings whose defaults depend on the environment.
func (c *Config) applyProfile() {
	if c.HTTP.Host == "" {
		c.HTTP.Host = "0.0.0.0"
		if c.App.Env == EnvDevelopment {
			c.HTTP.Host = "127.0.0.1"
		}
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
		if c.Debug() {
			c.Log.Level = "debug"
		}
	}
	if c.Log.Format == "" {
		c.Log.Format = "json"
		if c.App.Env == EnvDevelopment {
			c.Log.Format = "console"
		}
	}
}

// Debug reports whether debug routes and verbose logging are enabled.
func (c *Config) Debug() bool {
	if c.App.Debug != "" {
		debug, err := strconv.ParseBool(c.App.Debug)
		return err == nil && debug
	}
	return c.App.Env != EnvProduction
}

// Addr is the HTTP listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.HTTP.Host, c.HTTP.Port)
}

// LanguageSet builds the configured language set.
func (c *Config) LanguageSet() (language.Set, error) {
	return language.NewSet(c.Languages.Default, c.Languages.Supported...)
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	if !slices.Contains([]string{EnvDevelopment, EnvProduction, EnvTesting}, c.App.Env) {
		return errors.NewValidationError("app.env", fmt.Sprintf("unknown environment %q", c.App.Env))
	}
	if c.App.Debug != "" {
		if _, err := strconv.ParseBool(c.App.Debug); err != nil {
			return errors.NewValidationError("app.debug", fmt.Sprintf("invalid boolean %q", c.App.Debug))
		}
	}
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return errors.NewValidationError("http.port", fmt.Sprintf("port %d out of range", c.HTTP.Port))
	}
	if c.HTTP.RequestTimeout <= 0 || c.HTTP.ShutdownTimeout <= 0 {
		return errors.NewValidationError("http", "request and shutdown timeouts must be positive")
	}
	if _, err := c.LanguageSet(); err != nil {
		return errors.NewValidationError("languages", err.Error())
	}
	if !slices.Contains([]string{BackendDynamoDB, BackendMemory, BackendNone}, c.Store.Backend) {
		return errors.NewValidationError("store.backend", fmt.Sprintf("unknown backend %q", c.Store.Backend))
	}
	if c.Store.Timeout <= 0 {
		return errors.NewValidationError("store.timeout", "must be positive")
	}
	if c.Store.PageSize <= 0 {
		return errors.NewValidationError("store.page_size", "must be positive")
	}
	if !slices.Contains([]string{"json", "console"}, c.Log.Format) {
		return errors.NewValidationError("log.format", fmt.Sprintf("unknown format %q", c.Log.Format))
	}
	return nil
}
