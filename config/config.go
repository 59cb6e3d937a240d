// Package config - application configuration
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gorm.io/gorm/logger"
)

// Supported store drivers
const (
	StoreDriverSqlite   = "sqlite"
	StoreDriverPostgres = "postgres"
)

// StoreConfig haiku store settings
type StoreConfig struct {
	// Driver store driver; empty disables persistence
	Driver string `mapstructure:"driver"`
	// DSN Sqlite DB file, or Postgres connection URL
	DSN string `mapstructure:"dsn"`
	// AutoMigrate define the tables on first connect
	AutoMigrate bool `mapstructure:"auto_migrate"`
	// SQLLogLevel one of silent, error, warn, info
	SQLLogLevel string `mapstructure:"sql_log_level"`
	// ConnectAttempts max connection attempts
	ConnectAttempts uint `mapstructure:"connect_attempts"`
	// ConnectRetryDelay delay between connection attempts
	ConnectRetryDelay time.Duration `mapstructure:"connect_retry_delay"`
}

// Enabled whether persistence is configured
func (c StoreConfig) Enabled() bool {
	return c.Driver != "" && c.DSN != ""
}

// GORMLogLevel the SQL log level
func (c StoreConfig) GORMLogLevel() logger.LogLevel {
	switch strings.ToLower(c.SQLLogLevel) {
	case "silent":
		return logger.Silent
	case "warn":
		return logger.Warn
	case "info":
		return logger.Info
	default:
		return logger.Error
	}
}

// OpenAIConfig text generation settings
type OpenAIConfig struct {
	APIKey     string        `mapstructure:"api_key"`
	Model      string        `mapstructure:"model"`
	BaseURL    string        `mapstructure:"base_url"`
	MaxRetries int           `mapstructure:"max_retries"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

// ServerConfig browser UI server settings
type ServerConfig struct {
	Listen string `mapstructure:"listen"`
}

// HistoryConfig haiku history display settings
type HistoryConfig struct {
	Limit int `mapstructure:"limit"`
}

// Config application configuration
type Config struct {
	Store   StoreConfig   `mapstructure:"store"`
	OpenAI  OpenAIConfig  `mapstructure:"openai"`
	Server  ServerConfig  `mapstructure:"server"`
	History HistoryConfig `mapstructure:"history"`
}

// Validate check the configuration is usable
func (c Config) Validate() error {
	switch c.Store.Driver {
	case "", StoreDriverSqlite, StoreDriverPostgres:
	default:
		return fmt.Errorf("unsupported store driver '%s'", c.Store.Driver)
	}
	if c.History.Limit <= 0 {
		return fmt.Errorf("history limit must be positive, got %d", c.History.Limit)
	}
	return nil
}

// setDefaults install the default values
func setDefaults(v *viper.Viper) {
	v.SetDefault("store.driver", "")
	v.SetDefault("store.dsn", "")
	v.SetDefault("store.auto_migrate", false)
	v.SetDefault("store.sql_log_level", "error")
	v.SetDefault("store.connect_attempts", 3)
	v.SetDefault("store.connect_retry_delay", time.Second)
	v.SetDefault("openai.api_key", "")
	v.SetDefault("openai.model", "gpt-4.1-mini")
	v.SetDefault("openai.base_url", "")
	v.SetDefault("openai.max_retries", 2)
	v.SetDefault("openai.timeout", 60*time.Second)
	v.SetDefault("server.listen", "127.0.0.1:8501")
	v.SetDefault("history.limit", 10)
}

/*
Load read the application configuration

Sources, lowest priority first: defaults, config file, HAIKU_ prefixed environment variables.
The common OPENAI_API_KEY, SUPABASE_DB_URL and DATABASE_URL variables are also honored.

	@param cfgFile string - config file; empty searches ./haiku.yaml and $HOME/.haiku/haiku.yaml
	@returns the configuration
*/
func Load(cfgFile string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("HAIKU")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("openai.api_key", "HAIKU_OPENAI_API_KEY", "OPENAI_API_KEY"); err != nil {
		return Config{}, fmt.Errorf("failed to bind env [%w]", err)
	}
	if err := v.BindEnv("store.dsn", "HAIKU_STORE_DSN", "SUPABASE_DB_URL", "DATABASE_URL"); err != nil {
		return Config{}, fmt.Errorf("failed to bind env [%w]", err)
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("haiku")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.haiku")
	}

	// Config file is optional
	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return Config{}, fmt.Errorf("error reading config file [%w]", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config [%w]", err)
	}

	// A DSN with no driver is a Postgres URL from the environment
	if cfg.Store.Driver == "" && cfg.Store.DSN != "" &&
		(strings.HasPrefix(cfg.Store.DSN, "postgres://") ||
			strings.HasPrefix(cfg.Store.DSN, "postgresql://")) {
		cfg.Store.Driver = StoreDriverPostgres
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
