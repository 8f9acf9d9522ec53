package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/genielabs/genie-admin/internal"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// We're bootstrapping so avoid any imports from other packages
var log = logrus.New()

const (
	StorageTypeMemory = "memory"
	StorageTypeFile   = "file"
	StorageTypeRedis  = "redis"
)

// Defaults returns the configuration used for any value not set in the config file or ENV.
func Defaults() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:          "http://localhost:8000",
			MinServerVersion: "0.1.0",
		},
		Storage: StorageConfig{
			Type:     StorageTypeFile,
			FilePath: defaultSessionPath(),
			Redis: RedisConfig{
				Addr:      "localhost:6379",
				KeyPrefix: "genie:admin:",
			},
		},
		Admin: AdminConfig{
			PageSize:        20,
			SuggestionLimit: 10,
		},
		Demo: DemoConfig{
			Port:          8000,
			AuthSecret:    "genie-demo-secret",
			Seed:          42,
			UserCount:     120,
			AdminEmail:    "genie@example.com",
			AdminPassword: "genie-demo",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// LoadConfig loads the config file and ENV variables into a Config struct.
// A missing config file is not an error unless one was explicitly requested.
func LoadConfig(configFile string) (*Config, error) {
	v := viper.New()
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("config")
	}

	v.SetConfigType("yaml")

	setDefaults(v, Defaults())

	v.SetEnvPrefix("GENIE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Environment variables take precedence over config file
	loadDotEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// setDefaults registers every key with viper. Keys viper knows about are also the
// ones AutomaticEnv resolves during Unmarshal, and explicit zeros in the file win.
func setDefaults(v *viper.Viper, d *Config) {
	for key, value := range map[string]any{
		"api.base_url":             d.API.BaseURL,
		"api.timeout":              d.API.Timeout,
		"api.retry_max":            d.API.RetryMax,
		"api.min_server_version":   d.API.MinServerVersion,
		"storage.type":             d.Storage.Type,
		"storage.file_path":        d.Storage.FilePath,
		"storage.redis.addr":       d.Storage.Redis.Addr,
		"storage.redis.password":   d.Storage.Redis.Password,
		"storage.redis.db":         d.Storage.Redis.DB,
		"storage.redis.key_prefix": d.Storage.Redis.KeyPrefix,
		"admin.page_size":          d.Admin.PageSize,
		"admin.suggestion_limit":   d.Admin.SuggestionLimit,
		"demo.port":                d.Demo.Port,
		"demo.auth_secret":         d.Demo.AuthSecret,
		"demo.seed":                d.Demo.Seed,
		"demo.user_count":          d.Demo.UserCount,
		"demo.admin_email":         d.Demo.AdminEmail,
		"demo.admin_password":      d.Demo.AdminPassword,
		"demo.fixture_path":        d.Demo.FixturePath,
		"log.level":                d.Log.Level,
	} {
		v.SetDefault(key, value)
	}
}

// loadDotEnv loads environment variables from .env file
func loadDotEnv() {
	err := godotenv.Load()
	if err != nil {
		log.Debug(".env file not found or unable to load")
	}
}

// SetLogLevel sets the log level based on the config file. Defaults to INFO if not set or invalid
func SetLogLevel(cfg *Config) {
	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	internal.SetLogLevel(level)
	internal.GetLogger().Debug("Log level set to: ", level)
}

// RequestTimeout returns the configured API timeout. Zero means no client-side override.
func (c *Config) RequestTimeout() time.Duration {
	return c.API.Timeout
}

func defaultSessionPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".genie-admin-session.json"
	}
	return filepath.Join(home, ".genie-admin", "session.json")
}
