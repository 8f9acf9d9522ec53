package config

import "time"

// Config holds the configuration of the admin client, the CLI and the demo backend.
// Use LoadConfig to create a new instance
type Config struct {
	API     APIConfig     `mapstructure:"api"`
	Storage StorageConfig `mapstructure:"storage"`
	Admin   AdminConfig   `mapstructure:"admin"`
	Demo    DemoConfig    `mapstructure:"demo"`
	Log     LogConfig     `mapstructure:"log"`
}

type APIConfig struct {
	BaseURL string `mapstructure:"base_url"`
	// Timeout of zero leaves the platform default in place.
	Timeout          time.Duration `mapstructure:"timeout"`
	RetryMax         int           `mapstructure:"retry_max"`
	MinServerVersion string        `mapstructure:"min_server_version"`
}

type StorageConfig struct {
	// Type is one of memory, file or redis.
	Type     string      `mapstructure:"type"`
	FilePath string      `mapstructure:"file_path"`
	Redis    RedisConfig `mapstructure:"redis"`
}

type RedisConfig struct {
	Addr      string `mapstructure:"addr"`
	Password  string `mapstructure:"password"`
	DB        int    `mapstructure:"db"`
	KeyPrefix string `mapstructure:"key_prefix"`
}

type AdminConfig struct {
	PageSize        int `mapstructure:"page_size"`
	SuggestionLimit int `mapstructure:"suggestion_limit"`
}

type DemoConfig struct {
	Port          int    `mapstructure:"port"`
	AuthSecret    string `mapstructure:"auth_secret"`
	Seed          int64  `mapstructure:"seed"`
	UserCount     int    `mapstructure:"user_count"`
	AdminEmail    string `mapstructure:"admin_email"`
	AdminPassword string `mapstructure:"admin_password"`
	FixturePath   string `mapstructure:"fixture_path"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}
