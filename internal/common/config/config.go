// internal/common/config/config.go
package config

import "time"

// Config is the main application configuration struct.
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Server    ServerConfig    `mapstructure:"server"`
	Assistant AssistantConfig `mapstructure:"assistant"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Identity  IdentityConfig  `mapstructure:"identity"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

// ServerConfig holds the local HTTP surface settings.
type ServerConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	RateLimit       int    `mapstructure:"rate_limit"`        // requests per window, per IP
	RateLimitWindow int    `mapstructure:"rate_limit_window"` // seconds
}

// AssistantConfig holds settings for the remote assistant endpoint.
type AssistantConfig struct {
	BaseURL string `mapstructure:"base_url"`
	Timeout int    `mapstructure:"timeout"` // milliseconds
	Mock    bool   `mapstructure:"mock"`    // serve turns from the built-in catalog
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// IdentityConfig selects the backing store for the durable user id.
type IdentityConfig struct {
	Backend  string `mapstructure:"backend"` // redis, file or memory
	Key      string `mapstructure:"key"`
	FilePath string `mapstructure:"file_path"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// GetDuration converts milliseconds from config to time.Duration.
func GetDuration(milliseconds int) time.Duration {
	return time.Duration(milliseconds) * time.Millisecond
}
