package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	// Scanner configuration
	Scanner ScannerConfig `mapstructure:"scanner"`

	// Output configuration
	Output OutputConfig `mapstructure:"output"`

	// Logging configuration
	Logging LoggingConfig `mapstructure:"logging"`
}

// ScannerConfig holds scan-specific configuration
type ScannerConfig struct {
	Timeout     time.Duration `mapstructure:"timeout"`
	UserAgent   string        `mapstructure:"user_agent"`
	MaxBodySize int64         `mapstructure:"max_body_size"`
	AuthUser    string        `mapstructure:"auth_user"`
	AuthPass    string        `mapstructure:"auth_pass"`
}

// OutputConfig holds report output configuration
type OutputConfig struct {
	Dir   string `mapstructure:"dir"`
	Color bool   `mapstructure:"color"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

// Load loads configuration from file and environment. Each call returns a
// fresh Config owned by the caller; there is no package-level instance.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("$HOME/.linkscan")
	}

	setDefaults(v)

	v.SetEnvPrefix("LINKSCAN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Credentials are env-only so they never end up in a config file
	v.BindEnv("scanner.auth_user", "LINKSCAN_AUTH_USER")
	v.BindEnv("scanner.auth_pass", "LINKSCAN_AUTH_PASS")

	// Read config file if it exists
	if err := v.ReadInConfig(); err != nil {
		// Config file not found is not an error, we'll use defaults and env
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Scanner defaults
	v.SetDefault("scanner.timeout", "15s")
	v.SetDefault("scanner.user_agent", "LinkScan/1.0")
	v.SetDefault("scanner.max_body_size", 4<<20)

	// Output defaults
	v.SetDefault("output.dir", ".")
	v.SetDefault("output.color", true)

	// Logging defaults
	v.SetDefault("logging.level", "info")
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Scanner.Timeout <= 0 {
		return fmt.Errorf("scanner.timeout must be positive")
	}
	if c.Scanner.MaxBodySize <= 0 {
		return fmt.Errorf("scanner.max_body_size must be positive")
	}
	if c.Scanner.UserAgent == "" {
		return fmt.Errorf("scanner.user_agent must not be empty")
	}
	if c.Output.Dir == "" {
		return fmt.Errorf("output.dir must not be empty")
	}
	return nil
}
