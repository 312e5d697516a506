// Package config loads service configuration from an optional config.yml,
// a .env file, and environment variables (RECIPEBOOK_ prefix), in
// increasing order of precedence.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/skillsenselab/recipebook/internal/auth/token"
	"github.com/skillsenselab/recipebook/internal/database"
	"github.com/skillsenselab/recipebook/internal/logger"
	"github.com/skillsenselab/recipebook/internal/server"
)

// Config is the full service configuration.
type Config struct {
	Base     BaseConfig      `yaml:"base" mapstructure:"base"`
	Server   server.Config   `yaml:"server" mapstructure:"server"`
	Database database.Config `yaml:"database" mapstructure:"database"`
	JWT      token.Config    `yaml:"jwt" mapstructure:"jwt"`
	Logging  logger.Config   `yaml:"logging" mapstructure:"logging"`
}

// BaseConfig contains essential fields every service needs.
type BaseConfig struct {
	Name        string `yaml:"name" mapstructure:"name"`
	Environment string `yaml:"environment" mapstructure:"environment"`
}

// ApplyDefaults applies default values to base configuration.
func (c *BaseConfig) ApplyDefaults() {
	if c.Name == "" {
		c.Name = "recipebook"
	}
	if c.Environment == "" {
		c.Environment = "development"
	}
}

// Validate validates base configuration.
func (c *BaseConfig) Validate() error {
	validEnvs := []string{"development", "staging", "production", "test"}
	for _, v := range validEnvs {
		if c.Environment == v {
			return nil
		}
	}
	return fmt.Errorf("base.environment must be one of %v (got: %s)", validEnvs, c.Environment)
}

// IsProduction reports whether the service runs in production.
func (c *BaseConfig) IsProduction() bool {
	return c.Environment == "production"
}

// Load reads configuration. configFile may be empty, in which case
// config.yml is looked up in the working directory and ./config.
func Load(configFile string) (*Config, error) {
	// .env is a development convenience; a missing file is not an error.
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("config: load .env: %w", err)
		}
	}

	v := viper.New()
	v.SetEnvPrefix("RECIPEBOOK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Secrets and deploy-specific values usually arrive via the environment.
	_ = v.BindEnv("jwt.secret", "RECIPEBOOK_JWT_SECRET", "JWT_SECRET_KEY")
	_ = v.BindEnv("database.dsn", "RECIPEBOOK_DATABASE_DSN", "DATABASE_URL")
	_ = v.BindEnv("server.port", "RECIPEBOOK_SERVER_PORT", "PORT")

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", configFile, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("config: read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ApplyDefaults applies defaults to every section. Production implies
// secure cookies.
func (c *Config) ApplyDefaults() {
	c.Base.ApplyDefaults()
	c.Server.ApplyDefaults()
	c.Database.ApplyDefaults()
	c.JWT.ApplyDefaults()
	c.Logging.ApplyDefaults()

	if c.Base.IsProduction() {
		c.Server.SecureCookies = true
	}
}

// Validate validates every section.
func (c *Config) Validate() error {
	if err := c.Base.Validate(); err != nil {
		return err
	}
	if err := c.Server.Validate(); err != nil {
		return err
	}
	if err := c.Database.Validate(); err != nil {
		return err
	}
	if err := c.JWT.Validate(); err != nil {
		return err
	}
	return c.Logging.Validate()
}

// setDefaults registers every key with viper so environment-only values are
// visible to Unmarshal.
func setDefaults(v *viper.Viper) {
	v.SetDefault("base.name", "recipebook")
	v.SetDefault("base.environment", "development")

	v.SetDefault("server.host", "")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 15)
	v.SetDefault("server.write_timeout", 15)
	v.SetDefault("server.idle_timeout", 60)
	v.SetDefault("server.request_timeout", 10)
	v.SetDefault("server.secure_cookies", false)

	v.SetDefault("database.dsn", "")
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "1h")
	v.SetDefault("database.max_retries", 5)
	v.SetDefault("database.auto_migrate", true)
	v.SetDefault("database.slow_query_threshold", "200ms")
	v.SetDefault("database.log_level", "warn")

	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.method", "HS256")
	v.SetDefault("jwt.ttl", "1h")
	v.SetDefault("jwt.issuer", "recipebook")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.output", "stdout")
}
