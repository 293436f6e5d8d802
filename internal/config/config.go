package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

const (
	SourceSupabase = "supabase"
	SourcePostgres = "postgres"
)

// Config holds all configuration for the application
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Log        LogConfig        `mapstructure:"log"`
	Source     SourceConfig     `mapstructure:"source"`
	Supabase   SupabaseConfig   `mapstructure:"supabase"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Navigation NavigationConfig `mapstructure:"navigation"`
	Rebuild    RebuildConfig    `mapstructure:"rebuild"`
	Admin      AdminConfig      `mapstructure:"admin"`
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           int      `mapstructure:"port"`
	Host           string   `mapstructure:"host"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	JSON  bool   `mapstructure:"json"`
}

// SourceConfig selects where catalog snapshots are read from
type SourceConfig struct {
	Driver string `mapstructure:"driver"` // supabase or postgres
}

// SupabaseConfig holds the hosted Postgres REST API configuration
type SupabaseConfig struct {
	URL                  string   `mapstructure:"url"`
	APIKey               string   `mapstructure:"api_key"`
	ReadReplicas         []string `mapstructure:"read_replicas"`
	Timeout              int      `mapstructure:"timeout"`
	MaxRetries           int      `mapstructure:"max_retries"`
	MaxRequestsPerSecond int      `mapstructure:"max_requests_per_second"`
	PageSize             int      `mapstructure:"page_size"`
	CooldownSeconds      int      `mapstructure:"cooldown_seconds"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Name     string `mapstructure:"name"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	SSLMode  string `mapstructure:"ssl_mode"`
	MaxConns int    `mapstructure:"max_conns"`
}

// DSN builds the connection string used by pgxpool
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host,
		d.Port,
		d.User,
		d.Password,
		d.Name,
		d.SSLMode,
	)
}

// RedisConfig holds Redis connection details
type RedisConfig struct {
	Host          string `mapstructure:"host"`
	Port          int    `mapstructure:"port"`
	Password      string `mapstructure:"password"`
	Database      int    `mapstructure:"database"`
	ConsumerGroup string `mapstructure:"consumer_group"`
	MinIdleTime   int    `mapstructure:"min_idle_time"`
}

func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// NavigationConfig tunes menu derivation
type NavigationConfig struct {
	PrimaryKey       string `mapstructure:"primary_key"`
	SecondaryKey     string `mapstructure:"secondary_key"`
	ItemLimit        int    `mapstructure:"item_limit"`
	FallbackSubtitle string `mapstructure:"fallback_subtitle"`
	FallbackImage    string `mapstructure:"fallback_image"`
}

// RebuildConfig controls the rebuild workers and the periodic refresher
type RebuildConfig struct {
	Workers         int `mapstructure:"workers"`
	IntervalSeconds int `mapstructure:"interval_seconds"`
}

// AdminConfig holds the key guarding admin endpoints
type AdminConfig struct {
	APIKey string `mapstructure:"api_key"`
}

// Load loads configuration from a YAML file with environment variable
// overrides. The current directory is searched when no paths are given.
func Load(paths ...string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if len(paths) == 0 {
		paths = []string{"."}
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	setDefaults(v)

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	switch c.Source.Driver {
	case SourceSupabase:
		if c.Supabase.URL == "" {
			return fmt.Errorf("supabase.url is required for the %s source", SourceSupabase)
		}
		if c.Supabase.APIKey == "" {
			return fmt.Errorf("supabase.api_key is required for the %s source", SourceSupabase)
		}
	case SourcePostgres:
		if c.Database.Host == "" || c.Database.Name == "" {
			return fmt.Errorf("database host and name are required for the %s source", SourcePostgres)
		}
	default:
		return fmt.Errorf("unknown source driver: %q", c.Source.Driver)
	}

	if c.Rebuild.Workers < 1 {
		return fmt.Errorf("rebuild.workers must be at least 1, got %d", c.Rebuild.Workers)
	}

	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.allowed_origins", []string{"*"})

	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", false)

	v.SetDefault("source.driver", SourcePostgres)

	v.SetDefault("supabase.url", "")
	v.SetDefault("supabase.api_key", "")
	v.SetDefault("supabase.read_replicas", []string{})
	v.SetDefault("supabase.timeout", 30)
	v.SetDefault("supabase.max_retries", 3)
	v.SetDefault("supabase.max_requests_per_second", 10)
	v.SetDefault("supabase.page_size", 1000)
	v.SetDefault("supabase.cooldown_seconds", 60)

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.name", "storefront")
	v.SetDefault("database.user", "storefront_user")
	v.SetDefault("database.password", "storefront_pass")
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.max_conns", 10)

	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.database", 0)
	v.SetDefault("redis.consumer_group", "storefront_catalog")
	v.SetDefault("redis.min_idle_time", 120)

	v.SetDefault("navigation.primary_key", "women")
	v.SetDefault("navigation.secondary_key", "men")
	v.SetDefault("navigation.item_limit", 10)
	v.SetDefault("navigation.fallback_subtitle", "Discover the latest arrivals")
	v.SetDefault("navigation.fallback_image", "/images/placeholder-featured.jpg")

	v.SetDefault("rebuild.workers", 2)
	v.SetDefault("rebuild.interval_seconds", 300)

	v.SetDefault("admin.api_key", "")
}
