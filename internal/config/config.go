package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the service. Values come from defaults, an
// optional inventory.yaml file, an optional .env file and INVENTORY_* variables,
// later sources winning.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Store     StoreConfig     `mapstructure:"store"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Inventory InventoryConfig `mapstructure:"inventory"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
	CORS      CORSConfig      `mapstructure:"cors"`
	Log       LogConfig       `mapstructure:"log"`
}

type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	// TrustProxyHeaders takes the client address from X-Forwarded-For / X-Real-IP.
	// Only enable it behind a proxy that overwrites those headers.
	TrustProxyHeaders bool `mapstructure:"trust_proxy_headers"`
}

func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type StoreConfig struct {
	Path        string `mapstructure:"path"`
	Policy      string `mapstructure:"policy"`
	TempDir     string `mapstructure:"temp_dir"`
	AtomicWrite bool   `mapstructure:"atomic_write"`
	OnReadFault string `mapstructure:"on_read_fault"`
	Lock        string `mapstructure:"lock"`
}

type RedisConfig struct {
	Addr      string        `mapstructure:"addr"`
	LockKey   string        `mapstructure:"lock_key"`
	LockTTL   time.Duration `mapstructure:"lock_ttl"`
	LockRetry time.Duration `mapstructure:"lock_retry"`
}

type InventoryConfig struct {
	DefaultLowStockThreshold int  `mapstructure:"default_low_stock_threshold"`
	ZeroThresholdUsesDefault bool `mapstructure:"zero_threshold_uses_default"`
}

type RateLimitConfig struct {
	Enabled bool    `mapstructure:"enabled"`
	RPS     float64 `mapstructure:"rps"`
	Burst   int     `mapstructure:"burst"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

const envPrefix = "INVENTORY"

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "")
	v.SetDefault("server.port", 3001)
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 15*time.Second)
	v.SetDefault("server.shutdown_timeout", 20*time.Second)
	v.SetDefault("server.trust_proxy_headers", false)

	v.SetDefault("store.path", "data.json")
	v.SetDefault("store.policy", "fallback")
	v.SetDefault("store.temp_dir", "")
	v.SetDefault("store.atomic_write", true)
	v.SetDefault("store.on_read_fault", "degrade")
	v.SetDefault("store.lock", "mutex")

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.lock_key", "inventory:store:lock")
	v.SetDefault("redis.lock_ttl", 5*time.Second)
	v.SetDefault("redis.lock_retry", 50*time.Millisecond)

	v.SetDefault("inventory.default_low_stock_threshold", 5)
	v.SetDefault("inventory.zero_threshold_uses_default", true)

	v.SetDefault("ratelimit.enabled", true)
	v.SetDefault("ratelimit.rps", 10.0)
	v.SetDefault("ratelimit.burst", 20)

	v.SetDefault("cors.allowed_origins", []string{"*"})

	v.SetDefault("log.level", "info")
}

// Load reads the configuration and validates it.
func Load() (*Config, error) {
	// A missing .env file is fine; variables may come from the environment.
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("inventory")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server port %d out of range", c.Server.Port)
	}
	if strings.TrimSpace(c.Store.Path) == "" {
		return errors.New("store path is required")
	}

	switch c.Store.Policy {
	case "fixed", "fallback":
	default:
		return fmt.Errorf("invalid store policy: %s (must be fixed or fallback)", c.Store.Policy)
	}
	switch c.Store.OnReadFault {
	case "degrade", "fail":
	default:
		return fmt.Errorf("invalid read fault mode: %s (must be degrade or fail)", c.Store.OnReadFault)
	}
	switch c.Store.Lock {
	case "mutex":
	case "redis":
		if c.Redis.Addr == "" || c.Redis.LockKey == "" {
			return errors.New("redis lock requires redis addr and lock key")
		}
		if c.Redis.LockTTL <= 0 || c.Redis.LockRetry <= 0 {
			return errors.New("redis lock ttl and retry must be positive")
		}
	default:
		return fmt.Errorf("invalid store lock: %s (must be mutex or redis)", c.Store.Lock)
	}

	if c.Inventory.DefaultLowStockThreshold < 0 {
		return errors.New("default low stock threshold cannot be negative")
	}
	if c.RateLimit.Enabled && (c.RateLimit.RPS <= 0 || c.RateLimit.Burst <= 0) {
		return errors.New("rate limit rps and burst must be positive")
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[strings.ToLower(c.Log.Level)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Log.Level)
	}

	return nil
}
