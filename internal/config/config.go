// Package config loads service configuration in three layers: struct
// defaults, an optional YAML file, then environment variables.
package config

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// ConfigPathEnvVar overrides the config file location.
const ConfigPathEnvVar = "CONFIG_PATH"

var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/fitshop/config.yaml",
}

type Config struct {
	Server   ServerConfig   `koanf:"server"`
	MySQL    MySQLConfig    `koanf:"mysql"`
	Redis    RedisConfig    `koanf:"redis"`
	RabbitMQ RabbitMQConfig `koanf:"rabbitmq"`
	Auth     AuthConfig     `koanf:"auth"`
	Gemini   GeminiConfig   `koanf:"gemini"`
	Log      LogConfig      `koanf:"log"`
}

type ServerConfig struct {
	Port            string        `koanf:"port"`
	Environment     string        `koanf:"environment"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	// TipsRatePerMinute limits /ai-tips calls per client IP.
	TipsRatePerMinute int `koanf:"tips_rate_per_minute"`
	// AuthRatePerMinute limits /login and /signup calls per client IP.
	AuthRatePerMinute int `koanf:"auth_rate_per_minute"`
	// TrustedProxies lists the proxy CIDRs whose X-Forwarded-For is
	// honoured. Empty means the peer address is always the client IP.
	TrustedProxies []string `koanf:"trusted_proxies"`
}

type MySQLConfig struct {
	Host            string        `koanf:"host"`
	Port            string        `koanf:"port"`
	User            string        `koanf:"user"`
	Password        string        `koanf:"password"`
	Database        string        `koanf:"database"`
	MaxOpenConns    int           `koanf:"max_open_conns"`
	MaxIdleConns    int           `koanf:"max_idle_conns"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `koanf:"conn_max_idle_time"`
	AutoMigrate     bool          `koanf:"auto_migrate"`
}

type RedisConfig struct {
	// Addr is host:port; empty disables the catalog cache.
	Addr        string        `koanf:"addr"`
	DB          int           `koanf:"db"`
	CatalogTTL  time.Duration `koanf:"catalog_ttl"`
	PoolSize    int           `koanf:"pool_size"`
	DialTimeout time.Duration `koanf:"dial_timeout"`
}

type RabbitMQConfig struct {
	// URL is an amqp:// URL; empty disables event publishing.
	URL      string `koanf:"url"`
	Exchange string `koanf:"exchange"`
}

type AuthConfig struct {
	JWTSecret string        `koanf:"jwt_secret"`
	TokenTTL  time.Duration `koanf:"token_ttl"`
}

type GeminiConfig struct {
	APIKey  string        `koanf:"api_key"`
	BaseURL string        `koanf:"base_url"`
	Model   string        `koanf:"model"`
	Timeout time.Duration `koanf:"timeout"`
	// BreakerFailures consecutive failures open the breaker for BreakerCooldown.
	BreakerFailures uint32        `koanf:"breaker_failures"`
	BreakerCooldown time.Duration `koanf:"breaker_cooldown"`
	MaxOutputTokens int           `koanf:"max_output_tokens"`
}

type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:              "8080",
			Environment:       "development",
			ShutdownTimeout:   15 * time.Second,
			TipsRatePerMinute: 10,
			AuthRatePerMinute: 20,
		},
		MySQL: MySQLConfig{
			Host:            "127.0.0.1",
			Port:            "3306",
			User:            "root",
			Database:        "fitshop",
			MaxOpenConns:    100,
			MaxIdleConns:    20,
			ConnMaxLifetime: 5 * time.Minute,
			ConnMaxIdleTime: time.Minute,
			AutoMigrate:     true,
		},
		Redis: RedisConfig{
			CatalogTTL:  30 * time.Second,
			PoolSize:    50,
			DialTimeout: 2 * time.Second,
		},
		RabbitMQ: RabbitMQConfig{
			Exchange: "order.exchange",
		},
		Auth: AuthConfig{
			TokenTTL: 24 * time.Hour,
		},
		Gemini: GeminiConfig{
			Model:           "gemini-1.5-flash-latest",
			Timeout:         20 * time.Second,
			BreakerFailures: 5,
			BreakerCooldown: 30 * time.Second,
			MaxOutputTokens: 2000,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load builds the configuration. Environment variables win over the file,
// which wins over defaults.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	cfg := &Config{}
	err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				durationHook(),
				mapstructure.StringToSliceHookFunc(","),
			),
			WeaklyTypedInput: true,
			Result:           cfg,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Server.Environment, "production")
}

func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		if c.IsProduction() {
			return fmt.Errorf("JWT_SECRET is required in production")
		}
		c.Auth.JWTSecret = "dev-insecure-secret"
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("token ttl must be positive")
	}
	if c.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}
	if c.Gemini.MaxOutputTokens <= 0 {
		return fmt.Errorf("gemini max output tokens must be positive")
	}
	return nil
}

// ParseDuration accepts everything time.ParseDuration does plus a whole
// number of days ("7d") and a bare number of seconds ("3600"), the forms
// JWT_EXPIRES_IN has historically used.
func ParseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if days, ok := strings.CutSuffix(s, "d"); ok {
		n, err := strconv.Atoi(days)
		if err != nil {
			return 0, fmt.Errorf("invalid duration %q", s)
		}
		return time.Duration(n) * 24 * time.Hour, nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		return time.Duration(n) * time.Second, nil
	}
	return time.ParseDuration(s)
}

func durationHook() mapstructure.DecodeHookFuncType {
	durationType := reflect.TypeOf(time.Duration(0))
	return func(from, to reflect.Type, data any) (any, error) {
		if from.Kind() != reflect.String || to != durationType {
			return data, nil
		}
		return ParseDuration(data.(string))
	}
}

func findConfigFile() string {
	if p := os.Getenv(ConfigPathEnvVar); p != "" {
		return p
	}
	for _, p := range DefaultConfigPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// envMappings maps the environment variables the service has always read to
// koanf paths. Anything unmapped is ignored.
var envMappings = map[string]string{
	"port":                 "server.port",
	"environment":          "server.environment",
	"shutdown_timeout":     "server.shutdown_timeout",
	"tips_rate_per_minute": "server.tips_rate_per_minute",
	"auth_rate_per_minute": "server.auth_rate_per_minute",
	"trusted_proxies":      "server.trusted_proxies",

	"mysql_host":              "mysql.host",
	"mysql_port":              "mysql.port",
	"mysql_user":              "mysql.user",
	"mysql_password":          "mysql.password",
	"mysql_database":          "mysql.database",
	"mysql_max_open_conns":    "mysql.max_open_conns",
	"mysql_max_idle_conns":    "mysql.max_idle_conns",
	"mysql_conn_max_lifetime": "mysql.conn_max_lifetime",
	"mysql_auto_migrate":      "mysql.auto_migrate",

	"redis_addr":        "redis.addr",
	"redis_db":          "redis.db",
	"redis_catalog_ttl": "redis.catalog_ttl",

	"rabbitmq_url":      "rabbitmq.url",
	"rabbitmq_exchange": "rabbitmq.exchange",

	"jwt_secret":     "auth.jwt_secret",
	"jwt_expires_in": "auth.token_ttl",

	"gemini_api_key":           "gemini.api_key",
	"gemini_base_url":          "gemini.base_url",
	"gemini_model":             "gemini.model",
	"gemini_timeout":           "gemini.timeout",
	"gemini_breaker_failures":  "gemini.breaker_failures",
	"gemini_breaker_cooldown":  "gemini.breaker_cooldown",
	"gemini_max_output_tokens": "gemini.max_output_tokens",

	"log_level":  "log.level",
	"log_format": "log.format",
}

func envTransform(key string) string {
	if mapped, ok := envMappings[strings.ToLower(key)]; ok {
		return mapped
	}
	return ""
}
