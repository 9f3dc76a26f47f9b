package config

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Auth       AuthConfig       `mapstructure:"auth"`
	Quota      QuotaConfig      `mapstructure:"quota"`
	OpenAI     OpenAIConfig     `mapstructure:"openai"`
	ClipDrop   ClipDropConfig   `mapstructure:"clipdrop"`
	Cloudinary CloudinaryConfig `mapstructure:"cloudinary"`
	Clerk      ClerkConfig      `mapstructure:"clerk"`
	Sentry     SentryConfig     `mapstructure:"sentry"`
	Tracing    TracingConfig    `mapstructure:"tracing"`
	Log        LogConfig        `mapstructure:"log"`
}

type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	Mode            string        `mapstructure:"mode"` // debug / release / test
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	RateLimitRPS    float64       `mapstructure:"rate_limit_rps"`
	RateLimitBurst  int           `mapstructure:"rate_limit_burst"`
}

type DatabaseConfig struct {
	Driver string `mapstructure:"driver"` // postgres / sqlite
	DSN    string `mapstructure:"dsn"`
}

type RedisConfig struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	FeedTTL  time.Duration `mapstructure:"feed_ttl"`
}

type AuthConfig struct {
	// JWTPublicKey is a PEM-encoded RSA public key (identity provider
	// session keys). When empty, JWTSecret enables HS256 for local dev.
	JWTPublicKey string `mapstructure:"jwt_public_key"`
	JWTSecret    string `mapstructure:"jwt_secret"`
}

type QuotaConfig struct {
	FreeLimit int `mapstructure:"free_limit"`
}

type OpenAIConfig struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
	Model   string `mapstructure:"model"`
}

type ClipDropConfig struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
}

type CloudinaryConfig struct {
	CloudName string `mapstructure:"cloud_name"`
	APIKey    string `mapstructure:"api_key"`
	APISecret string `mapstructure:"api_secret"`
}

type ClerkConfig struct {
	SecretKey string `mapstructure:"secret_key"`
	BaseURL   string `mapstructure:"base_url"`
}

type SentryConfig struct {
	DSN string `mapstructure:"dsn"`
}

type TracingConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Endpoint string `mapstructure:"endpoint"`
	Service  string `mapstructure:"service"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // json / console
}

// Load reads config.yaml (path overridable via QUICKAI_CONFIG) and applies
// QUICKAI_* environment overrides, e.g. QUICKAI_DATABASE_DSN.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	if p := os.Getenv("QUICKAI_CONFIG"); p != "" {
		v.SetConfigFile(p)
	}

	v.SetEnvPrefix("QUICKAI")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// Missing file is fine: env + defaults carry a full config.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "120s")
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("server.rate_limit_rps", 20)
	v.SetDefault("server.rate_limit_burst", 40)

	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "quickai.db")

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.feed_ttl", "30s")

	v.SetDefault("quota.free_limit", 10)

	v.SetDefault("openai.base_url", "https://generativelanguage.googleapis.com/v1beta/openai/")
	v.SetDefault("openai.model", "gemini-2.5-flash-lite")

	v.SetDefault("clipdrop.base_url", "https://clipdrop-api.co")

	v.SetDefault("clerk.base_url", "https://api.clerk.com/v1")

	v.SetDefault("tracing.enabled", false)
	v.SetDefault("tracing.service", "quickai")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}
