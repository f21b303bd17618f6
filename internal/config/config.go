package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	AuthModeDev = "dev"
	AuthModeJWT = "jwt"
	AuthModeIDP = "idp"
)

type Config struct {
	Port        string `mapstructure:"PORT"`
	Env         string `mapstructure:"ENV"`
	AppName     string `mapstructure:"APP_NAME"`
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	AutoMigrate bool   `mapstructure:"AUTO_MIGRATE"`

	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"`

	AuthMode      string        `mapstructure:"AUTH_MODE"`
	AuthJWTSecret string        `mapstructure:"AUTH_JWT_SECRET"`
	AuthJWTIssuer string        `mapstructure:"AUTH_JWT_ISSUER"`
	IDPBaseURL    string        `mapstructure:"IDP_BASE_URL"`
	IDPAPIKey     string        `mapstructure:"IDP_API_KEY"`
	IDPTimeout    time.Duration `mapstructure:"IDP_TIMEOUT"`

	CORSOrigins        string `mapstructure:"CORS_ORIGINS"`
	RedisURL           string `mapstructure:"REDIS_URL"`
	RateLimitPerMinute int    `mapstructure:"RATE_LIMIT_PER_MINUTE"`

	KafkaBrokers string `mapstructure:"KAFKA_BROKERS"`
	KafkaTopic   string `mapstructure:"KAFKA_TOPIC"`

	ReadTimeout  time.Duration `mapstructure:"READ_TIMEOUT"`
	WriteTimeout time.Duration `mapstructure:"WRITE_TIMEOUT"`
}

// Load lee .env (si existe) y variables de entorno. Env pisa al archivo.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("APP_NAME", "vet-clinic")
	v.SetDefault("AUTO_MIGRATE", false)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
	v.SetDefault("AUTH_MODE", "")
	v.SetDefault("IDP_TIMEOUT", "5s")
	v.SetDefault("RATE_LIMIT_PER_MINUTE", 120)
	v.SetDefault("KAFKA_TOPIC", "vet-clinic.appointments")
	v.SetDefault("READ_TIMEOUT", "5s")
	v.SetDefault("WRITE_TIMEOUT", "10s")

	// DB_DSN se mantiene como alias del nombre histórico.
	_ = v.BindEnv("DATABASE_URL", "DATABASE_URL", "DB_DSN")
	for _, key := range []string{
		"PORT", "ENV", "APP_NAME", "AUTO_MIGRATE",
		"LOG_LEVEL", "LOG_FORMAT",
		"AUTH_MODE", "AUTH_JWT_SECRET", "AUTH_JWT_ISSUER",
		"IDP_BASE_URL", "IDP_API_KEY", "IDP_TIMEOUT",
		"CORS_ORIGINS", "REDIS_URL", "RATE_LIMIT_PER_MINUTE",
		"KAFKA_BROKERS", "KAFKA_TOPIC",
		"READ_TIMEOUT", "WRITE_TIMEOUT",
	} {
		_ = v.BindEnv(key)
	}

	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.AuthMode = strings.ToLower(strings.TrimSpace(cfg.AuthMode))
	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// ResolvedAuthMode: AUTH_MODE explícito o, si está vacío, dev en development y jwt en el resto.
func (c *Config) ResolvedAuthMode() string {
	if c.AuthMode != "" {
		return c.AuthMode
	}
	if c.IsDev() {
		return AuthModeDev
	}
	return AuthModeJWT
}

func (c *Config) Validate() error {
	switch mode := c.ResolvedAuthMode(); mode {
	case AuthModeDev:
		if c.IsProduction() {
			return fmt.Errorf("AUTH_MODE %q is not allowed when ENV=production", mode)
		}
	case AuthModeJWT:
		if strings.TrimSpace(c.AuthJWTSecret) == "" {
			return fmt.Errorf("AUTH_JWT_SECRET is required when AUTH_MODE is %q", mode)
		}
	case AuthModeIDP:
		if strings.TrimSpace(c.IDPBaseURL) == "" || strings.TrimSpace(c.IDPAPIKey) == "" {
			return fmt.Errorf("IDP_BASE_URL and IDP_API_KEY are required when AUTH_MODE is %q", mode)
		}
	default:
		return fmt.Errorf("AUTH_MODE must be %q, %q or %q, got %q", AuthModeDev, AuthModeJWT, AuthModeIDP, mode)
	}

	if c.RateLimitPerMinute < 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must be >= 0, got %d", c.RateLimitPerMinute)
	}
	return nil
}

func (c *Config) Addr() string {
	return ":" + strings.TrimPrefix(strings.TrimSpace(c.Port), ":")
}

func (c *Config) CORSOriginList() []string {
	return splitCSV(c.CORSOrigins)
}

func (c *Config) KafkaBrokerList() []string {
	return splitCSV(c.KafkaBrokers)
}

func splitCSV(s string) []string {
	out := make([]string, 0)
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
