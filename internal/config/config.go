package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv string
	Port   string

	DB    DBConfig
	Auth  AuthConfig
	Redis RedisConfig
	Limit LimitConfig
}

type DBConfig struct {
	Driver      string
	Host        string
	Port        string
	User        string
	Password    string
	Name        string
	SSLMode     string
	MaxRetries  int
	AutoMigrate bool
}

type AuthConfig struct {
	JWTSecret      string
	AccessTokenTTL time.Duration
}

type RedisConfig struct {
	// Addr is optional; without it the login throttle keeps its counters in memory.
	Addr       string
	MaxRetries int
}

type LimitConfig struct {
	LoginRate     string
	MutationRPS   float64
	MutationBurst int
}

func (c Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// Load reads .env (when present) and the process environment.
func Load(files ...string) (Config, error) {
	_ = godotenv.Load(files...)
	return FromEnv(os.LookupEnv)
}

// FromEnv builds a Config from lookup so tests can feed a map.
func FromEnv(lookup func(string) (string, bool)) (Config, error) {
	e := env{lookup: lookup}

	cfg := Config{
		AppEnv: e.str("APP_ENV", "development"),
		Port:   e.str("PORT", "8000"),
		DB: DBConfig{
			Driver:      strings.ToLower(e.str("DB_DRIVER", "postgres")),
			Host:        e.str("DB_HOST", "localhost"),
			Port:        e.str("DB_PORT", "5432"),
			User:        e.str("DB_USER", "postgres"),
			Password:    e.str("DB_PASSWORD", ""),
			Name:        e.str("DB_NAME", "employees"),
			SSLMode:     e.str("DB_SSLMODE", "disable"),
			MaxRetries:  e.integer("DB_MAX_RETRIES", 5),
			AutoMigrate: e.boolean("AUTO_MIGRATE", false),
		},
		Auth: AuthConfig{
			JWTSecret:      e.str("JWT_SECRET", ""),
			AccessTokenTTL: time.Duration(e.integer("ACCESS_TOKEN_EXPIRE_MINUTES", 30)) * time.Minute,
		},
		Redis: RedisConfig{
			Addr:       e.str("REDIS_ADDR", ""),
			MaxRetries: e.integer("REDIS_MAX_RETRIES", 5),
		},
		Limit: LimitConfig{
			LoginRate:     e.str("LOGIN_RATE", "10-M"),
			MutationRPS:   e.number("MUTATION_RPS", 5),
			MutationBurst: e.integer("MUTATION_BURST", 10),
		},
	}

	if e.err != nil {
		return Config{}, e.err
	}
	if cfg.Auth.JWTSecret == "" {
		return Config{}, errors.New("JWT_SECRET is required")
	}
	if cfg.Auth.AccessTokenTTL <= 0 {
		return Config{}, errors.New("ACCESS_TOKEN_EXPIRE_MINUTES must be positive")
	}
	if cfg.DB.Driver != "postgres" && cfg.DB.Driver != "mysql" {
		return Config{}, errors.New("DB_DRIVER must be postgres or mysql")
	}

	return cfg, nil
}

type env struct {
	lookup func(string) (string, bool)
	err    error
}

func (e *env) str(key, def string) string {
	if v, ok := e.lookup(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return def
}

func (e *env) integer(key string, def int) int {
	raw := e.str(key, "")
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		e.fail(key)
		return def
	}
	return v
}

func (e *env) number(key string, def float64) float64 {
	raw := e.str(key, "")
	if raw == "" {
		return def
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		e.fail(key)
		return def
	}
	return v
}

func (e *env) boolean(key string, def bool) bool {
	raw := e.str(key, "")
	if raw == "" {
		return def
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		e.fail(key)
		return def
	}
	return v
}

func (e *env) fail(key string) {
	if e.err == nil {
		e.err = errors.New(key + " has an invalid value")
	}
}
