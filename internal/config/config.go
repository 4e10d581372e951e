package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	Env      string         `mapstructure:"env"`
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Firebase FirebaseConfig `mapstructure:"firebase"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Worker   WorkerConfig   `mapstructure:"worker"`
	Log      LogConfig      `mapstructure:"log"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port      string `mapstructure:"port"`
	StaticDir string `mapstructure:"static_dir"`
}

// DatabaseConfig holds the postgres DSN; empty means sample data mode
type DatabaseConfig struct {
	URL         string `mapstructure:"url"`
	AutoMigrate bool   `mapstructure:"auto_migrate"`
}

// RedisConfig holds cache settings; empty URL disables caching
type RedisConfig struct {
	URL        string        `mapstructure:"url"`
	SummaryTTL time.Duration `mapstructure:"summary_ttl"`
}

// FirebaseConfig holds the admin SDK credentials and the web client settings
type FirebaseConfig struct {
	CredentialsPath string `mapstructure:"credentials_path"`
	APIKey          string `mapstructure:"api_key"`
	AuthDomain      string `mapstructure:"auth_domain"`
	ProjectID       string `mapstructure:"project_id"`
}

// AuthConfig controls the session guard
type AuthConfig struct {
	Enabled       bool          `mapstructure:"enabled"`
	SessionMaxAge time.Duration `mapstructure:"session_max_age"`
}

// WorkerConfig holds scheduled task runner settings
type WorkerConfig struct {
	Interval time.Duration `mapstructure:"interval"`
}

// LogConfig holds logger settings
type LogConfig struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

// IsProduction reports whether ENV is "production"
func (c Config) IsProduction() bool {
	return c.Env == "production"
}

// envBindings keeps the plain environment variable names used in deployments
var envBindings = map[string]string{
	"env":                       "ENV",
	"server.port":               "PORT",
	"server.static_dir":         "STATIC_DIR",
	"database.url":              "DATABASE_URL",
	"database.auto_migrate":     "DATABASE_AUTO_MIGRATE",
	"redis.url":                 "REDIS_URL",
	"redis.summary_ttl":         "REDIS_SUMMARY_TTL",
	"firebase.credentials_path": "FIREBASE_CREDENTIALS_PATH",
	"firebase.api_key":          "FIREBASE_API_KEY",
	"firebase.auth_domain":      "FIREBASE_AUTH_DOMAIN",
	"firebase.project_id":       "FIREBASE_PROJECT_ID",
	"auth.enabled":              "AUTH_ENABLED",
	"auth.session_max_age":      "AUTH_SESSION_MAX_AGE",
	"worker.interval":           "WORKER_INTERVAL",
	"log.level":                 "LOG_LEVEL",
	"log.development":           "LOG_DEVELOPMENT",
}

// Load reads .env (if present), then the environment, on top of defaults
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment")
	}
	return load(viper.New())
}

func load(v *viper.Viper) (Config, error) {
	v.SetDefault("env", "development")
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.static_dir", "web/static")
	v.SetDefault("database.url", "")
	v.SetDefault("database.auto_migrate", true)
	v.SetDefault("redis.url", "")
	v.SetDefault("redis.summary_ttl", "5m")
	v.SetDefault("firebase.credentials_path", "./firebase-service-account.json")
	v.SetDefault("firebase.api_key", "")
	v.SetDefault("firebase.auth_domain", "")
	v.SetDefault("firebase.project_id", "")
	v.SetDefault("auth.enabled", true)
	v.SetDefault("auth.session_max_age", "120h")
	v.SetDefault("worker.interval", "5m")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.development", false)

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return Config{}, fmt.Errorf("bind %s: %w", env, err)
		}
	}
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if c.Server.Port == "" {
		return Config{}, fmt.Errorf("server port must not be empty")
	}
	if c.Worker.Interval <= 0 {
		return Config{}, fmt.Errorf("worker interval must be positive, got %s", c.Worker.Interval)
	}
	return c, nil
}
