// Package config loads the server configuration from environment variables.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config contains server configuration parameters.
type Config struct {
	Port        string `env:"PORT" envDefault:"8080"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat   string `env:"LOG_FORMAT" envDefault:"text"`
	CORSEnabled bool   `env:"CORS_ENABLED" envDefault:"false"`
	DB          DB     `envPrefix:"DB_"`
	Redis       Redis  `envPrefix:"REDIS_"`
	JWT         JWT    `envPrefix:"JWT_"`
}

// DB contains database connection parameters.
type DB struct {
	// Driver selects the GORM dialector: "postgres" or "sqlite".
	Driver         string        `env:"DRIVER" envDefault:"postgres"`
	Host           string        `env:"HOST" envDefault:"localhost"`
	Port           string        `env:"PORT" envDefault:"5432"`
	User           string        `env:"USER" envDefault:"task"`
	Password       string        `env:"PASSWORD"`
	Name           string        `env:"NAME" envDefault:"task"`
	SSLMode        string        `env:"SSLMODE" envDefault:"disable"`
	SQLitePath     string        `env:"SQLITE_PATH" envDefault:"./task.db"`
	RunMigrations  bool          `env:"RUN_MIGRATIONS" envDefault:"true"`
	ConnectTimeout time.Duration `env:"CONNECT_TIMEOUT" envDefault:"60s"`
}

// Redis contains parameters of the token revocation store.
// An empty Host disables Redis and revocations are kept in the database.
type Redis struct {
	Host     string `env:"HOST"`
	Port     string `env:"PORT" envDefault:"6379"`
	Password string `env:"PASSWORD"`
	DB       int    `env:"DB" envDefault:"0"`
	Prefix   string `env:"PREFIX" envDefault:"revoked"`
}

// Enabled reports whether a Redis host has been configured.
func (r Redis) Enabled() bool {
	return r.Host != ""
}

// Addr returns host:port of the Redis server.
func (r Redis) Addr() string {
	return r.Host + ":" + r.Port
}

// JWT contains token signing parameters.
type JWT struct {
	Secret string        `env:"SECRET,required,notEmpty"`
	TTL    time.Duration `env:"TTL" envDefault:"1h"`
	Issuer string        `env:"ISSUER" envDefault:"task_backend"`
}

// NewConfig loads configuration from environment variables.
func NewConfig() (*Config, error) {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &cfg, nil
}
