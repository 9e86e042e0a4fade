package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"net/url"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort string `env:"HTTP_PORT" envDefault:"8080"`

	DBHost     string `env:"DB_HOST" envDefault:"localhost"`
	DBPort     string `env:"DB_PORT" envDefault:"5432"`
	DBUser     string `env:"DB_USER" envDefault:"postgres"`
	DBPassword string `env:"DB_PASSWORD"`
	DBName     string `env:"DB_NAME" envDefault:"dds"`
	DBSslMode  string `env:"DB_SSLMODE" envDefault:"disable"`

	// PurgeSchedule is a cron expression with a leading seconds field.
	PurgeSchedule  string        `env:"PURGE_SCHEDULE" envDefault:"0 0 3 * * *"`
	PurgeRetention time.Duration `env:"PURGE_RETENTION" envDefault:"720h"`

	LogLevel slog.Level `env:"LOG_LEVEL" envDefault:"INFO"`
}

// LoadConfig reads the environment, after loading the given .env files when
// they exist. Variables already set in the environment win over the files.
func LoadConfig(files ...string) (Config, error) {
	for _, file := range files {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", file, err)
		}
	}

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	if cfg.PurgeRetention < 0 {
		return Config{}, errors.New("PURGE_RETENTION must not be negative")
	}
	return cfg, nil
}

// DSN is the connection URL of the service database.
func (c Config) DSN() string {
	return c.dsn(c.DBName)
}

// MaintenanceDSN points to the "postgres" database, used to create the
// service database on first start.
func (c Config) MaintenanceDSN() string {
	return c.dsn("postgres")
}

// HTTPAddress is the listen address of the HTTP server.
func (c Config) HTTPAddress() string {
	return net.JoinHostPort("0.0.0.0", c.HTTPPort)
}

func (c Config) dsn(database string) string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     net.JoinHostPort(c.DBHost, c.DBPort),
		Path:     "/" + database,
		RawQuery: url.Values{"sslmode": {c.DBSslMode}}.Encode(),
	}
	return u.String()
}
