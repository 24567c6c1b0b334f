package config

import (
	"time"

	"github.com/caarlos0/env/v9"
)

type Config struct {
	Env               string        `env:"APP_ENV" envDefault:"dev"`
	HTTPPort          string        `env:"HTTP_PORT" envDefault:"8080"`
	RateRPS           int           `env:"RATE_RPS" envDefault:"100"`
	ShutdownTimeout   time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
	ReadHeaderTimeout time.Duration `env:"READ_HEADER_TIMEOUT" envDefault:"5s"`
}

func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadFrom reads the given variables instead of the process environment.
func LoadFrom(environ map[string]string) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: environ}); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
