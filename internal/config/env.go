package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Env holds process settings read from the environment.
type Env struct {
	DataDir   string `env:"AIRFRAME_DATA" envDefault:"data"`
	Workers   int    `env:"AIRFRAME_WORKERS" envDefault:"4"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`
}

func LoadEnv() (Env, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return Env{}, fmt.Errorf("parse env: %w", err)
	}
	if e.Workers < 1 {
		return Env{}, fmt.Errorf("parse env: AIRFRAME_WORKERS must be positive, got %d", e.Workers)
	}
	return e, nil
}
