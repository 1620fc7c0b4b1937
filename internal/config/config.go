package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	API     APIConfig     `envPrefix:"API_"`
	Session SessionConfig `envPrefix:"SESSION_"`
	Shell   ShellConfig   `envPrefix:"SHELL_"`
}

type APIConfig struct {
	BaseURL    string        `env:"BASE_URL" envDefault:"http://localhost:8080/api"`
	Timeout    time.Duration `env:"TIMEOUT" envDefault:"10s"`
	RetryCount int           `env:"RETRY_COUNT" envDefault:"3"`
}

type SessionConfig struct {
	// FilePath is where the session triple (flag, role, profile) and token
	// are persisted between runs.
	FilePath string `env:"FILE_PATH" envDefault:".storefront-session.json"`
}

type ShellConfig struct {
	Prompt string `env:"PROMPT" envDefault:"pharmacy> "`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(fmt.Sprintf("load config: %v", err))
	}
	return cfg
}
