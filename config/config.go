package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

type ServerEnv = string

var (
	DevEnv     ServerEnv = "dev"
	StagingEnv ServerEnv = "staging"
	ProdEnv    ServerEnv = "prod"
)

const (
	GENERAL_CONFIG_KEY = "general-config"
	RESERVE_CONFIG_KEY = "reserve-config"
)

// Section is one environment backed part of Config.
type Section interface {
	Key() string
	Load() error
}

type Config struct {
	General GeneralConfig
	Reserve ReserveConfig
}

func (c *Config) Sections() []Section {
	return []Section{&c.General, &c.Reserve}
}

// Load reads .env when present, then the process environment. Errors are
// prefixed with the failing section's key.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	c := &Config{}
	for _, section := range c.Sections() {
		if err := section.Load(); err != nil {
			return nil, fmt.Errorf("%s: %w", section.Key(), err)
		}
	}
	return c, nil
}

func getEnvOrDefault(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

type GeneralConfig struct {
	HTTPPort string
	HTTPHost string
	Env      string
	LogLevel string
}

func (gc *GeneralConfig) Key() string {
	return GENERAL_CONFIG_KEY
}

func (gc *GeneralConfig) Load() error {
	gc.HTTPPort = getEnvOrDefault("HTTP_PORT", "8080")
	gc.HTTPHost = getEnvOrDefault("HTTP_HOST", "localhost")
	gc.Env = getEnvOrDefault("ENV", DevEnv)
	gc.LogLevel = getEnvOrDefault("LOG_LEVEL", "info")
	return gc.Validate()
}

func (gc *GeneralConfig) Validate() error {
	if gc.HTTPPort == "" || gc.HTTPHost == "" || gc.Env == "" {
		return errors.New("invalid server config")
	}
	return nil
}

func (gc *GeneralConfig) Addr() string {
	return gc.HTTPHost + ":" + gc.HTTPPort
}
