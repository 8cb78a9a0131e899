package config

import (
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	Port            string `env:"PORT" env-default:"8080"`
	PostgresURL     string `env:"POSTGRES_URL" env-required:"true"`
	JWTSecret       string `env:"JWT_SECRET" env-required:"true"`
	TokenTTLMinutes int    `env:"TOKEN_TTL_MINUTES" env-default:"30"`
}

// Load reads a .env file when one is present, then fills the config from the
// process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.TokenTTLMinutes) * time.Minute
}
