package config

import (
	"errors"
	"os"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/Desco-devs/desco-asset-management-sub005/internal/MinIO"
	"github.com/Desco-devs/desco-asset-management-sub005/pkg/database/postgres"
	"github.com/Desco-devs/desco-asset-management-sub005/pkg/database/redis"
)

type ServerConfig struct {
	HTTPPort string `env:"HTTP_PORT" env-default:"8080"`
	Postgres postgres.Config
	Redis    redis.RedisConfig
	MinIO    MinIO.Config
}

// Load reads ./.env when present, otherwise the process environment.
func Load() (*ServerConfig, error) {
	var cfg ServerConfig
	if _, err := os.Stat(".env"); err == nil {
		if err := cleanenv.ReadConfig(".env", &cfg); err != nil {
			return nil, errors.New("cannot read server config from .env")
		}
		return &cfg, nil
	}
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, errors.New("cannot read server config from environment")
	}
	return &cfg, nil
}
