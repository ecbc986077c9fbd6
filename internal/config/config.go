package config

import (
	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

type Config struct {
	HttpServerPort uint16 `env:"HTTP_SERVER_PORT" envDefault:"8080" validate:"min=1000,max=65535"`

	// Capacity of each session's outbound queue. Broadcasts that find the
	// queue full are dropped for that member only.
	SessionQueueSize int `env:"SESSION_QUEUE_SIZE" envDefault:"256" validate:"min=1"`

	ServerWsUrl        string `env:"SERVER_WS_URL"        envDefault:"ws://127.0.0.1:8080/ws" validate:"required,url"`
	ClientHistoryLimit int    `env:"CLIENT_HISTORY_LIMIT" envDefault:"100"                    validate:"min=1"`
}

func LoadConfig() (*Config, error) {
	// Load environment variables from .env file
	err := godotenv.Load(".env")
	if err != nil {
		zap.L().Debug(".env file not found", zap.Error(err))
	}

	cfg := &Config{}
	// Parse config from environment variables
	if err = env.Parse(cfg); err != nil {
		zap.L().Error("config_load_failed", zap.Error(err))
		return nil, err
	}

	// Validate the config
	validate := validator.New()
	err = validate.Struct(cfg)
	if err != nil {
		zap.L().Error("config_validation_failed", zap.Error(err))
		return nil, err
	}
	return cfg, nil
}
