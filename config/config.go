package config

import (
	"errors"
	"log"
	"os"

	"github.com/joho/godotenv"
)

// NotifyAddr is the fixed listen address of the payment-notification server.
const NotifyAddr = ":8081"

// Config holds everything the bot needs at startup. It is loaded once in
// main and handed to constructors; nothing reads the environment after that.
type Config struct {
	BotToken   string
	BackendURL string
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	cfg := &Config{
		BotToken:   os.Getenv("TELEGRAM_BOT_TOKEN"),
		BackendURL: os.Getenv("BACKEND_URL"),
	}
	if cfg.BotToken == "" {
		return nil, errors.New("TELEGRAM_BOT_TOKEN is not set")
	}
	if cfg.BackendURL == "" {
		return nil, errors.New("BACKEND_URL is not set")
	}
	return cfg, nil
}
