package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	DBDSN         string
	ServerPort    string
	SessionSecret string
	AppEnv        string

	AdminUsername string
	AdminPassword string

	// external image host for screenshots; optional
	ImageHostURL string
	ImageHostKey string
}

func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		DBDSN:         os.Getenv("DB_DSN"),
		ServerPort:    os.Getenv("SERVER_PORT"),
		SessionSecret: os.Getenv("SESSION_SECRET"),
		AppEnv:        os.Getenv("APP_ENV"),
		AdminUsername: os.Getenv("ADMIN_USERNAME"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		ImageHostURL:  os.Getenv("IMAGE_HOST_URL"),
		ImageHostKey:  os.Getenv("IMAGE_HOST_KEY"),
	}

	if cfg.DBDSN == "" {
		log.Fatal("DB_DSN is not set")
	}
	if cfg.ServerPort == "" {
		cfg.ServerPort = "8080"
	}
	if cfg.SessionSecret == "" {
		log.Fatal("SESSION_SECRET is not set")
	}
	if cfg.AppEnv == "" {
		cfg.AppEnv = "development"
	}

	return cfg
}

// Production reports whether the app runs with production cookie settings.
func (c *Config) Production() bool {
	return c.AppEnv == "production"
}
