package config

import (
	"os"
	"strconv"
	"time"

	_ "github.com/joho/godotenv/autoload"
)

type Database struct {
	Host     string
	Port     string
	Username string
	Password string
	Name     string
	Schema   string
}

type Config struct {
	Port string

	GatewayKeyID     string
	GatewayKeySecret string

	IdentityBaseURL    string
	IdentityCredential string

	RecordStoreURL    string
	RecordStoreSecret string

	DB Database

	ReconcileInterval  time.Duration
	ReconcileOlderThan time.Duration
}

func Load() Config {
	return Config{
		Port: getenv("PORT", "5000"),

		GatewayKeyID:     os.Getenv("RAZORPAY_KEY_ID"),
		GatewayKeySecret: os.Getenv("RAZORPAY_KEY_SECRET"),

		IdentityBaseURL:    os.Getenv("IDENTITY_BASE_URL"),
		IdentityCredential: os.Getenv("IDENTITY_CREDENTIAL"),

		RecordStoreURL:    os.Getenv("RECORD_STORE_URL"),
		RecordStoreSecret: os.Getenv("RECORD_STORE_SECRET"),

		DB: Database{
			Host:     getenv("DB_HOST", "localhost"),
			Port:     getenv("DB_PORT", "5432"),
			Username: getenv("DB_USERNAME", "postgres"),
			Password: os.Getenv("DB_PASSWORD"),
			Name:     getenv("DB_DATABASE", "mess_management"),
			Schema:   getenv("DB_SCHEMA", "public"),
		},

		ReconcileInterval:  seconds("RECONCILE_INTERVAL_SECONDS", 60),
		ReconcileOlderThan: seconds("RECONCILE_OLDER_THAN_SECONDS", 120),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func seconds(key string, fallback int) time.Duration {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return time.Duration(n) * time.Second
		}
	}
	return time.Duration(fallback) * time.Second
}
