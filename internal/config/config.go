package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	DBTypeSQLite   = "sqlite"
	DBTypePostgres = "postgres"
)

type ServerConfig struct {
	Env string
}

type DataBaseConfig struct {
	URL  string
	Type string
}

type GymConfig struct {
	Name     string
	Currency string
}

type EmailConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type Config struct {
	Server   ServerConfig
	Database DataBaseConfig
	Gym      GymConfig
	Email    EmailConfig
	IsDev    bool
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Load reads the environment (and .env when present) into a Config.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	dbType := getEnv("DB_TYPE", DBTypeSQLite)
	if dbType != DBTypeSQLite && dbType != DBTypePostgres {
		return nil, fmt.Errorf("DB_TYPE must be %q or %q, got %q", DBTypeSQLite, DBTypePostgres, dbType)
	}

	dbURL := getEnv("DB_URL", "")
	if dbURL == "" {
		if dbType == DBTypePostgres {
			return nil, fmt.Errorf("environment variable DB_URL is not set")
		}
		dbURL = "gym_management.db"
	}

	smtpPort, err := strconv.Atoi(getEnv("SMTP_PORT", "587"))
	if err != nil {
		return nil, fmt.Errorf("invalid SMTP_PORT: %w", err)
	}

	env := getEnv("ENV", "production")

	return &Config{
		Server: ServerConfig{
			Env: env,
		},
		Database: DataBaseConfig{
			URL:  dbURL,
			Type: dbType,
		},
		Gym: GymConfig{
			Name:     getEnv("GYM_NAME", "Gym Management System"),
			Currency: getEnv("CURRENCY", "KSh"),
		},
		Email: EmailConfig{
			Host:     getEnv("SMTP_HOST", "smtp.gmail.com"),
			Port:     smtpPort,
			Username: os.Getenv("SMTP_USERNAME"),
			Password: os.Getenv("EMAIL_PASSWORD"),
			From:     os.Getenv("EMAIL_FROM"),
		},

		IsDev: env == "development",
	}, nil
}

func New() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	return cfg
}
