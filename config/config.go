package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// SMTP holds the credentials used to deliver OTP mails. When Username or
// Password is empty the mailer runs in dev mode and codes are echoed in the
// login response instead of being sent.
type SMTP struct {
	Host     string
	Port     int
	Username string
	Password string
	FromName string
}

// Config is built once in main and passed into every component that needs it.
type Config struct {
	Port         string
	DBPath       string
	JWTSecret    []byte
	JWTExpiry    time.Duration
	CORSOrigins  []string
	BaseURL      string
	KeepAliveURL string
	SMTP         SMTP
}

// Load reads configuration from the environment, after sourcing a .env file
// if one is present next to the binary.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	expiryHours, err := strconv.Atoi(getEnv("JWT_EXPIRY_HOURS", "24"))
	if err != nil || expiryHours <= 0 {
		expiryHours = 24
	}

	smtpPort, err := strconv.Atoi(getEnv("SMTP_PORT", "587"))
	if err != nil {
		smtpPort = 587
	}

	return Config{
		Port:         getEnv("PORT", "8080"),
		DBPath:       getEnv("DB_PATH", "smartserve.db"),
		JWTSecret:    []byte(getEnv("JWT_SECRET", "jwt-change-me")),
		JWTExpiry:    time.Duration(expiryHours) * time.Hour,
		CORSOrigins:  splitOrigins(getEnv("CORS_ORIGINS", "*")),
		BaseURL:      getEnv("BASE_URL", "http://localhost:8080"),
		KeepAliveURL: os.Getenv("KEEP_ALIVE_URL"),
		SMTP: SMTP{
			Host:     getEnv("SMTP_HOST", "smtp.gmail.com"),
			Port:     smtpPort,
			Username: os.Getenv("SMTP_USER"),
			Password: os.Getenv("SMTP_PASSWORD"),
			FromName: getEnv("SMTP_FROM_NAME", "SmartServe"),
		},
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitOrigins(raw string) []string {
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			origins = append(origins, p)
		}
	}
	return origins
}
