package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config carries every runtime setting the server needs
type Config struct {
	Port        string
	Env         string
	PostgresURL string

	JWTSecret string
	TokenTTL  time.Duration

	UploadDir   string
	StaticPath  string
	FrontendURL string

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string

	StorySweepSpec string
	RecountSpec    string
}

// Load reads configuration from the environment, falling back to a local
// .env file when present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:        getEnv("PORT", "8080"),
		Env:         getEnv("ENV", "development"),
		PostgresURL: getEnv("POSTGRES_CONN_STR", "host=localhost port=5432 user=postgres dbname=instashare sslmode=disable"),

		JWTSecret: getEnv("JWT_SECRET", "supersecretjwtkey"),
		TokenTTL:  time.Duration(getEnvInt("TOKEN_TTL_HOURS", 72)) * time.Hour,

		UploadDir:   getEnv("UPLOAD_DIR", "./uploads"),
		StaticPath:  getEnv("STATIC_PATH", "/static/uploads"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),

		SMTPHost:     getEnv("SMTP_HOST", "localhost"),
		SMTPPort:     getEnvInt("SMTP_PORT", 587),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		SMTPFrom:     getEnv("SMTP_FROM", "no-reply@instashare.local"),

		StorySweepSpec: getEnv("STORY_SWEEP_SPEC", "@every 10m"),
		RecountSpec:    getEnv("RECOUNT_SPEC", "@daily"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
