package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port            string
	VerifyToken     string
	PageAccessToken string
	AppSecret       string
	GraphAPIBaseURL string
	GraphAPIVersion string
	QuestionsPath   string
	StartCommand    string
	LogMode         string
	DBDriver        string
	DBPath          string
	DBDSN           string
}

func LoadConfig() *Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: Error loading .env file")
	}

	return &Config{
		Port:            getEnv("PORT", "8080"),
		VerifyToken:     getEnv("VERIFY_TOKEN", ""),
		PageAccessToken: getEnv("PAGE_ACCESS_TOKEN", ""),
		AppSecret:       getEnv("APP_SECRET", ""),
		GraphAPIBaseURL: strings.TrimRight(getEnv("GRAPH_API_BASE_URL", "https://graph.facebook.com"), "/"),
		GraphAPIVersion: getEnv("GRAPH_API_VERSION", "v19.0"),
		QuestionsPath:   getEnv("QUESTIONS_PATH", ""),
		StartCommand:    getEnv("START_COMMAND", "start"),
		LogMode:         getEnv("LOG_MODE", "development"),
		DBDriver:        strings.ToLower(getEnv("DB_DRIVER", "sqlite")),
		DBPath:          getEnv("DB_PATH", "./formbot.db"),
		DBDSN:           getEnv("DB_DSN", ""),
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
