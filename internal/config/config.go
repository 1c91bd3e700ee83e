package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Ai       AIConfig
	Chat     ChatConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	SecretKey          string
}

type DatabaseConfig struct {
	Path string
}

type AIConfig struct {
	Provider      string // "openai" or "ollama"
	Model         string
	Temperature   float64
	OpenAIKey     string
	OllamaBaseURL string
	Timeout       time.Duration
	MaxAttempts   int
}

type ChatConfig struct {
	// HistoryWindow is the number of past exchanges (human+ai pairs)
	// supplied as context to the model.
	HistoryWindow int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "8080"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
			SecretKey:          getEnv("SECRET_KEY", "default_secret_key"),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "database.db"),
		},
		Ai: AIConfig{
			Provider:      getEnv("LLM_PROVIDER", "openai"),
			Model:         getEnv("LLM_MODEL", "gpt-3.5-turbo"),
			Temperature:   getEnvAsFloat("LLM_TEMPERATURE", 0.7),
			OpenAIKey:     getEnv("OPENAI_API_KEY", ""),
			OllamaBaseURL: getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			Timeout:       time.Duration(getEnvAsInt("LLM_TIMEOUT_SECONDS", 60)) * time.Second,
			MaxAttempts:   getEnvAsInt("LLM_MAX_ATTEMPTS", 2),
		},
		Chat: ChatConfig{
			HistoryWindow: getEnvAsInt("HISTORY_WINDOW", 3),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}
