package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	SMTP      SMTPConfig
	Keys      APIKeys
	Ai        AIConfig
	Cost      CostConfig
	Ingestion IngestionConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
}

type DatabaseConfig struct {
	Connection string
}

type SMTPConfig struct {
	Host       string
	Port       int
	Email      string
	Password   string
	SenderName string
}

type APIKeys struct {
	OpenAI string
}

type AIConfig struct {
	LLMProvider         string // "openai" or "ollama"
	LLMModel            string // e.g. "gpt-4o-mini"
	ClassifierModel     string // model used for context classification
	EmbeddingProvider   string // "openai" or "ollama"
	EmbeddingModel      string // e.g. "text-embedding-3-small"
	OllamaBaseURL       string
	ConfidenceThreshold float64 // below this the keyword fallback kicks in
	HistoryWindow       int     // max conversation turns kept in the prompt
	VectorTopK          int
	ChatTimeout         time.Duration
	ClassifyTimeout     time.Duration
	ResolveTimeout      time.Duration
	EmbedTimeout        time.Duration
}

type CostConfig struct {
	SessionAlertUSD float64
	DailyAlertUSD   float64
	AlertEmail      string
	SessionTopic    string
}

type IngestionConfig struct {
	FileProcessorURL string
	Timeout          time.Duration
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		SMTP: SMTPConfig{
			Host:       getEnv("SMTP_HOST", ""),
			Port:       getEnvAsInt("SMTP_PORT", 587),
			Email:      getEnv("SMTP_EMAIL", ""),
			Password:   getEnv("SMTP_PASSWORD", ""),
			SenderName: getEnv("SMTP_SENDER_NAME", "BuildingChat"),
		},
		Keys: APIKeys{
			OpenAI: getEnv("OPENAI_API_KEY", ""),
		},
		Ai: AIConfig{
			LLMProvider:         getEnv("LLM_PROVIDER", "openai"),
			LLMModel:            getEnv("LLM_MODEL", "gpt-4o-mini"),
			ClassifierModel:     getEnv("CLASSIFIER_MODEL", "gpt-4o-mini"),
			EmbeddingProvider:   getEnv("EMBEDDING_PROVIDER", "openai"),
			EmbeddingModel:      getEnv("EMBEDDING_MODEL", "text-embedding-3-small"),
			OllamaBaseURL:       getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			ConfidenceThreshold: getEnvAsFloat("CLASSIFIER_CONFIDENCE_THRESHOLD", 0.6),
			HistoryWindow:       getEnvAsInt("HISTORY_WINDOW", 10),
			VectorTopK:          getEnvAsInt("VECTOR_TOP_K", 5),
			ChatTimeout:         getEnvAsDuration("CHAT_TIMEOUT", 30*time.Second),
			ClassifyTimeout:     getEnvAsDuration("CLASSIFY_TIMEOUT", 10*time.Second),
			ResolveTimeout:      getEnvAsDuration("RESOLVE_TIMEOUT", 10*time.Second),
			EmbedTimeout:        getEnvAsDuration("EMBED_TIMEOUT", 10*time.Second),
		},
		Cost: CostConfig{
			SessionAlertUSD: getEnvAsFloat("COST_SESSION_ALERT_USD", 1.00),
			DailyAlertUSD:   getEnvAsFloat("COST_DAILY_ALERT_USD", 10.00),
			AlertEmail:      getEnv("COST_ALERT_EMAIL", ""),
			SessionTopic:    getEnv("COST_SESSION_TOPIC_NAME", "CHAT_SESSION_COSTS"),
		},
		Ingestion: IngestionConfig{
			FileProcessorURL: getEnv("FILE_PROCESSOR_URL", "http://localhost:8081/process"),
			Timeout:          getEnvAsDuration("FILE_PROCESSOR_TIMEOUT", 60*time.Second),
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

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}
