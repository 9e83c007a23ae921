package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config carries every external endpoint and credential the service
// needs. Nothing else in the codebase reads the environment directly.
type Config struct {
	Port        string
	Development bool
	FrontendURL string

	PostgresURL   string
	MongoURI      string
	MongoDatabase string

	JWTSecret string
	AuthURL   string

	LLMEndpoint string
	LLMAPIKey   string
	LLMModel    string

	WhatsAppToken       string
	WhatsAppPhoneID     string
	WebhookVerifyToken  string
	TelegramBotToken    string
	TelegramWebhookPath string

	PlaidClientID string
	PlaidSecret   string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found")
	}

	return &Config{
		Port:        getEnv("PORT", "8080"),
		Development: getBool("DEVELOPMENT", false),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),

		PostgresURL:   getEnv("POSTGRES_URL", ""),
		MongoURI:      getEnv("MONGO_URI", ""),
		MongoDatabase: getEnv("MONGO_DATABASE", "finanzas"),

		JWTSecret: getEnv("SUPABASE_JWT_SECRET", ""),
		AuthURL:   getEnv("SUPABASE_URL", ""),

		LLMEndpoint: getEnv("LLM_ENDPOINT", "https://api.openai.com/v1/chat/completions"),
		LLMAPIKey:   getEnv("LLM_API_KEY", ""),
		LLMModel:    getEnv("LLM_MODEL", "gpt-4o-mini"),

		WhatsAppToken:       getEnv("WHATSAPP_TOKEN", ""),
		WhatsAppPhoneID:     getEnv("WHATSAPP_PHONE_ID", ""),
		WebhookVerifyToken:  getEnv("VERIFY_TOKEN", "finanzas-verify-token"),
		TelegramBotToken:    getEnv("TELEGRAM_BOT_TOKEN", ""),
		TelegramWebhookPath: getEnv("TELEGRAM_WEBHOOK_SECRET", ""),

		PlaidClientID: getEnv("PLAID_CLIENT_ID", ""),
		PlaidSecret:   getEnv("PLAID_SECRET", ""),
	}
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

func getBool(key string, defaultVal bool) bool {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultVal
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		log.Printf("invalid boolean for %s: %q, using default", key, value)
		return defaultVal
	}
	return parsed
}
