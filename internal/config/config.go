package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	App    AppConfig
	Keys   APIKeys
	Llm    LLMConfig
	Search SearchConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
}

type APIKeys struct {
	OpenAI  string
	SerpAPI string
}

type LLMConfig struct {
	BaseURL          string
	Model            string
	MaxContextTokens int
	TimeoutSeconds   int
}

type SearchConfig struct {
	Locale         string
	ResultCount    int
	TimeoutSeconds int
}

// placeholderKeys are sentinel values shipped in .env.example; treating them
// as "not configured" keeps a fresh checkout from hitting the provider with
// garbage credentials.
var placeholderKeys = []string{
	"your-api-key-here",
	"your_api_key_here",
	"changeme",
	"sk-xxxx",
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
		},
		Keys: APIKeys{
			OpenAI:  getEnv("OPENAI_API_KEY", ""),
			SerpAPI: getEnv("SERPAPI_API_KEY", ""),
		},
		Llm: LLMConfig{
			BaseURL:          getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
			Model:            getEnv("OPENAI_MODEL", "gpt-4o-mini"),
			MaxContextTokens: getEnvAsInt("LLM_MAX_CONTEXT_TOKENS", 16000),
			TimeoutSeconds:   getEnvAsInt("LLM_TIMEOUT_SECONDS", 30),
		},
		Search: SearchConfig{
			Locale:         getEnv("SEARCH_LOCALE", "us"),
			ResultCount:    getEnvAsInt("SEARCH_RESULT_COUNT", 5),
			TimeoutSeconds: getEnvAsInt("SEARCH_TIMEOUT_SECONDS", 10),
		},
	}
}

// IsConfigured reports whether a key holds a real (non-empty, non-placeholder)
// credential.
func IsConfigured(key string) bool {
	key = strings.TrimSpace(key)
	if key == "" {
		return false
	}
	lower := strings.ToLower(key)
	for _, placeholder := range placeholderKeys {
		if lower == placeholder {
			return false
		}
	}
	return true
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
