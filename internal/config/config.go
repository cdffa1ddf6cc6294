package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds the application configuration.
type Config struct {
	Env        string `envconfig:"ENV" default:"development"`
	LogLevel   string `envconfig:"LOG_LEVEL" default:"debug"`
	ServerPort string `envconfig:"SERVER_PORT" default:"8080"`

	// Настройки AI
	AIClientType string        `envconfig:"AI_CLIENT_TYPE" default:"gemini"` // gemini или openai
	AIModel      string        `envconfig:"AI_MODEL" default:"gemini-2.5-flash"`
	AIBaseURL    string        `envconfig:"AI_BASE_URL" default:"https://openrouter.ai/api/v1"` // Только для openai
	AITimeout    time.Duration `envconfig:"AI_TIMEOUT" default:"120s"`
	// Секретное поле БЕЗ envconfig тега
	AIAPIKey string

	// Ограничение частоты запросов на генерацию (на один IP)
	RateLimitPeriod time.Duration `envconfig:"RATE_LIMIT_PERIOD" default:"1m"`
	RateLimitCount  uint          `envconfig:"RATE_LIMIT_COUNT" default:"10"`

	// CORS Settings
	CORSAllowedOrigins string `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
}

// GetAllowedOrigins splits the CORSAllowedOrigins string into a slice.
func (c *Config) GetAllowedOrigins() []string {
	if c.CORSAllowedOrigins == "" {
		return nil
	}
	// Убираем пробелы и разбиваем по запятой
	return strings.Split(strings.ReplaceAll(c.CORSAllowedOrigins, " ", ""), ",")
}

// HasAPIKey сообщает, загружен ли ключ API. Отсутствие ключа не фатально:
// сервис стартует, но генерация будет возвращать ошибку конфигурации.
func (c *Config) HasAPIKey() bool {
	return c.AIAPIKey != ""
}

// readSecret читает секрет из файла в стандартном пути Docker Secrets,
// с fallback на переменную окружения (локальная разработка без Docker).
func readSecret(secretName, envName string) (string, error) {
	filePath := fmt.Sprintf("/run/secrets/%s", secretName)
	secretBytes, err := os.ReadFile(filePath)
	if err == nil {
		secret := strings.TrimSpace(string(secretBytes))
		if secret == "" {
			return "", fmt.Errorf("secret file %s is empty", filePath)
		}
		return secret, nil
	}

	if v := strings.TrimSpace(os.Getenv(envName)); v != "" {
		return v, nil
	}
	return "", fmt.Errorf("secret %s not found (no secret file, %s not set)", secretName, envName)
}

// LoadConfig loads configuration from environment variables and secrets.
func LoadConfig(envFilePath string) (*Config, error) {
	// Пытаемся загрузить .env файл (локальная разработка)
	if _, err := os.Stat(envFilePath); err == nil {
		if err := godotenv.Load(envFilePath); err != nil {
			log.Printf("Warning: Could not load %s file: %v", envFilePath, err)
		} else {
			log.Printf("Loaded configuration from %s", envFilePath)
		}
	} else if !os.IsNotExist(err) {
		log.Printf("Warning: Error checking %s file: %v", envFilePath, err)
	}

	var cfg Config
	// Загружаем НЕсекретные переменные из окружения
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("error processing env vars: %w", err)
	}

	// Ключ API: для gemini ждем GEMINI_API_KEY, для openai — AI_API_KEY.
	// Отсутствие ключа не прерывает запуск, ошибка будет показана пользователю.
	secretName, envName := "gemini_api_key", "GEMINI_API_KEY"
	if cfg.AIClientType == "openai" {
		secretName, envName = "ai_api_key", "AI_API_KEY"
	}
	key, err := readSecret(secretName, envName)
	if err != nil {
		log.Printf("Warning: AI API key not loaded: %v. Generation will be unavailable.", err)
	} else {
		cfg.AIAPIKey = key
	}

	// Логируем конфигурацию (без секретов)
	log.Printf("Configuration loaded:")
	log.Printf("  Env: %s", cfg.Env)
	log.Printf("  Server Port: %s", cfg.ServerPort)
	log.Printf("  AI Client Type: %s", cfg.AIClientType)
	log.Printf("  AI Model: %s", cfg.AIModel)
	log.Printf("  AI Timeout: %v", cfg.AITimeout)
	log.Printf("  Rate Limit: %d per %v", cfg.RateLimitCount, cfg.RateLimitPeriod)
	if cfg.HasAPIKey() {
		log.Println("  AI API Key: [LOADED]")
	} else {
		log.Println("  AI API Key: [MISSING]")
	}

	return &cfg, nil
}
