// Package config builds the explicit configuration struct the whole pipeline
// shares. It is constructed once at process entry; no other component reads
// ambient environment state.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	// Telegram settings
	TelegramToken  string
	TelegramChatID string

	// Search settings
	NewsAPIKey   string
	KeywordsPath string
	FeedsPath    string
	PageSize     int
	MaxItems     int
	NewsMaxAge   time.Duration

	// Generation settings
	GeminiAPIKey  string
	OpenAIAPIKey  string // optional fallback generator
	MaxAIRequests int    // per-run generation budget (0 = unlimited)

	// Learning plan
	PlanPath string

	// Scraper settings
	ScrapeMaxArticles int

	// Delivery settings
	SendPacing time.Duration
	EscapeHTML bool

	// Persistence
	ProcessedPath string
	ArchiveDir    string
	DatabaseURL   string // optional Postgres dedup store

	// App settings
	Debug          bool
	RequestTimeout time.Duration

	// Monitoring
	MonitoringEnabled bool
	MonitoringPort    string
}

func Load() (*Config, error) {
	cfg := &Config{
		// Default values
		KeywordsPath:      "configs/keywords.yaml",
		FeedsPath:         "configs/feeds.yaml",
		PlanPath:          "configs/plan.yaml",
		PageSize:          10,
		MaxItems:          30,
		NewsMaxAge:        24 * time.Hour,
		MaxAIRequests:     3,
		ScrapeMaxArticles: 5,
		SendPacing:        time.Second,
		ProcessedPath:     "processed_urls.txt",
		ArchiveDir:        "archive",
		RequestTimeout:    30 * time.Second,
		MonitoringPort:    "8080",
	}

	cfg.TelegramToken = os.Getenv("TELEGRAM_TOKEN")
	cfg.TelegramChatID = os.Getenv("TELEGRAM_CHAT_ID")
	cfg.NewsAPIKey = os.Getenv("NEWS_API_KEY")
	cfg.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	cfg.OpenAIAPIKey = os.Getenv("OPENAI_API_KEY")
	cfg.DatabaseURL = os.Getenv("DATABASE_URL")

	cfg.KeywordsPath = getEnvOrDefault("KEYWORDS_CONFIG_PATH", cfg.KeywordsPath)
	cfg.FeedsPath = getEnvOrDefault("FEEDS_CONFIG_PATH", cfg.FeedsPath)
	cfg.PlanPath = getEnvOrDefault("PLAN_CONFIG_PATH", cfg.PlanPath)
	cfg.ProcessedPath = getEnvOrDefault("PROCESSED_FILE_PATH", cfg.ProcessedPath)
	cfg.ArchiveDir = getEnvOrDefault("ARCHIVE_DIR", cfg.ArchiveDir)
	cfg.MonitoringPort = getEnvOrDefault("MONITORING_PORT", cfg.MonitoringPort)

	cfg.PageSize = getEnvIntOrDefault("SEARCH_PAGE_SIZE", cfg.PageSize)
	cfg.MaxItems = getEnvIntOrDefault("MAX_ITEMS", cfg.MaxItems)
	cfg.MaxAIRequests = getEnvIntOrDefault("MAX_AI_REQUESTS", cfg.MaxAIRequests)
	cfg.ScrapeMaxArticles = getEnvIntOrDefault("SCRAPE_MAX_ARTICLES", cfg.ScrapeMaxArticles)

	if v := os.Getenv("NEWS_MAX_AGE_HOURS"); v != "" {
		if val, err := strconv.Atoi(v); err == nil && val > 0 {
			cfg.NewsMaxAge = time.Duration(val) * time.Hour
		}
	}
	if v := os.Getenv("SEND_PACING_MS"); v != "" {
		if val, err := strconv.Atoi(v); err == nil && val >= 0 {
			cfg.SendPacing = time.Duration(val) * time.Millisecond
		}
	}
	if v := os.Getenv("REQUEST_TIMEOUT_SECONDS"); v != "" {
		if val, err := strconv.Atoi(v); err == nil && val > 0 {
			cfg.RequestTimeout = time.Duration(val) * time.Second
		}
	}

	if os.Getenv("ESCAPE_HTML") == "true" {
		cfg.EscapeHTML = true
	}
	if os.Getenv("DEBUG") == "true" {
		cfg.Debug = true
	}
	if os.Getenv("ENABLE_HTTP_MONITORING") == "true" {
		cfg.MonitoringEnabled = true
	}

	return cfg, cfg.Validate()
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil && intValue > 0 {
			return intValue
		}
	}
	return defaultValue
}

func (c *Config) Validate() error {
	if c.TelegramToken == "" {
		return fmt.Errorf("TELEGRAM_TOKEN is required")
	}
	if c.TelegramChatID == "" {
		return fmt.Errorf("TELEGRAM_CHAT_ID is required")
	}
	if c.NewsAPIKey == "" {
		return fmt.Errorf("NEWS_API_KEY is required")
	}
	if c.GeminiAPIKey == "" && c.OpenAIAPIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY or OPENAI_API_KEY is required")
	}
	if c.MaxItems > 30 {
		c.MaxItems = 30
	}
	return nil
}
