package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"sass-calc/internal/calculator/models"
)

// ============================================================
// Configuration
// ============================================================

const (
	HistoryStoreMemory = "memory"
	HistoryStoreSQLite = "sqlite"
)

type Config struct {
	Host         string
	Port         string
	Environment  string
	ReadTimeout  int
	WriteTimeout int
	LogLevel     string
	CORSOrigins  []string

	Settings     models.Settings
	Conversion   models.ConversionContext
	HistoryLimit int
	HistoryStore string
}

// Load загружает конфигурацию из переменных окружения (.env, если есть).
func Load() (*Config, error) {
	// .env опционален, в проде его нет
	_ = godotenv.Load()

	cfg := &Config{
		Host:         getEnv("HOST", "127.0.0.1"),
		Port:         getEnv("PORT", "3000"),
		Environment:  getEnv("ENV", "development"),
		ReadTimeout:  getEnvAsInt("READ_TIMEOUT", 10),
		WriteTimeout: getEnvAsInt("WRITE_TIMEOUT", 10),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		CORSOrigins:  getEnvAsList("CORS_ORIGINS"),
		Settings: models.Settings{
			Precision: getEnvAsInt("CALC_PRECISION", 4),
			Unit:      models.Unit(getEnv("CALC_UNIT", string(models.UnitPx))),
			Theme:     models.Theme(getEnv("CALC_THEME", string(models.ThemeDark))),
		},
		Conversion: models.ConversionContext{
			BaseFontSize:   getEnvAsFloat("BASE_FONT_SIZE", 16),
			ViewportWidth:  getEnvAsFloat("VIEWPORT_WIDTH", 1920),
			ViewportHeight: getEnvAsFloat("VIEWPORT_HEIGHT", 1080),
		},
		HistoryLimit: getEnvAsInt("HISTORY_LIMIT", 50),
		HistoryStore: getEnv("HISTORY_STORE", HistoryStoreMemory),
	}

	if unit, err := models.ParseUnit(string(cfg.Settings.Unit)); err == nil {
		cfg.Settings.Unit = unit
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate проверяет значения, которые нельзя молча заменить дефолтом.
func (c *Config) Validate() error {
	if err := c.Settings.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.Conversion.BaseFontSize <= 0 || c.Conversion.ViewportWidth <= 0 || c.Conversion.ViewportHeight <= 0 {
		return fmt.Errorf("config: BASE_FONT_SIZE, VIEWPORT_WIDTH and VIEWPORT_HEIGHT must be positive")
	}
	if c.HistoryLimit <= 0 {
		return fmt.Errorf("config: HISTORY_LIMIT must be positive, got %d", c.HistoryLimit)
	}
	switch c.HistoryStore {
	case HistoryStoreMemory, HistoryStoreSQLite:
	default:
		return fmt.Errorf("config: HISTORY_STORE must be %q or %q, got %q", HistoryStoreMemory, HistoryStoreSQLite, c.HistoryStore)
	}
	return nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvAsList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnvAsFloat(key string, defaultVal float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultVal
}
