// Пакет config — загрузка и валидация конфигурации Catalog Module
// из переменных окружения.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Версия приложения, задаётся при сборке через -ldflags.
var Version = "dev"

// Backend'ы хранилища.
const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
)

// Config содержит все параметры конфигурации Catalog Module.
type Config struct {
	// Порт HTTP-сервера
	Port int
	// Backend хранилища: memory или postgres
	StorageBackend string
	// Параметры PostgreSQL (обязательны при StorageBackend=postgres)
	DBHost     string
	DBPort     int
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string
	// Максимальный размер LRU-кэша записей (количество элементов)
	CacheSize int
	// TTL записи в LRU-кэше
	CacheTTL time.Duration
	// Уровень логирования (debug, info, warn, error)
	LogLevel slog.Level
	// Формат логов (json, text)
	LogFormat string
	// Таймаут graceful shutdown HTTP-сервера
	ShutdownTimeout time.Duration
}

// Load загружает конфигурацию из переменных окружения, валидирует
// обязательные поля и возвращает Config или ошибку.
func Load() (*Config, error) {
	cfg := &Config{}
	var err error

	// CM_PORT — порт HTTP-сервера (по умолчанию 8080)
	cfg.Port, err = getEnvInt("CM_PORT", 8080)
	if err != nil {
		return nil, fmt.Errorf("CM_PORT: %w", err)
	}
	if cfg.Port < 1 || cfg.Port > 65535 {
		return nil, fmt.Errorf("CM_PORT: значение %d вне допустимого диапазона 1-65535", cfg.Port)
	}

	// CM_STORAGE_BACKEND — backend хранилища (по умолчанию memory)
	cfg.StorageBackend = getEnvDefault("CM_STORAGE_BACKEND", BackendMemory)
	if cfg.StorageBackend != BackendMemory && cfg.StorageBackend != BackendPostgres {
		return nil, fmt.Errorf("CM_STORAGE_BACKEND: недопустимое значение %q, допустимые: memory, postgres",
			cfg.StorageBackend)
	}

	// Параметры PostgreSQL — обязательны только для postgres backend
	if cfg.StorageBackend == BackendPostgres {
		cfg.DBHost, err = getEnvRequired("CM_DB_HOST")
		if err != nil {
			return nil, err
		}
		cfg.DBPort, err = getEnvInt("CM_DB_PORT", 5432)
		if err != nil {
			return nil, fmt.Errorf("CM_DB_PORT: %w", err)
		}
		cfg.DBName, err = getEnvRequired("CM_DB_NAME")
		if err != nil {
			return nil, err
		}
		cfg.DBUser, err = getEnvRequired("CM_DB_USER")
		if err != nil {
			return nil, err
		}
		cfg.DBPassword, err = getEnvRequired("CM_DB_PASSWORD")
		if err != nil {
			return nil, err
		}
		cfg.DBSSLMode = getEnvDefault("CM_DB_SSL_MODE", "disable")
	}

	// CM_CACHE_SIZE — размер LRU-кэша (по умолчанию 1024)
	cfg.CacheSize, err = getEnvInt("CM_CACHE_SIZE", 1024)
	if err != nil {
		return nil, fmt.Errorf("CM_CACHE_SIZE: %w", err)
	}
	if cfg.CacheSize <= 0 {
		return nil, fmt.Errorf("CM_CACHE_SIZE: значение должно быть положительным")
	}

	// CM_CACHE_TTL — TTL записи в кэше (по умолчанию 5m)
	cfg.CacheTTL, err = getEnvDuration("CM_CACHE_TTL", 5*time.Minute)
	if err != nil {
		return nil, fmt.Errorf("CM_CACHE_TTL: %w", err)
	}

	// CM_LOG_LEVEL — уровень логирования (по умолчанию info)
	cfg.LogLevel, err = parseLogLevel(getEnvDefault("CM_LOG_LEVEL", "info"))
	if err != nil {
		return nil, fmt.Errorf("CM_LOG_LEVEL: %w", err)
	}

	// CM_LOG_FORMAT — формат логов (по умолчанию json)
	cfg.LogFormat = getEnvDefault("CM_LOG_FORMAT", "json")
	if cfg.LogFormat != "json" && cfg.LogFormat != "text" {
		return nil, fmt.Errorf("CM_LOG_FORMAT: недопустимое значение %q, допустимые: json, text", cfg.LogFormat)
	}

	// CM_SHUTDOWN_TIMEOUT — таймаут graceful shutdown (по умолчанию 5s)
	cfg.ShutdownTimeout, err = getEnvDuration("CM_SHUTDOWN_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, fmt.Errorf("CM_SHUTDOWN_TIMEOUT: %w", err)
	}

	return cfg, nil
}

// DatabaseDSN возвращает DSN подключения к PostgreSQL.
func (c *Config) DatabaseDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode,
	)
}

// SetupLogger настраивает глобальный slog-логгер на основе конфигурации.
func SetupLogger(cfg *Config) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}

	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// --- Вспомогательные функции ---

// getEnvRequired возвращает значение переменной окружения или ошибку, если она не задана.
func getEnvRequired(key string) (string, error) {
	val := os.Getenv(key)
	if val == "" {
		return "", fmt.Errorf("%s: обязательная переменная окружения не задана", key)
	}
	return val, nil
}

// getEnvDefault возвращает значение переменной окружения или значение по умолчанию.
func getEnvDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

// getEnvInt возвращает целочисленное значение переменной окружения или значение по умолчанию.
func getEnvInt(key string, defaultVal int) (int, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("некорректное целое число: %q", val)
	}
	return n, nil
}

// getEnvDuration возвращает time.Duration из переменной окружения или значение по умолчанию.
func getEnvDuration(key string, defaultVal time.Duration) (time.Duration, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return 0, fmt.Errorf("некорректная длительность: %q (используйте формат Go: 30s, 5m, 1h)", val)
	}
	return d, nil
}

// parseLogLevel преобразует строку уровня логирования в slog.Level.
func parseLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("недопустимый уровень %q, допустимые: debug, info, warn, error", level)
	}
}
