// Точка входа Catalog Module — сервис каталога фильмов и сериалов.
// Загружает конфигурацию, выбирает backend хранилища (in-memory или
// PostgreSQL с миграциями), создаёт сервисный слой с LRU-кэшем,
// API handlers и HTTP-сервер с graceful shutdown.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/bigkaa/gocatalog/catalog-module/internal/api/handlers"
	"github.com/bigkaa/gocatalog/catalog-module/internal/config"
	"github.com/bigkaa/gocatalog/catalog-module/internal/database"
	"github.com/bigkaa/gocatalog/catalog-module/internal/server"
	"github.com/bigkaa/gocatalog/catalog-module/internal/service"
	"github.com/bigkaa/gocatalog/catalog-module/internal/storage"
	"github.com/bigkaa/gocatalog/catalog-module/internal/storage/memory"
	"github.com/bigkaa/gocatalog/catalog-module/internal/storage/postgres"
)

func main() {
	// 1. Загрузка конфигурации из переменных окружения
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Ошибка загрузки конфигурации", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 2. Настройка логирования
	logger := config.SetupLogger(cfg)
	logger.Info("Catalog Module запускается",
		slog.String("version", config.Version),
		slog.Int("port", cfg.Port),
		slog.String("storage_backend", cfg.StorageBackend),
	)

	// 3. Backend хранилища
	var store storage.Store
	var checker handlers.ReadinessChecker

	switch cfg.StorageBackend {
	case config.BackendPostgres:
		// Миграции + пул подключений
		logger.Info("Применение миграций БД...")
		if err := database.Migrate(cfg, logger); err != nil {
			logger.Error("Ошибка миграций БД", slog.String("error", err.Error()))
			os.Exit(1)
		}

		pool, err := database.Connect(context.Background(), cfg, logger)
		if err != nil {
			logger.Error("Ошибка подключения к PostgreSQL", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer pool.Close()

		store = postgres.New(pool)
		checker = database.NewReadinessChecker(pool)

	default:
		memStore := memory.New(logger)
		store = memStore
		checker = memStore
	}

	// 4. Сервисный слой: LRU-кэш + каталог
	cache := service.NewCacheService(cfg.CacheSize, cfg.CacheTTL)
	catalogSvc := service.NewCatalogService(store, cache, logger)

	// 5. API handlers
	healthHandler := handlers.NewHealthHandler(checker)
	apiHandler := handlers.NewAPIHandler(catalogSvc, healthHandler, logger)

	// 6. Создание и запуск HTTP-сервера
	srv := server.New(cfg, logger, apiHandler)
	if err := srv.Run(); err != nil {
		logger.Error("Ошибка сервера", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("Catalog Module остановлен")
}
