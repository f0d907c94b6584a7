// catalog.go — сервис каталога.
// CRUD записей поверх storage.Store: композиция list+count,
// проверка существования перед удалением, кэширование точечных чтений.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/bigkaa/gocatalog/catalog-module/internal/domain/model"
	"github.com/bigkaa/gocatalog/catalog-module/internal/storage"
)

// CatalogService — бизнес-логика каталога записей.
type CatalogService struct {
	store  storage.Store
	cache  *CacheService
	logger *slog.Logger
}

// NewCatalogService создаёт сервис каталога.
func NewCatalogService(store storage.Store, cache *CacheService, logger *slog.Logger) *CatalogService {
	return &CatalogService{
		store:  store,
		cache:  cache,
		logger: logger.With(slog.String("component", "catalog_service")),
	}
}

// List возвращает страницу записей и общее количество.
// Два независимых чтения хранилища; дрейф на одну запись между ними
// при конкурентной записи допустим (порядок created_at DESC гарантирует,
// что уже отданные страницы не перемешиваются).
func (s *CatalogService) List(ctx context.Context, page, pageSize int) ([]*model.CatalogEntry, int, error) {
	entries, err := s.store.List(ctx, page, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("получение списка записей: %w", err)
	}

	total, err := s.store.Count(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("подсчёт записей: %w", err)
	}

	return entries, total, nil
}

// Get возвращает запись по ID. Сначала проверяет LRU-кэш,
// при промахе читает хранилище и кэширует результат.
func (s *CatalogService) Get(ctx context.Context, id string) (*model.CatalogEntry, error) {
	if e, ok := s.cache.Get(id); ok {
		return e, nil
	}

	e, err := s.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("получение записи: %w", err)
	}

	s.cache.Set(id, e)
	return e, nil
}

// Create сохраняет новую запись: хранилище присваивает ID и timestamps.
func (s *CatalogService) Create(ctx context.Context, e *model.CatalogEntry) error {
	if err := s.store.Create(ctx, e); err != nil {
		return fmt.Errorf("создание записи: %w", err)
	}

	s.cache.Set(e.ID, e)

	s.logger.Info("Запись каталога создана",
		slog.String("id", e.ID),
		slog.String("title", e.Title),
		slog.String("type", string(e.Kind)),
	)

	return nil
}

// Update накладывает заданные поля patch на существующую запись.
// Возвращает ErrNotFound, если записи нет.
func (s *CatalogService) Update(ctx context.Context, id string, patch model.EntryPatch) (*model.CatalogEntry, error) {
	e, err := s.store.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("обновление записи: %w", err)
	}

	s.cache.Set(id, e)

	s.logger.Info("Запись каталога обновлена",
		slog.String("id", id),
	)

	return e, nil
}

// Delete окончательно удаляет запись.
// Возвращает ErrNotFound, если записи нет: повторное удаление
// того же ID — ошибка для клиента (404), а не молчаливый успех.
func (s *CatalogService) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("удаление записи: %w", err)
	}

	s.cache.Delete(id)

	s.logger.Info("Запись каталога удалена",
		slog.String("id", id),
	)

	return nil
}
