// Пакет storage — контракт хранилища записей каталога.
//
// Store не знает ничего о HTTP и не валидирует входные данные —
// валидация выполняется на уровне API. Любая реализация обязана
// обеспечивать детерминированный порядок списка (created_at по
// убыванию, при равенстве — порядок вставки) и атомарность
// каждой отдельной операции.
package storage

import (
	"context"
	"errors"

	"github.com/bigkaa/gocatalog/catalog-module/internal/domain/model"
)

// ErrNotFound — запись с указанным ID отсутствует в хранилище.
var ErrNotFound = errors.New("запись не найдена")

// Store — интерфейс хранилища записей каталога.
// Реализации: in-memory (storage/memory) и PostgreSQL (storage/postgres).
type Store interface {
	// List возвращает страницу записей, отсортированных по дате
	// создания (новые первые), при равенстве — по порядку вставки.
	// page и pageSize — положительные числа (уже провалидированы
	// вызывающим). Смещение за пределами коллекции — пустой результат,
	// не ошибка.
	List(ctx context.Context, page, pageSize int) ([]*model.CatalogEntry, error)

	// Count возвращает общее количество записей.
	Count(ctx context.Context) (int, error)

	// Get возвращает запись по ID или ErrNotFound.
	Get(ctx context.Context, id string) (*model.CatalogEntry, error)

	// Create присваивает записи новый уникальный ID, устанавливает
	// CreatedAt = UpdatedAt и сохраняет её. Поля ID, CreatedAt,
	// UpdatedAt записываются в переданную структуру.
	Create(ctx context.Context, e *model.CatalogEntry) error

	// Update накладывает заданные поля patch на существующую запись,
	// обновляет UpdatedAt и возвращает результат слияния.
	// Возвращает ErrNotFound, если записи нет.
	Update(ctx context.Context, id string, patch model.EntryPatch) (*model.CatalogEntry, error)

	// Delete удаляет запись. Возвращает ErrNotFound, если записи нет.
	// Удаление окончательное, ID не переиспользуется.
	Delete(ctx context.Context, id string) error
}
