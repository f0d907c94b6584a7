// Пакет memory — потокобезопасное in-memory хранилище записей каталога.
//
// Основной backend для standalone-развёртывания и тестов.
// Не персистентное: содержимое теряется при рестарте процесса.
// Использует sync.RWMutex: конкурентные чтения, эксклюзивные записи —
// ни одна операция не наблюдает частично применённую мутацию.
package memory

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/bigkaa/gocatalog/catalog-module/internal/domain/model"
	"github.com/bigkaa/gocatalog/catalog-module/internal/storage"
)

// entry — запись каталога с порядковым номером вставки.
// seq растёт монотонно и никогда не переиспользуется, что даёт
// стабильный порядок при равных CreatedAt.
type entry struct {
	model.CatalogEntry
	seq uint64
}

// Store — in-memory реализация storage.Store.
type Store struct {
	mu      sync.RWMutex
	entries map[string]*entry // id → запись
	nextSeq uint64
	logger  *slog.Logger
}

// New создаёт пустое in-memory хранилище.
func New(logger *slog.Logger) *Store {
	return &Store{
		entries: make(map[string]*entry),
		logger:  logger.With(slog.String("component", "memory_store")),
	}
}

// List возвращает страницу записей: created_at по убыванию,
// при равенстве — порядок вставки. Смещение за пределами
// коллекции — пустой срез.
func (s *Store) List(_ context.Context, page, pageSize int) ([]*model.CatalogEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := make([]*entry, 0, len(s.entries))
	for _, e := range s.entries {
		all = append(all, e)
	}

	// Новые первые; при одинаковом времени создания — порядок вставки.
	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.After(all[j].CreatedAt)
		}
		return all[i].seq < all[j].seq
	})

	offset := (page - 1) * pageSize
	if offset >= len(all) {
		return []*model.CatalogEntry{}, nil
	}

	end := offset + pageSize
	if end > len(all) {
		end = len(all)
	}

	result := make([]*model.CatalogEntry, 0, end-offset)
	for _, e := range all[offset:end] {
		copied := e.CatalogEntry
		result = append(result, &copied)
	}
	return result, nil
}

// Count возвращает общее количество записей.
func (s *Store) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries), nil
}

// Get возвращает копию записи по ID или storage.ErrNotFound.
func (s *Store) Get(_ context.Context, id string) (*model.CatalogEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[id]
	if !ok {
		return nil, storage.ErrNotFound
	}

	copied := e.CatalogEntry
	return &copied, nil
}

// Create присваивает записи новый UUID, устанавливает
// CreatedAt = UpdatedAt = now и сохраняет её.
// Случайный 128-битный UUID исключает коллизии и переиспользование ID.
func (s *Store) Create(_ context.Context, e *model.CatalogEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	e.ID = uuid.NewString()
	e.CreatedAt = now
	e.UpdatedAt = now

	s.nextSeq++
	s.entries[e.ID] = &entry{CatalogEntry: *e, seq: s.nextSeq}

	return nil
}

// Update накладывает заданные поля patch на запись, обновляет
// UpdatedAt и возвращает копию результата.
func (s *Store) Update(_ context.Context, id string, patch model.EntryPatch) (*model.CatalogEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[id]
	if !ok {
		return nil, storage.ErrNotFound
	}

	patch.Apply(&e.CatalogEntry)
	e.UpdatedAt = time.Now().UTC()

	copied := e.CatalogEntry
	return &copied, nil
}

// Delete удаляет запись по ID. Возвращает storage.ErrNotFound,
// если записи нет.
func (s *Store) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[id]; !ok {
		return storage.ErrNotFound
	}
	delete(s.entries, id)
	return nil
}

// CheckReady — проверка готовности для health endpoint.
// In-memory хранилище готово всегда.
func (s *Store) CheckReady() (status string, message string) {
	return "ok", "in-memory хранилище активно"
}

// Проверка соответствия интерфейсу на этапе компиляции.
var _ storage.Store = (*Store)(nil)
