package service

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/bigkaa/gocatalog/catalog-module/internal/domain/model"
	"github.com/bigkaa/gocatalog/catalog-module/internal/storage"
	"github.com/bigkaa/gocatalog/catalog-module/internal/storage/memory"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
}

func newTestService(t *testing.T) (*CatalogService, *memory.Store) {
	t.Helper()
	logger := testLogger()
	store := memory.New(logger)
	cache := NewCacheService(128, time.Minute)
	return NewCatalogService(store, cache, logger), store
}

func testEntry(title string) *model.CatalogEntry {
	return &model.CatalogEntry{
		Title:    title,
		Kind:     model.KindMovie,
		Director: "Режиссёр",
		Budget:   "$3M",
		Location: "Новосибирск",
		Duration: "95 min",
		YearTime: "2022",
	}
}

func TestCreateAndGet(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	e := testEntry("Кэшируемый фильм")
	if err := svc.Create(ctx, e); err != nil {
		t.Fatalf("Create() ошибка: %v", err)
	}
	if e.ID == "" {
		t.Fatal("ID не присвоен")
	}

	got, err := svc.Get(ctx, e.ID)
	if err != nil {
		t.Fatalf("Get() ошибка: %v", err)
	}
	if got.Title != e.Title {
		t.Errorf("Title = %q, хотели %q", got.Title, e.Title)
	}
}

func TestGet_NotFound(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Get(context.Background(), "a1b2c3d4-e5f6-4a7b-8c9d-0e1f2a3b4c5d")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() = %v, ожидается ErrNotFound", err)
	}
}

// Get после промаха кэша читает хранилище и кэширует:
// повторное чтение не зависит от хранилища.
func TestGet_CachesAfterMiss(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	e := testEntry("Фильм")
	if err := store.Create(ctx, e); err != nil {
		t.Fatalf("Create() ошибка: %v", err)
	}

	// Первое чтение — из хранилища, результат кэшируется
	if _, err := svc.Get(ctx, e.ID); err != nil {
		t.Fatalf("Get() ошибка: %v", err)
	}

	// Удаляем напрямую из хранилища, минуя сервис
	if err := store.Delete(ctx, e.ID); err != nil {
		t.Fatalf("Delete() ошибка: %v", err)
	}

	// Запись всё ещё отдаётся из кэша
	if _, err := svc.Get(ctx, e.ID); err != nil {
		t.Errorf("Get() после прямого удаления из хранилища: %v, ожидается cache hit", err)
	}
}

func TestUpdate_RefreshesCache(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	e := testEntry("До")
	if err := svc.Create(ctx, e); err != nil {
		t.Fatalf("Create() ошибка: %v", err)
	}

	title := "После"
	upd, err := svc.Update(ctx, e.ID, model.EntryPatch{Title: &title})
	if err != nil {
		t.Fatalf("Update() ошибка: %v", err)
	}
	if upd.Title != "После" {
		t.Errorf("Title = %q, хотели После", upd.Title)
	}

	// Чтение после обновления возвращает новое значение (кэш обновлён)
	got, err := svc.Get(ctx, e.ID)
	if err != nil {
		t.Fatalf("Get() ошибка: %v", err)
	}
	if got.Title != "После" {
		t.Errorf("Get() после Update вернул Title %q", got.Title)
	}
}

func TestUpdate_NotFound(t *testing.T) {
	svc, _ := newTestService(t)

	title := "Название"
	_, err := svc.Update(context.Background(),
		"a1b2c3d4-e5f6-4a7b-8c9d-0e1f2a3b4c5d", model.EntryPatch{Title: &title})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Update() = %v, ожидается ErrNotFound", err)
	}
}

func TestDelete_InvalidatesCache(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	e := testEntry("Удаляемый")
	if err := svc.Create(ctx, e); err != nil {
		t.Fatalf("Create() ошибка: %v", err)
	}

	if err := svc.Delete(ctx, e.ID); err != nil {
		t.Fatalf("Delete() ошибка: %v", err)
	}

	// Запись недоступна и через кэш: инвалидация сработала
	if _, err := svc.Get(ctx, e.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() после Delete: %v, ожидается ErrNotFound", err)
	}
}

func TestDelete_NotFound(t *testing.T) {
	svc, _ := newTestService(t)

	err := svc.Delete(context.Background(), "a1b2c3d4-e5f6-4a7b-8c9d-0e1f2a3b4c5d")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete() = %v, ожидается ErrNotFound", err)
	}
}

func TestList_ReturnsTotal(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	for i := 0; i < 7; i++ {
		if err := svc.Create(ctx, testEntry("Фильм")); err != nil {
			t.Fatalf("Create() ошибка: %v", err)
		}
	}

	entries, total, err := svc.List(ctx, 1, 5)
	if err != nil {
		t.Fatalf("List() ошибка: %v", err)
	}
	if len(entries) != 5 {
		t.Errorf("List() вернул %d записей, хотели 5", len(entries))
	}
	if total != 7 {
		t.Errorf("total = %d, хотели 7", total)
	}
}

func TestCacheService_TTL(t *testing.T) {
	cache := NewCacheService(8, 30*time.Millisecond)
	e := testEntry("Истекающий")
	e.ID = "id-1"

	cache.Set(e.ID, e)
	if _, ok := cache.Get(e.ID); !ok {
		t.Fatal("запись отсутствует сразу после Set")
	}

	time.Sleep(80 * time.Millisecond)
	if _, ok := cache.Get(e.ID); ok {
		t.Error("запись не истекла после TTL")
	}
}

func TestCacheService_Delete(t *testing.T) {
	cache := NewCacheService(8, time.Minute)
	e := testEntry("Временный")
	e.ID = "id-2"

	cache.Set(e.ID, e)
	cache.Delete(e.ID)
	if _, ok := cache.Get(e.ID); ok {
		t.Error("запись осталась в кэше после Delete")
	}
}

// Ошибка хранилища, не являющаяся ErrNotFound, оборачивается, а не подменяется.
type failingStore struct {
	storage.Store
}

func (f *failingStore) Get(ctx context.Context, id string) (*model.CatalogEntry, error) {
	return nil, errors.New("отказ backend'а")
}

func TestGet_WrapsStorageError(t *testing.T) {
	logger := testLogger()
	cache := NewCacheService(8, time.Minute)
	svc := NewCatalogService(&failingStore{}, cache, logger)

	_, err := svc.Get(context.Background(), "любой-id")
	if err == nil {
		t.Fatal("Get() не вернул ошибку")
	}
	if errors.Is(err, ErrNotFound) {
		t.Error("ошибка backend'а подменена на ErrNotFound")
	}
}
