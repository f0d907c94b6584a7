package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/bigkaa/gocatalog/catalog-module/internal/config"
	"github.com/bigkaa/gocatalog/catalog-module/internal/database"
	"github.com/bigkaa/gocatalog/catalog-module/internal/domain/model"
	"github.com/bigkaa/gocatalog/catalog-module/internal/storage"
)

// setupTestDB запускает PostgreSQL контейнер, применяет миграции.
// Возвращает pgxpool.Pool; очистка через t.Cleanup.
func setupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()

	if os.Getenv("TEST_INTEGRATION") == "" {
		t.Skip("Пропуск интеграционного теста: TEST_INTEGRATION не установлена")
	}

	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"docker.io/postgres:17-alpine",
		postgres.WithDatabase("catalog_test"),
		postgres.WithUsername("catalog"),
		postgres.WithPassword("test-password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("Не удалось запустить PostgreSQL контейнер: %v", err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("Ошибка остановки контейнера: %v", err)
		}
	})

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("Не удалось получить host контейнера: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		t.Fatalf("Не удалось получить port контейнера: %v", err)
	}

	// Настраиваем env для config.Load(); t.Setenv откатывает значения после теста
	t.Setenv("CM_STORAGE_BACKEND", "postgres")
	t.Setenv("CM_DB_HOST", host)
	t.Setenv("CM_DB_PORT", port.Port())
	t.Setenv("CM_DB_NAME", "catalog_test")
	t.Setenv("CM_DB_USER", "catalog")
	t.Setenv("CM_DB_PASSWORD", "test-password")
	t.Setenv("CM_DB_SSL_MODE", "disable")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	// Применяем миграции
	if err := database.Migrate(cfg, logger); err != nil {
		t.Fatalf("Ошибка миграций: %v", err)
	}

	// Подключаемся
	pool, err := database.Connect(ctx, cfg, logger)
	if err != nil {
		t.Fatalf("Ошибка подключения: %v", err)
	}
	t.Cleanup(func() { pool.Close() })

	return pool
}

func testEntry(title string) *model.CatalogEntry {
	return &model.CatalogEntry{
		Title:    title,
		Kind:     model.KindMovie,
		Director: "Тестовый режиссёр",
		Budget:   "$10M",
		Location: "Санкт-Петербург",
		Duration: "100 min",
		YearTime: "2023",
	}
}

func TestEntryCRUD(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()
	store := New(pool)

	e := testEntry("Интеграционный фильм")

	// Create
	if err := store.Create(ctx, e); err != nil {
		t.Fatalf("Create() ошибка: %v", err)
	}
	if e.ID == "" {
		t.Error("ID не установлен")
	}
	if _, err := uuid.Parse(e.ID); err != nil {
		t.Errorf("ID не является UUID: %q", e.ID)
	}
	if e.CreatedAt.IsZero() {
		t.Error("CreatedAt не установлен")
	}

	// Get
	got, err := store.Get(ctx, e.ID)
	if err != nil {
		t.Fatalf("Get() ошибка: %v", err)
	}
	if got.Title != "Интеграционный фильм" {
		t.Errorf("Title = %q, хотели %q", got.Title, "Интеграционный фильм")
	}
	if got.Kind != model.KindMovie {
		t.Errorf("Kind = %q, хотели %q", got.Kind, model.KindMovie)
	}

	// Update: меняется только заданное поле
	budget := "$99M"
	upd, err := store.Update(ctx, e.ID, model.EntryPatch{Budget: &budget})
	if err != nil {
		t.Fatalf("Update() ошибка: %v", err)
	}
	if upd.Budget != "$99M" {
		t.Errorf("Budget = %q, хотели $99M", upd.Budget)
	}
	if upd.Title != e.Title {
		t.Errorf("Title изменился: %q", upd.Title)
	}
	if !upd.CreatedAt.Equal(got.CreatedAt) {
		t.Error("CreatedAt изменился при обновлении")
	}
	if upd.UpdatedAt.Before(upd.CreatedAt) {
		t.Error("UpdatedAt раньше CreatedAt после обновления")
	}

	// Delete
	if err := store.Delete(ctx, e.ID); err != nil {
		t.Fatalf("Delete() ошибка: %v", err)
	}
	if _, err := store.Get(ctx, e.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Get() после Delete: ошибка %v, ожидается ErrNotFound", err)
	}
	if err := store.Delete(ctx, e.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("повторный Delete: ошибка %v, ожидается ErrNotFound", err)
	}
}

func TestGetNotFound(t *testing.T) {
	pool := setupTestDB(t)
	store := New(pool)

	_, err := store.Get(context.Background(), uuid.NewString())
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Get() для несуществующего ID: ошибка %v, ожидается ErrNotFound", err)
	}
}

func TestUpdateNotFound(t *testing.T) {
	pool := setupTestDB(t)
	store := New(pool)

	title := "Новое название"
	_, err := store.Update(context.Background(), uuid.NewString(), model.EntryPatch{Title: &title})
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Update() для несуществующего ID: ошибка %v, ожидается ErrNotFound", err)
	}
}

// Порядок списка: новые первыми, при равных created_at — порядок вставки.
func TestListOrderAndPagination(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()
	store := New(pool)

	const total = 15
	ids := make([]string, 0, total)
	for i := 0; i < total; i++ {
		e := testEntry(fmt.Sprintf("Фильм %02d", i))
		if err := store.Create(ctx, e); err != nil {
			t.Fatalf("Create() ошибка: %v", err)
		}
		ids = append(ids, e.ID)
	}

	count, err := store.Count(ctx)
	if err != nil {
		t.Fatalf("Count() ошибка: %v", err)
	}
	if count != total {
		t.Errorf("Count() = %d, хотели %d", count, total)
	}

	// Обход страницами без дубликатов и пропусков
	seen := make(map[string]bool)
	for page := 1; page <= 3; page++ {
		list, err := store.List(ctx, page, 5)
		if err != nil {
			t.Fatalf("List(%d) ошибка: %v", page, err)
		}
		if len(list) != 5 {
			t.Fatalf("List(%d) вернул %d записей, хотели 5", page, len(list))
		}
		for _, e := range list {
			if seen[e.ID] {
				t.Errorf("запись %q встретилась дважды", e.ID)
			}
			seen[e.ID] = true
		}
	}
	if len(seen) != total {
		t.Errorf("обход вернул %d записей, хотели %d", len(seen), total)
	}

	// Новые первыми: created_at не возрастает, при равенстве seq определяет порядок
	list, err := store.List(ctx, 1, total)
	if err != nil {
		t.Fatalf("List() ошибка: %v", err)
	}
	for i := 1; i < len(list); i++ {
		if list[i-1].CreatedAt.Before(list[i].CreatedAt) {
			t.Errorf("позиция %d: created_at возрастает", i)
		}
	}
	// Последняя созданная запись — первая в списке
	if list[0].ID != ids[total-1] {
		t.Errorf("первая запись списка %q, хотели последнюю созданную %q", list[0].ID, ids[total-1])
	}

	// Страница за последней — пустой срез
	empty, err := store.List(ctx, 10, 5)
	if err != nil {
		t.Fatalf("List() за последней страницей: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("страница за последней вернула %d записей", len(empty))
	}
}

func TestUpdateAllFields(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()
	store := New(pool)

	e := testEntry("До изменения")
	if err := store.Create(ctx, e); err != nil {
		t.Fatalf("Create() ошибка: %v", err)
	}

	title := "После изменения"
	kind := model.KindTVShow
	director := "Другой режиссёр"
	budget := "$1M"
	location := "Казань"
	duration := "8 episodes"
	yearTime := "2025"

	upd, err := store.Update(ctx, e.ID, model.EntryPatch{
		Title:    &title,
		Kind:     &kind,
		Director: &director,
		Budget:   &budget,
		Location: &location,
		Duration: &duration,
		YearTime: &yearTime,
	})
	if err != nil {
		t.Fatalf("Update() ошибка: %v", err)
	}
	if upd.Title != title || upd.Kind != kind || upd.Director != director ||
		upd.Budget != budget || upd.Location != location ||
		upd.Duration != duration || upd.YearTime != yearTime {
		t.Errorf("не все поля обновлены: %+v", upd)
	}
}
