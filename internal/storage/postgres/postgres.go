// Пакет postgres — PostgreSQL-реализация хранилища записей каталога.
// Все запросы — чистый SQL через pgx, без ORM.
//
// Порядок списка обеспечивается парой (created_at DESC, seq ASC):
// seq — BIGSERIAL, монотонный номер вставки, разрешающий ничьи
// при одинаковом created_at.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/bigkaa/gocatalog/catalog-module/internal/domain/model"
	"github.com/bigkaa/gocatalog/catalog-module/internal/storage"
)

// DBTX — интерфейс для выполнения SQL-запросов.
// Реализуется как *pgxpool.Pool, так и pgx.Tx, что позволяет
// использовать хранилище как внутри, так и вне транзакций.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store — PostgreSQL-реализация storage.Store.
type Store struct {
	db DBTX
}

// New создаёт PostgreSQL-хранилище поверх пула подключений.
func New(db DBTX) *Store {
	return &Store{db: db}
}

const entryColumns = `id, title, kind, director, budget, location, duration, year_time, created_at, updated_at`

// scanEntry читает одну запись из pgx.Row / pgx.Rows.
func scanEntry(row pgx.Row) (*model.CatalogEntry, error) {
	e := &model.CatalogEntry{}
	err := row.Scan(
		&e.ID, &e.Title, &e.Kind, &e.Director, &e.Budget,
		&e.Location, &e.Duration, &e.YearTime, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	e.CreatedAt = e.CreatedAt.UTC()
	e.UpdatedAt = e.UpdatedAt.UTC()
	return e, nil
}

// List возвращает страницу записей (created_at DESC, seq ASC).
func (s *Store) List(ctx context.Context, page, pageSize int) ([]*model.CatalogEntry, error) {
	offset := (page - 1) * pageSize

	query := fmt.Sprintf(`
		SELECT %s
		FROM catalog_entries
		ORDER BY created_at DESC, seq ASC
		LIMIT $1 OFFSET $2`, entryColumns)

	rows, err := s.db.Query(ctx, query, pageSize, offset)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения списка записей: %w", err)
	}
	defer rows.Close()

	result := []*model.CatalogEntry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования записи: %w", err)
		}
		result = append(result, e)
	}
	return result, rows.Err()
}

// Count возвращает общее количество записей.
func (s *Store) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM catalog_entries`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("ошибка подсчёта записей: %w", err)
	}
	return count, nil
}

// Get возвращает запись по ID или storage.ErrNotFound.
func (s *Store) Get(ctx context.Context, id string) (*model.CatalogEntry, error) {
	query := fmt.Sprintf(`SELECT %s FROM catalog_entries WHERE id = $1`, entryColumns)

	e, err := scanEntry(s.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("ошибка получения записи: %w", err)
	}
	return e, nil
}

// Create присваивает записи новый UUID и вставляет её.
// created_at и updated_at устанавливаются БД одним выражением now(),
// поэтому сразу после создания они равны.
func (s *Store) Create(ctx context.Context, e *model.CatalogEntry) error {
	e.ID = uuid.NewString()

	query := `
		INSERT INTO catalog_entries (id, title, kind, director, budget, location, duration, year_time)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at`

	err := s.db.QueryRow(ctx, query,
		e.ID, e.Title, e.Kind, e.Director, e.Budget, e.Location, e.Duration, e.YearTime,
	).Scan(&e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return fmt.Errorf("ошибка создания записи: %w", err)
	}

	e.CreatedAt = e.CreatedAt.UTC()
	e.UpdatedAt = e.UpdatedAt.UTC()
	return nil
}

// Update накладывает заданные поля patch одним атомарным UPDATE
// (COALESCE оставляет не заданные поля без изменений) и возвращает
// результат слияния. storage.ErrNotFound, если записи нет.
func (s *Store) Update(ctx context.Context, id string, patch model.EntryPatch) (*model.CatalogEntry, error) {
	query := fmt.Sprintf(`
		UPDATE catalog_entries
		SET title = COALESCE($2, title),
			kind = COALESCE($3, kind),
			director = COALESCE($4, director),
			budget = COALESCE($5, budget),
			location = COALESCE($6, location),
			duration = COALESCE($7, duration),
			year_time = COALESCE($8, year_time),
			updated_at = now()
		WHERE id = $1
		RETURNING %s`, entryColumns)

	var kind *string
	if patch.Kind != nil {
		k := string(*patch.Kind)
		kind = &k
	}

	e, err := scanEntry(s.db.QueryRow(ctx, query,
		id, patch.Title, kind, patch.Director, patch.Budget,
		patch.Location, patch.Duration, patch.YearTime,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("ошибка обновления записи: %w", err)
	}
	return e, nil
}

// Delete окончательно удаляет запись.
// storage.ErrNotFound, если записи нет.
func (s *Store) Delete(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM catalog_entries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("ошибка удаления записи: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// Проверка соответствия интерфейсу на этапе компиляции.
var _ storage.Store = (*Store)(nil)
