// entries.go — обработчики /api/movies endpoints.
// Пять операций каталога: список с пагинацией, создание, получение,
// частичное обновление, удаление. Вся валидация входных данных — здесь
// (через пакет validation); хранилище доверяет форме своих аргументов.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	apierrors "github.com/bigkaa/gocatalog/catalog-module/internal/api/errors"
	"github.com/bigkaa/gocatalog/catalog-module/internal/api/validation"
	"github.com/bigkaa/gocatalog/catalog-module/internal/service"
)

// Значения по умолчанию и границы параметров пагинации.
const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

// ListEntries — GET /api/movies?page=&limit=.
// Возвращает страницу записей (новые первые) и метаданные пагинации.
func (h *APIHandler) ListEntries(w http.ResponseWriter, r *http.Request) {
	page := defaultPage
	limit := defaultLimit
	errs := validation.FieldErrors{}

	if v := r.URL.Query().Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			errs.Add("page", "должно быть целым числом >= 1")
		} else {
			page = n
		}
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > maxLimit {
			errs.Add("limit", "должно быть целым числом от 1 до 100")
		} else {
			limit = n
		}
	}
	if !errs.OK() {
		apierrors.ValidationError(w, "Некорректные параметры пагинации", errs)
		return
	}

	entries, total, err := h.catalog.List(r.Context(), page, limit)
	if err != nil {
		h.logger.Error("Ошибка получения списка записей", "error", err)
		apierrors.InternalError(w, "Ошибка получения списка записей")
		return
	}

	writeJSON(w, http.StatusOK, Response{
		Status:     true,
		Data:       entryList(entries),
		Pagination: newPagination(page, limit, total),
	})
}

// CreateEntry — POST /api/movies.
// Валидирует тело по полной схеме и создаёт запись;
// ID и timestamps присваивает хранилище.
func (h *APIHandler) CreateEntry(w http.ResponseWriter, r *http.Request) {
	var req validation.EntryCreate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierrors.ValidationError(w, "Некорректный JSON: "+err.Error(), nil)
		return
	}

	if errs := req.Validate(); !errs.OK() {
		apierrors.ValidationError(w, "Ошибка валидации", errs)
		return
	}

	entry := req.Entry()
	if err := h.catalog.Create(r.Context(), entry); err != nil {
		h.logger.Error("Ошибка создания записи", "title", req.Title, "error", err)
		apierrors.InternalError(w, "Ошибка создания записи")
		return
	}

	writeJSON(w, http.StatusCreated, Response{
		Status:  true,
		Message: "Запись создана",
		Data:    entry,
	})
}

// GetEntry — GET /api/movies/{id}.
// 400 при синтаксически некорректном ID, 404 если записи нет.
func (h *APIHandler) GetEntry(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !validation.ValidID(id) {
		apierrors.ValidationError(w, "Некорректный формат идентификатора",
			validation.FieldErrors{"id": {"должен быть корректным UUID"}})
		return
	}

	entry, err := h.catalog.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			apierrors.NotFound(w, "Запись не найдена")
			return
		}
		h.logger.Error("Ошибка получения записи", "id", id, "error", err)
		apierrors.InternalError(w, "Ошибка получения записи")
		return
	}

	writeJSON(w, http.StatusOK, Response{Status: true, Data: entry})
}

// UpdateEntry — PUT /api/movies/{id}.
// Частичное обновление: не заданные поля сохраняются, пустое тело
// отклоняется. Существование проверяется до обновления; NotFound
// из хранилища — защитный backstop на случай гонки с удалением.
func (h *APIHandler) UpdateEntry(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !validation.ValidID(id) {
		apierrors.ValidationError(w, "Некорректный формат идентификатора",
			validation.FieldErrors{"id": {"должен быть корректным UUID"}})
		return
	}

	var req validation.EntryUpdate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierrors.ValidationError(w, "Некорректный JSON: "+err.Error(), nil)
		return
	}

	if errs := req.Validate(); !errs.OK() {
		apierrors.ValidationError(w, "Ошибка валидации", errs)
		return
	}

	// Проверка существования до обновления
	if _, err := h.catalog.Get(r.Context(), id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			apierrors.NotFound(w, "Запись не найдена")
			return
		}
		h.logger.Error("Ошибка проверки записи", "id", id, "error", err)
		apierrors.InternalError(w, "Ошибка обновления записи")
		return
	}

	entry, err := h.catalog.Update(r.Context(), id, req.Patch())
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			apierrors.NotFound(w, "Запись не найдена")
			return
		}
		h.logger.Error("Ошибка обновления записи", "id", id, "error", err)
		apierrors.InternalError(w, "Ошибка обновления записи")
		return
	}

	writeJSON(w, http.StatusOK, Response{
		Status:  true,
		Message: "Запись обновлена",
		Data:    entry,
	})
}

// DeleteEntry — DELETE /api/movies/{id}.
// Удаление окончательное; повторное удаление того же ID — 404.
func (h *APIHandler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !validation.ValidID(id) {
		apierrors.ValidationError(w, "Некорректный формат идентификатора",
			validation.FieldErrors{"id": {"должен быть корректным UUID"}})
		return
	}

	if err := h.catalog.Delete(r.Context(), id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			apierrors.NotFound(w, "Запись не найдена")
			return
		}
		h.logger.Error("Ошибка удаления записи", "id", id, "error", err)
		apierrors.InternalError(w, "Ошибка удаления записи")
		return
	}

	writeJSON(w, http.StatusOK, Response{
		Status:  true,
		Message: "Запись удалена",
		Data:    nil,
	})
}
