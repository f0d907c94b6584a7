// handler.go — основной обработчик API Catalog Module.
// Объединяет доменные обработчики, владеет конвертом ответа.
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/bigkaa/gocatalog/catalog-module/internal/domain/model"
	"github.com/bigkaa/gocatalog/catalog-module/internal/service"
)

// APIHandler — основной обработчик API Catalog Module.
// Делегирует запросы в сервисный слой.
type APIHandler struct {
	catalog *service.CatalogService
	health  *HealthHandler
	logger  *slog.Logger
}

// NewAPIHandler создаёт основной обработчик API.
func NewAPIHandler(catalog *service.CatalogService, health *HealthHandler, logger *slog.Logger) *APIHandler {
	return &APIHandler{
		catalog: catalog,
		health:  health,
		logger:  logger.With(slog.String("component", "api_handler")),
	}
}

// HealthLive — liveness probe (делегируется в HealthHandler).
func (h *APIHandler) HealthLive(w http.ResponseWriter, r *http.Request) {
	h.health.HealthLive(w, r)
}

// HealthReady — readiness probe (делегируется в HealthHandler).
func (h *APIHandler) HealthReady(w http.ResponseWriter, r *http.Request) {
	h.health.HealthReady(w, r)
}

// GetMetrics — Prometheus метрики (делегируется в HealthHandler).
func (h *APIHandler) GetMetrics(w http.ResponseWriter, r *http.Request) {
	h.health.GetMetrics(w, r)
}

// --- Конверт ответа ---

// Response — единый конверт успешного ответа API.
type Response struct {
	Status     bool        `json:"status"`
	Message    string      `json:"message,omitempty"`
	Data       any         `json:"data"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

// Pagination — метаданные пагинации списка.
type Pagination struct {
	Page    int  `json:"page"`
	Limit   int  `json:"limit"`
	Total   int  `json:"total"`
	Pages   int  `json:"pages"`
	HasNext bool `json:"hasNext"`
	HasPrev bool `json:"hasPrev"`
}

// newPagination вычисляет метаданные пагинации:
// pages = ceil(total/limit), hasNext = page < pages, hasPrev = page > 1.
func newPagination(page, limit, total int) *Pagination {
	pages := 0
	if total > 0 {
		pages = (total + limit - 1) / limit
	}
	return &Pagination{
		Page:    page,
		Limit:   limit,
		Total:   total,
		Pages:   pages,
		HasNext: page < pages,
		HasPrev: page > 1,
	}
}

// --- Вспомогательные функции ---

// writeJSON записывает JSON-ответ с указанным статусом.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// entryList приводит срез записей к непустому значению:
// пустая страница сериализуется как [], а не null.
func entryList(entries []*model.CatalogEntry) []*model.CatalogEntry {
	if entries == nil {
		return []*model.CatalogEntry{}
	}
	return entries
}
