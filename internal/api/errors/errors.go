// Пакет errors — конструкторы стандартных ошибок в формате конверта
// Catalog Module: {"status": false, "message": "...", "data": null,
// "errors": {"поле": ["сообщение", ...]}}.
// Все HTTP-ответы с ошибками должны использовать WriteError.
package errors //nolint:revive // конфликт имени со stdlib допустим внутри internal/api

import (
	"encoding/json"
	"net/http"
)

// errorBody — конверт ответа с ошибкой.
// Data присутствует всегда и равен null: клиент разбирает единый конверт
// для успешных и ошибочных ответов.
type errorBody struct {
	Status  bool                `json:"status"`
	Message string              `json:"message"`
	Data    any                 `json:"data"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

// WriteError записывает ответ ошибки в стандартном конверте.
// statusCode — HTTP статус-код, message — описание,
// fieldErrors — ошибки по полям (может быть nil).
func WriteError(w http.ResponseWriter, statusCode int, message string, fieldErrors map[string][]string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(errorBody{
		Status:  false,
		Message: message,
		Data:    nil,
		Errors:  fieldErrors,
	})
}

// --- Конструкторы для типичных ошибок ---

// ValidationError — 400 некорректные входные данные с ошибками по полям.
func ValidationError(w http.ResponseWriter, message string, fieldErrors map[string][]string) {
	WriteError(w, http.StatusBadRequest, message, fieldErrors)
}

// NotFound — 404 ресурс не найден.
func NotFound(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusNotFound, message, nil)
}

// InternalError — 500 внутренняя ошибка.
// Детали не раскрываются клиенту: полная ошибка логируется на сервере.
func InternalError(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusInternalServerError, message, nil)
}
