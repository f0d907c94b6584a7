package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
)

// logRecord — запись лога в JSON-формате для разбора в тестах.
type logRecord struct {
	Level     string `json:"level"`
	Msg       string `json:"msg"`
	Component string `json:"component"`
	Method    string `json:"method"`
	Path      string `json:"path"`
	Query     string `json:"query"`
	Status    int    `json:"status"`
	Bytes     int64  `json:"bytes"`
}

// serveLogged пропускает один запрос через RequestLogger и возвращает запись лога.
func serveLogged(t *testing.T, status int, body string, target string) logRecord {
	t.Helper()

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	handler := RequestLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		if body != "" {
			w.Write([]byte(body))
		}
	}))

	req := httptest.NewRequest(http.MethodGet, target, nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	var rec logRecord
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("разбор записи лога: %v (%s)", err, buf.String())
	}
	return rec
}

func TestRequestLogger_Fields(t *testing.T) {
	rec := serveLogged(t, http.StatusOK, `{"status":true}`, "/api/movies?page=2&limit=5")

	if rec.Msg != "HTTP запрос" {
		t.Errorf("msg = %q", rec.Msg)
	}
	if rec.Component != "http" {
		t.Errorf("component = %q, хотели http", rec.Component)
	}
	if rec.Method != http.MethodGet {
		t.Errorf("method = %q", rec.Method)
	}
	if rec.Path != "/api/movies" {
		t.Errorf("path = %q", rec.Path)
	}
	if rec.Query != "page=2&limit=5" {
		t.Errorf("query = %q", rec.Query)
	}
	if rec.Status != http.StatusOK {
		t.Errorf("status = %d", rec.Status)
	}
	if rec.Bytes != int64(len(`{"status":true}`)) {
		t.Errorf("bytes = %d", rec.Bytes)
	}
}

// Уровень записи зависит от статус-кода ответа.
func TestRequestLogger_LevelByStatus(t *testing.T) {
	tests := []struct {
		status int
		level  string
	}{
		{http.StatusOK, "INFO"},
		{http.StatusCreated, "INFO"},
		{http.StatusBadRequest, "WARN"},
		{http.StatusNotFound, "WARN"},
		{http.StatusInternalServerError, "ERROR"},
	}

	for _, tt := range tests {
		rec := serveLogged(t, tt.status, "", "/api/movies")
		if rec.Level != tt.level {
			t.Errorf("статус %d: уровень %q, хотели %q", tt.status, rec.Level, tt.level)
		}
	}
}

// Обработчик без явного WriteHeader логируется как 200.
func TestRequestLogger_DefaultStatus(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	handler := RequestLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/metrics", nil))

	var rec logRecord
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("разбор записи лога: %v", err)
	}
	if rec.Status != http.StatusOK {
		t.Errorf("status = %d, хотели 200", rec.Status)
	}
}
