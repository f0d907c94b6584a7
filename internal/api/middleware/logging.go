// logging.go — middleware логирования HTTP-запросов каталога.
// Уровень записи выбирается по статус-коду ответа.
package middleware

import (
	"log/slog"
	"net/http"
	"time"
)

// statusRecorder перехватывает статус-код и размер тела ответа.
type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int64
}

func (rec *statusRecorder) WriteHeader(code int) {
	rec.status = code
	rec.ResponseWriter.WriteHeader(code)
}

func (rec *statusRecorder) Write(b []byte) (int, error) {
	n, err := rec.ResponseWriter.Write(b)
	rec.bytes += int64(n)
	return n, err
}

// Unwrap позволяет http.ResponseController добраться до оригинального ResponseWriter.
func (rec *statusRecorder) Unwrap() http.ResponseWriter {
	return rec.ResponseWriter
}

// requestLevel — уровень записи по статус-коду:
// INFO для успешных ответов, WARN для клиентских ошибок (4xx),
// ERROR для серверных (5xx).
func requestLevel(status int) slog.Level {
	switch {
	case status >= 500:
		return slog.LevelError
	case status >= 400:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}

// RequestLogger возвращает middleware, логирующий каждый запрос к каталогу:
// метод, путь, строка запроса (параметры пагинации), статус, длительность,
// размер ответа, remote_addr.
func RequestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	logger = logger.With(slog.String("component", "http"))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			logger.LogAttrs(r.Context(), requestLevel(rec.status), "HTTP запрос",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("query", r.URL.RawQuery),
				slog.Int("status", rec.status),
				slog.Duration("duration", time.Since(start)),
				slog.Int64("bytes", rec.bytes),
				slog.String("remote_addr", r.RemoteAddr),
			)
		})
	}
}
