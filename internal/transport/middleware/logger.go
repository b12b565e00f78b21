package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/alice-reader-backend/pkg/ctxutil"
)

type requestRecorder interface {
	HTTPRequest(method, code string)
}

// requestLog collects identifiers resolved further down the chain so the
// outer Logger can include them.
type requestLog struct {
	userID uuid.UUID
}

type requestLogKey struct{}

func requestLogFromCtx(ctx context.Context) *requestLog {
	rl, _ := ctx.Value(requestLogKey{}).(*requestLog)
	return rl
}

// probePaths are logged at debug level so health checks do not flood the log.
var probePaths = map[string]bool{"/live": true, "/ready": true, "/health": true, "/metrics": true}

// Logger logs one "http.request" record per request with method, path,
// status, response size, duration, request_id and (when Auth resolved one)
// user_id. 5xx responses log at error level and 4xx at warn. When metrics
// is non-nil every request is also counted by method and status.
func Logger(logger *slog.Logger, metrics requestRecorder) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			rl := &requestLog{}
			if id, ok := ctxutil.UserIDFromCtx(r.Context()); ok {
				rl.userID = id
			}

			next.ServeHTTP(sw, r.WithContext(context.WithValue(r.Context(), requestLogKey{}, rl)))

			attrs := []slog.Attr{
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", sw.status),
				slog.Int64("bytes", sw.bytes),
				slog.Duration("duration", time.Since(start)),
				slog.String("request_id", ctxutil.RequestIDFromCtx(r.Context())),
			}
			if rl.userID != uuid.Nil {
				attrs = append(attrs, slog.String("user_id", rl.userID.String()))
			}

			logger.LogAttrs(r.Context(), requestLevel(r.URL.Path, sw.status), "http.request", attrs...)

			if metrics != nil {
				metrics.HTTPRequest(r.Method, strconv.Itoa(sw.status))
			}
		})
	}
}

func requestLevel(path string, status int) slog.Level {
	switch {
	case status >= 500:
		return slog.LevelError
	case status >= 400:
		return slog.LevelWarn
	case probePaths[path]:
		return slog.LevelDebug
	default:
		return slog.LevelInfo
	}
}

// statusWriter captures the status code and body size.
type statusWriter struct {
	http.ResponseWriter
	status      int
	bytes       int64
	wroteHeader bool
}

func (w *statusWriter) WriteHeader(code int) {
	if !w.wroteHeader {
		w.status = code
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	w.wroteHeader = true
	n, err := w.ResponseWriter.Write(b)
	w.bytes += int64(n)
	return n, err
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (w *statusWriter) Unwrap() http.ResponseWriter { return w.ResponseWriter }
