package middlewares

import (
	"net/http"
	"strconv"
	"time"

	"andhrawala/internal/utils"
)

// PrometheusMiddleware records request count and duration per method, path,
// and status.
func PrometheusMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		lrw := &statusResponseWriter{ResponseWriter: w}
		next.ServeHTTP(lrw, r)

		status := strconv.Itoa(lrw.status())
		utils.HTTPRequestsTotal.WithLabelValues(r.Method, r.URL.Path, status).Inc()
		utils.HTTPRequestDurationSeconds.WithLabelValues(r.Method, r.URL.Path, status).Observe(time.Since(start).Seconds())
	})
}

// statusResponseWriter captures the status code written by a handler.
type statusResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (w *statusResponseWriter) WriteHeader(code int) {
	w.statusCode = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusResponseWriter) Write(data []byte) (int, error) {
	if w.statusCode == 0 {
		w.statusCode = http.StatusOK
	}
	return w.ResponseWriter.Write(data)
}

func (w *statusResponseWriter) status() int {
	if w.statusCode == 0 {
		return http.StatusOK
	}
	return w.statusCode
}
