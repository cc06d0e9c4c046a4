package middleware

import (
    "bufio"
    "net"
    "net/http"
    "time"
    "github.com/nexusnova/atlas/pkg/logger"
    "go.uber.org/zap"
)

// Logging logs basic request information with request ID.
func Logging(next http.Handler) http.Handler {
    return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        start := time.Now()
        rw := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
        next.ServeHTTP(rw, r)
        logger.L().Info("request",
            zap.String("id", GetRequestID(r.Context())),
            zap.String("method", r.Method),
            zap.String("path", r.URL.Path),
            zap.Int("status", rw.status),
            zap.Duration("duration", time.Since(start)),
            zap.String("remote", r.RemoteAddr),
        )
    })
}

// statusRecorder captures the response status while staying transparent to
// writers that need the optional interfaces: websocket upgrades hijack the
// connection and streaming responses flush.
type statusRecorder struct {
    http.ResponseWriter
    status int
}
func (s *statusRecorder) WriteHeader(code int) { s.status = code; s.ResponseWriter.WriteHeader(code) }

func (s *statusRecorder) Flush() {
    if f, ok := s.ResponseWriter.(http.Flusher); ok { f.Flush() }
}

func (s *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
    if hj, ok := s.ResponseWriter.(http.Hijacker); ok { return hj.Hijack() }
    return nil, nil, http.ErrNotSupported
}

func (s *statusRecorder) Unwrap() http.ResponseWriter { return s.ResponseWriter }


