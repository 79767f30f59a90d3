package middleware

import (
	"bufio"
	"context"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/marinehub/fleetdesk/pkg/configuration"
	"github.com/marinehub/fleetdesk/pkg/constants"
)

type responseCaptureWriter struct {
	http.ResponseWriter
	statusCode    int
	statusWritten bool
}

func (w *responseCaptureWriter) WriteHeader(code int) {
	if !w.statusWritten {
		w.statusCode = code
		w.statusWritten = true
		w.ResponseWriter.WriteHeader(code)
	}
}

// Status returns the HTTP status code
func (w *responseCaptureWriter) Status() int {
	if w.statusCode == 0 {
		return http.StatusOK
	}
	return w.statusCode
}

func (w *responseCaptureWriter) Flush() {
	if flusher, ok := w.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

func (w *responseCaptureWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	if hijacker, ok := w.ResponseWriter.(http.Hijacker); ok {
		return hijacker.Hijack()
	}
	return nil, nil, http.ErrNotSupported
}

func getRealIP(r *http.Request, conf *configuration.Configuration) string {
	if len(r.Header.Get(conf.RealIPHeader)) > 0 {
		return r.Header.Get(conf.RealIPHeader)
	}
	return r.RemoteAddr
}

func getRequestID(r *http.Request, conf *configuration.Configuration) string {
	if len(r.Header.Get(conf.RequestIDHeader)) > 0 {
		return r.Header.Get(conf.RequestIDHeader)
	}
	return uuid.New().String()
}

// WithLogger attaches a request-scoped logrus entry to the context and logs
// the request lifecycle with a stable request id.
func WithLogger(logger *logrus.Logger) mux.MiddlewareFunc {
	conf := configuration.Use()
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				start := time.Now()
				requestID := getRequestID(r, conf)

				fieldsLogger := logger.WithFields(logrus.Fields{
					"request-id": requestID,
					"path":       r.RequestURI,
					"method":     r.Method,
				})

				fieldsLogger.WithFields(logrus.Fields{
					"host":       r.Host,
					"ip":         getRealIP(r, conf),
					"user-agent": r.UserAgent(),
				}).Info("request started")

				ctx := r.Context()
				ctx = context.WithValue(ctx, constants.LoggerKey, fieldsLogger)
				ctx = context.WithValue(ctx, constants.RequestIDKey, requestID)

				wrapped := &responseCaptureWriter{ResponseWriter: w}
				next.ServeHTTP(wrapped, r.WithContext(ctx))

				fieldsLogger.WithFields(logrus.Fields{
					"duration": time.Since(start).String(),
					"status":   wrapped.Status(),
				}).Info("request completed")
			},
		)
	}
}
