package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type contextKey string

const contextRequestID = contextKey("RequestID")
const httpHeaderRequestID = "X-Request-Id"

// AddHttp attaches a request id and a logger carrying it to the request
// context. An incoming X-Request-Id header is kept, otherwise a new id is
// generated. The id is echoed in the response header.
func AddHttp(next http.Handler) http.Handler {
	fn := func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(httpHeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		logger := log.With().Str("requestID", id).Logger()
		ctx := logger.WithContext(r.Context())
		ctx = CtxNewWithRequestID(ctx, id)
		r = r.WithContext(ctx)
		if w != nil {
			w.Header().Set(httpHeaderRequestID, id)
		}
		start := time.Now()
		next.ServeHTTP(w, r)
		logger.Debug().Msgf("%s %s from %s took %v", r.Method, r.URL.Path, r.RemoteAddr, time.Since(start))
	}
	return http.HandlerFunc(fn)
}

func CtxGetRequestID(ctx context.Context) string {
	if id, ok := ctx.Value(contextRequestID).(string); ok {
		return id
	}
	return ""
}

func CtxNewWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, contextRequestID, id)
}
