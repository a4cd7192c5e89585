package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"custodia/pkg/requestcontext"
)

// RequestIDHeader is echoed back so callers can correlate responses with
// server logs.
const RequestIDHeader = "X-Request-Id"

// RequestID assigns every request an ID, honoring one supplied by a trusted
// proxy.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := r.Header.Get(RequestIDHeader)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, reqID)
		ctx := requestcontext.WithRequestID(r.Context(), reqID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
