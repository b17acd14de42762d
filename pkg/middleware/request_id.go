package middleware

import (
	"net/http"

	"github.com/testlane/testlane/pkg/requestid"
)

const requestIDHeader = "X-Request-Id"

// RequestID attaches a request id to every request. An id supplied by the
// caller in the X-Request-Id header is kept, otherwise a new one is generated.
// The id is echoed back in the response header.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = requestid.Generate()
		}

		ctx := requestid.ToContext(r.Context(), id)
		w.Header().Set(requestIDHeader, id)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
