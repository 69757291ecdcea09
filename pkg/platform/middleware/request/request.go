// Package request assigns a correlation ID to every HTTP request.
package request

import (
	"net/http"

	"github.com/google/uuid"

	"jornada/pkg/requestcontext"
)

// HeaderRequestID is read from incoming requests and echoed on responses.
const HeaderRequestID = "X-Request-ID"

const maxIncomingIDLength = 128

// RequestID reuses a caller-supplied X-Request-ID when present and reasonably
// sized, otherwise generates a UUID.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(HeaderRequestID)
		if id == "" || len(id) > maxIncomingIDLength {
			id = uuid.NewString()
		}
		w.Header().Set(HeaderRequestID, id)
		ctx := requestcontext.WithRequestID(r.Context(), id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
