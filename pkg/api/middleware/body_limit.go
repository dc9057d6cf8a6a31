package middleware

import (
	"fmt"
	"net/http"
)

// BodySizeLimit caps request bodies at maxBytes. Requests that declare a
// larger Content-Length are refused before the handler runs; streamed
// bodies fail with *http.MaxBytesError once they cross the cap. Bodiless
// requests pass through untouched.
func BodySizeLimit(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body == nil || r.Body == http.NoBody {
				next.ServeHTTP(w, r)
				return
			}
			if r.ContentLength > maxBytes {
				writeError(w, http.StatusRequestEntityTooLarge,
					fmt.Sprintf("request body of %d bytes exceeds %d", r.ContentLength, maxBytes))
				return
			}
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}
