package httputil

import (
	"compress/gzip"
	"io"
	"net/http"

	"github.com/andybalholm/brotli"
)

// DecompressPayload swaps the request body for a decompressing reader
// when the client declared a Content-Encoding, so handlers always read
// plain JSON.
func DecompressPayload(next http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()

		switch r.Header.Get("Content-Encoding") {
		case "br":
			r.Body = io.NopCloser(brotli.NewReader(r.Body))
		case "gzip":
			gz, err := gzip.NewReader(r.Body)
			if err != nil {
				http.Error(w, "malformed gzip payload", http.StatusBadRequest)
				return
			}
			r.Body = io.NopCloser(gz)
		}

		next.ServeHTTP(w, r)
	}
}
