package main

import (
	"net/http"
	"strconv"
	"time"
)

// seedFromRequest reads the optional seed query parameter. Without one,
// each request fabricates a different run.
func seedFromRequest(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := r.URL.Query().Get("seed")
	if raw == "" {
		return time.Now().UnixNano(), true
	}
	seed, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		http.Error(w, "seed must be an integer", http.StatusBadRequest)
		return 0, false
	}
	return seed, true
}

// pathInt parses a positive integer route parameter.
func pathInt(raw string) (int, bool) {
	v, err := strconv.Atoi(raw)
	if err != nil || v < 1 {
		return 0, false
	}
	return v, true
}
