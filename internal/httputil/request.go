package httputil

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// GetRequiredQueryParameters reads the named query parameters from the
// request. When any are missing or blank it writes a 400 listing all of
// them and returns false. The returned logger carries every parameter
// as a field.
func GetRequiredQueryParameters(w http.ResponseWriter, r *http.Request, keys ...string) (map[string]string, zerolog.Logger, bool) {
	query := r.URL.Query()
	params := make(map[string]string, len(keys))
	logger := log.With()

	var missing []string
	for _, key := range keys {
		value := query.Get(key)
		if value == "" {
			missing = append(missing, key)
			continue
		}
		params[key] = value
		logger = logger.Str(key, value)
	}
	if len(missing) > 0 {
		http.Error(w, fmt.Sprintf("missing required query parameters: %s", strings.Join(missing, ", ")), http.StatusBadRequest)
		return nil, zerolog.Nop(), false
	}
	return params, logger.Logger(), true
}
