package httputil

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// ParseJSON decodes JSON from the request body into the given destination.
// It limits the request body size to prevent abuse and provides clear error messages.
func ParseJSON(w http.ResponseWriter, r *http.Request, dest interface{}) error {
	// Backup uploads carry base64 file payloads, so the cap is generous.
	r.Body = http.MaxBytesReader(w, r.Body, 50<<20)

	decoder := json.NewDecoder(r.Body)
	// DisallowUnknownFields is intentionally NOT used; clients may send
	// fields this backend ignores. Validation happens downstream via
	// domain-specific validators.

	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	return nil
}
