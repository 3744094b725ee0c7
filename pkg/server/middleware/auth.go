package middleware

import (
	"context"
	"crypto/sha256"
	"log/slog"
	"net/http"
	"strings"

	"esfpc/fpcheck/pkg/config"
)

// APIKeyHeader is the alternative to "Authorization: Bearer".
const APIKeyHeader = "X-API-Key"

// APIKeyQueryParam carries the key for websocket clients that cannot set
// headers.
const APIKeyQueryParam = "api_key"

type clientKey struct{}

// ClientName returns the name of the API key that authenticated the request.
func ClientName(ctx context.Context) (string, bool) {
	name, ok := ctx.Value(clientKey{}).(string)
	return name, ok
}

// APIKeyValidator checks keys against the configured set. Keys are stored
// hashed so lookups do not compare secrets byte by byte.
type APIKeyValidator struct {
	keys map[[sha256.Size]byte]string
}

// NewAPIKeyValidator creates a validator for keys.
func NewAPIKeyValidator(keys []config.APIKeyConfig) *APIKeyValidator {
	v := &APIKeyValidator{keys: make(map[[sha256.Size]byte]string, len(keys))}
	for _, k := range keys {
		v.keys[sha256.Sum256([]byte(k.Key))] = k.Name
	}
	return v
}

// Len returns the number of accepted keys.
func (v *APIKeyValidator) Len() int { return len(v.keys) }

// Validate returns the client name for key.
func (v *APIKeyValidator) Validate(key string) (string, bool) {
	if key == "" {
		return "", false
	}
	name, ok := v.keys[sha256.Sum256([]byte(key))]
	return name, ok
}

// APIKey rejects requests without a valid key with 401. A validator
// without keys lets every request through.
func APIKey(v *APIKeyValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next http.Handler) http.Handler {
		if v == nil || v.Len() == 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			name, ok := v.Validate(extractAPIKey(r))
			if !ok {
				logger.WarnContext(r.Context(), "rejected request without valid API key",
					"remote_addr", r.RemoteAddr,
					"path", r.URL.Path,
				)
				w.Header().Set("WWW-Authenticate", `Bearer realm="fpcheck"`)
				WriteError(w, http.StatusUnauthorized, "unauthorized", "missing or invalid API key")
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), clientKey{}, name)))
		})
	}
}

func extractAPIKey(r *http.Request) string {
	if auth := r.Header.Get("Authorization"); auth != "" {
		if key, ok := strings.CutPrefix(auth, "Bearer "); ok {
			return strings.TrimSpace(key)
		}
	}
	if key := r.Header.Get(APIKeyHeader); key != "" {
		return key
	}
	return r.URL.Query().Get(APIKeyQueryParam)
}
