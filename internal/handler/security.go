package handler

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"net/http"

	"github.com/optimus-erp/procure-api/internal/domain/auth"
)

// APIKeyHeader carries the client API key on mutating requests.
const APIKeyHeader = "X-Api-Key"

// RequireAPIKey returns middleware that authenticates requests via
// HMAC-SHA256 hashed API keys. The key from the request header is hashed with
// the pepper, looked up in the repository, and compared in constant time to
// prevent timing attacks.
func RequireAPIKey(apikeys auth.Repository, pepper []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get(APIKeyHeader)
			if key == "" {
				writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing api key")
				return
			}

			mac := hmac.New(sha256.New, pepper)
			mac.Write([]byte(key))
			hash := mac.Sum(nil)
			hexHash := hex.EncodeToString(hash)

			info, err := apikeys.FindByHash(r.Context(), hexHash)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "invalid api key")
				return
			}

			// Constant-time comparison guards against timing side-channels
			// even though the lookup already succeeded; the stored hash could
			// differ from what we computed if the repository returns a
			// stale or wrong row.
			storedBytes, err := hex.DecodeString(info.KeyHash)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "invalid api key")
				return
			}
			if subtle.ConstantTimeCompare(hash, storedBytes) != 1 {
				writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "invalid api key")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// HashAPIKey computes the stored form of an API key: hex-encoded HMAC-SHA256
// under the given pepper. Used by seeding and key provisioning.
func HashAPIKey(key string, pepper []byte) string {
	mac := hmac.New(sha256.New, pepper)
	mac.Write([]byte(key))
	return hex.EncodeToString(mac.Sum(nil))
}
