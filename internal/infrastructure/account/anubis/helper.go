package anubis

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	crerr "github.com/cockroachdb/errors"
)

// transientError marks failures the breaker should count: network errors,
// 5xx and 429 responses.
func transientError(cause error) error {
	return fmt.Errorf("%w: %v", errAnubisTransient, cause)
}

func isCircuitFailure(err error) bool {
	return crerr.Is(err, errAnubisTransient)
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:8])
}

// buildURL joins the introspection path onto the base URL. An absolute path
// wins over the base.
func buildURL(baseURL, path string) string {
	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	path = strings.TrimSpace(path)
	switch {
	case path == "":
		return base
	case strings.Contains(path, "://"):
		return path
	default:
		return base + "/" + strings.TrimLeft(path, "/")
	}
}
