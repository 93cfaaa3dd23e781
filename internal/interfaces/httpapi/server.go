package httpapi

import (
	"net/http"
	"time"

	"github.com/riskibarqy/fight-picks/internal/platform/logging"
)

func NewRouter(
	handler *Handler,
	verifier TokenVerifier,
	logger *logging.Logger,
	corsAllowedOrigins []string,
	internalJobToken string,
	requestTimeout time.Duration,
) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}

	mux := http.NewServeMux()
	registerSystemRoutes(mux, handler)
	registerPublicRoutes(mux, handler)
	registerAuthorizedRoutes(mux, handler, verifier)
	registerInternalJobRoutes(mux, handler, internalJobToken)

	return RequestTracing(
		RequestLogging(logger,
			CORS(corsAllowedOrigins,
				recoverPanic(logger,
					RequestTimeout(requestTimeout, mux)))))
}
