package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/ferabensrl/mare-pedidos-backend/pkg/logger"
)

const sessionIDHeader = "X-Session-Id"

// Session resolves the caller's session id from the X-Session-Id
// header, minting one when the header is absent. The id is always
// echoed back so a first-time client can pick it up and keep sending
// it, the way the original kept its state per browser.
func Session(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID := r.Header.Get(sessionIDHeader)
			if sessionID == "" {
				sessionID = uuid.NewString()
			}

			w.Header().Set(sessionIDHeader, sessionID)

			ctx := WithSessionID(r.Context(), sessionID)
			if logg != nil {
				ctx = logg.WithSessionID(ctx, sessionID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
