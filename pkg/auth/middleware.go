package auth

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/JaimeStill/jobboard/pkg/apperr"
	"github.com/JaimeStill/jobboard/pkg/handlers"
)

// Middleware verifies the session token from the configured cookie or an
// Authorization bearer header and attaches the principal to the request context.
// Requests without a token are rejected as Unauthorized; token failures are
// reported through the apperr taxonomy.
func Middleware(tm *TokenManager, cookieName string, logger *slog.Logger) func(http.Handler) http.Handler {
	logger = logger.With("middleware", "auth")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := extractToken(r, cookieName)
			if raw == "" {
				handlers.RespondError(
					w, logger,
					apperr.Wrap(apperr.Unauthorized, "User Not Authorized", ErrMissingToken),
				)
				return
			}

			p, err := tm.Verify(raw)
			if err != nil {
				handlers.RespondError(w, logger, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), p)))
		})
	}
}

func extractToken(r *http.Request, cookieName string) string {
	if c, err := r.Cookie(cookieName); err == nil && c.Value != "" {
		return c.Value
	}

	header := r.Header.Get("Authorization")
	if after, ok := strings.CutPrefix(header, "Bearer "); ok {
		return strings.TrimSpace(after)
	}
	return ""
}
