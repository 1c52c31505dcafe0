package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/nexgenbattles/tournament-api/internal/domain"
	"github.com/nexgenbattles/tournament-api/internal/http/response"
	"github.com/nexgenbattles/tournament-api/internal/platform/googleauth"
	"github.com/nexgenbattles/tournament-api/internal/repo/postgres"
	"github.com/nexgenbattles/tournament-api/pkg/logger"
)

type ctxKey string

const ctxPrincipal ctxKey = "principal"

// RequireUser gates protected routes. It verifies the bearer token against
// the identity issuer, resolves the local user by the claim's email, and
// places an immutable Principal in the request context.
//
// Status contract: missing header 401, failed verification 403, verified
// token without a local account 404. The 404 is deliberate gating, not an
// error: a valid Google token is worthless here until the user has been
// provisioned locally.
//
// Verification results are not cached; every request re-verifies the token
// and re-reads the user, so a role change is effective on the next request.
func RequireUser(verifier googleauth.TokenVerifier, users postgres.UsersRepo) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				response.Unauthorized(w, "no token provided")
				return
			}

			// "Bearer <token>"; a header without the scheme yields an empty
			// token the verifier rejects.
			var raw string
			if _, after, found := strings.Cut(authHeader, " "); found {
				raw = after
			}

			claim, err := verifier.Verify(r.Context(), raw)
			if err != nil {
				logger.DebugContext(r.Context(), "Token verification failed", "error", err)
				response.InvalidToken(w, "invalid or expired token")
				return
			}

			user, err := users.FindByEmail(r.Context(), claim.Email)
			if err != nil {
				logger.ErrorContext(r.Context(), "User lookup failed", "error", err)
				response.InternalError(w, "internal server error")
				return
			}
			if user == nil {
				response.NotFound(w, "user not found")
				return
			}

			principal := domain.Principal{
				IdentityClaim: *claim,
				UserID:        user.ID,
				Role:          user.Role,
			}

			ctx := context.WithValue(r.Context(), ctxPrincipal, principal)
			ctx = context.WithValue(ctx, logger.UserIDKey, user.ID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// PrincipalFrom returns the resolved principal, or false when the request
// did not pass through RequireUser.
func PrincipalFrom(r *http.Request) (domain.Principal, bool) {
	p, ok := r.Context().Value(ctxPrincipal).(domain.Principal)
	return p, ok
}

// WithPrincipal injects a principal directly; handler tests use it in place
// of the full middleware chain.
func WithPrincipal(ctx context.Context, p domain.Principal) context.Context {
	return context.WithValue(ctx, ctxPrincipal, p)
}
