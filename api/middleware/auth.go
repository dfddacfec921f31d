package middleware

import (
	"net/http"
	"strings"

	"github.com/tailorline/storefront/api/responses"
	pkgAuth "github.com/tailorline/storefront/pkg/auth"
	pkgerrors "github.com/tailorline/storefront/pkg/errors"
	"github.com/tailorline/storefront/pkg/logger"
)

// AdminAuthenticator verifies a bearer token issued by the admin login.
type AdminAuthenticator interface {
	Authenticate(token string) (*pkgAuth.AdminClaims, error)
}

// AdminAuth rejects requests without a valid admin bearer token.
func AdminAuth(authn AdminAuthenticator, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r.Header.Get("Authorization"))
			if token == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}
			if authn == nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "admin auth not configured"))
				return
			}

			claims, err := authn.Authenticate(token)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token"))
				return
			}

			ctx := WithAdminSubject(r.Context(), claims.Subject)
			if logg != nil {
				ctx = logg.WithAdminSubject(ctx, claims.Subject)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(raw string) string {
	token := strings.TrimSpace(raw)
	if len(token) >= 7 && strings.EqualFold(token[:7], "bearer ") {
		token = strings.TrimSpace(token[7:])
	}
	return token
}
