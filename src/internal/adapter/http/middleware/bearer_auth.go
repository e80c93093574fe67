package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/api-sage/intl-payments-portal/src/internal/commons"
	"github.com/api-sage/intl-payments-portal/src/internal/domain"
	"github.com/api-sage/intl-payments-portal/src/internal/logger"
	"github.com/api-sage/intl-payments-portal/src/internal/usecase/service_interfaces"
)

type principalKey struct{}

// BearerAuth authenticates the request from its Authorization header and,
// when roles are given, requires one of them. The header may carry either
// "Bearer <token>" or the bare token.
func BearerAuth(authorizer service_interfaces.Authorizer, roles ...domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, err := authorizer.Authorize(tokenFromHeader(r.Header.Get("Authorization")), roles...)
			if err != nil {
				status := http.StatusUnauthorized
				if commons.KindOf(err) == commons.KindForbidden {
					status = http.StatusForbidden
				}
				logger.Info("bearer auth middleware rejected request", logger.Fields{
					"method": r.Method,
					"path":   r.URL.Path,
					"status": status,
				})
				writeError(w, status, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), principal)))
		})
	}
}

func WithPrincipal(ctx context.Context, principal domain.Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, principal)
}

func PrincipalFromContext(ctx context.Context) (domain.Principal, bool) {
	principal, ok := ctx.Value(principalKey{}).(domain.Principal)
	return principal, ok
}

func tokenFromHeader(header string) string {
	header = strings.TrimSpace(header)
	if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return header
}

func writeError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(commons.FailureResponse[struct{}](err))
}
