package http

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"stellarion-backend/internal/auth"
	"stellarion-backend/internal/domain"
	"stellarion-backend/internal/logger"
	"stellarion-backend/internal/service"
)

// RequestLog assigns a request id and logs each request on completion.
func RequestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.NewString()
		w.Header().Set("X-Request-ID", requestID)

		start := time.Now()
		next.ServeHTTP(w, r)
		logger.Info("request handled",
			"requestID", requestID, "method", r.Method, "path", r.URL.Path, "duration", time.Since(start))
	})
}

// AuthMiddleware verifies the bearer token, reconciles the identity to a
// local account, and puts the account on the request context. Deactivated
// accounts fail here, not in each handler.
type AuthMiddleware struct {
	verifier   auth.TokenVerifier
	accountSvc service.AccountService
}

func NewAuthMiddleware(verifier auth.TokenVerifier, accountSvc service.AccountService) *AuthMiddleware {
	return &AuthMiddleware{verifier: verifier, accountSvc: accountSvc}
}

func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, err := extractBearerToken(r)
		if err != nil {
			writeError(w, err)
			return
		}

		ident, err := m.verifier.VerifyToken(r.Context(), token)
		if err != nil {
			writeError(w, err)
			return
		}

		user, err := m.accountSvc.Reconcile(r.Context(), *ident)
		if err != nil {
			writeError(w, err)
			return
		}
		if !user.Active {
			writeError(w, fmt.Errorf("%w: account is deactivated", domain.ErrForbidden))
			return
		}

		next.ServeHTTP(w, r.WithContext(WithAccount(r.Context(), user)))
	})
}

// RequireRoles gates a handler on one of the canonical role sets. It runs
// after Authenticate, so a missing account is an unauthenticated request,
// while a wrong role is a forbidden one.
func RequireRoles(set domain.RoleSet) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := AccountFromContext(r.Context())
			if err != nil {
				writeError(w, err)
				return
			}
			if !set.Contains(user.Role) {
				writeError(w, fmt.Errorf("%w: role %s may not perform this operation", domain.ErrForbidden, user.Role))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func extractBearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", fmt.Errorf("%w: authorization token is not provided", domain.ErrUnauthenticated)
	}
	token := header
	if len(token) > 7 && strings.EqualFold(token[0:7], "bearer ") {
		token = token[7:]
	}
	return token, nil
}
