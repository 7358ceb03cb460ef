package http

import (
	"context"
	"fmt"

	"stellarion-backend/internal/domain"
)

type contextKey string

const accountKey contextKey = "account"

// WithAccount attaches the reconciled account to the request context. Only
// the auth middleware writes this key; handlers must never trust a
// client-supplied identity.
func WithAccount(ctx context.Context, user *domain.User) context.Context {
	return context.WithValue(ctx, accountKey, user)
}

// AccountFromContext extracts the authenticated account set by the auth
// middleware.
func AccountFromContext(ctx context.Context) (*domain.User, error) {
	user, ok := ctx.Value(accountKey).(*domain.User)
	if !ok || user == nil {
		return nil, fmt.Errorf("%w: no account in request context", domain.ErrUnauthenticated)
	}
	return user, nil
}
