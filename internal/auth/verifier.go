package auth

import "context"

// Identity is the output of token verification: the external subject plus
// whatever profile claims the provider attached. Reconciliation turns this
// into a local account.
type Identity struct {
	Subject string
	Email   string
	Name    string
}

// TokenVerifier checks a bearer token and returns the identity claims.
// It is injected into the HTTP middleware so the identity provider can be
// swapped (Firebase in production, HS256 in development and tests).
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (*Identity, error)
}
