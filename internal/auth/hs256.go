package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"stellarion-backend/internal/domain"
)

// IdentityClaims carries the same fields a Firebase ID token would, signed
// locally with HS256. Used when running without Firebase credentials.
type IdentityClaims struct {
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// HS256Verifier is the development and test stand-in for Firebase: same
// TokenVerifier contract, local shared-secret tokens.
type HS256Verifier struct {
	secret []byte
}

func NewHS256Verifier(secret string) *HS256Verifier {
	return &HS256Verifier{secret: []byte(secret)}
}

func (v *HS256Verifier) VerifyToken(ctx context.Context, token string) (*Identity, error) {
	parsed, err := jwt.ParseWithClaims(token, &IdentityClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: token expired", domain.ErrUnauthenticated)
		}
		return nil, fmt.Errorf("%w: invalid token", domain.ErrUnauthenticated)
	}

	claims, ok := parsed.Claims.(*IdentityClaims)
	if !ok || !parsed.Valid || claims.Subject == "" {
		return nil, fmt.Errorf("%w: invalid token", domain.ErrUnauthenticated)
	}

	return &Identity{Subject: claims.Subject, Email: claims.Email, Name: claims.Name}, nil
}

// IssueToken signs a token for the given identity, valid for ttl. Used by
// development tooling and tests.
func (v *HS256Verifier) IssueToken(ident Identity, ttl time.Duration) (string, error) {
	claims := IdentityClaims{
		Email: ident.Email,
		Name:  ident.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   ident.Subject,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "stellarion-dev",
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(v.secret)
}
