package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"stellarion-backend/internal/auth"
	"stellarion-backend/internal/domain"
)

func TestHS256Verifier(t *testing.T) {
	verifier := auth.NewHS256Verifier("local-development-secret-at-least-32-chars")
	ctx := context.Background()

	t.Run("Roundtrip", func(t *testing.T) {
		token, err := verifier.IssueToken(auth.Identity{Subject: "fb-1", Email: "astro@test.com", Name: "Astro"}, time.Hour)
		assert.NoError(t, err)

		ident, err := verifier.VerifyToken(ctx, token)
		assert.NoError(t, err)
		assert.Equal(t, "fb-1", ident.Subject)
		assert.Equal(t, "astro@test.com", ident.Email)
		assert.Equal(t, "Astro", ident.Name)
	})

	t.Run("Expired", func(t *testing.T) {
		token, err := verifier.IssueToken(auth.Identity{Subject: "fb-1"}, -time.Minute)
		assert.NoError(t, err)

		ident, err := verifier.VerifyToken(ctx, token)
		assert.Nil(t, ident)
		assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	})

	t.Run("WrongSecret", func(t *testing.T) {
		other := auth.NewHS256Verifier("a-different-secret-also-32-characters!!")
		token, err := other.IssueToken(auth.Identity{Subject: "fb-1"}, time.Hour)
		assert.NoError(t, err)

		ident, err := verifier.VerifyToken(ctx, token)
		assert.Nil(t, ident)
		assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	})

	t.Run("MissingSubject", func(t *testing.T) {
		token, err := verifier.IssueToken(auth.Identity{Email: "nobody@test.com"}, time.Hour)
		assert.NoError(t, err)

		ident, err := verifier.VerifyToken(ctx, token)
		assert.Nil(t, ident)
		assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	})

	t.Run("Garbage", func(t *testing.T) {
		ident, err := verifier.VerifyToken(ctx, "not-a-jwt")
		assert.Nil(t, ident)
		assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	})
}
