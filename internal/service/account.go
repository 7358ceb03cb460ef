package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"stellarion-backend/internal/auth"
	"stellarion-backend/internal/domain"
	"stellarion-backend/internal/logger"
	"stellarion-backend/internal/repository"
)

type accountService struct {
	userRepo repository.UserRepository
}

func NewAccountService(userRepo repository.UserRepository) AccountService {
	return &accountService{userRepo: userRepo}
}

// Reconcile resolves a verified identity to the local account, creating
// account and default settings atomically on first sight. The Firebase UID
// is the lookup key; the stored email stays authoritative when the
// provider reports a different one (drift is logged and stamped, not
// silently repaired).
func (s *accountService) Reconcile(ctx context.Context, ident auth.Identity) (*domain.User, error) {
	if ident.Subject == "" {
		return nil, fmt.Errorf("%w: identity has no subject", domain.ErrUnauthenticated)
	}

	user, err := s.userRepo.GetByFirebaseUID(ctx, ident.Subject)
	if err == nil {
		if ident.Email != "" && !strings.EqualFold(ident.Email, user.Email) {
			logger.Warn("identity email drift detected",
				"userID", user.ID, "storedEmail", user.Email, "tokenEmail", ident.Email)
			if err := s.userRepo.MarkEmailDrift(ctx, user.ID); err != nil {
				logger.Error("failed to stamp email drift", "userID", user.ID, "error", err)
			}
		}
		if err := s.userRepo.TouchLastLogin(ctx, user.ID); err != nil {
			logger.Error("failed to update last login", "userID", user.ID, "error", err)
		}
		return user, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, storageErr("lookup account", err)
	}

	if ident.Email == "" {
		return nil, fmt.Errorf("%w: identity has no email", domain.ErrValidation)
	}

	user = &domain.User{
		FirebaseUID: ident.Subject,
		Email:       ident.Email,
		Name:        displayName(ident),
		Role:        domain.DefaultRole,
		Active:      true,
	}
	if err := s.userRepo.CreateWithSettings(ctx, user); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			// Lost a provisioning race for the same subject; the winner's
			// row is the account.
			if existing, lookupErr := s.userRepo.GetByFirebaseUID(ctx, ident.Subject); lookupErr == nil {
				return existing, nil
			}
			return nil, fmt.Errorf("%w: account already exists for this identity", domain.ErrConflict)
		}
		return nil, storageErr("create account", err)
	}

	logger.Info("provisioned account for new identity", "userID", user.ID, "email", user.Email)
	return user, nil
}

// displayName prefers the provider-supplied name, falling back to the
// local part of the email.
func displayName(ident auth.Identity) string {
	if ident.Name != "" {
		return ident.Name
	}
	if at := strings.Index(ident.Email, "@"); at > 0 {
		return ident.Email[:at]
	}
	return ident.Email
}
