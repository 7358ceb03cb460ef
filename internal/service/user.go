package service

import (
	"context"
	"encoding/json"
	"fmt"

	"stellarion-backend/internal/domain"
	"stellarion-backend/internal/logger"
	"stellarion-backend/internal/repository"
)

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) GetProfile(ctx context.Context, userID int32) (*domain.User, *domain.UserSettings, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, nil, storageErr("get profile", err)
	}
	settings, err := s.userRepo.GetSettings(ctx, userID)
	if err != nil {
		return nil, nil, storageErr("get settings", err)
	}
	return user, settings, nil
}

// UpdateProfile changes display name and the free-form profile blob. Role
// and email are never writable here: role only moves through the approval
// workflows and email belongs to the identity provider.
func (s *userService) UpdateProfile(ctx context.Context, userID int32, name string, profile json.RawMessage) (*domain.User, error) {
	if name == "" && len(profile) == 0 {
		return nil, fmt.Errorf("%w: nothing to update", domain.ErrValidation)
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, storageErr("get profile", err)
	}
	if name != "" {
		user.Name = name
	}
	if len(profile) > 0 {
		user.Profile = profile
	}
	if err := s.userRepo.UpdateProfile(ctx, user); err != nil {
		return nil, storageErr("update profile", err)
	}
	return user, nil
}

func (s *userService) Deactivate(ctx context.Context, userID int32) error {
	if err := s.userRepo.SetActive(ctx, userID, false); err != nil {
		return storageErr("deactivate account", err)
	}
	logger.Info("account deactivated", "userID", userID)
	return nil
}
