package service

import (
	"context"
	"encoding/json"

	"stellarion-backend/internal/auth"
	"stellarion-backend/internal/domain"
)

// AccountService maps a verified external identity onto a local account,
// provisioning one on first sight. Token verification happens upstream;
// this service only consumes its output.
type AccountService interface {
	Reconcile(ctx context.Context, ident auth.Identity) (*domain.User, error)
}

type UserService interface {
	GetProfile(ctx context.Context, userID int32) (*domain.User, *domain.UserSettings, error)
	UpdateProfile(ctx context.Context, userID int32, name string, profile json.RawMessage) (*domain.User, error)
	Deactivate(ctx context.Context, userID int32) error
}

// ApplicationService is the guide/mentor/influencer application workflow.
// The actor is always the reconciled account from the request context.
type ApplicationService interface {
	Submit(ctx context.Context, actor *domain.User, category domain.ApplicationCategory, phone, motivation string, details json.RawMessage) (*domain.Application, error)
	ListOwn(ctx context.Context, actor *domain.User) ([]domain.Application, error)
	ListAll(ctx context.Context, status domain.ApplicationStatus) ([]domain.Application, error)
	Get(ctx context.Context, actor *domain.User, id int32) (*domain.Application, error)
	Edit(ctx context.Context, actor *domain.User, id int32, phone, motivation string, details json.RawMessage) (*domain.Application, error)
	Delete(ctx context.Context, actor *domain.User, id int32) error
	Review(ctx context.Context, reviewer *domain.User, id int32, decision domain.ApplicationStatus, notes string) (*domain.Application, error)
}

type RoleRequestService interface {
	Submit(ctx context.Context, actor *domain.User, requestedRole domain.Role, reason string, evidence []string) (*domain.RoleUpgradeRequest, error)
	ListOwn(ctx context.Context, actor *domain.User) ([]domain.RoleUpgradeRequest, error)
	ListAll(ctx context.Context, status domain.RoleRequestStatus) ([]domain.RoleUpgradeRequest, error)
	Review(ctx context.Context, reviewer *domain.User, id int32, decision domain.RoleRequestStatus, notes string) (*domain.RoleUpgradeRequest, error)
}

type NotificationService interface {
	GetNotifications(ctx context.Context, userID int32, page, pageSize int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, userID, notificationID int32) error
}
