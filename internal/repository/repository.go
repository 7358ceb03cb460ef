package repository

import (
	"context"
	"time"

	"stellarion-backend/internal/domain"
)

// Repositories translate storage-level failures into the domain error
// kinds: absent rows become domain.ErrNotFound, unique-constraint
// violations become domain.ErrConflict. Anything else is returned as-is
// for the service layer to wrap as a storage failure.

type UserRepository interface {
	// CreateWithSettings inserts the account row and its default settings
	// row in one transaction. Neither exists if either insert fails.
	CreateWithSettings(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int32) (*domain.User, error)
	GetByFirebaseUID(ctx context.Context, uid string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdateProfile(ctx context.Context, user *domain.User) error
	// UpdateRole is a single atomic UPDATE; concurrent role writes resolve
	// by last commit, never by application-level read-modify-write.
	UpdateRole(ctx context.Context, userID int32, role domain.Role) error
	TouchLastLogin(ctx context.Context, userID int32) error
	MarkEmailDrift(ctx context.Context, userID int32) error
	SetActive(ctx context.Context, userID int32, active bool) error
	GetSettings(ctx context.Context, userID int32) (*domain.UserSettings, error)
	ListByRoles(ctx context.Context, roles []domain.Role) ([]domain.User, error)
}

type ApplicationRepository interface {
	Create(ctx context.Context, app *domain.Application) error
	// GetByID excludes soft-deleted rows; callers cannot see a deleted
	// application through any repository read path.
	GetByID(ctx context.Context, id int32) (*domain.Application, error)
	ListByOwner(ctx context.Context, userID int32) ([]domain.Application, error)
	// ListAll returns all live applications, filtered by status when
	// status is non-empty.
	ListAll(ctx context.Context, status domain.ApplicationStatus) ([]domain.Application, error)
	UpdateForm(ctx context.Context, app *domain.Application) error
	SoftDelete(ctx context.Context, id int32) error
	UpdateStatus(ctx context.Context, id int32, status domain.ApplicationStatus, reviewerID int32, notes string) error
	ListPendingOlderThan(ctx context.Context, cutoff time.Time) ([]domain.Application, error)
}

type RoleRequestRepository interface {
	Create(ctx context.Context, req *domain.RoleUpgradeRequest) error
	GetByID(ctx context.Context, id int32) (*domain.RoleUpgradeRequest, error)
	ListByUser(ctx context.Context, userID int32) ([]domain.RoleUpgradeRequest, error)
	ListByStatus(ctx context.Context, status domain.RoleRequestStatus) ([]domain.RoleUpgradeRequest, error)
	Review(ctx context.Context, id int32, status domain.RoleRequestStatus, reviewerID int32, notes string) error
	ListPendingOlderThan(ctx context.Context, cutoff time.Time) ([]domain.RoleUpgradeRequest, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, note *domain.Notification) error
	List(ctx context.Context, userID int32, limit, offset int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, id, userID int32) error
}
