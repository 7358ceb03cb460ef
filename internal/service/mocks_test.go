package service_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"stellarion-backend/internal/domain"
)

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) CreateWithSettings(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByFirebaseUID(ctx context.Context, uid string) (*domain.User, error) {
	args := m.Called(ctx, uid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) UpdateProfile(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) UpdateRole(ctx context.Context, userID int32, role domain.Role) error {
	args := m.Called(ctx, userID, role)
	return args.Error(0)
}
func (m *MockUserRepo) TouchLastLogin(ctx context.Context, userID int32) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}
func (m *MockUserRepo) MarkEmailDrift(ctx context.Context, userID int32) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}
func (m *MockUserRepo) SetActive(ctx context.Context, userID int32, active bool) error {
	args := m.Called(ctx, userID, active)
	return args.Error(0)
}
func (m *MockUserRepo) GetSettings(ctx context.Context, userID int32) (*domain.UserSettings, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserSettings), args.Error(1)
}
func (m *MockUserRepo) ListByRoles(ctx context.Context, roles []domain.Role) ([]domain.User, error) {
	args := m.Called(ctx, roles)
	return args.Get(0).([]domain.User), args.Error(1)
}

// MockApplicationRepo
type MockApplicationRepo struct {
	mock.Mock
}

func (m *MockApplicationRepo) Create(ctx context.Context, app *domain.Application) error {
	args := m.Called(ctx, app)
	return args.Error(0)
}
func (m *MockApplicationRepo) GetByID(ctx context.Context, id int32) (*domain.Application, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Application), args.Error(1)
}
func (m *MockApplicationRepo) ListByOwner(ctx context.Context, userID int32) ([]domain.Application, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Application), args.Error(1)
}
func (m *MockApplicationRepo) ListAll(ctx context.Context, status domain.ApplicationStatus) ([]domain.Application, error) {
	args := m.Called(ctx, status)
	return args.Get(0).([]domain.Application), args.Error(1)
}
func (m *MockApplicationRepo) UpdateForm(ctx context.Context, app *domain.Application) error {
	args := m.Called(ctx, app)
	return args.Error(0)
}
func (m *MockApplicationRepo) SoftDelete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockApplicationRepo) UpdateStatus(ctx context.Context, id int32, status domain.ApplicationStatus, reviewerID int32, notes string) error {
	args := m.Called(ctx, id, status, reviewerID, notes)
	return args.Error(0)
}
func (m *MockApplicationRepo) ListPendingOlderThan(ctx context.Context, cutoff time.Time) ([]domain.Application, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).([]domain.Application), args.Error(1)
}

// MockRoleRequestRepo
type MockRoleRequestRepo struct {
	mock.Mock
}

func (m *MockRoleRequestRepo) Create(ctx context.Context, req *domain.RoleUpgradeRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}
func (m *MockRoleRequestRepo) GetByID(ctx context.Context, id int32) (*domain.RoleUpgradeRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RoleUpgradeRequest), args.Error(1)
}
func (m *MockRoleRequestRepo) ListByUser(ctx context.Context, userID int32) ([]domain.RoleUpgradeRequest, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.RoleUpgradeRequest), args.Error(1)
}
func (m *MockRoleRequestRepo) ListByStatus(ctx context.Context, status domain.RoleRequestStatus) ([]domain.RoleUpgradeRequest, error) {
	args := m.Called(ctx, status)
	return args.Get(0).([]domain.RoleUpgradeRequest), args.Error(1)
}
func (m *MockRoleRequestRepo) Review(ctx context.Context, id int32, status domain.RoleRequestStatus, reviewerID int32, notes string) error {
	args := m.Called(ctx, id, status, reviewerID, notes)
	return args.Error(0)
}
func (m *MockRoleRequestRepo) ListPendingOlderThan(ctx context.Context, cutoff time.Time) ([]domain.RoleUpgradeRequest, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).([]domain.RoleUpgradeRequest), args.Error(1)
}

// MockNotificationRepo
type MockNotificationRepo struct {
	mock.Mock
}

func (m *MockNotificationRepo) Create(ctx context.Context, note *domain.Notification) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}
func (m *MockNotificationRepo) List(ctx context.Context, userID int32, limit, offset int32) ([]domain.Notification, int32, error) {
	args := m.Called(ctx, userID, limit, offset)
	return args.Get(0).([]domain.Notification), args.Get(1).(int32), args.Error(2)
}
func (m *MockNotificationRepo) MarkAsRead(ctx context.Context, id, userID int32) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}
