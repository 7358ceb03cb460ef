package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"stellarion-backend/internal/domain"
	"stellarion-backend/internal/service"
)

func learner(id int32) *domain.User {
	return &domain.User{ID: id, Email: "learner@test.com", Name: "Learner", Role: domain.RoleLearner, Active: true}
}

func moderator(id int32) *domain.User {
	return &domain.User{ID: id, Email: "mod@test.com", Name: "Mod", Role: domain.RoleModerator, Active: true}
}

func TestApplicationService_Submit(t *testing.T) {
	ctx := context.Background()

	t.Run("IdentityFieldsComeFromAccount", func(t *testing.T) {
		mockAppRepo := new(MockApplicationRepo)
		svc := service.NewApplicationService(mockAppRepo, new(MockUserRepo), new(MockNotificationRepo))

		actor := learner(1)
		mockAppRepo.On("Create", ctx, mock.MatchedBy(func(a *domain.Application) bool {
			return a.UserID == 1 && a.Name == actor.Name && a.Email == actor.Email &&
				a.Status == domain.ApplicationStatusPending
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Application).ID = 11
		}).Return(nil).Once()

		app, err := svc.Submit(ctx, actor, domain.ApplicationCategoryGuide, "555", "I teach stargazing", nil)
		assert.NoError(t, err)
		assert.Equal(t, int32(11), app.ID)
		mockAppRepo.AssertExpectations(t)
	})

	t.Run("UnknownCategory", func(t *testing.T) {
		svc := service.NewApplicationService(new(MockApplicationRepo), new(MockUserRepo), new(MockNotificationRepo))

		_, err := svc.Submit(ctx, learner(1), "ASTRONAUT", "", "why not", nil)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("MissingMotivation", func(t *testing.T) {
		svc := service.NewApplicationService(new(MockApplicationRepo), new(MockUserRepo), new(MockNotificationRepo))

		_, err := svc.Submit(ctx, learner(1), domain.ApplicationCategoryGuide, "", "", nil)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("SecondPendingIsConflict", func(t *testing.T) {
		mockAppRepo := new(MockApplicationRepo)
		svc := service.NewApplicationService(mockAppRepo, new(MockUserRepo), new(MockNotificationRepo))

		mockAppRepo.On("Create", ctx, mock.Anything).Return(domain.ErrConflict).Once()

		_, err := svc.Submit(ctx, learner(1), domain.ApplicationCategoryGuide, "", "again", nil)
		assert.ErrorIs(t, err, domain.ErrConflict)
	})
}

func TestApplicationService_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("OwnerSeesOwn", func(t *testing.T) {
		mockAppRepo := new(MockApplicationRepo)
		svc := service.NewApplicationService(mockAppRepo, new(MockUserRepo), new(MockNotificationRepo))

		mockAppRepo.On("GetByID", ctx, int32(11)).
			Return(&domain.Application{ID: 11, UserID: 1, Status: domain.ApplicationStatusPending}, nil).Once()

		app, err := svc.Get(ctx, learner(1), 11)
		assert.NoError(t, err)
		assert.Equal(t, int32(11), app.ID)
	})

	t.Run("StrangerReadsAsAbsent", func(t *testing.T) {
		mockAppRepo := new(MockApplicationRepo)
		svc := service.NewApplicationService(mockAppRepo, new(MockUserRepo), new(MockNotificationRepo))

		mockAppRepo.On("GetByID", ctx, int32(11)).
			Return(&domain.Application{ID: 11, UserID: 1, Status: domain.ApplicationStatusPending}, nil).Once()

		app, err := svc.Get(ctx, learner(2), 11)
		assert.Nil(t, app)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("ReviewerSeesAny", func(t *testing.T) {
		mockAppRepo := new(MockApplicationRepo)
		svc := service.NewApplicationService(mockAppRepo, new(MockUserRepo), new(MockNotificationRepo))

		mockAppRepo.On("GetByID", ctx, int32(11)).
			Return(&domain.Application{ID: 11, UserID: 1, Status: domain.ApplicationStatusPending}, nil).Once()

		app, err := svc.Get(ctx, moderator(9), 11)
		assert.NoError(t, err)
		assert.Equal(t, int32(1), app.UserID)
	})
}

func TestApplicationService_Edit(t *testing.T) {
	ctx := context.Background()

	t.Run("PendingIsEditable", func(t *testing.T) {
		mockAppRepo := new(MockApplicationRepo)
		svc := service.NewApplicationService(mockAppRepo, new(MockUserRepo), new(MockNotificationRepo))

		mockAppRepo.On("GetByID", ctx, int32(11)).
			Return(&domain.Application{ID: 11, UserID: 1, Status: domain.ApplicationStatusPending, Motivation: "old"}, nil).Once()
		mockAppRepo.On("UpdateForm", ctx, mock.MatchedBy(func(a *domain.Application) bool {
			return a.Motivation == "updated motivation"
		})).Return(nil).Once()

		app, err := svc.Edit(ctx, learner(1), 11, "", "updated motivation", nil)
		assert.NoError(t, err)
		assert.Equal(t, "updated motivation", app.Motivation)
		mockAppRepo.AssertExpectations(t)
	})

	t.Run("DecidedIsFrozen", func(t *testing.T) {
		mockAppRepo := new(MockApplicationRepo)
		svc := service.NewApplicationService(mockAppRepo, new(MockUserRepo), new(MockNotificationRepo))

		mockAppRepo.On("GetByID", ctx, int32(11)).
			Return(&domain.Application{ID: 11, UserID: 1, Status: domain.ApplicationStatusRejected}, nil).Once()

		_, err := svc.Edit(ctx, learner(1), 11, "", "try again", nil)
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("StrangerEditReadsAsAbsent", func(t *testing.T) {
		mockAppRepo := new(MockApplicationRepo)
		svc := service.NewApplicationService(mockAppRepo, new(MockUserRepo), new(MockNotificationRepo))

		mockAppRepo.On("GetByID", ctx, int32(11)).
			Return(&domain.Application{ID: 11, UserID: 1, Status: domain.ApplicationStatusPending}, nil).Once()

		_, err := svc.Edit(ctx, learner(2), 11, "", "hijack", nil)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestApplicationService_Delete(t *testing.T) {
	ctx := context.Background()

	mockAppRepo := new(MockApplicationRepo)
	svc := service.NewApplicationService(mockAppRepo, new(MockUserRepo), new(MockNotificationRepo))

	mockAppRepo.On("GetByID", ctx, int32(11)).
		Return(&domain.Application{ID: 11, UserID: 1, Status: domain.ApplicationStatusPending}, nil).Once()
	mockAppRepo.On("SoftDelete", ctx, int32(11)).Return(nil).Once()

	assert.NoError(t, svc.Delete(ctx, learner(1), 11))
	mockAppRepo.AssertExpectations(t)
}

func TestApplicationService_Review(t *testing.T) {
	ctx := context.Background()

	t.Run("AcceptGrantsRole", func(t *testing.T) {
		mockAppRepo := new(MockApplicationRepo)
		mockUserRepo := new(MockUserRepo)
		mockNoteRepo := new(MockNotificationRepo)
		svc := service.NewApplicationService(mockAppRepo, mockUserRepo, mockNoteRepo)

		reviewer := moderator(9)
		mockAppRepo.On("GetByID", ctx, int32(11)).
			Return(&domain.Application{ID: 11, UserID: 1, Category: domain.ApplicationCategoryGuide, Status: domain.ApplicationStatusPending}, nil).Once()
		mockAppRepo.On("UpdateStatus", ctx, int32(11), domain.ApplicationStatusAccepted, int32(9), "solid").Return(nil).Once()
		mockUserRepo.On("UpdateRole", ctx, int32(1), domain.RoleGuide).Return(nil).Once()
		mockNoteRepo.On("Create", ctx, mock.MatchedBy(func(n *domain.Notification) bool {
			return n.UserID == 1
		})).Return(nil).Once()

		app, err := svc.Review(ctx, reviewer, 11, domain.ApplicationStatusAccepted, "solid")
		assert.NoError(t, err)
		assert.Equal(t, domain.ApplicationStatusAccepted, app.Status)
		mockAppRepo.AssertExpectations(t)
		mockUserRepo.AssertExpectations(t)
		mockNoteRepo.AssertExpectations(t)
	})

	t.Run("RejectLeavesRoleUntouched", func(t *testing.T) {
		mockAppRepo := new(MockApplicationRepo)
		mockUserRepo := new(MockUserRepo)
		mockNoteRepo := new(MockNotificationRepo)
		svc := service.NewApplicationService(mockAppRepo, mockUserRepo, mockNoteRepo)

		mockAppRepo.On("GetByID", ctx, int32(11)).
			Return(&domain.Application{ID: 11, UserID: 1, Category: domain.ApplicationCategoryMentor, Status: domain.ApplicationStatusPending}, nil).Once()
		mockAppRepo.On("UpdateStatus", ctx, int32(11), domain.ApplicationStatusRejected, int32(9), "too thin").Return(nil).Once()
		mockNoteRepo.On("Create", ctx, mock.Anything).Return(nil).Once()

		app, err := svc.Review(ctx, moderator(9), 11, domain.ApplicationStatusRejected, "too thin")
		assert.NoError(t, err)
		assert.Equal(t, domain.ApplicationStatusRejected, app.Status)
		mockUserRepo.AssertNotCalled(t, "UpdateRole", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("ReplaySameDecisionIsIdempotent", func(t *testing.T) {
		mockAppRepo := new(MockApplicationRepo)
		mockUserRepo := new(MockUserRepo)
		svc := service.NewApplicationService(mockAppRepo, mockUserRepo, new(MockNotificationRepo))

		mockAppRepo.On("GetByID", ctx, int32(11)).
			Return(&domain.Application{ID: 11, UserID: 1, Category: domain.ApplicationCategoryGuide, Status: domain.ApplicationStatusAccepted}, nil).Once()
		// The role write is re-issued on replay; it is the idempotent part.
		mockUserRepo.On("UpdateRole", ctx, int32(1), domain.RoleGuide).Return(nil).Once()

		app, err := svc.Review(ctx, moderator(9), 11, domain.ApplicationStatusAccepted, "")
		assert.NoError(t, err)
		assert.Equal(t, domain.ApplicationStatusAccepted, app.Status)
		mockAppRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		mockUserRepo.AssertExpectations(t)
	})

	t.Run("RetryAfterFailedRoleWriteConverges", func(t *testing.T) {
		mockAppRepo := new(MockApplicationRepo)
		mockUserRepo := new(MockUserRepo)
		mockNoteRepo := new(MockNotificationRepo)
		svc := service.NewApplicationService(mockAppRepo, mockUserRepo, mockNoteRepo)

		// First attempt: status commits, the role write fails.
		mockAppRepo.On("GetByID", ctx, int32(11)).
			Return(&domain.Application{ID: 11, UserID: 1, Category: domain.ApplicationCategoryGuide, Status: domain.ApplicationStatusPending}, nil).Once()
		mockAppRepo.On("UpdateStatus", ctx, int32(11), domain.ApplicationStatusAccepted, int32(9), "").Return(nil).Once()
		mockNoteRepo.On("Create", ctx, mock.Anything).Return(nil).Once()
		mockUserRepo.On("UpdateRole", ctx, int32(1), domain.RoleGuide).Return(assert.AnError).Once()

		_, err := svc.Review(ctx, moderator(9), 11, domain.ApplicationStatusAccepted, "")
		assert.ErrorIs(t, err, domain.ErrStorage)

		// Retry of the same decision re-issues the role write and succeeds.
		mockAppRepo.On("GetByID", ctx, int32(11)).
			Return(&domain.Application{ID: 11, UserID: 1, Category: domain.ApplicationCategoryGuide, Status: domain.ApplicationStatusAccepted}, nil).Once()
		mockUserRepo.On("UpdateRole", ctx, int32(1), domain.RoleGuide).Return(nil).Once()

		app, err := svc.Review(ctx, moderator(9), 11, domain.ApplicationStatusAccepted, "")
		assert.NoError(t, err)
		assert.Equal(t, domain.ApplicationStatusAccepted, app.Status)
		mockUserRepo.AssertNumberOfCalls(t, "UpdateRole", 2)
		mockAppRepo.AssertExpectations(t)
	})

	t.Run("SwitchingDecisionIsForbidden", func(t *testing.T) {
		mockAppRepo := new(MockApplicationRepo)
		svc := service.NewApplicationService(mockAppRepo, new(MockUserRepo), new(MockNotificationRepo))

		mockAppRepo.On("GetByID", ctx, int32(11)).
			Return(&domain.Application{ID: 11, UserID: 1, Status: domain.ApplicationStatusRejected}, nil).Once()

		_, err := svc.Review(ctx, moderator(9), 11, domain.ApplicationStatusAccepted, "")
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("NonReviewerIsForbidden", func(t *testing.T) {
		svc := service.NewApplicationService(new(MockApplicationRepo), new(MockUserRepo), new(MockNotificationRepo))

		_, err := svc.Review(ctx, learner(2), 11, domain.ApplicationStatusAccepted, "")
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("PendingIsNotADecision", func(t *testing.T) {
		svc := service.NewApplicationService(new(MockApplicationRepo), new(MockUserRepo), new(MockNotificationRepo))

		_, err := svc.Review(ctx, moderator(9), 11, domain.ApplicationStatusPending, "")
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}
