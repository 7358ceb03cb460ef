package service

import (
	"context"
	"encoding/json"
	"fmt"

	"stellarion-backend/internal/domain"
	"stellarion-backend/internal/logger"
	"stellarion-backend/internal/repository"
)

type applicationService struct {
	appRepo  repository.ApplicationRepository
	userRepo repository.UserRepository
	noteRepo repository.NotificationRepository
}

func NewApplicationService(
	appRepo repository.ApplicationRepository,
	userRepo repository.UserRepository,
	noteRepo repository.NotificationRepository,
) ApplicationService {
	return &applicationService{
		appRepo:  appRepo,
		userRepo: userRepo,
		noteRepo: noteRepo,
	}
}

func (s *applicationService) Submit(ctx context.Context, actor *domain.User, category domain.ApplicationCategory, phone, motivation string, details json.RawMessage) (*domain.Application, error) {
	if !domain.ValidCategory(category) {
		return nil, fmt.Errorf("%w: unknown application category %q", domain.ErrValidation, category)
	}
	if motivation == "" {
		return nil, fmt.Errorf("%w: motivation is required", domain.ErrValidation)
	}

	// Identity fields always come from the account, never from the form
	// body, so a caller cannot apply on someone else's behalf.
	app := &domain.Application{
		UserID:     actor.ID,
		Category:   category,
		Name:       actor.Name,
		Email:      actor.Email,
		Phone:      phone,
		Motivation: motivation,
		Details:    details,
		Status:     domain.ApplicationStatusPending,
	}
	if err := s.appRepo.Create(ctx, app); err != nil {
		return nil, storageErr("submit application", err)
	}

	logger.Info("application submitted", "applicationID", app.ID, "userID", actor.ID, "category", category)
	return app, nil
}

func (s *applicationService) ListOwn(ctx context.Context, actor *domain.User) ([]domain.Application, error) {
	apps, err := s.appRepo.ListByOwner(ctx, actor.ID)
	if err != nil {
		return nil, storageErr("list own applications", err)
	}
	return apps, nil
}

func (s *applicationService) ListAll(ctx context.Context, status domain.ApplicationStatus) ([]domain.Application, error) {
	if status != "" && !domain.ValidApplicationStatus(status) {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrValidation, status)
	}
	apps, err := s.appRepo.ListAll(ctx, status)
	if err != nil {
		return nil, storageErr("list applications", err)
	}
	return apps, nil
}

func (s *applicationService) Get(ctx context.Context, actor *domain.User, id int32) (*domain.Application, error) {
	app, err := s.appRepo.GetByID(ctx, id)
	if err != nil {
		return nil, storageErr("get application", err)
	}
	// Someone else's application reads as absent for non-reviewers so
	// owners cannot probe for existence.
	if app.UserID != actor.ID && !domain.Reviewers.Contains(actor.Role) {
		return nil, fmt.Errorf("%w: application %d", domain.ErrNotFound, id)
	}
	return app, nil
}

func (s *applicationService) Edit(ctx context.Context, actor *domain.User, id int32, phone, motivation string, details json.RawMessage) (*domain.Application, error) {
	app, err := s.appRepo.GetByID(ctx, id)
	if err != nil {
		return nil, storageErr("get application", err)
	}
	if app.UserID != actor.ID {
		return nil, fmt.Errorf("%w: application %d", domain.ErrNotFound, id)
	}
	if !app.Editable() {
		return nil, fmt.Errorf("%w: cannot edit this application, it has already been %s",
			domain.ErrForbidden, app.Status)
	}

	if phone != "" {
		app.Phone = phone
	}
	if motivation != "" {
		app.Motivation = motivation
	}
	if len(details) > 0 {
		app.Details = details
	}
	if err := s.appRepo.UpdateForm(ctx, app); err != nil {
		return nil, storageErr("edit application", err)
	}
	return app, nil
}

func (s *applicationService) Delete(ctx context.Context, actor *domain.User, id int32) error {
	app, err := s.appRepo.GetByID(ctx, id)
	if err != nil {
		return storageErr("get application", err)
	}
	if app.UserID != actor.ID && !domain.Reviewers.Contains(actor.Role) {
		return fmt.Errorf("%w: application %d", domain.ErrNotFound, id)
	}
	if err := s.appRepo.SoftDelete(ctx, id); err != nil {
		return storageErr("delete application", err)
	}
	logger.Info("application soft-deleted", "applicationID", id, "actorID", actor.ID)
	return nil
}

func (s *applicationService) Review(ctx context.Context, reviewer *domain.User, id int32, decision domain.ApplicationStatus, notes string) (*domain.Application, error) {
	if !domain.Reviewers.Contains(reviewer.Role) {
		return nil, fmt.Errorf("%w: role %s may not review applications", domain.ErrForbidden, reviewer.Role)
	}
	if decision != domain.ApplicationStatusAccepted && decision != domain.ApplicationStatusRejected {
		return nil, fmt.Errorf("%w: decision must be %s or %s",
			domain.ErrValidation, domain.ApplicationStatusAccepted, domain.ApplicationStatusRejected)
	}

	app, err := s.appRepo.GetByID(ctx, id)
	if err != nil {
		return nil, storageErr("get application", err)
	}
	if !app.CanTransitionTo(decision) {
		return nil, fmt.Errorf("%w: application is already %s", domain.ErrForbidden, app.Status)
	}
	if app.Status != decision {
		if err := s.appRepo.UpdateStatus(ctx, id, decision, reviewer.ID, notes); err != nil {
			return nil, storageErr("update application status", err)
		}
		app.Status = decision
		app.ReviewerID = &reviewer.ID
		app.ReviewerNotes = notes
		s.notifyDecision(ctx, app)
	}

	// The role write runs on a replayed accept too, so a retry converges
	// after a failure between the status commit and the role grant.
	if decision == domain.ApplicationStatusAccepted {
		role, _ := domain.RoleForCategory(app.Category)
		// Single atomic UPDATE; concurrent accepts for one account resolve
		// by last commit.
		if err := s.userRepo.UpdateRole(ctx, app.UserID, role); err != nil {
			return nil, storageErr("apply role change", err)
		}
		logger.Info("role granted via application", "userID", app.UserID, "role", role, "applicationID", id, "reviewerID", reviewer.ID)
	}

	return app, nil
}

func (s *applicationService) notifyDecision(ctx context.Context, app *domain.Application) {
	verb := "rejected"
	if app.Status == domain.ApplicationStatusAccepted {
		verb = "accepted"
	}
	note := &domain.Notification{
		UserID:  app.UserID,
		Title:   fmt.Sprintf("Your %s application was %s", app.Category, verb),
		Message: app.ReviewerNotes,
		Attributes: map[string]string{
			"application_id": fmt.Sprintf("%d", app.ID),
			"category":       string(app.Category),
			"status":         string(app.Status),
		},
	}
	if err := s.noteRepo.Create(ctx, note); err != nil {
		logger.Error("failed to create decision notification", "applicationID", app.ID, "error", err)
	}
}
