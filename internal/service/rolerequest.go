package service

import (
	"context"
	"fmt"

	"stellarion-backend/internal/domain"
	"stellarion-backend/internal/logger"
	"stellarion-backend/internal/repository"
)

type roleRequestService struct {
	reqRepo  repository.RoleRequestRepository
	userRepo repository.UserRepository
	noteRepo repository.NotificationRepository
}

func NewRoleRequestService(
	reqRepo repository.RoleRequestRepository,
	userRepo repository.UserRepository,
	noteRepo repository.NotificationRepository,
) RoleRequestService {
	return &roleRequestService{
		reqRepo:  reqRepo,
		userRepo: userRepo,
		noteRepo: noteRepo,
	}
}

func (s *roleRequestService) Submit(ctx context.Context, actor *domain.User, requestedRole domain.Role, reason string, evidence []string) (*domain.RoleUpgradeRequest, error) {
	if !domain.ValidRole(requestedRole) {
		return nil, fmt.Errorf("%w: unknown role %q", domain.ErrValidation, requestedRole)
	}
	if domain.Reviewers.Contains(requestedRole) {
		return nil, fmt.Errorf("%w: role %s cannot be requested", domain.ErrValidation, requestedRole)
	}
	if requestedRole == actor.Role {
		return nil, fmt.Errorf("%w: account already has role %s", domain.ErrValidation, requestedRole)
	}
	if reason == "" {
		return nil, fmt.Errorf("%w: reason is required", domain.ErrValidation)
	}

	// Current role is captured from the account, not the request body.
	req := &domain.RoleUpgradeRequest{
		UserID:        actor.ID,
		CurrentRole:   actor.Role,
		RequestedRole: requestedRole,
		Reason:        reason,
		Evidence:      evidence,
		Status:        domain.RoleRequestStatusPending,
	}
	if err := s.reqRepo.Create(ctx, req); err != nil {
		return nil, storageErr("submit role request", err)
	}

	logger.Info("role upgrade requested", "requestID", req.ID, "userID", actor.ID, "from", actor.Role, "to", requestedRole)
	return req, nil
}

func (s *roleRequestService) ListOwn(ctx context.Context, actor *domain.User) ([]domain.RoleUpgradeRequest, error) {
	reqs, err := s.reqRepo.ListByUser(ctx, actor.ID)
	if err != nil {
		return nil, storageErr("list own role requests", err)
	}
	return reqs, nil
}

func (s *roleRequestService) ListAll(ctx context.Context, status domain.RoleRequestStatus) ([]domain.RoleUpgradeRequest, error) {
	if status != "" && !domain.ValidRoleRequestStatus(status) {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrValidation, status)
	}
	reqs, err := s.reqRepo.ListByStatus(ctx, status)
	if err != nil {
		return nil, storageErr("list role requests", err)
	}
	return reqs, nil
}

func (s *roleRequestService) Review(ctx context.Context, reviewer *domain.User, id int32, decision domain.RoleRequestStatus, notes string) (*domain.RoleUpgradeRequest, error) {
	if !domain.Reviewers.Contains(reviewer.Role) {
		return nil, fmt.Errorf("%w: role %s may not review role requests", domain.ErrForbidden, reviewer.Role)
	}
	if decision != domain.RoleRequestStatusApproved && decision != domain.RoleRequestStatusRejected {
		return nil, fmt.Errorf("%w: decision must be %s or %s",
			domain.ErrValidation, domain.RoleRequestStatusApproved, domain.RoleRequestStatusRejected)
	}

	req, err := s.reqRepo.GetByID(ctx, id)
	if err != nil {
		return nil, storageErr("get role request", err)
	}
	if !req.CanTransitionTo(decision) {
		return nil, fmt.Errorf("%w: request is already %s", domain.ErrForbidden, req.Status)
	}
	if req.Status != decision {
		if err := s.reqRepo.Review(ctx, id, decision, reviewer.ID, notes); err != nil {
			return nil, storageErr("review role request", err)
		}
		req.Status = decision
		req.ReviewerID = &reviewer.ID
		req.ReviewerNotes = notes
		s.notifyDecision(ctx, req)
	}

	// The role write runs on a replayed approval too, so a retry converges
	// after a failure between the status commit and the role grant.
	if decision == domain.RoleRequestStatusApproved {
		if err := s.userRepo.UpdateRole(ctx, req.UserID, req.RequestedRole); err != nil {
			return nil, storageErr("apply role change", err)
		}
		logger.Info("role granted via upgrade request", "userID", req.UserID, "role", req.RequestedRole, "requestID", id, "reviewerID", reviewer.ID)
	}

	return req, nil
}

func (s *roleRequestService) notifyDecision(ctx context.Context, req *domain.RoleUpgradeRequest) {
	verb := "rejected"
	if req.Status == domain.RoleRequestStatusApproved {
		verb = "approved"
	}
	note := &domain.Notification{
		UserID:  req.UserID,
		Title:   fmt.Sprintf("Your request for the %s role was %s", req.RequestedRole, verb),
		Message: req.ReviewerNotes,
		Attributes: map[string]string{
			"role_request_id": fmt.Sprintf("%d", req.ID),
			"requested_role":  string(req.RequestedRole),
			"status":          string(req.Status),
		},
	}
	if err := s.noteRepo.Create(ctx, note); err != nil {
		logger.Error("failed to create decision notification", "requestID", req.ID, "error", err)
	}
}
