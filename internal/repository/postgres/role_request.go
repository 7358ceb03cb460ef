package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/lib/pq"

	"stellarion-backend/internal/domain"
	"stellarion-backend/internal/logger"
	"stellarion-backend/internal/repository"
)

type roleRequestRepository struct {
	db *sql.DB
}

func NewRoleRequestRepository(db *sql.DB) repository.RoleRequestRepository {
	return &roleRequestRepository{db: db}
}

// from_role, not current_role: CURRENT_ROLE is a reserved word in Postgres.
const roleRequestColumns = `id, user_id, from_role, requested_role, reason, evidence, status, reviewer_id, COALESCE(reviewer_notes, ''), created_on, reviewed_on`

func (r *roleRequestRepository) Create(ctx context.Context, req *domain.RoleUpgradeRequest) error {
	logger.EnterMethod("roleRequestRepository.Create", "userID", req.UserID, "requestedRole", req.RequestedRole)

	now := time.Now()
	query := `INSERT INTO role_upgrade_requests (user_id, from_role, requested_role, reason, evidence, status, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	logger.DatabaseCall("INSERT", "role_upgrade_requests", "userID", req.UserID)
	err := r.db.QueryRowContext(ctx, query,
		req.UserID, req.CurrentRole, req.RequestedRole, req.Reason, pq.Array(req.Evidence), req.Status, now,
	).Scan(&req.ID)
	logger.DatabaseResult("INSERT", 1, err, "requestID", req.ID)
	if err != nil {
		logger.ExitMethodWithError("roleRequestRepository.Create", err, "userID", req.UserID)
		return translateError(err)
	}
	req.CreatedOn = now.Format(dateFormat)
	logger.ExitMethod("roleRequestRepository.Create", "requestID", req.ID)
	return nil
}

func (r *roleRequestRepository) GetByID(ctx context.Context, id int32) (*domain.RoleUpgradeRequest, error) {
	query := `SELECT ` + roleRequestColumns + ` FROM role_upgrade_requests WHERE id = $1`
	return scanRoleRequest(r.db.QueryRowContext(ctx, query, id))
}

func (r *roleRequestRepository) ListByUser(ctx context.Context, userID int32) ([]domain.RoleUpgradeRequest, error) {
	query := `SELECT ` + roleRequestColumns + ` FROM role_upgrade_requests WHERE user_id = $1 ORDER BY created_on DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()
	return collectRoleRequests(rows)
}

func (r *roleRequestRepository) ListByStatus(ctx context.Context, status domain.RoleRequestStatus) ([]domain.RoleUpgradeRequest, error) {
	var rows *sql.Rows
	var err error
	if status == "" {
		rows, err = r.db.QueryContext(ctx, `SELECT `+roleRequestColumns+` FROM role_upgrade_requests ORDER BY created_on DESC`)
	} else {
		rows, err = r.db.QueryContext(ctx, `SELECT `+roleRequestColumns+` FROM role_upgrade_requests WHERE status = $1 ORDER BY created_on DESC`, status)
	}
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()
	return collectRoleRequests(rows)
}

func (r *roleRequestRepository) Review(ctx context.Context, id int32, status domain.RoleRequestStatus, reviewerID int32, notes string) error {
	logger.DatabaseCall("UPDATE", "role_upgrade_requests", "requestID", id, "status", status)
	query := `UPDATE role_upgrade_requests SET status = $1, reviewer_id = $2, reviewer_notes = $3, reviewed_on = NOW() WHERE id = $4`
	res, err := r.db.ExecContext(ctx, query, status, reviewerID, notes, id)
	if err != nil {
		logger.DatabaseResult("UPDATE", 0, err, "requestID", id)
		return translateError(err)
	}
	return requireRowAffected(res)
}

func (r *roleRequestRepository) ListPendingOlderThan(ctx context.Context, cutoff time.Time) ([]domain.RoleUpgradeRequest, error) {
	query := `SELECT ` + roleRequestColumns + ` FROM role_upgrade_requests WHERE status = $1 AND created_on < $2 ORDER BY created_on`
	rows, err := r.db.QueryContext(ctx, query, domain.RoleRequestStatusPending, cutoff)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()
	return collectRoleRequests(rows)
}

func scanRoleRequest(row rowScanner) (*domain.RoleUpgradeRequest, error) {
	req := &domain.RoleUpgradeRequest{}
	var evidence pq.StringArray
	var reviewerID sql.NullInt32
	var reviewedOn sql.NullTime
	var createdOn time.Time

	err := row.Scan(&req.ID, &req.UserID, &req.CurrentRole, &req.RequestedRole, &req.Reason,
		&evidence, &req.Status, &reviewerID, &req.ReviewerNotes, &createdOn, &reviewedOn)
	if err != nil {
		return nil, translateError(err)
	}

	req.Evidence = evidence
	req.CreatedOn = createdOn.Format(dateFormat)
	if reviewerID.Valid {
		id := reviewerID.Int32
		req.ReviewerID = &id
	}
	if reviewedOn.Valid {
		reviewed := reviewedOn.Time.Format(dateFormat)
		req.ReviewedOn = &reviewed
	}
	return req, nil
}

func collectRoleRequests(rows *sql.Rows) ([]domain.RoleUpgradeRequest, error) {
	var reqs []domain.RoleUpgradeRequest
	for rows.Next() {
		req, err := scanRoleRequest(rows)
		if err != nil {
			return nil, err
		}
		reqs = append(reqs, *req)
	}
	return reqs, rows.Err()
}
