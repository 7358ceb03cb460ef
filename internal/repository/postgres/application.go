package postgres

import (
	"context"
	"database/sql"
	"time"

	"stellarion-backend/internal/domain"
	"stellarion-backend/internal/logger"
	"stellarion-backend/internal/repository"
)

type applicationRepository struct {
	db *sql.DB
}

func NewApplicationRepository(db *sql.DB) repository.ApplicationRepository {
	return &applicationRepository{db: db}
}

const applicationColumns = `id, user_id, category, name, email, phone, motivation, COALESCE(details, '{}'), status, reviewer_id, COALESCE(reviewer_notes, ''), deleted, created_on, updated_on, reviewed_on`

func (r *applicationRepository) Create(ctx context.Context, app *domain.Application) error {
	logger.EnterMethod("applicationRepository.Create", "userID", app.UserID, "category", app.Category)

	now := time.Now()
	query := `INSERT INTO applications (user_id, category, name, email, phone, motivation, details, status, deleted, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, COALESCE(NULLIF($7, '')::jsonb, '{}'), $8, FALSE, $9, $10) RETURNING id`
	logger.DatabaseCall("INSERT", "applications", "userID", app.UserID, "category", app.Category)
	err := r.db.QueryRowContext(ctx, query,
		app.UserID, app.Category, app.Name, app.Email, app.Phone, app.Motivation, string(app.Details), app.Status, now, now,
	).Scan(&app.ID)
	logger.DatabaseResult("INSERT", 1, err, "applicationID", app.ID)
	if err != nil {
		logger.ExitMethodWithError("applicationRepository.Create", err, "userID", app.UserID)
		return translateError(err)
	}
	app.CreatedOn = now.Format(dateFormat)
	app.UpdatedOn = now.Format(dateFormat)
	logger.ExitMethod("applicationRepository.Create", "applicationID", app.ID)
	return nil
}

func (r *applicationRepository) GetByID(ctx context.Context, id int32) (*domain.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE id = $1 AND deleted = FALSE`
	return scanApplication(r.db.QueryRowContext(ctx, query, id))
}

func (r *applicationRepository) ListByOwner(ctx context.Context, userID int32) ([]domain.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE user_id = $1 AND deleted = FALSE ORDER BY created_on DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()
	return collectApplications(rows)
}

func (r *applicationRepository) ListAll(ctx context.Context, status domain.ApplicationStatus) ([]domain.Application, error) {
	var rows *sql.Rows
	var err error
	if status == "" {
		query := `SELECT ` + applicationColumns + ` FROM applications WHERE deleted = FALSE ORDER BY created_on DESC`
		rows, err = r.db.QueryContext(ctx, query)
	} else {
		query := `SELECT ` + applicationColumns + ` FROM applications WHERE deleted = FALSE AND status = $1 ORDER BY created_on DESC`
		rows, err = r.db.QueryContext(ctx, query, status)
	}
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()
	return collectApplications(rows)
}

func (r *applicationRepository) UpdateForm(ctx context.Context, app *domain.Application) error {
	query := `UPDATE applications SET phone = $1, motivation = $2, details = COALESCE(NULLIF($3, '')::jsonb, details), updated_on = $4
	          WHERE id = $5 AND deleted = FALSE`
	now := time.Now()
	res, err := r.db.ExecContext(ctx, query, app.Phone, app.Motivation, string(app.Details), now, app.ID)
	if err != nil {
		return translateError(err)
	}
	if err := requireRowAffected(res); err != nil {
		return err
	}
	app.UpdatedOn = now.Format(dateFormat)
	return nil
}

func (r *applicationRepository) SoftDelete(ctx context.Context, id int32) error {
	res, err := r.db.ExecContext(ctx, `UPDATE applications SET deleted = TRUE, updated_on = NOW() WHERE id = $1 AND deleted = FALSE`, id)
	if err != nil {
		return translateError(err)
	}
	return requireRowAffected(res)
}

func (r *applicationRepository) UpdateStatus(ctx context.Context, id int32, status domain.ApplicationStatus, reviewerID int32, notes string) error {
	logger.DatabaseCall("UPDATE", "applications", "applicationID", id, "status", status)
	query := `UPDATE applications SET status = $1, reviewer_id = $2, reviewer_notes = $3, reviewed_on = NOW(), updated_on = NOW()
	          WHERE id = $4 AND deleted = FALSE`
	res, err := r.db.ExecContext(ctx, query, status, reviewerID, notes, id)
	if err != nil {
		logger.DatabaseResult("UPDATE", 0, err, "applicationID", id)
		return translateError(err)
	}
	return requireRowAffected(res)
}

func (r *applicationRepository) ListPendingOlderThan(ctx context.Context, cutoff time.Time) ([]domain.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE deleted = FALSE AND status = $1 AND created_on < $2 ORDER BY created_on`
	rows, err := r.db.QueryContext(ctx, query, domain.ApplicationStatusPending, cutoff)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()
	return collectApplications(rows)
}

func scanApplication(row rowScanner) (*domain.Application, error) {
	app := &domain.Application{}
	var details []byte
	var reviewerID sql.NullInt32
	var reviewedOn sql.NullTime
	var createdOn, updatedOn time.Time

	err := row.Scan(&app.ID, &app.UserID, &app.Category, &app.Name, &app.Email, &app.Phone, &app.Motivation,
		&details, &app.Status, &reviewerID, &app.ReviewerNotes, &app.Deleted, &createdOn, &updatedOn, &reviewedOn)
	if err != nil {
		return nil, translateError(err)
	}

	app.Details = details
	app.CreatedOn = createdOn.Format(dateFormat)
	app.UpdatedOn = updatedOn.Format(dateFormat)
	if reviewerID.Valid {
		id := reviewerID.Int32
		app.ReviewerID = &id
	}
	if reviewedOn.Valid {
		reviewed := reviewedOn.Time.Format(dateFormat)
		app.ReviewedOn = &reviewed
	}
	return app, nil
}

func collectApplications(rows *sql.Rows) ([]domain.Application, error) {
	var apps []domain.Application
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		apps = append(apps, *app)
	}
	return apps, rows.Err()
}
