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

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, firebase_uid, email, name, role, active, COALESCE(profile, '{}'), COALESCE(role_data, '{}'), email_drift_seen_on, created_on, last_login_on`

func (r *userRepository) CreateWithSettings(ctx context.Context, u *domain.User) error {
	logger.EnterMethod("userRepository.CreateWithSettings", "firebaseUID", u.FirebaseUID, "email", u.Email)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		logger.ExitMethodWithError("userRepository.CreateWithSettings", err)
		return err
	}
	defer tx.Rollback()

	now := time.Now()
	query := `INSERT INTO users (firebase_uid, email, name, role, active, profile, role_data, created_on, last_login_on)
	          VALUES ($1, $2, $3, $4, $5, COALESCE(NULLIF($6, '')::jsonb, '{}'), COALESCE(NULLIF($7, '')::jsonb, '{}'), $8, $9) RETURNING id`
	logger.DatabaseCall("INSERT", "users", "email", u.Email)
	err = tx.QueryRowContext(ctx, query,
		u.FirebaseUID, u.Email, u.Name, u.Role, u.Active, string(u.Profile), string(u.RoleData), now, now,
	).Scan(&u.ID)
	if err != nil {
		logger.DatabaseResult("INSERT", 0, err, "email", u.Email)
		logger.ExitMethodWithError("userRepository.CreateWithSettings", err, "email", u.Email)
		return translateError(err)
	}
	u.CreatedOn = now.Format(dateFormat)
	u.LastLoginOn = now.Format(dateFormat)

	settings := domain.DefaultSettings(u.ID)
	settingsQuery := `INSERT INTO user_settings (user_id, email_notifications, language, theme, created_on)
	                  VALUES ($1, $2, $3, $4, $5)`
	logger.DatabaseCall("INSERT", "user_settings", "userID", u.ID)
	if _, err := tx.ExecContext(ctx, settingsQuery,
		settings.UserID, settings.EmailNotifications, settings.Language, settings.Theme, now,
	); err != nil {
		logger.DatabaseResult("INSERT", 0, err, "userID", u.ID)
		logger.ExitMethodWithError("userRepository.CreateWithSettings", err, "userID", u.ID)
		return translateError(err)
	}

	if err := tx.Commit(); err != nil {
		logger.ExitMethodWithError("userRepository.CreateWithSettings", err, "userID", u.ID)
		return err
	}

	logger.ExitMethod("userRepository.CreateWithSettings", "userID", u.ID)
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func (r *userRepository) GetByFirebaseUID(ctx context.Context, uid string) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE firebase_uid = $1`, uid)
	return scanUser(row)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE LOWER(email) = LOWER($1)`, email)
	return scanUser(row)
}

func (r *userRepository) UpdateProfile(ctx context.Context, u *domain.User) error {
	query := `UPDATE users SET name = $1, profile = COALESCE(NULLIF($2, '')::jsonb, profile), role_data = COALESCE(NULLIF($3, '')::jsonb, role_data) WHERE id = $4`
	res, err := r.db.ExecContext(ctx, query, u.Name, string(u.Profile), string(u.RoleData), u.ID)
	if err != nil {
		return translateError(err)
	}
	return requireRowAffected(res)
}

func (r *userRepository) UpdateRole(ctx context.Context, userID int32, role domain.Role) error {
	logger.DatabaseCall("UPDATE", "users", "userID", userID, "role", role)
	res, err := r.db.ExecContext(ctx, `UPDATE users SET role = $1 WHERE id = $2`, role, userID)
	if err != nil {
		logger.DatabaseResult("UPDATE", 0, err, "userID", userID)
		return translateError(err)
	}
	return requireRowAffected(res)
}

func (r *userRepository) TouchLastLogin(ctx context.Context, userID int32) error {
	_, err := r.db.ExecContext(ctx, `UPDATE users SET last_login_on = NOW() WHERE id = $1`, userID)
	return translateError(err)
}

func (r *userRepository) MarkEmailDrift(ctx context.Context, userID int32) error {
	_, err := r.db.ExecContext(ctx, `UPDATE users SET email_drift_seen_on = NOW() WHERE id = $1`, userID)
	return translateError(err)
}

func (r *userRepository) SetActive(ctx context.Context, userID int32, active bool) error {
	res, err := r.db.ExecContext(ctx, `UPDATE users SET active = $1 WHERE id = $2`, active, userID)
	if err != nil {
		return translateError(err)
	}
	return requireRowAffected(res)
}

func (r *userRepository) GetSettings(ctx context.Context, userID int32) (*domain.UserSettings, error) {
	s := &domain.UserSettings{}
	var createdOn time.Time
	query := `SELECT user_id, email_notifications, language, theme, created_on FROM user_settings WHERE user_id = $1`
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&s.UserID, &s.EmailNotifications, &s.Language, &s.Theme, &createdOn)
	if err != nil {
		return nil, translateError(err)
	}
	s.CreatedOn = createdOn.Format(dateFormat)
	return s, nil
}

func (r *userRepository) ListByRoles(ctx context.Context, roles []domain.Role) ([]domain.User, error) {
	names := make([]string, len(roles))
	for i, role := range roles {
		names[i] = string(role)
	}
	query := `SELECT ` + userColumns + ` FROM users WHERE role = ANY($1) AND active = TRUE`
	rows, err := r.db.QueryContext(ctx, query, pq.Array(names))
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*domain.User, error) {
	u := &domain.User{}
	var profile, roleData []byte
	var driftSeenOn sql.NullTime
	var createdOn, lastLoginOn time.Time

	err := row.Scan(&u.ID, &u.FirebaseUID, &u.Email, &u.Name, &u.Role, &u.Active,
		&profile, &roleData, &driftSeenOn, &createdOn, &lastLoginOn)
	if err != nil {
		return nil, translateError(err)
	}

	u.Profile = profile
	u.RoleData = roleData
	u.CreatedOn = createdOn.Format(dateFormat)
	u.LastLoginOn = lastLoginOn.Format(dateFormat)
	if driftSeenOn.Valid {
		seen := driftSeenOn.Time.Format(dateFormat)
		u.EmailDriftSeenOn = &seen
	}
	return u, nil
}

func requireRowAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
