package postgres

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"stellarion-backend/internal/domain"
	"stellarion-backend/internal/repository"
)

type Store struct {
	db *sql.DB
	repository.UserRepository
	repository.ApplicationRepository
	repository.RoleRequestRepository
	repository.NotificationRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                     db,
		UserRepository:         NewUserRepository(db),
		ApplicationRepository:  NewApplicationRepository(db),
		RoleRequestRepository:  NewRoleRequestRepository(db),
		NotificationRepository: NewNotificationRepository(db),
	}
}

const dateFormat = "2006-01-02 15:04:05"

// translateError maps driver errors onto the domain error kinds shared
// with the service layer.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return domain.ErrConflict
	}
	return err
}
