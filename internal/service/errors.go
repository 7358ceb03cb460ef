package service

import (
	"errors"
	"fmt"

	"stellarion-backend/internal/domain"
	"stellarion-backend/internal/logger"
)

// storageErr passes domain error kinds through untouched and converts
// everything else into a generic storage failure, logging the real cause
// server-side so it never leaks to the caller.
func storageErr(op string, err error) error {
	if err == nil {
		return nil
	}
	for _, kind := range []error{domain.ErrNotFound, domain.ErrConflict, domain.ErrForbidden, domain.ErrValidation} {
		if errors.Is(err, kind) {
			return err
		}
	}
	logger.Error("storage operation failed", "op", op, "error", err)
	return fmt.Errorf("%w: %s", domain.ErrStorage, op)
}
