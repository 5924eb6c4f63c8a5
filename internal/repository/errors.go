package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/prperemyshlev/donor-service/internal/domain"
)

const uniqueViolation = "23505"

// wrapError translates driver failures into domain error kinds
func wrapError(op string, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: %w: %w", op, domain.ErrTimeout, err)
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case uniqueViolation:
			return fmt.Errorf("%s: %w: %s", op, domain.ErrConflict, pqErr.Constraint)
		case "57014": // query_canceled, raised when the statement timeout fires server-side
			return fmt.Errorf("%s: %w: %w", op, domain.ErrTimeout, err)
		}
	}

	return fmt.Errorf("failed to %s: %w", op, err)
}
