// Package dberrors classifies driver-level database failures into
// platform error types shared by the gorm repositories.
package dberrors

import (
	"context"
	"errors"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"chat-server/internal/utils/platformerrors"
)

// Postgres error codes relevant to the repositories.
const (
	CodeUniqueViolation     = "23505"
	CodeForeignKeyViolation = "23503"
)

// Classify wraps a gorm/driver error as a typed platform error.
// Record-not-found becomes NotFound, unique violations become Conflict,
// foreign-key violations become Validation, everything else a database
// error.
func Classify(ctx context.Context, err error, message, traceCode string) *platformerrors.PlatformError {
	if err == nil {
		return nil
	}

	errorType := platformerrors.ErrorTypeDatabaseError

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		errorType = platformerrors.ErrorTypeNotFound
	default:
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			switch string(pqErr.Code) {
			case CodeUniqueViolation:
				errorType = platformerrors.ErrorTypeConflict
			case CodeForeignKeyViolation:
				errorType = platformerrors.ErrorTypeValidation
			}
		}
	}

	return platformerrors.NewError(ctx, platformerrors.LayerRepository, errorType, message, err, traceCode)
}
