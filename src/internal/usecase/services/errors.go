package services

import (
	"context"
	"errors"

	"github.com/api-sage/intl-payments-portal/src/internal/commons"
	"github.com/api-sage/intl-payments-portal/src/internal/domain"
)

// storageFailure classifies anything that is not already a service error as
// a retryable storage failure.
func storageFailure(err error) error {
	if commons.KindOf(err) != "" {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return commons.Storage("Storage did not respond in time", err)
	}
	return commons.Storage("Unable to process request right now", err)
}

func notFoundOr(err error, message string) error {
	if errors.Is(err, commons.ErrRecordNotFound) {
		return commons.NotFound(message)
	}
	return storageFailure(err)
}

// requireRole rejects callers that do not hold one of the given roles.
func requireRole(caller domain.Principal, allowed ...domain.Role) error {
	if !caller.Role.Valid() || caller.SubjectID == "" {
		return commons.Unauthorized("Authentication required")
	}
	for _, role := range allowed {
		if caller.Role == role {
			return nil
		}
	}
	return commons.Forbidden("Forbidden")
}
