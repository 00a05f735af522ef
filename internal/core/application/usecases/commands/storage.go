package commands

import (
	"errors"

	"shipflow/internal/pkg/errs"
)

// sequenceAttempts is how often a creation runs when its sequence number
// collides: the first try and one retry.
const sequenceAttempts = 2

// storageError passes domain errors through and wraps anything else the
// store returned in a StorageError, so callers can tell "fix your input"
// from "try again".
func storageError(op string, err error) error {
	if err == nil {
		return nil
	}
	for _, known := range []error{
		errs.ErrObjectNotFound,
		errs.ErrObjectAlreadyExists,
		errs.ErrSequenceConflict,
		errs.ErrValidation,
		errs.ErrPermissionDenied,
		errs.ErrValueIsInvalid,
		errs.ErrValueIsRequired,
		errs.ErrValueIsOutOfRange,
		errs.ErrStorage,
	} {
		if errors.Is(err, known) {
			return err
		}
	}
	return errs.NewStorageError(op, err)
}

// retryOnSequenceConflict runs create again when it lost a sequence race.
func retryOnSequenceConflict(create func() error) error {
	var err error
	for range sequenceAttempts {
		err = create()
		if !errors.Is(err, errs.ErrSequenceConflict) {
			return err
		}
	}
	return err
}
