// Package blobstore implements repository.BlobStore on top of the storage
// systems the service can run against. Every backend provides an atomic
// read-modify-write so concurrent writers cannot drop each other's appends.
package blobstore

import (
	"errors"

	apperrors "nexusmarket/pkg/errors"
)

// maxUpdateAttempts bounds optimistic retries before Update gives up with a
// CONFLICT error.
const maxUpdateAttempts = 5

func conflict(key string, err error) error {
	return apperrors.Conflict("Concurrent update of "+key+" did not settle, try again", err)
}

// passThrough keeps AppErrors raised inside an UpdateFunc intact and wraps
// everything else as an internal storage failure.
func passThrough(message string, err error) error {
	if err == nil {
		return nil
	}
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return err
	}
	return apperrors.Internal(message, err)
}
