package service

import (
	"errors"

	"github.com/google/uuid"
)

var (
	// ErrPermissionDenied is returned when a requester attempts to mutate a
	// resource they do not own.
	ErrPermissionDenied = errors.New("permission denied")
)

// requireOwner is the single ownership check used by every owner-restricted
// mutation: the mutation proceeds only when the requester is the owner.
func requireOwner(ownerID, requesterID uuid.UUID) error {
	if ownerID != requesterID {
		return ErrPermissionDenied
	}
	return nil
}
