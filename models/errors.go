// File: /models/errors.go
package models

import "errors"

var (
	// ErrNotFound is returned when a record does not exist or is not owned
	// by the acting user.
	ErrNotFound = errors.New("record not found")

	// ErrOrphanedCar marks a reminder whose car has no resolvable owner.
	ErrOrphanedCar = errors.New("car has no owner")

	// ErrMessagingFailure wraps delivery errors of an external channel.
	ErrMessagingFailure = errors.New("messaging failure")

	// ErrInvalidStatusTransition is returned when a reminder is not pending or
	// the requested status is not a terminal one.
	ErrInvalidStatusTransition = errors.New("invalid reminder status transition")

	ErrEmailTaken = errors.New("email already registered")
)
