package domain

import (
	"errors"
	"fmt"
)

var (
	ErrValidation         = errors.New("validation failed")
	ErrNotFound           = errors.New("not found")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrConflict           = errors.New("conflict")
	ErrInsufficientCredit = errors.New("insufficient site credit")
	// ErrUnavailable marks a failed upstream call (store, payment processor).
	// It is distinct from an empty result.
	ErrUnavailable = errors.New("data unavailable")
)

var (
	ErrDuplicate         = fmt.Errorf("%w: already recorded", ErrConflict)
	ErrCompetitionClosed = fmt.Errorf("%w: competition is not open for entries", ErrConflict)
	ErrAlreadyPaid       = fmt.Errorf("%w: dividend already paid", ErrConflict)
	ErrBelowMinPayout    = fmt.Errorf("%w: rolled-up total is below the minimum payout", ErrConflict)

	ErrUnknownCompetition = fmt.Errorf("%w: competition does not exist", ErrNotFound)
)

// Unavailable wraps a store or processor failure.
func Unavailable(err error) error {
	return fmt.Errorf("%w: %w", ErrUnavailable, err)
}
