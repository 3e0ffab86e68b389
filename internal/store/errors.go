package store

import "errors"

var (
	// ErrSlotTaken is returned when a reserve hits the active-slot unique
	// index: someone else already holds a booked reservation for that
	// (date, time_slot).
	ErrSlotTaken = errors.New("slot already booked")

	// ErrNotFound covers a missing reservation, one owned by another user,
	// and one already cancelled. Deliberately indistinguishable so callers
	// cannot probe for other users' reservations.
	ErrNotFound = errors.New("reservation not found")

	// ErrEmailTaken is returned when registering an email that already exists.
	ErrEmailTaken = errors.New("email already registered")
)
