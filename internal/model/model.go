package model

import "time"

type User struct {
	ID           int64
	Email        string
	PasswordHash string
	Name         string
	CreatedAt    time.Time
}

type ReservationStatus string

const (
	StatusBooked    ReservationStatus = "booked"
	StatusCancelled ReservationStatus = "cancelled"
)

// Reservation binds a user to a (date, time_slot) pair. Rows are never
// deleted; cancelling flips status and frees the slot for a new row.
type Reservation struct {
	ID        int64
	UserID    int64
	Date      time.Time // date only, UTC midnight
	TimeSlot  string    // canonical HH:MM:SS
	Status    ReservationStatus
	CreatedAt time.Time
}
