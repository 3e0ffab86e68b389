package store

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"appointment-booking-api/internal/model"
)

// Reserve inserts a booked reservation for (date, slot). The check-and-insert
// is a single atomic statement: the partial unique index on the active
// projection does the checking, so two racing callers can never both win —
// the loser's insert fails with a unique violation and surfaces as
// ErrSlotTaken.
func (s *Store) Reserve(ctx context.Context, userID int64, date time.Time, slot string) (*model.Reservation, error) {
	r := &model.Reservation{
		UserID:   userID,
		Date:     date,
		TimeSlot: slot,
		Status:   model.StatusBooked,
	}
	err := s.pool.QueryRow(ctx,
		`INSERT INTO reservations (user_id, date, time_slot) VALUES ($1,$2,$3)
		 RETURNING id, created_at`,
		userID, date, slot,
	).Scan(&r.ID, &r.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrSlotTaken
		}
		return nil, err
	}
	return r, nil
}

// Release cancels a booked reservation, but only for its owner. The guarded
// update is the test-and-set: absent, foreign-owned and already-cancelled all
// leave zero rows affected and come back as ErrNotFound.
func (s *Store) Release(ctx context.Context, id, userID int64) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE reservations SET status = 'cancelled'
		 WHERE id = $1 AND user_id = $2 AND status = 'booked'`,
		id, userID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ListByUser returns the user's reservations in every status, oldest slot
// first.
func (s *Store) ListByUser(ctx context.Context, userID int64) ([]model.Reservation, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, user_id, date, time_slot::text, status, created_at
		 FROM reservations
		 WHERE user_id = $1
		 ORDER BY date, time_slot`, userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Reservation
	for rows.Next() {
		var r model.Reservation
		if err := rows.Scan(&r.ID, &r.UserID, &r.Date, &r.TimeSlot, &r.Status, &r.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// BookedSlotsOn returns the start times currently booked on a date, reading
// the same table the unique index protects.
func (s *Store) BookedSlotsOn(ctx context.Context, date time.Time) ([]string, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT time_slot::text FROM reservations
		 WHERE date = $1 AND status = 'booked'
		 ORDER BY time_slot`, date,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
