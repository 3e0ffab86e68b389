// Package booking orchestrates the slot calendar and the reservation ledger.
// It owns business policy (no past dates, times on the booking grid) and
// passes ledger outcomes through without changing their kind.
package booking

import (
	"context"
	"fmt"
	"time"

	"appointment-booking-api/internal/model"
	"appointment-booking-api/internal/schedule"
)

var ErrPastDate = fmt.Errorf("%w: cannot book in the past", schedule.ErrInvalidInput)

// Ledger is the durable record of reservations. The store implements it;
// tests swap in a fake.
type Ledger interface {
	Reserve(ctx context.Context, userID int64, date time.Time, slot string) (*model.Reservation, error)
	Release(ctx context.Context, id, userID int64) error
	ListByUser(ctx context.Context, userID int64) ([]model.Reservation, error)
	BookedSlotsOn(ctx context.Context, date time.Time) ([]string, error)
}

type Service struct {
	cal    schedule.Calendar
	ledger Ledger
}

func New(cal schedule.Calendar, ledger Ledger) *Service {
	return &Service{cal: cal, ledger: ledger}
}

// AvailableSlots returns the calendar's slots for a date minus the ones
// currently booked, in calendar order.
func (s *Service) AvailableSlots(ctx context.Context, date time.Time) ([]string, error) {
	if err := checkNotPast(date); err != nil {
		return nil, err
	}

	booked, err := s.ledger.BookedSlotsOn(ctx, date)
	if err != nil {
		return nil, err
	}

	taken := make(map[string]bool, len(booked))
	for _, t := range booked {
		taken[t] = true
	}

	var free []string
	for _, t := range s.cal.SlotsFor(date) {
		if !taken[t] {
			free = append(free, t)
		}
	}
	return free, nil
}

func (s *Service) Book(ctx context.Context, userID int64, date time.Time, slot string) (*model.Reservation, error) {
	if err := checkNotPast(date); err != nil {
		return nil, err
	}
	canonical, err := s.cal.NormalizeTime(slot)
	if err != nil {
		return nil, err
	}
	return s.ledger.Reserve(ctx, userID, date, canonical)
}

func (s *Service) Cancel(ctx context.Context, userID, reservationID int64) error {
	return s.ledger.Release(ctx, reservationID, userID)
}

func (s *Service) MyReservations(ctx context.Context, userID int64) ([]model.Reservation, error) {
	return s.ledger.ListByUser(ctx, userID)
}

func checkNotPast(date time.Time) error {
	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if date.Before(today) {
		return ErrPastDate
	}
	return nil
}
