// Package schedule derives the bookable slots of a business day from
// configured opening hours and a slot granularity. Pure computation,
// nothing here touches storage.
package schedule

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidInput is the base for every malformed or out-of-policy input
// error. Callers match with errors.Is.
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrBadDate      = fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidInput)
	ErrBadTime      = fmt.Errorf("%w: time slot must be HH:MM:SS", ErrInvalidInput)
	ErrOutsideHours = fmt.Errorf("%w: time slot outside business hours", ErrInvalidInput)
	ErrMisaligned   = fmt.Errorf("%w: time slot not aligned to the booking grid", ErrInvalidInput)
)

type Config struct {
	OpenHour    int // first bookable start hour, inclusive
	CloseHour   int // last bookable start hour, inclusive
	SlotMinutes int
}

func DefaultConfig() Config {
	return Config{OpenHour: 9, CloseHour: 17, SlotMinutes: 60}
}

type Calendar struct {
	cfg Config
}

func NewCalendar(cfg Config) Calendar {
	return Calendar{cfg: cfg}
}

// SlotsFor returns the ordered start times for a business day, both bounds
// included. The calendar is fixed, so every date yields the same sequence.
func (c Calendar) SlotsFor(date time.Time) []string {
	first := c.cfg.OpenHour * 60
	last := c.cfg.CloseHour * 60

	var slots []string
	for m := first; m <= last; m += c.cfg.SlotMinutes {
		slots = append(slots, fmt.Sprintf("%02d:%02d:00", m/60, m%60))
	}
	return slots
}

// ParseDate parses a YYYY-MM-DD calendar date into a UTC midnight instant.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, ErrBadDate
	}
	return d.UTC(), nil
}

// NormalizeTime validates a requested start time against the calendar and
// returns its canonical HH:MM:SS form. HH:MM is accepted as shorthand.
func (c Calendar) NormalizeTime(s string) (string, error) {
	t, err := time.Parse("15:04:05", s)
	if err != nil {
		t, err = time.Parse("15:04", s)
		if err != nil {
			return "", ErrBadTime
		}
	}
	if t.Second() != 0 {
		return "", ErrMisaligned
	}

	m := t.Hour()*60 + t.Minute()
	first := c.cfg.OpenHour * 60
	last := c.cfg.CloseHour * 60
	if m < first || m > last {
		return "", ErrOutsideHours
	}
	if (m-first)%c.cfg.SlotMinutes != 0 {
		return "", ErrMisaligned
	}

	return fmt.Sprintf("%02d:%02d:00", m/60, m%60), nil
}
