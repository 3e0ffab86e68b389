package booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"appointment-booking-api/internal/model"
	"appointment-booking-api/internal/schedule"
	"appointment-booking-api/internal/store"
)

// fakeLedger mirrors the store's contract in memory: uniqueness over the
// booked projection, guarded release, (date, slot) ordering on list.
type fakeLedger struct {
	mu     sync.Mutex
	nextID int64
	rows   []model.Reservation
}

func (f *fakeLedger) Reserve(_ context.Context, userID int64, date time.Time, slot string) (*model.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.rows {
		if r.Status == model.StatusBooked && r.Date.Equal(date) && r.TimeSlot == slot {
			return nil, store.ErrSlotTaken
		}
	}
	f.nextID++
	r := model.Reservation{
		ID: f.nextID, UserID: userID, Date: date, TimeSlot: slot,
		Status: model.StatusBooked, CreatedAt: time.Now(),
	}
	f.rows = append(f.rows, r)
	return &r, nil
}

func (f *fakeLedger) Release(_ context.Context, id, userID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.rows {
		if f.rows[i].ID == id && f.rows[i].UserID == userID && f.rows[i].Status == model.StatusBooked {
			f.rows[i].Status = model.StatusCancelled
			return nil
		}
	}
	return store.ErrNotFound
}

func (f *fakeLedger) ListByUser(_ context.Context, userID int64) ([]model.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Reservation
	for _, r := range f.rows {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0; j-- {
			a, b := out[j-1], out[j]
			if a.Date.After(b.Date) || (a.Date.Equal(b.Date) && a.TimeSlot > b.TimeSlot) {
				out[j-1], out[j] = b, a
			}
		}
	}
	return out, nil
}

func (f *fakeLedger) BookedSlotsOn(_ context.Context, date time.Time) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for _, r := range f.rows {
		if r.Status == model.StatusBooked && r.Date.Equal(date) {
			out = append(out, r.TimeSlot)
		}
	}
	return out, nil
}

func newService() (*Service, *fakeLedger) {
	fl := &fakeLedger{}
	return New(schedule.NewCalendar(schedule.DefaultConfig()), fl), fl
}

func tomorrow() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1)
}

func TestBookSuccess(t *testing.T) {
	svc, _ := newService()

	r, err := svc.Book(context.Background(), 1, tomorrow(), "09:00:00")
	require.NoError(t, err)
	assert.Equal(t, int64(1), r.UserID)
	assert.Equal(t, "09:00:00", r.TimeSlot)
	assert.Equal(t, model.StatusBooked, r.Status)
}

func TestBookPastDate(t *testing.T) {
	svc, _ := newService()

	_, err := svc.Book(context.Background(), 1, tomorrow().AddDate(0, 0, -2), "09:00:00")
	assert.ErrorIs(t, err, ErrPastDate)
	assert.ErrorIs(t, err, schedule.ErrInvalidInput)
}

func TestBookTodayAllowed(t *testing.T) {
	svc, _ := newService()

	_, err := svc.Book(context.Background(), 1, tomorrow().AddDate(0, 0, -1), "09:00:00")
	assert.NoError(t, err)
}

func TestBookOutsideBusinessHours(t *testing.T) {
	svc, _ := newService()

	_, err := svc.Book(context.Background(), 1, tomorrow(), "08:00:00")
	assert.ErrorIs(t, err, schedule.ErrOutsideHours)
}

func TestBookConflictSurfacesUnchanged(t *testing.T) {
	svc, _ := newService()
	d := tomorrow()

	_, err := svc.Book(context.Background(), 1, d, "10:00:00")
	require.NoError(t, err)

	_, err = svc.Book(context.Background(), 2, d, "10:00:00")
	assert.ErrorIs(t, err, store.ErrSlotTaken)
}

func TestConcurrentBookSameSlot(t *testing.T) {
	svc, _ := newService()
	d := tomorrow()

	const n = 16
	errs := make(chan error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(uid int64) {
			defer wg.Done()
			_, err := svc.Book(context.Background(), uid, d, "11:00:00")
			errs <- err
		}(int64(i + 1))
	}
	wg.Wait()
	close(errs)

	successes, conflicts := 0, 0
	for err := range errs {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, store.ErrSlotTaken):
			conflicts++
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, successes)
	assert.Equal(t, n-1, conflicts)

	free, err := svc.AvailableSlots(context.Background(), d)
	require.NoError(t, err)
	assert.NotContains(t, free, "11:00:00")
}

func TestAvailableSlots(t *testing.T) {
	svc, _ := newService()
	d := tomorrow()

	free, err := svc.AvailableSlots(context.Background(), d)
	require.NoError(t, err)
	assert.Len(t, free, 9)

	_, err = svc.Book(context.Background(), 1, d, "09:00:00")
	require.NoError(t, err)

	free, err = svc.AvailableSlots(context.Background(), d)
	require.NoError(t, err)
	assert.Len(t, free, 8)
	assert.NotContains(t, free, "09:00:00")
	assert.Equal(t, "10:00:00", free[0], "calendar order preserved")
}

func TestAvailableSlotsPastDate(t *testing.T) {
	svc, _ := newService()

	_, err := svc.AvailableSlots(context.Background(), tomorrow().AddDate(0, 0, -3))
	assert.ErrorIs(t, err, ErrPastDate)
}

func TestCancelThenRebook(t *testing.T) {
	svc, _ := newService()
	d := tomorrow()

	first, err := svc.Book(context.Background(), 1, d, "12:00:00")
	require.NoError(t, err)

	require.NoError(t, svc.Cancel(context.Background(), 1, first.ID))

	second, err := svc.Book(context.Background(), 2, d, "12:00:00")
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID, "rebooking issues a new reservation")

	// old row stays cancelled forever
	mine, err := svc.MyReservations(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, model.StatusCancelled, mine[0].Status)
}

func TestCancelByNonOwner(t *testing.T) {
	svc, fl := newService()
	d := tomorrow()

	r, err := svc.Book(context.Background(), 1, d, "13:00:00")
	require.NoError(t, err)

	err = svc.Cancel(context.Background(), 2, r.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	booked, _ := fl.BookedSlotsOn(context.Background(), d)
	assert.Contains(t, booked, "13:00:00", "reservation must stay booked")
}

func TestCancelTwice(t *testing.T) {
	svc, _ := newService()

	r, err := svc.Book(context.Background(), 1, tomorrow(), "14:00:00")
	require.NoError(t, err)

	require.NoError(t, svc.Cancel(context.Background(), 1, r.ID))
	assert.ErrorIs(t, svc.Cancel(context.Background(), 1, r.ID), store.ErrNotFound)
}

func TestMyReservationsOrdered(t *testing.T) {
	svc, _ := newService()
	d1, d2 := tomorrow(), tomorrow().AddDate(0, 0, 1)

	_, err := svc.Book(context.Background(), 1, d2, "09:00:00")
	require.NoError(t, err)
	_, err = svc.Book(context.Background(), 1, d1, "15:00:00")
	require.NoError(t, err)
	_, err = svc.Book(context.Background(), 1, d1, "10:00:00")
	require.NoError(t, err)

	mine, err := svc.MyReservations(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, mine, 3)
	assert.Equal(t, "10:00:00", mine[0].TimeSlot)
	assert.Equal(t, "15:00:00", mine[1].TimeSlot)
	assert.True(t, mine[2].Date.Equal(d2))
}
