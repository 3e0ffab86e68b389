package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"appointment-booking-api/internal/middleware"
	"appointment-booking-api/internal/model"
	"appointment-booking-api/internal/schedule"
	"appointment-booking-api/internal/store"
)

type bookRequest struct {
	Date     string `json:"date" validate:"required"`
	TimeSlot string `json:"time_slot" validate:"required"`
}

type appointmentJSON struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Date      string    `json:"date"`
	TimeSlot  string    `json:"time_slot"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// GET /slots?date=YYYY-MM-DD
func (h *Handler) AvailableSlots(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("date")
	if raw == "" {
		writeError(w, http.StatusBadRequest, "date is required")
		return
	}
	date, err := schedule.ParseDate(raw)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	free, err := h.svc.AvailableSlots(r.Context(), date)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if free == nil {
		free = []string{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"availableSlots": free})
}

// POST /appointments
func (h *Handler) BookAppointment(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())

	var req bookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "date and time slot are required")
		return
	}
	date, err := schedule.ParseDate(req.Date)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	res, err := h.svc.Book(r.Context(), userID, date, req.TimeSlot)
	if err != nil {
		if errors.Is(err, store.ErrSlotTaken) && h.collector != nil {
			h.collector.RecordConflict()
		}
		writeServiceError(w, err)
		return
	}

	if h.collector != nil {
		h.collector.RecordBooking()
	}
	slog.Info("appointment booked",
		"user_id", userID, "reservation_id", res.ID,
		"date", req.Date, "time_slot", res.TimeSlot)
	writeJSON(w, http.StatusCreated, map[string]any{
		"message":       "Appointment booked successfully",
		"appointmentId": res.ID,
	})
}

// GET /appointments
func (h *Handler) ListAppointments(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())

	list, err := h.svc.MyReservations(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	out := make([]appointmentJSON, len(list))
	for i, res := range list {
		out[i] = toJSON(res)
	}
	writeJSON(w, http.StatusOK, map[string]any{"appointments": out})
}

// DELETE /appointments/{id}
func (h *Handler) CancelAppointment(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		// a non-numeric id cannot name any reservation
		writeError(w, http.StatusNotFound, "appointment not found")
		return
	}

	if err := h.svc.Cancel(r.Context(), userID, id); err != nil {
		writeServiceError(w, err)
		return
	}

	if h.collector != nil {
		h.collector.RecordCancellation()
	}
	slog.Info("appointment cancelled", "user_id", userID, "reservation_id", id)
	writeJSON(w, http.StatusOK, map[string]string{"message": "Appointment cancelled successfully"})
}

func toJSON(r model.Reservation) appointmentJSON {
	return appointmentJSON{
		ID:        r.ID,
		UserID:    r.UserID,
		Date:      r.Date.Format("2006-01-02"),
		TimeSlot:  r.TimeSlot,
		Status:    string(r.Status),
		CreatedAt: r.CreatedAt,
	}
}
