package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"appointment-booking-api/internal/booking"
	"appointment-booking-api/internal/metrics"
	"appointment-booking-api/internal/middleware"
	"appointment-booking-api/internal/store"
)

type Handler struct {
	svc       *booking.Service
	store     *store.Store
	secret    string
	tokenTTL  time.Duration
	validate  *validator.Validate
	collector *metrics.Collector
}

func New(svc *booking.Service, st *store.Store, secret string, tokenTTL time.Duration, collector *metrics.Collector) *Handler {
	return &Handler{
		svc:       svc,
		store:     st,
		secret:    secret,
		tokenTTL:  tokenTTL,
		validate:  validator.New(),
		collector: collector,
	}
}

// Router wires every route. Credential endpoints sit behind the IP rate
// limiter, everything about appointments behind bearer auth.
func (h *Handler) Router(rl *middleware.RateLimiter, metricsHandler http.Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(h.recordStatus)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if metricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", metricsHandler)
	}

	r.Group(func(r chi.Router) {
		if rl != nil {
			r.Use(rl.Limit)
		}
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(h.secret))
		r.Get("/slots", h.AvailableSlots)
		r.Post("/appointments", h.BookAppointment)
		r.Get("/appointments", h.ListAppointments)
		r.Delete("/appointments/{id}", h.CancelAppointment)
	})

	return r
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.status = code
	sr.ResponseWriter.WriteHeader(code)
}

func (h *Handler) recordStatus(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sr := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sr, r)
		if h.collector != nil {
			h.collector.RecordHTTPStatus(sr.status)
		}
	})
}
