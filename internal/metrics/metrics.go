// Package metrics collects and exposes Prometheus metrics.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Collector struct {
	httpStatus    *prometheus.CounterVec
	bookings      prometheus.Counter
	conflicts     prometheus.Counter
	cancellations prometheus.Counter
}

func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "booking_http_status_total",
			Help: "Responses by HTTP status code.",
		}, []string{"status_code"}),
		bookings: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "booking_reservations_total",
			Help: "Successfully booked reservations.",
		}),
		conflicts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "booking_slot_conflicts_total",
			Help: "Booking attempts rejected because the slot was taken.",
		}),
		cancellations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "booking_cancellations_total",
			Help: "Successfully cancelled reservations.",
		}),
	}

	reg.MustRegister(c.httpStatus, c.bookings, c.conflicts, c.cancellations)
	return c
}

func (c *Collector) RecordHTTPStatus(statusCode int) {
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

func (c *Collector) RecordBooking()      { c.bookings.Inc() }
func (c *Collector) RecordConflict()     { c.conflicts.Inc() }
func (c *Collector) RecordCancellation() { c.cancellations.Inc() }

// Handler returns the Prometheus scrape endpoint.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
