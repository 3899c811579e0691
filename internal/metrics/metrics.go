// Package metrics collects Prometheus counters for the marketplace.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Recorder is what services and the HTTP layer report into.
type Recorder interface {
	ListingCreated(kind string)
	ListingDeleted()
	EnrollmentBooked()
	PurchaseCompleted()
	Rejected(op, reason string)
	ObserveRequest(method, route string, status int, d time.Duration)
}

type Collector struct {
	listingsCreated *prometheus.CounterVec
	listingsDeleted prometheus.Counter
	enrollments     prometheus.Counter
	purchases       prometheus.Counter
	rejections      *prometheus.CounterVec
	requests        *prometheus.HistogramVec
}

func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		listingsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "workmarket_listings_created_total",
			Help: "Listings created, by type.",
		}, []string{"type"}),
		listingsDeleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "workmarket_listings_deleted_total",
			Help: "Listings deleted, including moderation removals.",
		}),
		enrollments: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "workmarket_enrollments_total",
			Help: "Workshop seats booked.",
		}),
		purchases: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "workmarket_purchases_total",
			Help: "Thrift items sold.",
		}),
		rejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "workmarket_rejections_total",
			Help: "Operations refused by a business rule.",
		}, []string{"op", "reason"}),
		requests: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "workmarket_http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
	reg.MustRegister(
		c.listingsCreated,
		c.listingsDeleted,
		c.enrollments,
		c.purchases,
		c.rejections,
		c.requests,
	)
	return c
}

func (c *Collector) ListingCreated(kind string) { c.listingsCreated.WithLabelValues(kind).Inc() }
func (c *Collector) ListingDeleted()            { c.listingsDeleted.Inc() }
func (c *Collector) EnrollmentBooked()          { c.enrollments.Inc() }
func (c *Collector) PurchaseCompleted()         { c.purchases.Inc() }

func (c *Collector) Rejected(op, reason string) {
	c.rejections.WithLabelValues(op, reason).Inc()
}

func (c *Collector) ObserveRequest(method, route string, status int, d time.Duration) {
	c.requests.WithLabelValues(method, route, strconv.Itoa(status)).Observe(d.Seconds())
}

// Nop discards everything.
type Nop struct{}

func (Nop) ListingCreated(string)                              {}
func (Nop) ListingDeleted()                                    {}
func (Nop) EnrollmentBooked()                                  {}
func (Nop) PurchaseCompleted()                                 {}
func (Nop) Rejected(string, string)                            {}
func (Nop) ObserveRequest(string, string, int, time.Duration) {}
