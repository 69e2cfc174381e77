package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type DBMetrics struct {
	QueryDuration *prometheus.HistogramVec
}

type BusinessMetrics struct {
	CustomersCreatedTotal    prometheus.Counter
	CustomersUpdatedTotal    prometheus.Counter
	ReservationsCreatedTotal prometheus.Counter
	CustomersTotal           prometheus.Gauge
	BestCustomersListed      prometheus.Gauge
}

var (
	DB = DBMetrics{
		QueryDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "lunchly_db_query_duration_seconds",
				Help:    "Histogram of database query latencies.",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"query_name", "status"},
		),
	}

	Business = BusinessMetrics{
		CustomersCreatedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "lunchly_customers_created_total",
				Help: "Total number of customers successfully created.",
			},
		),
		CustomersUpdatedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "lunchly_customers_updated_total",
				Help: "Total number of customers successfully updated.",
			},
		),
		ReservationsCreatedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "lunchly_reservations_created_total",
				Help: "Total number of reservations successfully created.",
			},
		),
		CustomersTotal: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "lunchly_customers",
				Help: "Number of customer rows seen by the last stats run.",
			},
		),
		BestCustomersListed: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "lunchly_best_customers",
				Help: "Number of customers on the best customers list at the last stats run.",
			},
		),
	}
)

const (
	StatusOK    = "ok"
	StatusError = "error"
)

func RecordDBQuery(queryName, status string, duration time.Duration) {
	DB.QueryDuration.WithLabelValues(queryName, status).Observe(duration.Seconds())
}

func QueryStatus(err error) string {
	if err != nil {
		return StatusError
	}
	return StatusOK
}

func RecordCustomerCreated() {
	Business.CustomersCreatedTotal.Inc()
}

func RecordCustomerUpdated() {
	Business.CustomersUpdatedTotal.Inc()
}

func RecordReservationCreated() {
	Business.ReservationsCreatedTotal.Inc()
}

func RecordCustomerStats(total int64, bestCustomers int) {
	Business.CustomersTotal.Set(float64(total))
	Business.BestCustomersListed.Set(float64(bestCustomers))
}
