// Package metrics holds the Prometheus collectors of the store.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Result label values.
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "route", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "storefront_http_request_duration_seconds",
		Help:    "Latency of HTTP requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	OrdersPlacedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storefront_orders_placed_total",
		Help: "Total number of orders placed from carts",
	})

	UsersRegisteredTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storefront_users_registered_total",
		Help: "Total number of users created together with their customer",
	})

	SeedRunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_seed_runs_total",
		Help: "Total number of seed runs",
	}, []string{"result"})

	DBQueryDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "storefront_db_query_duration_seconds",
		Help:    "Latency of SQL statements by outcome (ok, slow, error)",
		Buckets: prometheus.DefBuckets,
	}, []string{"outcome"})

	DBPoolConnections = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "storefront_db_pool_connections",
		Help: "Connections of the database pool by state (open, in_use, idle)",
	}, []string{"state"})

	DBPoolWaitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storefront_db_pool_waits_total",
		Help: "Total number of times a query waited for a free connection",
	})

	EmailsPublishedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_emails_published_total",
		Help: "Total number of email notifications handed to the event bus",
	}, []string{"template", "result"})
)
