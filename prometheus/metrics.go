package prometheus

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Counter metrics
var (
	// LoginCounter counts login attempts by principal kind (vendor, superadmin)
	LoginCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marketplace_login_total",
			Help: "Total number of login attempts",
		},
		[]string{"principal"},
	)

	RegisterCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "marketplace_register_total",
			Help: "Total number of successful store registrations",
		},
	)

	// AuthErrorCounter counts authentication and registration failures by type
	AuthErrorCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marketplace_auth_errors_total",
			Help: "Total number of authentication errors",
		},
		[]string{"type"},
	)

	StorefrontViewCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "marketplace_storefront_views_total",
			Help: "Total number of anonymous storefront views",
		},
	)

	// LicenseOperationCounter counts license issuance and revocation
	LicenseOperationCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marketplace_license_operations_total",
			Help: "Total number of license operations",
		},
		[]string{"operation"},
	)

	// ModerationCounter counts superadmin store moderation actions
	ModerationCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marketplace_moderation_actions_total",
			Help: "Total number of store moderation actions",
		},
		[]string{"action"},
	)
)

// DBOperationDuration tracks repository call latency
var DBOperationDuration = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "marketplace_db_operation_duration_seconds",
		Help:    "Duration of database operations in seconds",
		Buckets: prometheus.DefBuckets,
	},
	[]string{"operation"},
)

func init() {
	prometheus.MustRegister(LoginCounter)
	prometheus.MustRegister(RegisterCounter)
	prometheus.MustRegister(AuthErrorCounter)
	prometheus.MustRegister(StorefrontViewCounter)
	prometheus.MustRegister(LicenseOperationCounter)
	prometheus.MustRegister(ModerationCounter)
	prometheus.MustRegister(DBOperationDuration)
}

// RecordAuthError increments the auth error counter for the given type
func RecordAuthError(errorType string) {
	AuthErrorCounter.WithLabelValues(errorType).Inc()
}

// TrackDBOperation returns a function that records the duration of a database operation.
//
//	defer prometheus.TrackDBOperation("catalog_query")(time.Now())
func TrackDBOperation(operation string) func(time.Time) {
	return func(start time.Time) {
		DBOperationDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	}
}
