package metrics

import (
	"net/http"

	"github.com/Abdurahmanit/GroupProject/property-service/internal/platform/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// MetricsManager holds custom Prometheus metrics.
type MetricsManager struct {
	Registry                *prometheus.Registry
	PropertiesCreatedTotal  prometheus.Counter
	PropertyUpdatesTotal    prometheus.Counter
	PropertyDeletesTotal    prometheus.Counter
	PropertiesBookedTotal   prometheus.Counter
	BookingConflictsTotal   prometheus.Counter
	APIErrorsTotal          *prometheus.CounterVec
	APILatency              *prometheus.HistogramVec
}

// NewMetricsManager initializes and registers custom Prometheus metrics on a
// dedicated registry.
func NewMetricsManager(serviceName string) *MetricsManager {
	registry := prometheus.NewRegistry()

	propertiesCreatedTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: serviceName,
		Name:      "properties_created_total",
		Help:      "Total number of properties created.",
	})
	propertyUpdatesTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: serviceName,
		Name:      "property_updates_total",
		Help:      "Total number of properties updated.",
	})
	propertyDeletesTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: serviceName,
		Name:      "property_deletes_total",
		Help:      "Total number of properties deleted.",
	})
	propertiesBookedTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: serviceName,
		Name:      "properties_booked_total",
		Help:      "Total number of successful bookings.",
	})
	bookingConflictsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: serviceName,
		Name:      "booking_conflicts_total",
		Help:      "Total number of bookings rejected due to date conflicts.",
	})
	apiErrorsTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: serviceName,
		Name:      "api_errors_total",
		Help:      "Total number of API errors by operation.",
	}, []string{"operation", "error_type"})
	apiLatency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: serviceName,
		Name:      "api_request_latency_seconds",
		Help:      "Latency of API requests by operation.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation"})

	registry.MustRegister(
		propertiesCreatedTotal,
		propertyUpdatesTotal,
		propertyDeletesTotal,
		propertiesBookedTotal,
		bookingConflictsTotal,
		apiErrorsTotal,
		apiLatency,
		prometheus.NewGoCollector(),
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
	)

	return &MetricsManager{
		Registry:               registry,
		PropertiesCreatedTotal: propertiesCreatedTotal,
		PropertyUpdatesTotal:   propertyUpdatesTotal,
		PropertyDeletesTotal:   propertyDeletesTotal,
		PropertiesBookedTotal:  propertiesBookedTotal,
		BookingConflictsTotal:  bookingConflictsTotal,
		APIErrorsTotal:         apiErrorsTotal,
		APILatency:             apiLatency,
	}
}

// StartMetricsServer starts an HTTP server exposing the registry on /metrics.
func StartMetricsServer(port string, appLogger *logger.Logger, registry *prometheus.Registry) error {
	if port == "" {
		appLogger.Info("Prometheus metrics server port not configured, server will not start.")
		return nil
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	appLogger.Info("Prometheus metrics server starting", zap.String("port", port), zap.String("path", "/metrics"))

	server := &http.Server{
		Addr:    ":" + port,
		Handler: mux,
	}
	return server.ListenAndServe()
}
