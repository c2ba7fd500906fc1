package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	// PricingBackend - metrics prefix
	PricingBackend = "pricing"

	// CalculationsTotal - name of the metric counting engine invocations
	CalculationsTotal = "calculations_total"
	// ReferenceNotFoundTotal - name of the metric counting lookups of unknown catalog keys
	ReferenceNotFoundTotal = "reference_not_found_total"
	// CatalogReloadsTotal - name of the metric counting catalog reload attempts
	CatalogReloadsTotal = "catalog_reloads_total"
	// HTTPRequestDuration - name of the HTTP request duration metric
	HTTPRequestDuration = "http_request_duration_seconds"

	labelOperation = "operation"
	labelKind      = "kind"
	labelResult    = "result"
	labelRoute     = "route"
	labelCode      = "code"

	ResultSuccess = "success"
	ResultFailure = "failure"
)

// Operation metric to capture
type Operation string

var (
	OperationUsage     Operation = "usage"
	OperationLicensing Operation = "licensing"
	OperationCompare   Operation = "compare"
	OperationRecommend Operation = "recommend"
)

var calculationsCountMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Subsystem: PricingBackend,
		Name:      CalculationsTotal,
		Help:      "number of pricing calculations performed",
	},
	[]string{labelOperation},
)

var referenceNotFoundMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Subsystem: PricingBackend,
		Name:      ReferenceNotFoundTotal,
		Help:      "number of requests naming a plan, model, option or security add-on missing from the catalog",
	},
	[]string{labelKind},
)

var catalogReloadsMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Subsystem: PricingBackend,
		Name:      CatalogReloadsTotal,
		Help:      "number of catalog reload attempts by result",
	},
	[]string{labelResult},
)

var httpRequestDurationMetric = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Subsystem: PricingBackend,
		Name:      HTTPRequestDuration,
		Help:      "HTTP request duration by route and status code",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{labelRoute, labelCode},
)

func IncCalculations(op Operation) {
	calculationsCountMetric.With(prometheus.Labels{labelOperation: string(op)}).Inc()
}

func IncReferenceNotFound(kind string) {
	referenceNotFoundMetric.With(prometheus.Labels{labelKind: kind}).Inc()
}

func IncCatalogReload(success bool) {
	result := ResultSuccess
	if !success {
		result = ResultFailure
	}
	catalogReloadsMetric.With(prometheus.Labels{labelResult: result}).Inc()
}

func ObserveHTTPRequest(route, code string, elapsed time.Duration) {
	httpRequestDurationMetric.With(prometheus.Labels{labelRoute: route, labelCode: code}).Observe(elapsed.Seconds())
}

// register the metrics
func init() {
	prometheus.MustRegister(calculationsCountMetric)
	prometheus.MustRegister(referenceNotFoundMetric)
	prometheus.MustRegister(catalogReloadsMetric)
	prometheus.MustRegister(httpRequestDurationMetric)
}

// Reset the metrics we have captured
func Reset() {
	calculationsCountMetric.Reset()
	referenceNotFoundMetric.Reset()
	catalogReloadsMetric.Reset()
	httpRequestDurationMetric.Reset()
}
