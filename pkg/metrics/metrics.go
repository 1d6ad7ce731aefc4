package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	pondCalculator = "pond_calculator"

	// Estimation metrics
	estimatesTotal       = "estimates_total"
	validationErrorTotal = "validation_errors_total"
	timelineDays         = "timeline_days"

	// Labels
	outcomeLabel = "outcome"
	kindLabel    = "kind"

	// Outcomes
	OutcomeSuccess         = "success"
	OutcomeValidationError = "validation_error"
	OutcomeCalculationErr  = "calculation_error"
	OutcomeCached          = "cached"
)

var estimatesTotalLabels = []string{
	outcomeLabel,
}

var validationErrorsTotalLabels = []string{
	kindLabel,
}

/**
* Metrics definition
**/
var estimatesTotalMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Subsystem: pondCalculator,
		Name:      estimatesTotal,
		Help:      "number of estimate requests by outcome",
	},
	estimatesTotalLabels,
)

var validationErrorsTotalMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Subsystem: pondCalculator,
		Name:      validationErrorTotal,
		Help:      "number of rejected input fields by error kind",
	},
	validationErrorsTotalLabels,
)

var timelineDaysMetric = prometheus.NewHistogram(
	prometheus.HistogramOpts{
		Subsystem: pondCalculator,
		Name:      timelineDays,
		Help:      "distribution of estimated project timelines in working days",
		Buckets:   []float64{1, 2, 5, 10, 20, 40, 80, 160, 260},
	},
)

func IncreaseEstimatesTotalMetric(outcome string) {
	labels := prometheus.Labels{
		outcomeLabel: outcome,
	}
	estimatesTotalMetric.With(labels).Inc()
}

func IncreaseValidationErrorsMetric(kind string) {
	labels := prometheus.Labels{
		kindLabel: kind,
	}
	validationErrorsTotalMetric.With(labels).Inc()
}

func ObserveTimelineDays(days int) {
	timelineDaysMetric.Observe(float64(days))
}

// Registry holds the calculator metrics; the CLI dumps it on request.
var Registry = prometheus.NewRegistry()

func init() {
	registerMetrics()
}

func registerMetrics() {
	Registry.MustRegister(estimatesTotalMetric)
	Registry.MustRegister(validationErrorsTotalMetric)
	Registry.MustRegister(timelineDaysMetric)
}
