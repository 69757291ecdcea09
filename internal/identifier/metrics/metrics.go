package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the identifier module.
type Metrics struct {
	// Format calls (one per keystroke in the form handlers)
	Formats prometheus.Counter

	// Validation outcomes: "valid", "invalid"
	Validations *prometheus.CounterVec

	// Intake checks by kind ("company", "employee") and outcome ("accepted", "rejected")
	IntakeChecks *prometheus.CounterVec

	// Number of values per batch request
	BatchSize prometheus.Histogram
}

// New creates the identifier metrics and registers them with reg.
// A nil registerer leaves the collectors unregistered, which tests rely on.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Formats: f.NewCounter(prometheus.CounterOpts{
			Name: "jornada_identifier_formats_total",
			Help: "Total identifier format operations",
		}),
		Validations: f.NewCounterVec(prometheus.CounterOpts{
			Name: "jornada_identifier_validations_total",
			Help: "Total identifier validations by outcome",
		}, []string{"outcome"}),
		IntakeChecks: f.NewCounterVec(prometheus.CounterOpts{
			Name: "jornada_intake_checks_total",
			Help: "Total company and employee intake checks by outcome",
		}, []string{"kind", "outcome"}),
		BatchSize: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "jornada_identifier_batch_size",
			Help:    "Number of identifiers per batch validation request",
			Buckets: []float64{1, 5, 10, 25, 50, 100, 250},
		}),
	}
}

// IncrementFormats records a format operation.
func (m *Metrics) IncrementFormats() {
	if m != nil {
		m.Formats.Inc()
	}
}

// IncrementValidation records a validation outcome.
func (m *Metrics) IncrementValidation(valid bool) {
	if m != nil {
		m.Validations.WithLabelValues(outcome(valid, "valid", "invalid")).Inc()
	}
}

// IncrementIntake records an intake check outcome.
func (m *Metrics) IncrementIntake(kind string, accepted bool) {
	if m != nil {
		m.IntakeChecks.WithLabelValues(kind, outcome(accepted, "accepted", "rejected")).Inc()
	}
}

// ObserveBatchSize records the size of a batch request.
func (m *Metrics) ObserveBatchSize(n int) {
	if m != nil {
		m.BatchSize.Observe(float64(n))
	}
}

func outcome(ok bool, yes, no string) string {
	if ok {
		return yes
	}
	return no
}
