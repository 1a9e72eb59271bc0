package metrics

import "time"

// ResultLabel enumerates export outcome categories for counters.
type ResultLabel string

const (
	ResultSuccess  ResultLabel = "success"
	ResultFailed   ResultLabel = "failed"
	ResultCanceled ResultLabel = "canceled"
)

// ReferenceResult says what happened to a matched reference.
type ReferenceResult string

const (
	ReferenceRewritten ReferenceResult = "rewritten"
	ReferenceKept      ReferenceResult = "kept"
)

// Recorder defines observability hooks for exports. Implementations may forward to
// Prometheus or be swapped for a test double.
type Recorder interface {
	// AddReferences counts n references of kind (html_attribute, markdown) with result.
	AddReferences(kind string, result ReferenceResult, n int)
	ObserveExportDuration(d time.Duration)
	IncExportOutcome(outcome ResultLabel)
}

// NoopRecorder is a Recorder that does nothing (default when metrics are not configured).
type NoopRecorder struct{}

func (NoopRecorder) AddReferences(string, ReferenceResult, int) {}
func (NoopRecorder) ObserveExportDuration(time.Duration)        {}
func (NoopRecorder) IncExportOutcome(ResultLabel)               {}
