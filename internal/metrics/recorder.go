package metrics

import "time"

// Outcome labels the result of an export.
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeInvalid Outcome = "invalid"
	OutcomeFailed  Outcome = "failed"
)

// Shape summarises the size of a built configuration.
type Shape struct {
	Profile    string
	Version    string
	NavEntries int
	Sections   int
	Items      int
	Extensions int
}

// Recorder defines observability hooks for a configuration build.
type Recorder interface {
	ObserveBuildDuration(d time.Duration)
	SetShape(s Shape)
	SetIssues(severity string, n int)
	IncExport(format string, outcome Outcome)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveBuildDuration(time.Duration) {}
func (NoopRecorder) SetShape(Shape)                     {}
func (NoopRecorder) SetIssues(string, int)              {}
func (NoopRecorder) IncExport(string, Outcome)          {}
