package metrics

import "time"

// ResultLabel enumerates outcome categories for counters.
type ResultLabel string

const (
	ResultSuccess   ResultLabel = "success"
	ResultFailed    ResultLabel = "failed"
	ResultUnchanged ResultLabel = "unchanged"
)

// Kind labels which resolver produced an observation.
const (
	KindSite = "site"
	KindPage = "page"
)

// Recorder defines observability hooks for resolution and reload metrics.
type Recorder interface {
	ObserveResolveDuration(kind string, d time.Duration)
	IncResolveResult(kind string, result ResultLabel)
	SetUnknownFields(kind string, n int)
	IncReload(result ResultLabel)
}

// NoopRecorder is a Recorder that does nothing (default when metrics are not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveResolveDuration(string, time.Duration) {}
func (NoopRecorder) IncResolveResult(string, ResultLabel)         {}
func (NoopRecorder) SetUnknownFields(string, int)                 {}
func (NoopRecorder) IncReload(ResultLabel)                        {}
