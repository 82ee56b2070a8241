// Package metrics provides observability hooks for descriptor resolution.
//
// Components receive a Recorder through injection and default to NoopRecorder,
// so callers never need nil checks:
//
//	store := state.NewStore(loader).WithRecorder(metrics.NewPrometheusRecorder(reg))
//
// PrometheusRecorder registers its collectors on the given registry and
// HTTPHandler serves that registry in the OpenMetrics text format.
package metrics
