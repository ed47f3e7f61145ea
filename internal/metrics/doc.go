// Package metrics records statistics about a configuration build.
//
// Components receive a Recorder; NoopRecorder is the default so callers never
// nil-check. The CLI swaps in a PrometheusRecorder when --metrics-file is set
// and writes the registry in the node exporter textfile format once the build
// finishes.
package metrics
