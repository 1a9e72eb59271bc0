// Package metrics records what exportreadme rewrote.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so no call site needs a nil check:
//
//	exp := export.New(rewriter) // NoopRecorder
//	exp = export.New(rewriter, export.WithRecorder(metrics.NewPrometheusRecorder(reg)))
//
// The CLI does not serve metrics over HTTP; after an export it can dump the registry in
// the Prometheus text format (see WriteTextfile) for the node exporter's textfile
// collector or for CI artifacts.
package metrics
