// Package metrics provides the observability hooks for the site server.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so metrics can stay disabled without nil checks at call sites:
//
//	recorder := metrics.NewPrometheusRecorder(registry)
//	handler := middleware.Chain(logger, adapter, recorder)
//
// The admin server exposes the registry through HTTPHandler when
// monitoring.metrics is enabled.
package metrics
