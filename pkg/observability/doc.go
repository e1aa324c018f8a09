/*
Package observability turns engine lifecycle hooks into logs and Prometheus metrics.

	metrics := observability.NewMetrics()
	engine := rechat.New(rechat.WithLifecycleHooks(
		observability.Combine(observability.LogHooks(logger), metrics.Hooks()),
	))
	http.Handle("/metrics", metrics.Handler())
*/
package observability
