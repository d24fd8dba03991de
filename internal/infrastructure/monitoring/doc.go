/*
Package monitoring provides Prometheus-based metrics collection.

It tracks HTTP requests, virtual filesystem operations, AI operations
(including cache efficiency and fallback rates), window and session
lifecycle, and WebSocket connections.

Usage:

	metrics := monitoring.NewMetrics()
	router.Use(monitoring.Middleware(metrics))

	timer := monitoring.NewFSTimer(metrics, "write")
	// ... perform operation ...
	timer.Stop("success")

Each collector owns its registry; expose it with:

	router.GET("/metrics", gin.WrapH(metrics.Handler()))
*/
package monitoring
