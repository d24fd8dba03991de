// Package main is the entry point for the Win95 Reanimated backend.
//
// The server hosts the simulated desktop's REST API: an in-memory virtual
// filesystem with JSON persistence, AI document operations behind a
// provider abstraction, window management, session snapshots, and a
// WebSocket stream of filesystem change notifications.
//
// Configuration comes from environment variables, optionally seeded from a
// TOML file; CLI flags override both.
//
// Usage:
//
//	# Production mode
//	./server -port 8000
//
//	# Development mode (colored logs, debug level)
//	./server -dev
//
//	# With a config file
//	./server -config ./config.toml
//
// Signals:
//   - SIGINT, SIGTERM: graceful shutdown
package main
