// Package server wires configuration, logging, storage, the virtual
// filesystem, the AI client, the desktop and session managers into a
// running HTTP server with graceful shutdown.
package server
