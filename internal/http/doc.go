// Package http provides HTTP handlers and routing for the backend REST API.
//
// Endpoints:
//   - Health: / and /health, /stats, /metrics
//   - Filesystem: /vfs/folder, /vfs/file, /vfs/item, /vfs/rename, /vfs/move,
//     /vfs/metadata, /vfs/exists, /vfs/search, /vfs/stats
//   - AI: /ai/summarize, /ai/rewrite, /ai/interpret, /ai/explain-folder,
//     /ai/usage, /ai/cache
//   - Desktop: /desktop/windows, /desktop/windows/:id, /desktop/stats
//   - Sessions: /sessions, /sessions/:id, /sessions/:id/restore
//   - Stream: /stream (WebSocket change notifications)
//
// Filesystem sentinel errors map onto HTTP statuses: missing items are 404,
// name collisions are 409, structural violations are 400.
package http
