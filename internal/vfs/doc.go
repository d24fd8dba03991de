// Package vfs implements the in-memory virtual file system behind the
// desktop: a path-addressed tree of files and folders with rename/move
// semantics, auto-parent creation, change notification, and best-effort
// JSON persistence.
//
// The tree keeps a flat path→node index alongside the parent/child links so
// lookups are O(1) after normalization. Every mutation keeps the index, the
// back-references, and each node's full path consistent, and then persists
// the whole tree under a single storage key. Persistence failures are logged
// and swallowed; the in-memory tree is authoritative for the session.
//
// Mutations announce themselves through five events (fileCreated,
// fileModified, fileDeleted, folderCreated, folderDeleted) consumed by the
// explorer and notepad UIs.
package vfs
