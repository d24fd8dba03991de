// Package ws streams filesystem change notifications to connected desktop
// clients over WebSocket. Each connection subscribes to the five change
// events and forwards them as JSON; slow consumers drop messages rather
// than back-pressure the filesystem.
package ws
