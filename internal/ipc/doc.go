// Package ipc exposes a property store over JSON-RPC on a Unix socket and
// ships the matching client.
//
// The server wraps a Backend (normally the SQLite property database) and
// serves the "Properties" service. The client's Item method returns a
// layout.Store, so a layout.Engine can drive a remote item exactly as it
// drives a local one. Calls honour context cancellation on the client side
// so CLI commands fail fast when the server is offline.
package ipc
