// Package api implements the HTTP client for the remote portfolio API.
//
// # Overview
//
// Every screen talks to the server exclusively through this package. The
// Client resolves a base URL once, attaches Accept/Content-Type headers
// and the bearer credential from an injected TokenSource, and decodes
// responses into the typed structs in types.go at this boundary so
// downstream code never re-checks payload shape.
//
// # Error handling
//
// Non-2xx responses become *Error values carrying the HTTP status and a
// human-readable message: the server's JSON error field when present, a
// generic "unexpected response" notice when an intermediary answered
// with HTML, and "HTTP <status>" otherwise. Transport failures stay
// wrapped stdlib errors. The client never retries and never caches.
//
// # Components
//
//   - client.go: Client, request plumbing, multipart photo upload
//   - types.go: wire types for photos, works, categories, auth, health
package api
