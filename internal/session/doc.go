// Package session holds the admin credential for the life of a login.
//
// The Session replaces what the browser front end kept in localStorage:
// one bearer token plus the user it identifies, persisted to a TOML file
// under ~/.config/darkroom. It is built once at startup, injected into
// the API client as its TokenSource, and written only by the login and
// logout flows. A failed server-side verification clears it.
package session
