// Package app wires the darkroom application together: configuration,
// the persisted session, the API client, the background health poller,
// and the terminal UI. Run is the single entry point used by the
// command-line binary.
package app
