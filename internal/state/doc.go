// Package state provides thread-safe client-side state for remote data.
//
// # Overview
//
// Each screen owns independent, possibly-stale copies of the server's
// collections; this package gives those copies a uniform shape. Three
// pieces live here:
//
//   - Store: the shared health snapshot written by the background poller
//     and read by the header, with consecutive-failure offline detection.
//   - Collection: a generic collection holder with generation-tagged
//     loads. Reloads are last-trigger-wins: a result from a superseded
//     load is discarded even when it completes after the newer one, and
//     Invalidate keeps late results from landing on a screen the user
//     has already left.
//   - FirstNonEmpty: a fallback combinator composing load sources so
//     "try endpoint A, on empty try endpoint B" is written once.
//
// Mutations reconcile locally through RemoveIf and Patch instead of
// re-entering a loading state; only an explicit new Begin/Apply cycle
// replaces the whole collection.
package state
