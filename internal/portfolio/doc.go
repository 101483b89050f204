// Package portfolio derives view state from loaded collections.
//
// Everything here is a pure function over slices the caller already
// loaded: category filtering, the assigned/unassigned photo partition,
// gallery tile derivation, and dashboard totals. No function touches the
// network or mutates its input, so the whole package unit-tests without
// a server.
package portfolio
