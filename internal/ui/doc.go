// Package ui provides the terminal user interface for darkroom.
//
// # Architecture Overview
//
// The UI is a Bubble Tea program. A single root Model owns every screen
// and all loaded collections; Update is the only place state changes,
// and every network call runs as a tea.Cmd that reports back with a
// typed message.
//
// # Package Structure
//
//   - app.go: Root model, global key handling, view dispatch, and Run
//   - msgs.go: Message types and the commands that produce them
//   - gallery.go: Public gallery and per-work photo browsing
//   - contact.go: Public contact form
//   - login.go: Admin sign-in and session verification
//   - photos.go: Admin photo list with inline editing and deletion
//   - works.go: Admin works list with creation, expansion, and deletion
//   - upload.go: Draft queue and sequential batch upload
//   - theme.go: Color themes and lipgloss styles
//
// # Views
//
// Public views need no session: the gallery (work covers, falling back
// to individual photos when no work has a cover), the per-work photo
// gallery, and the contact form. Admin views require a signed-in
// session and detour through the login screen when there is none:
// photos, works, and upload.
//
// # Data Flow
//
//  1. Loads bump the target collection's generation and carry it in the
//     result message; stale results from superseded loads are dropped.
//  2. Mutations reconcile loaded collections in place (patch or remove)
//     instead of reloading, so lists never flicker back into a loading
//     state. The exceptions are work creation and work deletion, where
//     the server derives state the client cannot.
//  3. A background poller refreshes the health store; the UI snapshots
//     it every tick for the connection indicator.
//
// # Key Bindings
//
//   - g/c: Gallery, contact
//   - a/w/u: Admin photos, works, upload (login required)
//   - f: Cycle gallery category filter
//   - j/k, enter, esc: Navigate
//   - d: Delete selected (confirmation is a preference)
//   - T: Cycle theme
//   - h or ?: Help
//   - e or Ctrl+C: Exit
package ui
