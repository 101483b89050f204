// Package upload manages photo drafts and the sequential upload loop.
//
// # Overview
//
// A Draft is the client-only representation of a selected file before it
// becomes a Photo on the server: a transient id, per-file metadata
// seeded from global defaults, and a locally generated preview
// thumbnail. The Uploader pushes drafts to the API one at a time in
// selection order, reporting per-item status transitions, and settles
// into a Batch whose outcome is a tri-state summary: all succeeded, some
// failed, or all failed. Batches are never atomic; failed drafts remain
// pending for retry while successful ones are pruned.
package upload
