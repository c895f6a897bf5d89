// Package download provides the per-scope orchestration for exporting
// a photo library to disk.
//
// # Manager
//
// The Manager coordinates the whole pipeline for each scope:
//
//  1. Resolve the item listing (metadata cache, else remote enumeration)
//  2. Fan items out over a bounded worker pool
//  3. Collect results through a single channel, in completion order
//  4. Emit a per-scope summary (downloaded/skipped/failed, bytes)
//
// Scopes run strictly one after another; the pool drains fully between
// scopes. An enumeration failure skips that scope and the run
// continues. A failed item never aborts its siblings.
//
// # Worker
//
// The Worker handles one item: derive the capture-date path, skip when
// the file exists, otherwise stream the original bytes to disk.
// Re-running an export is therefore incremental and is the built-in
// retry mechanism.
package download
