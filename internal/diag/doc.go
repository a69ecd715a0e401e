// Package diag defines the diagnostic model shared by the semantic
// analysis passes.
//
// Diagnostic is the central record: a Severity, a stable numeric Code,
// a short message, the primary source span and optional notes. The
// solvers emit through a Reporter so they stay decoupled from storage
// and formatting; Bag accumulates diagnostics for a whole run, and the
// driver merges per-item bags deterministically.
//
// This package performs no rendering or IO. Formatting lives in
// internal/diagfmt.
package diag
