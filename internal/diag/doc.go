// Package diag defines the problem taxonomy of the canonicalizer and the
// diagnostic model shared by the driver and the formatters.
//
// # Problems
//
// Problem is a closed set of concrete kinds (Shadowing, LookupNotInScope,
// CircularDef, ...). They are data: the canonicalizer never aborts on user
// errors, it reports a Problem to a Reporter and keeps going. Kinds that also
// implement RuntimeError may stand in for an expression in the canonical tree.
//
// Bag is the ordered accumulator one compilation unit reports into. The
// order of a Bag is the traversal order and must stay deterministic.
//
// # Diagnostics
//
// Render turns a Problem into a Diagnostic with a severity, a stable Code, a
// message and optional notes. UnusedDef renders as a warning, every other kind
// as an error. Diagnostics is the capped list the driver collects per file;
// it supports sorting, deduplication, filtering and merging.
//
// Package diag does not perform IO or terminal formatting; internal/diagfmt
// owns pretty and JSON output. FormatShortDiagnostics is kept here because
// tests across the tree compare against its one-line-per-entry form.
package diag
