// Package errs collects the closed set of sentinel error kinds used
// across the dependency graph's core packages. Recoverable
// per-file/per-plugin failures (ParseError, ExtractorError,
// InterpreterError) are attached to results instead, see internal/engine.
package errs

import "errors"

var (
	// ErrIdentifierClash: upsertNode collided on identifier with a
	// different source-file.
	ErrIdentifierClash = errors.New("identifier clash")
	// ErrDanglingEndpoint: upsertEdge named an endpoint that does not exist.
	ErrDanglingEndpoint = errors.New("dangling endpoint")
	// ErrSchemaVersionMismatch: the store's schema.json sidecar disagrees
	// with the binary's compiled-in schema version.
	ErrSchemaVersionMismatch = errors.New("schema version mismatch")
	// ErrDepthExceeded: maxPathLength/maxDepth exceeded the safety ceiling.
	ErrDepthExceeded = errors.New("depth exceeded safety ceiling")
	// ErrInvalidQuery: malformed or unsupported query input.
	ErrInvalidQuery = errors.New("invalid query")
	// ErrStoreUnavailable: backing store error, fatal to the operation.
	ErrStoreUnavailable = errors.New("store unavailable")
	// ErrCancelled: the caller's context was cancelled.
	ErrCancelled = errors.New("cancelled")
	// ErrTimeout: a per-file time budget was exceeded.
	ErrTimeout = errors.New("timeout")
)
