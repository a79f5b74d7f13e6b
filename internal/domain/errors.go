package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Upstream errors
	ErrMsgNotFound             = "upstream entity not found"
	ErrMsgUnsupportedNamespace = "unsupported game version or namespace"
	ErrMsgMalformedResponse    = "malformed upstream response"

	// Resolution errors
	ErrMsgUnresolvedMetadata = "unresolved upstream metadata"
	ErrMsgAmbiguousMapping   = "unrecognized upstream value"

	// Load errors
	ErrMsgDependencyOrdering = "referenced record does not exist"
	ErrMsgDuplicateSummary   = "auction summary already exists"
	ErrMsgRunLocked          = "another ingestion run holds the lock"
)

// Common domain errors
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// ErrNotFound marks a 404 from the catalog. It is never an UpstreamError.
	ErrNotFound             = errors.New(ErrMsgNotFound)
	ErrUnsupportedNamespace = errors.New(ErrMsgUnsupportedNamespace)
	ErrMalformedResponse    = errors.New(ErrMsgMalformedResponse)

	ErrUnresolvedMetadata = errors.New(ErrMsgUnresolvedMetadata)
	ErrAmbiguousMapping   = errors.New(ErrMsgAmbiguousMapping)

	ErrDependencyOrdering = errors.New(ErrMsgDependencyOrdering)
	ErrDuplicateSummary   = errors.New(ErrMsgDuplicateSummary)
	ErrRunLocked          = errors.New(ErrMsgRunLocked)
)
