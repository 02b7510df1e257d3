package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Upstream clients return these
// (optionally wrapped) so services can translate them into domain errors.
//
// These represent factual states about resources, not validation failures:
// - ErrNotFound: the collaborator answered and the record does not exist
// - ErrUnavailable: the collaborator could not be reached or answered with a fault
//
// For validation errors (bad input, malformed records), use pkg/domain-errors directly.
var (
	ErrNotFound    = errors.New("not found")
	ErrUnavailable = errors.New("unavailable")
)
