package sentinel

import "errors"

// Sentinel errors for infrastructure facts. The domain store returns these
// (optionally wrapped) so the service façade can translate them into coded
// domain errors.
//
// These represent factual states about stored records, not validation
// failures:
// - ErrNotFound: entity does not exist in the store
// - ErrConflict: entity with the same identity already exists
// - ErrInvalidState: entity in wrong state for requested operation
//
// For validation errors (bad input, missing fields), use pkg/domain-errors.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrInvalidState = errors.New("invalid state")
)
