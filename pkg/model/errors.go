package model

import "errors"

// Error kinds from §7. Operations match these with errors.Is; none of
// them escalate to a panic on a user-reachable path.
var (
	// ErrNotFound means an operation referenced a stale ElementId. It is
	// always a no-op, never an escalation.
	ErrNotFound = errors.New("element not found")

	// ErrInvalidGeometry means a resize would have gone below the
	// configured minimum size; the caller clamps silently instead of
	// propagating this in practice, but it is available for callers
	// that want to distinguish "clamped" from "applied exactly".
	ErrInvalidGeometry = errors.New("invalid geometry")

	// ErrInvalidTarget means a connection's target does not accept
	// incoming edges of its kind (e.g. an Initial pseudostate).
	ErrInvalidTarget = errors.New("invalid connection target")

	// ErrDuplicateInitial means a region already has an Initial
	// pseudostate (invariant I-P1).
	ErrDuplicateInitial = errors.New("region already has an initial pseudostate")

	// ErrPersistence wraps errors surfaced by the persistence
	// collaborator; the in-memory model is left unchanged when this is
	// returned.
	ErrPersistence = errors.New("persistence error")
)
