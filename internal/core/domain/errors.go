package domain

import "errors"

// Sentinel errors surfaced across the core. Adapters translate storage and
// transport failures into these; HTTP handlers map them onto status codes.
var (
	// ErrNotFound signals an unknown id or slug.
	ErrNotFound = errors.New("not found")

	// ErrConflict signals a unique-constraint collision (slug or name).
	ErrConflict = errors.New("already exists")

	// ErrInvalidArgument signals malformed caller input, such as a
	// non-finite coordinate.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNoResult signals an empty geocoding response. Callers treat it the
	// same as any other geocoding failure: fall back, never retry.
	ErrNoResult = errors.New("no geocoding result")
)
