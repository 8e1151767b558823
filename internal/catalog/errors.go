package catalog

import "errors"

var (
	// ErrCatalogUnreachable is returned when the catalog could not be fetched.
	ErrCatalogUnreachable = errors.New("catalog unreachable")

	// ErrCatalogMalformed is returned when the fetched document is not a catalog.
	ErrCatalogMalformed = errors.New("catalog malformed")

	// ErrCatalogEmpty is returned when no entry survives FilterUsable.
	ErrCatalogEmpty = errors.New("no usable sprites")
)
