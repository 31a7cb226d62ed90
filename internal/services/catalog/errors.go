package catalog

import "errors"

var (
	// ErrInvalidCatalog is returned when a catalog file fails validation
	ErrInvalidCatalog = errors.New("invalid catalog")

	// ErrUnknownValue is returned when a label uses a value the catalog does not list
	ErrUnknownValue = errors.New("value not in catalog")
)
