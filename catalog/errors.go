package catalog

import "errors"

var (
	// ErrCatalogUnreadable is returned when the catalog source cannot be
	// opened or parsed. This is fatal at startup: there is no partial catalog.
	ErrCatalogUnreadable = errors.New("catalog source unreadable")

	// ErrMissingColumns is returned when the catalog header lacks a required column.
	ErrMissingColumns = errors.New("catalog missing required column")
)
