package search

import "errors"

// ErrIndexMismatch is returned when the supplied index does not cover the
// same records as the ranker's catalog.
var ErrIndexMismatch = errors.New("index does not match catalog records")
