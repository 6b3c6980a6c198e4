package index

import "errors"

var (
	// ErrEmbedderRequired is returned when Build is called without an embedder.
	ErrEmbedderRequired = errors.New("embedder required")

	// ErrDimensionMismatch indicates the encoder produced vectors of
	// differing widths for the same catalog.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")
)
