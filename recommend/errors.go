package recommend

import "errors"

var (
	// ErrNoQuery is returned when a request carries neither a query nor a URL.
	// It is the only request-scoped failure the engine produces.
	ErrNoQuery = errors.New("either query or url must be provided")

	// ErrRankerRequired is returned when an engine is constructed without a ranker.
	ErrRankerRequired = errors.New("ranker required")
)
