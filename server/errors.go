package server

import "errors"

// ErrEngineRequired is returned when a server is constructed without an engine.
var ErrEngineRequired = errors.New("engine required")
