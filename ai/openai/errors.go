package openai

import "errors"

// ErrEmptyResponse is returned when the extraction model returns no choices.
var ErrEmptyResponse = errors.New("model returned empty response")
