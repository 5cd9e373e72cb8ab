package csrf

import "errors"

var (
	ErrTokenGeneration = errors.New("csrf.token_generation_failed")
	ErrInvalidPayload  = errors.New("csrf.invalid_payload")
)
