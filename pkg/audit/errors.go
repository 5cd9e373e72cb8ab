package audit

import "errors"

var (
	ErrEventValidation = errors.New("audit.event_validation")
	ErrInvalidPayload  = errors.New("audit.invalid_payload")
)
