package audit

import (
	"fmt"
	"time"
)

// Event is a single audit trail entry. ObjectType/ObjectID name the
// entity acted upon; for a login that is the user record itself.
type Event struct {
	ID         string    `json:"id"`
	UserID     int64     `json:"user_id"`
	ObjectType string    `json:"object_type"`
	ObjectID   int64     `json:"object_id"`
	Action     string    `json:"action"`
	CreatedAt  time.Time `json:"created_at"`
}

// Validate checks the required fields.
func (e *Event) Validate() error {
	if e.Action == "" {
		return fmt.Errorf("%w: action is required", ErrEventValidation)
	}
	return nil
}
