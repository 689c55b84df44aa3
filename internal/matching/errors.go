package matching

import (
	"fmt"

	"github.com/google/uuid"
)

// NotFoundError indicates that a referenced demand or candidate does not
// exist. It is fatal to the single operation that referenced it, never to a
// whole batch.
type NotFoundError struct {
	Resource string
	ID       uuid.UUID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}
