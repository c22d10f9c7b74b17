package bunx

import (
	"github.com/google/uuid"

	"github.com/terraconstructs/tasklists/internal/apperr"
)

// NewUUIDv7 generates a time-ordered UUIDv7 string for database primary keys.
//
// Ids are generated in the application so the same models work on PostgreSQL
// and SQLite. Generation only fails when the entropy source does, in which case
// nothing could be written anyway, so this panics.
func NewUUIDv7() string {
	return uuid.Must(uuid.NewV7()).String()
}

// ValidateID checks that id is a UUID. field names the argument in the error.
func ValidateID(field, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return apperr.InvalidInput("%s must be a valid id", field).With(field, id)
	}
	return nil
}
