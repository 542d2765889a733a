package phonebook

import (
	"fmt"

	id "phonebook/pkg/domain"
)

// StaleStateError reports a cached contact that the server no longer has.
type StaleStateError struct {
	ID   id.ContactID
	Name string
}

func (e *StaleStateError) Error() string {
	return fmt.Sprintf("Information of %s has already been removed from server", e.Name)
}
