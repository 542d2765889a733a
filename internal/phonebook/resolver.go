package phonebook

import (
	"fmt"

	"phonebook/internal/contact/models"
)

// FindDuplicate looks for a cached contact with the same name, ignoring case.
// Only the local cache is consulted.
func FindDuplicate(contacts []models.Contact, name string) (models.Contact, bool) {
	for _, c := range contacts {
		if c.SameName(name) {
			return c, true
		}
	}
	return models.Contact{}, false
}

// OverwritePrompt is the question asked before replacing a number.
func OverwritePrompt(name string) string {
	return fmt.Sprintf("%s is already added to phonebook, replace the old number with a new one?", name)
}

// DeletePrompt is the question asked before removing a contact.
func DeletePrompt(name string) string {
	return fmt.Sprintf("Delete %s?", name)
}
