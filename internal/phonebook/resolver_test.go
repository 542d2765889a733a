package phonebook

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"phonebook/internal/contact/models"
	id "phonebook/pkg/domain"
)

func TestFindDuplicate(t *testing.T) {
	ada := models.Contact{ID: id.NewContactID(), Name: "Ada Lovelace", Number: "1"}
	contacts := []models.Contact{
		{ID: id.NewContactID(), Name: "Arto Hellas", Number: "2"},
		ada,
	}

	for _, name := range []string{"Ada Lovelace", "ada lovelace", "  ADA LOVELACE "} {
		found, ok := FindDuplicate(contacts, name)
		assert.True(t, ok, name)
		assert.Equal(t, ada, found)
	}

	for _, name := range []string{"Ada", "Ada Lovelace Jr", ""} {
		_, ok := FindDuplicate(contacts, name)
		assert.False(t, ok, name)
	}
}

func TestPrompts(t *testing.T) {
	assert.Equal(t, "Ada Lovelace is already added to phonebook, replace the old number with a new one?", OverwritePrompt("Ada Lovelace"))
	assert.Equal(t, "Delete Ada Lovelace?", DeletePrompt("Ada Lovelace"))
}
