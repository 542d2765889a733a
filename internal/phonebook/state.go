package phonebook

import (
	"slices"
	"strings"

	"phonebook/internal/contact/models"
	id "phonebook/pkg/domain"
)

// State is everything the client shows. It is a value; Update returns a new one.
type State struct {
	Contacts []models.Contact
	Name     string
	Number   string
	Filter   string
	Notice   NotificationSlot
}

// Visible returns the contacts whose name contains the filter text, ignoring case.
func (s State) Visible() []models.Contact {
	filter := strings.ToLower(strings.TrimSpace(s.Filter))
	if filter == "" {
		return slices.Clone(s.Contacts)
	}
	var out []models.Contact
	for _, c := range s.Contacts {
		if strings.Contains(strings.ToLower(c.Name), filter) {
			out = append(out, c)
		}
	}
	return out
}

// Notification returns the live notification, if any.
func (s State) Notification() (Notification, bool) {
	return s.Notice.Current()
}

// Find returns the cached contact with contactID.
func (s State) Find(contactID id.ContactID) (models.Contact, bool) {
	i := s.indexOf(contactID)
	if i < 0 {
		return models.Contact{}, false
	}
	return s.Contacts[i], true
}

// FindByName resolves a name against the cache, ignoring case.
func (s State) FindByName(name string) (models.Contact, bool) {
	return FindDuplicate(s.Contacts, name)
}

func (s State) indexOf(contactID id.ContactID) int {
	return slices.IndexFunc(s.Contacts, func(c models.Contact) bool { return c.ID == contactID })
}

// The helpers below copy the slice so earlier snapshots are never mutated.

func (s State) withAppended(c models.Contact) State {
	s.Contacts = append(slices.Clip(s.Contacts), c)
	return s
}

func (s State) withReplaced(c models.Contact) (State, bool) {
	i := s.indexOf(c.ID)
	if i < 0 {
		return s, false
	}
	s.Contacts = slices.Clone(s.Contacts)
	s.Contacts[i] = c
	return s, true
}

func (s State) withoutID(contactID id.ContactID) State {
	if s.indexOf(contactID) < 0 {
		return s
	}
	s.Contacts = slices.DeleteFunc(slices.Clone(s.Contacts), func(c models.Contact) bool { return c.ID == contactID })
	return s
}

func (s State) withFormCleared() State {
	s.Name, s.Number = "", ""
	return s
}
