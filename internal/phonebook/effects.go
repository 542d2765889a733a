package phonebook

import (
	"time"

	"phonebook/internal/contact/models"
	id "phonebook/pkg/domain"
)

// Effect is work for the Runtime. Update never performs it itself.
type Effect interface {
	isEffect()
}

// Confirm asks the user a yes/no question; OnAccept is dispatched on yes.
type Confirm struct {
	Prompt   string
	OnAccept Msg
}

// ListContacts fetches the collection and yields Loaded.
type ListContacts struct{}

// CreateContact yields Created.
type CreateContact struct {
	Name   string
	Number string
}

// UpdateContact sends Contact (carrying the new number) and yields Updated.
type UpdateContact struct {
	Contact models.Contact
}

// DeleteContact yields Deleted.
type DeleteContact struct {
	ID   id.ContactID
	Name string
}

// ScheduleClear replaces the pending notification timer. When it elapses the
// Runtime dispatches NotificationExpired with the same generation.
type ScheduleClear struct {
	After      time.Duration
	Generation uint64
}

func (Confirm) isEffect()       {}
func (ListContacts) isEffect()  {}
func (CreateContact) isEffect() {}
func (UpdateContact) isEffect() {}
func (DeleteContact) isEffect() {}
func (ScheduleClear) isEffect() {}
