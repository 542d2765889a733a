package phonebook

import (
	"phonebook/internal/contact/models"
	id "phonebook/pkg/domain"
)

// Msg is an input to Update: a user intent or the outcome of an effect.
type Msg interface {
	isMsg()
}

// Form edits.
type (
	NameChanged   struct{ Value string }
	NumberChanged struct{ Value string }
	FilterChanged struct{ Value string }
)

// Submitted is the add intent for the current form contents.
type Submitted struct{}

// OverwriteConfirmed is dispatched when the user accepts replacing a number.
type OverwriteConfirmed struct {
	Contact models.Contact
}

// DeleteRequested is the remove intent for a cached contact.
type DeleteRequested struct {
	ID id.ContactID
}

// DeleteConfirmed is dispatched when the user accepts the removal.
type DeleteConfirmed struct {
	ID   id.ContactID
	Name string
}

// Refresh reloads the collection from the server.
type Refresh struct{}

// Loaded is the outcome of ListContacts.
type Loaded struct {
	Contacts []models.Contact
	Err      error
}

// Created is the outcome of CreateContact.
type Created struct {
	Contact models.Contact
	Err     error
}

// Updated is the outcome of UpdateContact. Requested is what was sent.
type Updated struct {
	Requested models.Contact
	Contact   models.Contact
	Err       error
}

// Deleted is the outcome of DeleteContact.
type Deleted struct {
	ID   id.ContactID
	Name string
	Err  error
}

// NotificationExpired fires when a ScheduleClear elapses.
type NotificationExpired struct {
	Generation uint64
}

func (NameChanged) isMsg()         {}
func (NumberChanged) isMsg()       {}
func (FilterChanged) isMsg()       {}
func (Submitted) isMsg()           {}
func (OverwriteConfirmed) isMsg()  {}
func (DeleteRequested) isMsg()     {}
func (DeleteConfirmed) isMsg()     {}
func (Refresh) isMsg()             {}
func (Loaded) isMsg()              {}
func (Created) isMsg()             {}
func (Updated) isMsg()             {}
func (Deleted) isMsg()             {}
func (NotificationExpired) isMsg() {}
