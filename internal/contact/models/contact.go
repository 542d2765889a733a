package models

import (
	"strings"

	id "phonebook/pkg/domain"
	dErrors "phonebook/pkg/domain-errors"
)

// Contact is a directory entry.
//
// Invariants:
//   - ID is assigned by the directory at creation and is immutable
//   - Name is non-empty and unique across the directory; it never changes
//   - Number is non-empty; it is unique at creation time only
type Contact struct {
	ID     id.ContactID `json:"id"`
	Name   string       `json:"name"`
	Number string       `json:"number"`
}

// Validation messages returned to API consumers verbatim.
const (
	MsgNameMissing     = "name missing"
	MsgNumberMissing   = "number missing"
	MsgNameNotUnique   = "name must be unique"
	MsgNumberNotUnique = "number must be unique"
	MsgContactMissing  = "contact not found"
)

// NewContact validates fields in their required order and builds a contact.
func NewContact(contactID id.ContactID, name, number string) (*Contact, error) {
	name, number = strings.TrimSpace(name), strings.TrimSpace(number)
	if err := ValidateFields(name, number); err != nil {
		return nil, err
	}
	return &Contact{ID: contactID, Name: name, Number: number}, nil
}

// ValidateFields checks presence: name first, then number.
func ValidateFields(name, number string) error {
	if strings.TrimSpace(name) == "" {
		return dErrors.New(dErrors.CodeValidation, MsgNameMissing)
	}
	return ValidateNumber(number)
}

// ValidateNumber checks that a number is present.
func ValidateNumber(number string) error {
	if strings.TrimSpace(number) == "" {
		return dErrors.New(dErrors.CodeValidation, MsgNumberMissing)
	}
	return nil
}

// WithNumber returns a copy of c carrying number. ID and Name are preserved.
func (c Contact) WithNumber(number string) Contact {
	c.Number = strings.TrimSpace(number)
	return c
}

// SameName reports whether name matches the contact's name, ignoring case
// and surrounding whitespace.
func (c Contact) SameName(name string) bool {
	return strings.EqualFold(c.Name, strings.TrimSpace(name))
}
