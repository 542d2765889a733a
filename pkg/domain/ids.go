// Package domain holds typed identifiers shared across packages.
package domain

import (
	"github.com/google/uuid"

	dErrors "phonebook/pkg/domain-errors"
)

// ContactID identifies a contact. It is assigned by the directory at creation
// and never changes afterwards.
type ContactID uuid.UUID

// NewContactID returns a fresh random contact id.
func NewContactID() ContactID {
	return ContactID(uuid.New())
}

// ParseContactID parses the canonical string form of a contact id.
// Nil UUIDs are rejected.
func ParseContactID(s string) (ContactID, error) {
	u, err := parseUUID(s)
	if err != nil {
		return ContactID{}, err
	}
	return ContactID(u), nil
}

func (id ContactID) String() string { return uuid.UUID(id).String() }

// IsZero reports whether id is the nil UUID.
func (id ContactID) IsZero() bool { return uuid.UUID(id) == uuid.Nil }

// MarshalText implements encoding.TextMarshaler.
func (id ContactID) MarshalText() ([]byte, error) {
	return uuid.UUID(id).MarshalText()
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *ContactID) UnmarshalText(b []byte) error {
	parsed, err := ParseContactID(string(b))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

func parseUUID(s string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "id is required")
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.Wrap(err, dErrors.CodeInvalidInput, "invalid id")
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "id must not be nil")
	}
	return u, nil
}
