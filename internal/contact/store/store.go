// Package store holds the directory backends. All backends share one error contract:
//
//   - ErrNotFound (sentinel) when the requested id does not exist
//   - ErrNameTaken / ErrNumberTaken (both wrap sentinel.ErrConflict) on create
//   - wrapped infrastructure errors otherwise
package store

import (
	"fmt"

	"phonebook/pkg/platform/sentinel"
)

var (
	// ErrNotFound is returned when a contact id is absent.
	ErrNotFound = sentinel.ErrNotFound

	// ErrNameTaken is returned by Create when the name is already present.
	ErrNameTaken = fmt.Errorf("name already present: %w", sentinel.ErrConflict)

	// ErrNumberTaken is returned by Create when the number is already present.
	ErrNumberTaken = fmt.Errorf("number already present: %w", sentinel.ErrConflict)
)
