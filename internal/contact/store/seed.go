package store

import (
	"context"
	"errors"
	"fmt"

	"phonebook/internal/contact/models"
	id "phonebook/pkg/domain"
	"phonebook/pkg/platform/sentinel"
)

// Creator is the subset of a backend needed for seeding.
type Creator interface {
	Create(ctx context.Context, c *models.Contact) error
	Count(ctx context.Context) (int, error)
}

// SampleContacts is the starter phonebook.
var SampleContacts = []struct{ Name, Number string }{
	{"Arto Hellas", "040-123456"},
	{"Ada Lovelace", "39-44-5323523"},
	{"Dan Abramov", "12-43-234345"},
	{"Mary Poppendieck", "39-23-6423122"},
}

// Seed inserts the sample contacts into an empty directory and returns how many were added.
// A non-empty directory is left untouched.
func Seed(ctx context.Context, s Creator) (int, error) {
	n, err := s.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count contacts: %w", err)
	}
	if n > 0 {
		return 0, nil
	}
	added := 0
	for _, sample := range SampleContacts {
		c := &models.Contact{ID: id.NewContactID(), Name: sample.Name, Number: sample.Number}
		if err := s.Create(ctx, c); err != nil {
			if errors.Is(err, sentinel.ErrConflict) {
				continue
			}
			return added, fmt.Errorf("seed %q: %w", sample.Name, err)
		}
		added++
	}
	return added, nil
}
