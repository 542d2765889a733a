package store

import (
	"context"
	"slices"
	"sync"

	"phonebook/internal/contact/models"
	id "phonebook/pkg/domain"
)

// InMemory keeps contacts in creation order behind a single lock.
type InMemory struct {
	mu       sync.RWMutex
	index    map[id.ContactID]int
	contacts []models.Contact
}

// NewInMemory constructs an empty in-memory directory.
func NewInMemory() *InMemory {
	return &InMemory{index: make(map[id.ContactID]int)}
}

func (s *InMemory) List(_ context.Context) ([]*models.Contact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Contact, 0, len(s.contacts))
	for i := range s.contacts {
		c := s.contacts[i]
		out = append(out, &c)
	}
	return out, nil
}

func (s *InMemory) Get(_ context.Context, contactID id.ContactID) (*models.Contact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.index[contactID]
	if !ok {
		return nil, ErrNotFound
	}
	c := s.contacts[i]
	return &c, nil
}

// Create checks name then number uniqueness and appends under one lock.
func (s *InMemory) Create(_ context.Context, c *models.Contact) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.contacts {
		if existing.Name == c.Name {
			return ErrNameTaken
		}
	}
	for _, existing := range s.contacts {
		if existing.Number == c.Number {
			return ErrNumberTaken
		}
	}
	s.index[c.ID] = len(s.contacts)
	s.contacts = append(s.contacts, *c)
	return nil
}

func (s *InMemory) UpdateNumber(_ context.Context, contactID id.ContactID, number string) (*models.Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.index[contactID]
	if !ok {
		return nil, ErrNotFound
	}
	s.contacts[i] = s.contacts[i].WithNumber(number)
	c := s.contacts[i]
	return &c, nil
}

// Delete removes the contact and reports whether it was present.
func (s *InMemory) Delete(_ context.Context, contactID id.ContactID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.index[contactID]
	if !ok {
		return false, nil
	}
	s.contacts = slices.Delete(s.contacts, i, i+1)
	delete(s.index, contactID)
	for j := i; j < len(s.contacts); j++ {
		s.index[s.contacts[j].ID] = j
	}
	return true, nil
}

func (s *InMemory) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.contacts), nil
}
