package store

import (
	"context"
	"sync"

	"github.com/stretchr/testify/suite"

	"phonebook/internal/contact/models"
	id "phonebook/pkg/domain"
	"phonebook/pkg/platform/sentinel"
)

type backend interface {
	List(ctx context.Context) ([]*models.Contact, error)
	Get(ctx context.Context, contactID id.ContactID) (*models.Contact, error)
	Create(ctx context.Context, c *models.Contact) error
	UpdateNumber(ctx context.Context, contactID id.ContactID, number string) (*models.Contact, error)
	Delete(ctx context.Context, contactID id.ContactID) (bool, error)
	Count(ctx context.Context) (int, error)
}

// contractSuite is shared by every backend; embedders set newStore.
type contractSuite struct {
	suite.Suite
	ctx      context.Context
	newStore func() backend
	store    backend
}

func (s *contractSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = s.newStore()
}

func (s *contractSuite) newContact(name, number string) *models.Contact {
	return &models.Contact{ID: id.NewContactID(), Name: name, Number: number}
}

func (s *contractSuite) TestCreateAndGet() {
	s.Run("get returns the created contact", func() {
		c := s.newContact("Ada Lovelace", "39-44-5323523")
		s.Require().NoError(s.store.Create(s.ctx, c))

		found, err := s.store.Get(s.ctx, c.ID)
		s.Require().NoError(err)
		s.Equal(*c, *found)
	})

	s.Run("returns ErrNotFound for unknown id", func() {
		_, err := s.store.Get(s.ctx, id.NewContactID())
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})
}

func (s *contractSuite) TestUniqueness() {
	original := s.newContact("Arto Hellas", "040-123456")
	s.Require().NoError(s.store.Create(s.ctx, original))

	s.Run("rejects duplicate name and leaves the collection unchanged", func() {
		err := s.store.Create(s.ctx, s.newContact("Arto Hellas", "999"))
		s.Require().ErrorIs(err, ErrNameTaken)
		s.ErrorIs(err, sentinel.ErrConflict)

		n, err := s.store.Count(s.ctx)
		s.Require().NoError(err)
		s.Equal(1, n)
	})

	s.Run("rejects duplicate number", func() {
		err := s.store.Create(s.ctx, s.newContact("Someone Else", "040-123456"))
		s.Require().ErrorIs(err, ErrNumberTaken)
	})

	s.Run("name is checked before number", func() {
		err := s.store.Create(s.ctx, s.newContact("Arto Hellas", "040-123456"))
		s.Require().ErrorIs(err, ErrNameTaken)
	})
}

func (s *contractSuite) TestUpdateNumber() {
	s.Run("replaces only the number", func() {
		c := s.newContact("Dan Abramov", "12-43-234345")
		s.Require().NoError(s.store.Create(s.ctx, c))

		updated, err := s.store.UpdateNumber(s.ctx, c.ID, "555")
		s.Require().NoError(err)
		s.Equal(c.ID, updated.ID)
		s.Equal(c.Name, updated.Name)
		s.Equal("555", updated.Number)

		found, err := s.store.Get(s.ctx, c.ID)
		s.Require().NoError(err)
		s.Equal("555", found.Number)
	})

	s.Run("does not re-check number uniqueness", func() {
		a := s.newContact("Number A", "111")
		b := s.newContact("Number B", "222")
		s.Require().NoError(s.store.Create(s.ctx, a))
		s.Require().NoError(s.store.Create(s.ctx, b))

		_, err := s.store.UpdateNumber(s.ctx, b.ID, "111")
		s.Require().NoError(err)
	})

	s.Run("returns ErrNotFound for unknown id", func() {
		_, err := s.store.UpdateNumber(s.ctx, id.NewContactID(), "1")
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})
}

func (s *contractSuite) TestDelete() {
	c := s.newContact("Mary Poppendieck", "39-23-6423122")
	s.Require().NoError(s.store.Create(s.ctx, c))

	removed, err := s.store.Delete(s.ctx, c.ID)
	s.Require().NoError(err)
	s.True(removed)

	_, err = s.store.Get(s.ctx, c.ID)
	s.Require().ErrorIs(err, sentinel.ErrNotFound)

	s.Run("second delete is a no-op", func() {
		removed, err := s.store.Delete(s.ctx, c.ID)
		s.Require().NoError(err)
		s.False(removed)
	})

	s.Run("name becomes available again", func() {
		s.Require().NoError(s.store.Create(s.ctx, s.newContact("Mary Poppendieck", "1")))
	})
}

func (s *contractSuite) TestListKeepsCreationOrder() {
	names := []string{"first", "second", "third"}
	for i, name := range names {
		s.Require().NoError(s.store.Create(s.ctx, s.newContact(name, string(rune('1'+i)))))
	}

	contacts, err := s.store.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(contacts, len(names))
	for i, c := range contacts {
		s.Equal(names[i], c.Name)
	}
}

func (s *contractSuite) TestConcurrentCreatesKeepNamesUnique() {
	const writers = 16
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		created int
	)
	for i := range writers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := s.store.Create(s.ctx, s.newContact("Contended", string(rune('a'+i))))
			if err == nil {
				mu.Lock()
				created++
				mu.Unlock()
				return
			}
			s.ErrorIs(err, ErrNameTaken)
		}()
	}
	wg.Wait()

	s.Equal(1, created)
	n, err := s.store.Count(s.ctx)
	s.Require().NoError(err)
	s.Equal(1, n)
}
