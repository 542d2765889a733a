package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"phonebook/internal/contact/models"
	id "phonebook/pkg/domain"
	"phonebook/pkg/requestcontext"
)

const (
	uniqueViolation = "23505"

	// createLockKey serializes creates so the number check and insert are atomic.
	createLockKey = 0x70686f6e65
)

const schema = `
CREATE TABLE IF NOT EXISTS contacts (
	seq        bigserial,
	id         uuid PRIMARY KEY,
	name       text NOT NULL UNIQUE,
	number     text NOT NULL,
	created_at timestamptz NOT NULL DEFAULT now()
)`

// Postgres persists contacts in PostgreSQL.
type Postgres struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed directory.
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

// EnsureSchema creates the contacts table if it does not exist.
func (s *Postgres) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("ensure contacts schema: %w", err)
	}
	return nil
}

func (s *Postgres) List(ctx context.Context) ([]*models.Contact, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, number FROM contacts ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	defer rows.Close()

	var contacts []*models.Contact
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, fmt.Errorf("scan contact: %w", err)
		}
		contacts = append(contacts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	return contacts, nil
}

func (s *Postgres) Get(ctx context.Context, contactID id.ContactID) (*models.Contact, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id, name, number FROM contacts WHERE id = $1`, uuid.UUID(contactID))
	c, err := scanContact(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get contact: %w", err)
	}
	return c, nil
}

// Create runs the name check, number check and insert in one transaction
// holding a transaction-scoped advisory lock.
func (s *Postgres) Create(ctx context.Context, c *models.Contact) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin create: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, int64(createLockKey)); err != nil {
		return fmt.Errorf("lock contacts: %w", err)
	}

	var taken bool
	if err := tx.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM contacts WHERE name = $1)`, c.Name).Scan(&taken); err != nil {
		return fmt.Errorf("check name: %w", err)
	}
	if taken {
		return ErrNameTaken
	}
	if err := tx.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM contacts WHERE number = $1)`, c.Number).Scan(&taken); err != nil {
		return fmt.Errorf("check number: %w", err)
	}
	if taken {
		return ErrNumberTaken
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO contacts (id, name, number, created_at) VALUES ($1, $2, $3, $4)`,
		uuid.UUID(c.ID), c.Name, c.Number, requestcontext.Now(ctx),
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ErrNameTaken
		}
		return fmt.Errorf("insert contact: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit create: %w", err)
	}
	return nil
}

func (s *Postgres) UpdateNumber(ctx context.Context, contactID id.ContactID, number string) (*models.Contact, error) {
	row := s.db.QueryRowContext(ctx,
		`UPDATE contacts SET number = $2 WHERE id = $1 RETURNING id, name, number`,
		uuid.UUID(contactID), number,
	)
	c, err := scanContact(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update contact: %w", err)
	}
	return c, nil
}

func (s *Postgres) Delete(ctx context.Context, contactID id.ContactID) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM contacts WHERE id = $1`, uuid.UUID(contactID))
	if err != nil {
		return false, fmt.Errorf("delete contact: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete contact: %w", err)
	}
	return n > 0, nil
}

func (s *Postgres) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM contacts`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count contacts: %w", err)
	}
	return n, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanContact(row scanner) (*models.Contact, error) {
	var (
		rawID uuid.UUID
		c     models.Contact
	)
	if err := row.Scan(&rawID, &c.Name, &c.Number); err != nil {
		return nil, err
	}
	c.ID = id.ContactID(rawID)
	return &c, nil
}
