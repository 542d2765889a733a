// Package service is the directory's domain layer. It enforces the contact
// validation order and translates store errors into coded errors.
package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"phonebook/internal/contact/metrics"
	"phonebook/internal/contact/models"
	"phonebook/internal/contact/store"
	id "phonebook/pkg/domain"
	dErrors "phonebook/pkg/domain-errors"
)

type Store interface {
	List(ctx context.Context) ([]*models.Contact, error)
	Get(ctx context.Context, contactID id.ContactID) (*models.Contact, error)
	Create(ctx context.Context, c *models.Contact) error
	UpdateNumber(ctx context.Context, contactID id.ContactID, number string) (*models.Contact, error)
	Delete(ctx context.Context, contactID id.ContactID) (bool, error)
	Count(ctx context.Context) (int, error)
}

// Service orchestrates directory operations.
type Service struct {
	store   Store
	logger  *slog.Logger
	metrics *metrics.Metrics
	tracer  trace.Tracer
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithTracer(t trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = t
	}
}

// New constructs a Service.
func New(st Store, opts ...Option) *Service {
	s := &Service{store: st, tracer: otel.Tracer("phonebook/contact")}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

func (s *Service) List(ctx context.Context) ([]*models.Contact, error) {
	ctx, span := s.start(ctx, "Service.List")
	defer span.End()
	defer s.observe("list", time.Now())

	contacts, err := s.store.List(ctx)
	if err != nil {
		return nil, s.fail(span, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list contacts"))
	}
	span.SetAttributes(attribute.Int("contact.count", len(contacts)))
	return contacts, nil
}

func (s *Service) Get(ctx context.Context, contactID id.ContactID) (*models.Contact, error) {
	ctx, span := s.start(ctx, "Service.Get", attribute.String("contact.id", contactID.String()))
	defer span.End()
	defer s.observe("get", time.Now())

	c, err := s.store.Get(ctx, contactID)
	if err != nil {
		return nil, s.fail(span, translateLookup(err, "failed to load contact"))
	}
	return c, nil
}

// Count returns the number of contacts in the directory.
func (s *Service) Count(ctx context.Context) (int, error) {
	ctx, span := s.start(ctx, "Service.Count")
	defer span.End()

	n, err := s.store.Count(ctx)
	if err != nil {
		return 0, s.fail(span, dErrors.Wrap(err, dErrors.CodeInternal, "failed to count contacts"))
	}
	return n, nil
}

// Create validates name then number for presence, then for uniqueness, and
// stores the contact under a freshly assigned id.
func (s *Service) Create(ctx context.Context, name, number string) (*models.Contact, error) {
	ctx, span := s.start(ctx, "Service.Create")
	defer span.End()
	defer s.observe("create", time.Now())

	c, err := models.NewContact(id.NewContactID(), name, number)
	if err != nil {
		return nil, s.fail(span, err)
	}
	span.SetAttributes(attribute.String("contact.id", c.ID.String()))

	if err := s.store.Create(ctx, c); err != nil {
		switch {
		case errors.Is(err, store.ErrNameTaken):
			s.incrementConflict("name")
			return nil, s.fail(span, dErrors.New(dErrors.CodeConflict, models.MsgNameNotUnique))
		case errors.Is(err, store.ErrNumberTaken):
			s.incrementConflict("number")
			return nil, s.fail(span, dErrors.New(dErrors.CodeConflict, models.MsgNumberNotUnique))
		default:
			return nil, s.fail(span, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create contact"))
		}
	}

	s.logger.InfoContext(ctx, "contact created", "contact_id", c.ID)
	if s.metrics != nil {
		s.metrics.IncrementCreated()
	}
	return c, nil
}

// UpdateNumber replaces the number of an existing contact. Name and id are kept.
func (s *Service) UpdateNumber(ctx context.Context, contactID id.ContactID, number string) (*models.Contact, error) {
	ctx, span := s.start(ctx, "Service.UpdateNumber", attribute.String("contact.id", contactID.String()))
	defer span.End()
	defer s.observe("update", time.Now())

	number = strings.TrimSpace(number)
	if err := models.ValidateNumber(number); err != nil {
		return nil, s.fail(span, err)
	}

	c, err := s.store.UpdateNumber(ctx, contactID, number)
	if err != nil {
		return nil, s.fail(span, translateLookup(err, "failed to update contact"))
	}

	s.logger.InfoContext(ctx, "contact updated", "contact_id", c.ID)
	if s.metrics != nil {
		s.metrics.IncrementUpdated()
	}
	return c, nil
}

// Delete removes a contact. An absent id is reported as not found.
func (s *Service) Delete(ctx context.Context, contactID id.ContactID) error {
	ctx, span := s.start(ctx, "Service.Delete", attribute.String("contact.id", contactID.String()))
	defer span.End()
	defer s.observe("delete", time.Now())

	removed, err := s.store.Delete(ctx, contactID)
	if err != nil {
		return s.fail(span, dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete contact"))
	}
	if !removed {
		return s.fail(span, dErrors.New(dErrors.CodeNotFound, models.MsgContactMissing))
	}

	s.logger.InfoContext(ctx, "contact deleted", "contact_id", contactID)
	if s.metrics != nil {
		s.metrics.IncrementDeleted()
	}
	return nil
}

func translateLookup(err error, msg string) error {
	if errors.Is(err, store.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, models.MsgContactMissing)
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, msg)
}

func (s *Service) start(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return s.tracer.Start(ctx, name,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attrs...),
	)
}

// fail records err on span. Expected client errors leave the span status unset.
func (s *Service) fail(span trace.Span, err error) error {
	if dErrors.CodeOf(err) == dErrors.CodeInternal {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetAttributes(attribute.String("error.code", string(dErrors.CodeOf(err))))
	}
	return err
}

func (s *Service) incrementConflict(field string) {
	if s.metrics != nil {
		s.metrics.IncrementConflict(field)
	}
}

func (s *Service) observe(operation string, start time.Time) {
	if s.metrics != nil {
		s.metrics.ObserveOperation(operation, start)
	}
}
