package handler

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"phonebook/internal/contact/models"
	id "phonebook/pkg/domain"
	dErrors "phonebook/pkg/domain-errors"
	"phonebook/pkg/platform/httputil"
	"phonebook/pkg/requestcontext"
)

// infoTimeLayout renders the /info timestamp.
const infoTimeLayout = "Mon Jan 02 2006 15:04:05 GMT-0700 (MST)"

// Service defines the interface for directory operations.
type Service interface {
	List(ctx context.Context) ([]*models.Contact, error)
	Get(ctx context.Context, contactID id.ContactID) (*models.Contact, error)
	Create(ctx context.Context, name, number string) (*models.Contact, error)
	UpdateNumber(ctx context.Context, contactID id.ContactID, number string) (*models.Contact, error)
	Delete(ctx context.Context, contactID id.ContactID) error
	Count(ctx context.Context) (int, error)
}

// Handler wires directory endpoints to the directory service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a contact handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Register mounts directory endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/info", h.HandleInfo)
	r.Get("/contacts.vcf", h.HandleExportVCard)
	r.Route("/contacts", func(r chi.Router) {
		r.Get("/", h.HandleList)
		r.Post("/", h.HandleCreate)
		r.Get("/{id}", h.HandleGet)
		r.Put("/{id}", h.HandleUpdate)
		r.Delete("/{id}", h.HandleDelete)
	})
}

// HandleList handles GET /contacts.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	contacts, err := h.service.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list contacts failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromContacts(contacts))
}

// HandleGet handles GET /contacts/{id}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	contactID, ok := contactIDParam(w, r)
	if !ok {
		return
	}
	c, err := h.service.Get(ctx, contactID)
	if err != nil {
		h.logFailure(ctx, "get contact failed", contactID, err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromContact(c))
}

// HandleCreate handles POST /contacts.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[CreateContactRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	c, err := h.service.Create(ctx, req.Name, req.Number)
	if err != nil {
		h.logger.WarnContext(ctx, "create contact rejected",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "contact added",
		"request_id", requestID,
		"contact_id", c.ID,
	)
	httputil.WriteJSON(w, http.StatusCreated, FromContact(c))
}

// HandleUpdate handles PUT /contacts/{id}. Only the number is taken from the body.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	contactID, ok := contactIDParam(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[UpdateContactRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	c, err := h.service.UpdateNumber(ctx, contactID, req.Number)
	if err != nil {
		h.logFailure(ctx, "update contact failed", contactID, err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromContact(c))
}

// HandleDelete handles DELETE /contacts/{id}.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	contactID, ok := contactIDParam(w, r)
	if !ok {
		return
	}
	if err := h.service.Delete(ctx, contactID); err != nil {
		h.logFailure(ctx, "delete contact failed", contactID, err)
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleInfo handles GET /info with a small HTML summary.
func (h *Handler) HandleInfo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	n, err := h.service.Count(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "count contacts failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	now := requestcontext.Now(ctx)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintf(w, "<p>Phonebook has info for %d people</p><p>%s</p>",
		n, html.EscapeString(now.Format(infoTimeLayout)))
}

// contactIDParam parses the {id} path segment. Unparseable ids are answered
// as not found, the same as ids that were never issued.
func contactIDParam(w http.ResponseWriter, r *http.Request) (id.ContactID, bool) {
	contactID, err := id.ParseContactID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, models.MsgContactMissing))
		return id.ContactID{}, false
	}
	return contactID, true
}

func (h *Handler) logFailure(ctx context.Context, msg string, contactID id.ContactID, err error) {
	level := slog.LevelWarn
	if dErrors.CodeOf(err) == dErrors.CodeInternal {
		level = slog.LevelError
	}
	h.logger.Log(ctx, level, msg,
		"request_id", requestcontext.RequestID(ctx),
		"contact_id", contactID,
		"error", err,
	)
}

