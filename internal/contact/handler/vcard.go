package handler

import (
	"net/http"

	"github.com/emersion/go-vcard"

	"phonebook/internal/contact/models"
	"phonebook/pkg/platform/httputil"
	"phonebook/pkg/requestcontext"
)

// HandleExportVCard handles GET /contacts.vcf with one vCard 4.0 per contact.
func (h *Handler) HandleExportVCard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	contacts, err := h.service.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "export contacts failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	w.Header().Set("Content-Type", vcard.MIMEType)
	w.Header().Set("Content-Disposition", `attachment; filename="contacts.vcf"`)
	w.WriteHeader(http.StatusOK)

	enc := vcard.NewEncoder(w)
	for _, c := range contacts {
		if err := enc.Encode(ToCard(c)); err != nil {
			h.logger.ErrorContext(ctx, "encode vcard failed",
				"request_id", requestcontext.RequestID(ctx),
				"contact_id", c.ID,
				"error", err,
			)
			return
		}
	}
}

// ToCard converts a contact to a vCard 4.0 card.
func ToCard(c *models.Contact) vcard.Card {
	card := make(vcard.Card)
	card.SetValue(vcard.FieldVersion, "4.0")
	card.SetValue(vcard.FieldUID, "urn:uuid:"+c.ID.String())
	card.SetValue(vcard.FieldFormattedName, c.Name)
	card.Set(vcard.FieldTelephone, &vcard.Field{
		Value:  c.Number,
		Params: vcard.Params{vcard.ParamType: {vcard.TypeVoice}},
	})
	return card
}
