package handler

import (
	"strings"

	"phonebook/internal/contact/models"
)

// CreateContactRequest is the HTTP request body for POST /contacts.
type CreateContactRequest struct {
	Name   string `json:"name"`
	Number string `json:"number"`
}

// Validate trims and checks presence, name first.
// Implements the Validatable interface for httputil.DecodeAndPrepare.
func (r *CreateContactRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	r.Number = strings.TrimSpace(r.Number)
	return models.ValidateFields(r.Name, r.Number)
}

// UpdateContactRequest is the HTTP request body for PUT /contacts/{id}.
// Clients usually send the whole contact; only number is read.
type UpdateContactRequest struct {
	Number string `json:"number"`
}

func (r *UpdateContactRequest) Validate() error {
	r.Number = strings.TrimSpace(r.Number)
	return models.ValidateNumber(r.Number)
}
