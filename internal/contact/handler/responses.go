package handler

import "phonebook/internal/contact/models"

// ContactResponse is the wire form of a contact.
type ContactResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Number string `json:"number"`
}

func FromContact(c *models.Contact) ContactResponse {
	return ContactResponse{ID: c.ID.String(), Name: c.Name, Number: c.Number}
}

// FromContacts never returns nil so an empty directory encodes as [].
func FromContacts(contacts []*models.Contact) []ContactResponse {
	out := make([]ContactResponse, 0, len(contacts))
	for _, c := range contacts {
		out = append(out, FromContact(c))
	}
	return out
}
