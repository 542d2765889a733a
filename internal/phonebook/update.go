package phonebook

import (
	"strings"
	"time"

	id "phonebook/pkg/domain"
	dErrors "phonebook/pkg/domain-errors"
)

// Update applies msg to s and returns the new state with the effects to run.
// It never blocks and never touches the network or the clock.
func Update(s State, msg Msg, now time.Time) (State, []Effect) {
	switch m := msg.(type) {
	case NameChanged:
		s.Name = m.Value
	case NumberChanged:
		s.Number = m.Value
	case FilterChanged:
		s.Filter = m.Value

	case Submitted:
		return submit(s)

	case OverwriteConfirmed:
		return s, []Effect{UpdateContact{Contact: m.Contact}}

	case DeleteRequested:
		c, ok := s.Find(m.ID)
		if !ok {
			return s, nil
		}
		return s, []Effect{Confirm{
			Prompt:   DeletePrompt(c.Name),
			OnAccept: DeleteConfirmed{ID: c.ID, Name: c.Name},
		}}

	case DeleteConfirmed:
		return s, []Effect{DeleteContact{ID: m.ID, Name: m.Name}}

	case Refresh:
		return s, []Effect{ListContacts{}}

	case Loaded:
		if m.Err != nil {
			return notify(s, dErrors.MessageOf(m.Err), now)
		}
		s.Contacts = m.Contacts
		return s, nil

	case Created:
		if m.Err != nil {
			return notify(s, dErrors.MessageOf(m.Err), now)
		}
		s = s.withAppended(m.Contact).withFormCleared()
		return notify(s, "Added "+m.Contact.Name, now)

	case Updated:
		return applyUpdated(s, m, now)

	case Deleted:
		return applyDeleted(s, m, now)

	case NotificationExpired:
		s.Notice = s.Notice.Expire(m.Generation)
	}
	return s, nil
}

func submit(s State) (State, []Effect) {
	name := strings.TrimSpace(s.Name)
	number := strings.TrimSpace(s.Number)

	existing, duplicate := FindDuplicate(s.Contacts, name)
	if !duplicate {
		return s, []Effect{CreateContact{Name: name, Number: number}}
	}
	// A declined overwrite dispatches nothing: no request, no notification.
	return s, []Effect{Confirm{
		Prompt:   OverwritePrompt(name),
		OnAccept: OverwriteConfirmed{Contact: existing.WithNumber(number)},
	}}
}

func applyUpdated(s State, m Updated, now time.Time) (State, []Effect) {
	if m.Err != nil {
		if dErrors.HasCode(m.Err, dErrors.CodeNotFound) {
			return dropStale(s, m.Requested.ID, m.Requested.Name, now)
		}
		return notify(s, dErrors.MessageOf(m.Err), now)
	}
	s, replaced := s.withReplaced(m.Contact)
	if !replaced {
		return s, nil
	}
	s = s.withFormCleared()
	return notify(s, "Updated "+m.Contact.Name, now)
}

func applyDeleted(s State, m Deleted, now time.Time) (State, []Effect) {
	if m.Err != nil {
		if dErrors.HasCode(m.Err, dErrors.CodeNotFound) {
			return dropStale(s, m.ID, m.Name, now)
		}
		return notify(s, dErrors.MessageOf(m.Err), now)
	}
	return s.withoutID(m.ID), nil
}

// dropStale forgets a contact the server no longer has and says so.
func dropStale(s State, contactID id.ContactID, name string, now time.Time) (State, []Effect) {
	stale := &StaleStateError{ID: contactID, Name: name}
	return notify(s.withoutID(contactID), stale.Error(), now)
}

func notify(s State, message string, now time.Time) (State, []Effect) {
	var sc ScheduleClear
	s.Notice, sc = s.Notice.Show(message, now)
	return s, []Effect{sc}
}
