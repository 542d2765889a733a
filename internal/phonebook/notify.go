package phonebook

import (
	"strings"
	"time"
)

// ClearAfter is how long a notification stays visible.
const ClearAfter = 3000 * time.Millisecond

// Kind classifies a notification for display.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

// Classify returns KindSuccess for messages that start with "Added" or "Updated".
func Classify(message string) Kind {
	if strings.HasPrefix(message, "Added") || strings.HasPrefix(message, "Updated") {
		return KindSuccess
	}
	return KindError
}

// Notification is the single live status message.
type Notification struct {
	Message    string
	Kind       Kind
	ExpiresAt  time.Time
	Generation uint64
}

// NotificationSlot holds at most one notification. Each Show bumps the
// generation so a timer scheduled for an older message cannot clear a newer one.
type NotificationSlot struct {
	current    *Notification
	generation uint64
}

// Show replaces the current notification and returns the clear it needs.
func (s NotificationSlot) Show(message string, now time.Time) (NotificationSlot, ScheduleClear) {
	s.generation++
	s.current = &Notification{
		Message:    message,
		Kind:       Classify(message),
		ExpiresAt:  now.Add(ClearAfter),
		Generation: s.generation,
	}
	return s, ScheduleClear{After: ClearAfter, Generation: s.generation}
}

// Expire empties the slot if generation is still the live one.
func (s NotificationSlot) Expire(generation uint64) NotificationSlot {
	if s.current != nil && s.current.Generation == generation {
		s.current = nil
	}
	return s
}

// Current returns the live notification, if any.
func (s NotificationSlot) Current() (Notification, bool) {
	if s.current == nil {
		return Notification{}, false
	}
	return *s.current, true
}
