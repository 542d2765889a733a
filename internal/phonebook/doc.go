// Package phonebook is the client side of the directory: a local cache of the
// collection, the duplicate-name resolver and the notification slot.
//
// State changes only through Update, a pure function of the current State, a
// message and the current time. Work that touches the outside world (HTTP
// requests, confirmation prompts, timers) is returned as Effect values and
// carried out by a Runtime, which feeds the outcome back in as another message.
package phonebook
