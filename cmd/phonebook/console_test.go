package main

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"phonebook/internal/contact/models"
	"phonebook/internal/phonebook"
	id "phonebook/pkg/domain"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

type stubAPI struct {
	mu       sync.Mutex
	contacts []models.Contact
	created  []string
	updated  []string
	deleted  []id.ContactID
}

func (a *stubAPI) List(context.Context) ([]models.Contact, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]models.Contact(nil), a.contacts...), nil
}

func (a *stubAPI) Create(_ context.Context, name, number string) (models.Contact, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.created = append(a.created, name+"="+number)
	c := models.Contact{ID: id.NewContactID(), Name: name, Number: number}
	a.contacts = append(a.contacts, c)
	return c, nil
}

func (a *stubAPI) Update(_ context.Context, c models.Contact) (models.Contact, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.updated = append(a.updated, c.Name+"="+c.Number)
	return c, nil
}

func (a *stubAPI) Delete(_ context.Context, contactID id.ContactID) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.deleted = append(a.deleted, contactID)
	return nil
}

func (a *stubAPI) calls() (created, updated []string, deleted []id.ContactID) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]string(nil), a.created...), append([]string(nil), a.updated...), append([]id.ContactID(nil), a.deleted...)
}

// startConsole runs a Runtime whose cache already holds api's contacts and
// returns the console reading from input.
func startConsole(t *testing.T, api *stubAPI, input string) (*console, *phonebook.Runtime, *syncBuffer) {
	t.Helper()
	out := &syncBuffer{}
	con := newConsole(strings.NewReader(input), out)
	rt := phonebook.NewRuntime(api, con,
		phonebook.WithInitialState(phonebook.State{Contacts: append([]models.Contact(nil), api.contacts...)}),
		phonebook.WithOnChange(con.render),
	)
	con.attach(rt)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		_ = rt.Run(ctx)
		close(done)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
	return con, rt, out
}

// runInput feeds the console's whole input through readLoop.
func runInput(t *testing.T, con *console) {
	t.Helper()
	finished := make(chan struct{})
	go func() {
		con.readLoop(context.Background())
		close(finished)
	}()
	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("readLoop did not finish at end of input")
	}
}

func TestConsoleSession(t *testing.T) {
	api := &stubAPI{}
	con, rt, out := startConsole(t, api, "")
	ctx := context.Background()

	assert.True(t, con.handle(ctx, "add Mary Poppendieck 39-23-6423122"))
	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "[success] Added Mary Poppendieck")
	}, time.Second, 5*time.Millisecond)
	created, _, _ := api.calls()
	assert.Equal(t, []string{"Mary Poppendieck=39-23-6423122"}, created)

	con.handle(ctx, "filter mary")
	assert.Equal(t, "mary", rt.State().Filter, "handle returns after the runtime applied the command")
	con.handle(ctx, "list")
	assert.Contains(t, out.String(), "Mary Poppendieck 39-23-6423122")

	assert.True(t, con.handle(ctx, "add Ada"))
	assert.Contains(t, out.String(), "usage: add")

	assert.True(t, con.handle(ctx, "delete Nobody"))
	assert.Contains(t, out.String(), `no contact named "Nobody"`)

	assert.True(t, con.handle(ctx, "frobnicate"))
	assert.Contains(t, out.String(), `unknown command "frobnicate"`)

	assert.False(t, con.handle(ctx, "quit"))
}

func TestConsolePipedOverwriteConfirmation(t *testing.T) {
	ada := models.Contact{ID: id.NewContactID(), Name: "Ada Lovelace", Number: "1"}
	api := &stubAPI{contacts: []models.Contact{ada}}
	con, rt, out := startConsole(t, api, "add Ada Lovelace 2\ny\n")

	runInput(t, con)

	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "[success] Updated Ada Lovelace")
	}, time.Second, 5*time.Millisecond)
	assert.NotContains(t, out.String(), "unknown command")
	assert.Contains(t, out.String(), "Ada Lovelace is already added to phonebook")

	_, updated, _ := api.calls()
	assert.Equal(t, []string{"Ada Lovelace=2"}, updated)
	st := rt.State()
	require.Len(t, st.Contacts, 1)
	assert.Equal(t, ada.ID, st.Contacts[0].ID)
	assert.Equal(t, "2", st.Contacts[0].Number)
}

func TestConsolePipedDeclineKeepsReadingCommands(t *testing.T) {
	ada := models.Contact{ID: id.NewContactID(), Name: "Ada Lovelace", Number: "1"}
	api := &stubAPI{contacts: []models.Contact{ada}}
	con, rt, out := startConsole(t, api, "delete ada lovelace\nn\nfilter ada\n")

	runInput(t, con)

	assert.Contains(t, out.String(), "Delete Ada Lovelace? [y/N]")
	assert.NotContains(t, out.String(), "unknown command")
	assert.Equal(t, "ada", rt.State().Filter, "the line after the answer is a command")
	_, _, deleted := api.calls()
	assert.Empty(t, deleted)
	assert.Len(t, rt.State().Contacts, 1)
}

func TestConsolePipedDeleteConfirmation(t *testing.T) {
	ada := models.Contact{ID: id.NewContactID(), Name: "Ada Lovelace", Number: "1"}
	api := &stubAPI{contacts: []models.Contact{ada}}
	con, rt, _ := startConsole(t, api, "delete Ada Lovelace\nyes\n")

	runInput(t, con)

	require.Eventually(t, func() bool { return len(rt.State().Contacts) == 0 }, time.Second, 5*time.Millisecond)
	_, _, deleted := api.calls()
	assert.Equal(t, []id.ContactID{ada.ID}, deleted)
}

func TestConsoleConfirmDeclinesAtEndOfInput(t *testing.T) {
	ada := models.Contact{ID: id.NewContactID(), Name: "Ada Lovelace", Number: "1"}
	api := &stubAPI{contacts: []models.Contact{ada}}
	con, rt, _ := startConsole(t, api, "add Ada Lovelace 2\n")

	runInput(t, con)

	_, updated, _ := api.calls()
	assert.Empty(t, updated)
	assert.Equal(t, "1", rt.State().Contacts[0].Number)
}

func TestConsoleConfirmDeclinesOnCancel(t *testing.T) {
	con := newConsole(strings.NewReader(""), &syncBuffer{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.False(t, con.Confirm(ctx, "Delete?"))
}
