package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"phonebook/internal/phonebook"
)

const helpText = `commands:
  list                  show contacts (respecting the filter)
  add <name> <number>   add a contact; the last word is the number
  delete <name>         remove a contact
  filter [text]         show only names containing text
  refresh               reload from the server
  quit                  exit`

// console is the terminal front end. One scanner feeds every line into
// lines. The command loop settles the Runtime after each command, so a
// confirmation prompted by that command takes the next line before the
// command loop does.
type console struct {
	in  io.Reader
	out io.Writer

	mu sync.Mutex // guards out

	rt    *phonebook.Runtime
	lines chan string // closed at end of input

	lastNotice uint64
}

func newConsole(in io.Reader, out io.Writer) *console {
	return &console{in: in, out: out, lines: make(chan string)}
}

func (c *console) attach(rt *phonebook.Runtime) {
	c.rt = rt
}

func (c *console) printf(format string, args ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, _ = fmt.Fprintf(c.out, format, args...)
}

// Confirm implements phonebook.Confirmer. It runs on the Runtime goroutine.
func (c *console) Confirm(ctx context.Context, prompt string) bool {
	c.printf("%s [y/N] ", prompt)
	select {
	case answer, ok := <-c.lines:
		if !ok {
			return false
		}
		answer = strings.ToLower(strings.TrimSpace(answer))
		return answer == "y" || answer == "yes"
	case <-ctx.Done():
		return false
	}
}

// render prints a notification when a new one appears.
func (c *console) render(s phonebook.State) {
	n, ok := s.Notification()
	if !ok || n.Generation == c.lastNotice {
		return
	}
	c.lastNotice = n.Generation
	c.printf("[%s] %s\n", n.Kind, n.Message)
}

// readLoop runs commands until quit, end of input or ctx cancellation.
func (c *console) readLoop(ctx context.Context) {
	c.printf("%s\n", helpText)
	stop := make(chan struct{})
	defer close(stop)
	go c.scan(stop)

	for {
		select {
		case line, ok := <-c.lines:
			if !ok || !c.handle(ctx, line) {
				return
			}
		case <-ctx.Done():
			return
		}
	}
}

func (c *console) scan(stop <-chan struct{}) {
	defer close(c.lines)
	scanner := bufio.NewScanner(c.in)
	for scanner.Scan() {
		select {
		case c.lines <- scanner.Text():
		case <-stop:
			return
		}
	}
}

// handle runs one command and reports whether to keep reading.
func (c *console) handle(ctx context.Context, line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return true
	}
	args := fields[1:]
	switch strings.ToLower(fields[0]) {
	case "quit", "exit":
		return false
	case "help":
		c.printf("%s\n", helpText)
	case "list":
		c.list()
	case "refresh":
		c.rt.Dispatch(phonebook.Refresh{})
	case "filter":
		c.rt.Dispatch(phonebook.FilterChanged{Value: strings.Join(args, " ")})
	case "add":
		if len(args) < 2 {
			c.printf("usage: add <name> <number>\n")
			return true
		}
		c.rt.Dispatch(phonebook.NameChanged{Value: strings.Join(args[:len(args)-1], " ")})
		c.rt.Dispatch(phonebook.NumberChanged{Value: args[len(args)-1]})
		c.rt.Dispatch(phonebook.Submitted{})
	case "delete":
		name := strings.Join(args, " ")
		contact, ok := c.rt.State().FindByName(name)
		if !ok {
			c.printf("no contact named %q\n", name)
			return true
		}
		c.rt.Dispatch(phonebook.DeleteRequested{ID: contact.ID})
	default:
		c.printf("unknown command %q, try help\n", fields[0])
		return true
	}
	if err := c.rt.Settle(ctx); err != nil {
		return false
	}
	return true
}

func (c *console) list() {
	s := c.rt.State()
	visible := s.Visible()
	if len(visible) == 0 {
		c.printf("(no contacts)\n")
		return
	}
	for _, contact := range visible {
		c.printf("%s %s\n", contact.Name, contact.Number)
	}
}
