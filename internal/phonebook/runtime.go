package phonebook

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"phonebook/internal/contact/models"
	id "phonebook/pkg/domain"
)

const mailboxSize = 64

// ErrStopped is returned by Settle once Run has returned.
var ErrStopped = errors.New("phonebook: runtime stopped")

// settled marks a point in the mailbox; the loop closes done on reaching it.
type settled struct{ done chan struct{} }

func (settled) isMsg() {}

// API is the directory as the client sees it.
type API interface {
	List(ctx context.Context) ([]models.Contact, error)
	Create(ctx context.Context, name, number string) (models.Contact, error)
	Update(ctx context.Context, contact models.Contact) (models.Contact, error)
	Delete(ctx context.Context, contactID id.ContactID) error
}

// Confirmer asks the user a yes/no question and blocks until answered.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(ctx context.Context, prompt string) bool

func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) bool { return f(ctx, prompt) }

// Stopper cancels a scheduled callback. *time.Timer implements it.
type Stopper interface {
	Stop() bool
}

// Clock is the Runtime's source of time and timers.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Stopper
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

func (systemClock) AfterFunc(d time.Duration, f func()) Stopper { return time.AfterFunc(d, f) }

// Runtime runs Update on a single goroutine and interprets its effects.
// Requests run concurrently and report back through Dispatch, so responses
// are applied in arrival order.
type Runtime struct {
	api      API
	confirm  Confirmer
	clock    Clock
	logger   *slog.Logger
	onChange func(State)

	mailbox chan Msg
	done    chan struct{}

	mu    sync.RWMutex
	state State

	// owned by the Run goroutine
	timer    Stopper
	inflight sync.WaitGroup
}

type RuntimeOption func(*Runtime)

func WithClock(c Clock) RuntimeOption {
	return func(r *Runtime) { r.clock = c }
}

func WithInitialState(s State) RuntimeOption {
	return func(r *Runtime) { r.state = s }
}

// WithOnChange registers a hook called on the Run goroutine after every message.
func WithOnChange(f func(State)) RuntimeOption {
	return func(r *Runtime) { r.onChange = f }
}

func WithRuntimeLogger(logger *slog.Logger) RuntimeOption {
	return func(r *Runtime) { r.logger = logger }
}

// NewRuntime constructs a Runtime. Call Run to start processing.
func NewRuntime(api API, confirm Confirmer, opts ...RuntimeOption) *Runtime {
	r := &Runtime{
		api:     api,
		confirm: confirm,
		clock:   systemClock{},
		logger:  slog.Default(),
		mailbox: make(chan Msg, mailboxSize),
		done:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// State returns a snapshot of the current state.
func (r *Runtime) State() State {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.state
}

// Dispatch queues msg. It is safe from any goroutine and is dropped once Run has returned.
func (r *Runtime) Dispatch(msg Msg) {
	select {
	case r.mailbox <- msg:
	case <-r.done:
	}
}

// Settle blocks until every message dispatched before the call has been
// processed, including any confirmation it prompted. Request outcomes that
// arrive later are not waited for.
func (r *Runtime) Settle(ctx context.Context) error {
	marker := settled{done: make(chan struct{})}
	r.Dispatch(marker)
	select {
	case <-marker.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-r.done:
		return ErrStopped
	}
}

// Run processes messages until ctx is cancelled, then waits for in-flight
// requests to finish.
func (r *Runtime) Run(ctx context.Context) error {
	defer func() {
		if r.timer != nil {
			r.timer.Stop()
		}
		close(r.done)
		r.inflight.Wait()
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg := <-r.mailbox:
			r.step(ctx, msg)
		}
	}
}

func (r *Runtime) step(ctx context.Context, msg Msg) {
	if m, ok := msg.(settled); ok {
		close(m.done)
		return
	}
	r.mu.Lock()
	next, effects := Update(r.state, msg, r.clock.Now())
	r.state = next
	r.mu.Unlock()

	if r.onChange != nil {
		r.onChange(next)
	}
	for _, eff := range effects {
		r.perform(ctx, eff)
	}
}

func (r *Runtime) perform(ctx context.Context, eff Effect) {
	switch e := eff.(type) {
	case Confirm:
		if r.confirm != nil && r.confirm.Confirm(ctx, e.Prompt) && e.OnAccept != nil {
			r.step(ctx, e.OnAccept)
		}
	case ScheduleClear:
		if r.timer != nil {
			r.timer.Stop()
		}
		generation := e.Generation
		r.timer = r.clock.AfterFunc(e.After, func() {
			r.Dispatch(NotificationExpired{Generation: generation})
		})
	case ListContacts:
		r.request(ctx, "list", func(ctx context.Context) Msg {
			contacts, err := r.api.List(ctx)
			return Loaded{Contacts: contacts, Err: err}
		})
	case CreateContact:
		r.request(ctx, "create", func(ctx context.Context) Msg {
			c, err := r.api.Create(ctx, e.Name, e.Number)
			return Created{Contact: c, Err: err}
		})
	case UpdateContact:
		r.request(ctx, "update", func(ctx context.Context) Msg {
			c, err := r.api.Update(ctx, e.Contact)
			return Updated{Requested: e.Contact, Contact: c, Err: err}
		})
	case DeleteContact:
		r.request(ctx, "delete", func(ctx context.Context) Msg {
			return Deleted{ID: e.ID, Name: e.Name, Err: r.api.Delete(ctx, e.ID)}
		})
	default:
		r.logger.WarnContext(ctx, "unknown effect", "effect", eff)
	}
}

// request runs fn off the loop and posts its outcome back.
func (r *Runtime) request(ctx context.Context, op string, fn func(context.Context) Msg) {
	r.inflight.Add(1)
	go func() {
		defer r.inflight.Done()
		start := time.Now()
		msg := fn(ctx)
		r.logger.DebugContext(ctx, "phonebook request finished",
			"operation", op,
			"duration_ms", time.Since(start).Milliseconds(),
		)
		r.Dispatch(msg)
	}()
}
