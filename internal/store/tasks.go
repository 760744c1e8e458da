package store

import (
	"context"
	"errors"
	"sync"

	"taskdash/internal/service"
)

// TasksState is a snapshot of the tasks store.
type TasksState struct {
	// Tickets is the last successfully fetched collection. It is always
	// the server's collection as a whole, never a locally patched one.
	Tickets []service.Ticket

	// Loading is true while a fetch is in flight.
	Loading bool

	// Err is the last fetch or mutation error message, empty when none.
	Err string
}

// Tasks holds the ticket collection and coordinates fetches and mutations.
// Every successful mutation is followed by a full re-fetch; the store never
// patches the collection locally, so consumers see the collection as
// eventually consistent after a mutation.
type Tasks struct {
	mu       sync.Mutex
	svc      service.Service
	state    TasksState
	fetching bool
	subs     []chan struct{}
}

// NewTasks creates a tasks store backed by svc.
func NewTasks(svc service.Service) *Tasks {
	return &Tasks{svc: svc}
}

// Subscribe returns a channel that receives a signal after every state
// transition, mirroring Session.Subscribe.
func (t *Tasks) Subscribe() <-chan struct{} {
	t.mu.Lock()
	defer t.mu.Unlock()
	ch := make(chan struct{}, 1)
	t.subs = append(t.subs, ch)
	return ch
}

// State returns a snapshot of the current tasks state. The ticket slice is
// copied so readers never observe a partial update.
func (t *Tasks) State() TasksState {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := t.state
	out.Tickets = make([]service.Ticket, len(t.state.Tickets))
	copy(out.Tickets, t.state.Tickets)
	return out
}

// Fetch retrieves the full ticket collection and replaces the store's copy.
// At most one fetch is outstanding: a call while another is in flight is a
// no-op and reports false. On failure the collection is left as-is and the
// error message is recorded.
func (t *Tasks) Fetch(ctx context.Context) bool {
	t.mu.Lock()
	if t.fetching {
		t.mu.Unlock()
		return false
	}
	t.fetching = true
	t.state.Loading = true
	t.notifyLocked()
	t.mu.Unlock()

	tickets, err := t.svc.ListTickets(ctx)

	t.mu.Lock()
	defer t.mu.Unlock()
	t.fetching = false
	t.state.Loading = false
	if err != nil {
		t.state.Err = service.Message(err, "Failed to fetch tasks")
		t.notifyLocked()
		return false
	}
	t.state.Tickets = tickets
	t.state.Err = ""
	t.notifyLocked()
	return true
}

// Save creates the ticket when it has no ID and updates it otherwise. The
// due date travels as a YYYY-MM-DD string or null. After the mutation's
// response is observed, a re-fetch resynchronizes the collection; the saved
// ticket is never spliced in locally. A nil return means the mutation
// succeeded, even if the follow-up fetch was skipped or failed.
func (t *Tasks) Save(ctx context.Context, ticket service.Ticket) error {
	var err error
	if ticket.ID == "" {
		_, err = t.svc.CreateTicket(ctx, ticket)
	} else {
		_, err = t.svc.UpdateTicket(ctx, ticket)
	}
	if err != nil {
		t.setErr(service.Message(err, "Failed to save task"))
		return err
	}
	t.Fetch(ctx)
	return nil
}

// Delete removes the ticket with the given ID, then re-fetches. Calling
// Delete without an ID is a caller bug; it fails without touching the
// network.
func (t *Tasks) Delete(ctx context.Context, id string) error {
	if id == "" {
		return errors.New("delete requires a ticket id")
	}
	if err := t.svc.DeleteTicket(ctx, id); err != nil {
		t.setErr(service.Message(err, "Failed to delete task"))
		return err
	}
	t.Fetch(ctx)
	return nil
}

func (t *Tasks) setErr(msg string) {
	t.mu.Lock()
	t.state.Err = msg
	t.notifyLocked()
	t.mu.Unlock()
}

func (t *Tasks) notifyLocked() {
	for _, ch := range t.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
