// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"strconv"
	"sync"

	"taskdash/internal/service"
)

// FakeService is an in-memory implementation of service.Service for testing.
type FakeService struct {
	mu       sync.RWMutex
	user     service.User
	password string
	live     bool
	tickets  []service.Ticket
	nextID   int

	// Calls records each service call as "Method" or "Method id" in order.
	Calls []string

	// ListGate, when non-nil, blocks ListTickets until the channel is
	// closed or receives. Used to hold a fetch in flight.
	ListGate chan struct{}

	// Error injection for testing
	LoginErr             error
	RegisterErr          error
	LogoutErr            error
	SessionErr           error
	UpdateProfileErr     error
	UpdatePreferencesErr error
	ListTicketsErr       error
	CreateTicketErr      error
	UpdateTicketErr      error
	DeleteTicketErr      error

	// RegisterResult overrides the default registration outcome.
	RegisterResult *service.RegisterResult
}

// NewFakeService creates a FakeService with one known account, not logged in.
func NewFakeService() *FakeService {
	return &FakeService{
		user:     service.User{ID: "1", Name: "Test User", Email: "test@example.com"},
		password: "secret",
		nextID:   1,
	}
}

// SetUser replaces the known account. Tests use partial users to exercise
// boundary validation.
func (f *FakeService) SetUser(u service.User, password string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.user = u
	f.password = password
}

// SetLive marks the server-side session as valid or expired.
func (f *FakeService) SetLive(v bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.live = v
}

// AddTicket seeds a ticket and returns its generated ID.
func (f *FakeService) AddTicket(name string, status service.Status, due service.Date) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := strconv.Itoa(f.nextID)
	f.nextID++
	f.tickets = append(f.tickets, service.Ticket{
		ID:      id,
		Name:    name,
		Status:  status,
		DueDate: due,
	})
	return id
}

// Tickets returns a copy of the current collection.
func (f *FakeService) Tickets() []service.Ticket {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]service.Ticket, len(f.tickets))
	copy(out, f.tickets)
	return out
}

func (f *FakeService) record(call string) {
	f.mu.Lock()
	f.Calls = append(f.Calls, call)
	f.mu.Unlock()
}

// Login implements service.Service.
func (f *FakeService) Login(ctx context.Context, creds service.Credentials) (service.User, error) {
	f.record("Login")
	if f.LoginErr != nil {
		return service.User{}, f.LoginErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if creds.Email != f.user.Email || creds.Password != f.password {
		return service.User{}, &service.APIError{StatusCode: 401, Message: "Invalid email or password."}
	}
	f.live = true
	return f.user, nil
}

// Register implements service.Service.
func (f *FakeService) Register(ctx context.Context, reg service.Registration) (service.RegisterResult, error) {
	f.record("Register")
	if f.RegisterErr != nil {
		return service.RegisterResult{}, f.RegisterErr
	}
	if f.RegisterResult != nil {
		return *f.RegisterResult, nil
	}
	f.mu.RLock()
	taken := reg.Email == f.user.Email
	f.mu.RUnlock()
	if taken {
		return service.RegisterResult{Message: "Email is already registered."}, nil
	}
	return service.RegisterResult{OK: true, Message: "User registered successfully."}, nil
}

// Logout implements service.Service.
func (f *FakeService) Logout(ctx context.Context) error {
	f.record("Logout")
	if f.LogoutErr != nil {
		return f.LogoutErr
	}
	f.mu.Lock()
	f.live = false
	f.mu.Unlock()
	return nil
}

// Session implements service.Service.
func (f *FakeService) Session(ctx context.Context) (service.User, error) {
	f.record("Session")
	if f.SessionErr != nil {
		return service.User{}, f.SessionErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	if !f.live {
		return service.User{}, &service.APIError{StatusCode: 401, Message: "Unauthorized"}
	}
	return f.user, nil
}

// UpdateProfile implements service.Service.
func (f *FakeService) UpdateProfile(ctx context.Context, p service.Profile) error {
	f.record("UpdateProfile")
	if f.UpdateProfileErr != nil {
		return f.UpdateProfileErr
	}
	f.mu.Lock()
	if p.Name != "" {
		f.user.Name = p.Name
	}
	if p.Password != "" {
		f.password = p.Password
	}
	f.mu.Unlock()
	return nil
}

// UpdatePreferences implements service.Service.
func (f *FakeService) UpdatePreferences(ctx context.Context, theme string) error {
	f.record("UpdatePreferences " + theme)
	return f.UpdatePreferencesErr
}

// ListTickets implements service.Service.
func (f *FakeService) ListTickets(ctx context.Context) ([]service.Ticket, error) {
	f.record("ListTickets")
	if f.ListGate != nil {
		<-f.ListGate
	}
	if f.ListTicketsErr != nil {
		return nil, f.ListTicketsErr
	}
	return f.Tickets(), nil
}

// CreateTicket implements service.Service.
func (f *FakeService) CreateTicket(ctx context.Context, t service.Ticket) (service.Ticket, error) {
	f.record("CreateTicket")
	if f.CreateTicketErr != nil {
		return service.Ticket{}, f.CreateTicketErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	t.ID = strconv.Itoa(f.nextID)
	f.nextID++
	t.Status = service.NormalizeStatus(string(t.Status))
	f.tickets = append(f.tickets, t)
	return t, nil
}

// UpdateTicket implements service.Service.
func (f *FakeService) UpdateTicket(ctx context.Context, t service.Ticket) (service.Ticket, error) {
	f.record("UpdateTicket " + t.ID)
	if f.UpdateTicketErr != nil {
		return service.Ticket{}, f.UpdateTicketErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.tickets {
		if f.tickets[i].ID == t.ID {
			t.Status = service.NormalizeStatus(string(t.Status))
			f.tickets[i] = t
			return t, nil
		}
	}
	return service.Ticket{}, &service.APIError{StatusCode: 404, Message: "Ticket not found."}
}

// DeleteTicket implements service.Service.
func (f *FakeService) DeleteTicket(ctx context.Context, id string) error {
	f.record("DeleteTicket " + id)
	if f.DeleteTicketErr != nil {
		return f.DeleteTicketErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.tickets {
		if f.tickets[i].ID == id {
			f.tickets = append(f.tickets[:i], f.tickets[i+1:]...)
			return nil
		}
	}
	return &service.APIError{StatusCode: 404, Message: "Ticket not found."}
}
