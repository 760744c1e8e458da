// Package store holds the client-side state stores: the session store, the
// tasks store, and the modal controller. Each store owns one shared value,
// funnels every update through its own methods, and notifies subscribers on
// each transition. Errors never escape a store; they settle into the store's
// error field or the returned result.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"sync"

	"taskdash/internal/config"
	"taskdash/internal/service"
)

// SessionState is a snapshot of the session store.
type SessionState struct {
	// User is the current session user, or nil when unauthenticated.
	User *service.User

	// Loading is true while a network-dependent transition is in flight.
	Loading bool

	// Err is the last auth error message, empty when none.
	Err string
}

// Session holds the current user and coordinates login, registration,
// logout, and server-side session validation. The user survives restarts
// through a single file under the config directory.
type Session struct {
	mu    sync.Mutex
	svc   service.Service
	cfg   *config.Config
	state SessionState
	subs  []chan struct{}
}

// NewSession creates a session store backed by svc, persisting under cfg.
func NewSession(svc service.Service, cfg *config.Config) *Session {
	return &Session{svc: svc, cfg: cfg}
}

// Subscribe returns a channel that receives a signal after every state
// transition. The channel is buffered; a slow consumer misses coalesced
// signals, never blocks the store.
func (s *Session) Subscribe() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	ch := make(chan struct{}, 1)
	s.subs = append(s.subs, ch)
	return ch
}

// State returns a snapshot of the current session state.
func (s *Session) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// IsAuthenticated reports whether a session user is present.
func (s *Session) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.User != nil
}

// Restore reads the persisted user at startup. A structurally valid stored
// user is staged optimistically so the UI doesn't flash the login screen,
// then the session is validated against the server regardless.
func (s *Session) Restore(ctx context.Context) bool {
	data, err := os.ReadFile(s.cfg.UserPath())
	if err == nil {
		var u service.User
		if json.Unmarshal(data, &u) == nil && u.Valid() {
			s.mu.Lock()
			s.state.User = &u
			s.notifyLocked()
			s.mu.Unlock()
		} else {
			_ = s.cfg.RemoveUser()
		}
	}
	return s.Validate(ctx)
}

// Validate checks the session cookie against the server. A valid user body
// is persisted and set as current; any failure (non-2xx, malformed body,
// network error) clears both the persisted and in-memory user. Validate
// never fails loudly; it reports whether a session is live.
func (s *Session) Validate(ctx context.Context) bool {
	s.setLoading(true)
	defer s.setLoading(false)

	u, err := s.svc.Session(ctx)
	if err != nil || !u.Valid() {
		s.clearUser()
		return false
	}
	s.persistUser(u)
	return true
}

// Login authenticates with the server. On success the user is persisted and
// set as current and the auth error is cleared. On failure the store's error
// carries the server message or a generic fallback.
func (s *Session) Login(ctx context.Context, creds service.Credentials) bool {
	s.setLoading(true)
	defer s.setLoading(false)
	s.setErr("")

	u, err := s.svc.Login(ctx, creds)
	if err != nil {
		s.setErr(loginErrMessage(err))
		return false
	}
	s.persistUser(u)
	return true
}

func loginErrMessage(err error) string {
	var apiErr *service.APIError
	switch {
	case errors.As(err, &apiErr):
		return service.Message(err, "Invalid email or password")
	case errors.Is(err, service.ErrBadResponse):
		return "Invalid server response"
	default:
		return "An error occurred during login"
	}
}

// Register creates an account. The result is always structured; field-level
// validation errors come back in FieldErrors so forms can annotate inputs.
// A general failure message is also mirrored into the store's error field.
func (s *Session) Register(ctx context.Context, reg service.Registration) service.RegisterResult {
	s.setLoading(true)
	defer s.setLoading(false)
	s.setErr("")

	res, err := s.svc.Register(ctx, reg)
	if err != nil {
		msg := "An error occurred during registration"
		s.setErr(msg)
		return service.RegisterResult{Message: msg}
	}
	if !res.OK && len(res.FieldErrors) == 0 {
		s.setErr(res.Message)
	}
	return res
}

// Logout makes a best-effort call to invalidate the server session, then
// unconditionally clears the persisted and in-memory user and the stored
// session cookies.
func (s *Session) Logout(ctx context.Context) {
	s.setLoading(true)
	defer s.setLoading(false)

	_ = s.svc.Logout(ctx)
	s.clearUser()
	_ = s.cfg.RemoveCookies()
}

// persistUser writes a valid user to durable storage and sets it as current.
// Invalid users are ignored.
func (s *Session) persistUser(u service.User) bool {
	if !u.Valid() {
		return false
	}
	if data, err := json.Marshal(u); err == nil {
		if s.cfg.EnsureDir() == nil {
			_ = os.WriteFile(s.cfg.UserPath(), data, 0600)
		}
	}
	s.mu.Lock()
	s.state.User = &u
	s.state.Err = ""
	s.notifyLocked()
	s.mu.Unlock()
	return true
}

// clearUser removes the user from durable storage and memory.
func (s *Session) clearUser() {
	_ = s.cfg.RemoveUser()
	s.mu.Lock()
	s.state.User = nil
	s.notifyLocked()
	s.mu.Unlock()
}

func (s *Session) setLoading(v bool) {
	s.mu.Lock()
	s.state.Loading = v
	s.notifyLocked()
	s.mu.Unlock()
}

func (s *Session) setErr(msg string) {
	s.mu.Lock()
	s.state.Err = msg
	s.notifyLocked()
	s.mu.Unlock()
}

// notifyLocked signals all subscribers without blocking. Callers hold s.mu.
func (s *Session) notifyLocked() {
	for _, ch := range s.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
