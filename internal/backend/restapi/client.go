// Package restapi implements service.Service against the dashboard REST API.
//
// The API uses cookie-based sessions; the client rides a persistent cookie
// jar so a login survives across process runs.
package restapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"taskdash/internal/config"
	"taskdash/internal/service"
)

const (
	// APITimeout is the timeout for API calls.
	APITimeout = 10 * time.Second

	// createdAtLayout is the server's timestamp form for created_at.
	createdAtLayout = "2006-01-02 15:04:05"
)

// Client implements service.Service over the dashboard REST API.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a client for cfg.ServerURL with a cookie jar persisted under
// the config directory.
func New(cfg *config.Config) (*Client, error) {
	base, err := url.Parse(cfg.ServerURL)
	if err != nil || base.Host == "" {
		return nil, fmt.Errorf("invalid server URL %q", cfg.ServerURL)
	}
	if err := cfg.EnsureDir(); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}
	jar := newPersistentJar(cfg.CookiePath(), base)
	return &Client{
		baseURL: strings.TrimRight(cfg.ServerURL, "/"),
		http:    &http.Client{Jar: jar},
	}, nil
}

// NewWithHTTPClient creates a client with a custom HTTP client (for testing).
func NewWithHTTPClient(baseURL string, httpClient *http.Client) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

// flexID decodes a server ID that may arrive as a JSON number or string.
type flexID string

func (f *flexID) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*f = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = flexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*f = flexID(n.String())
		return nil
	}
	return fmt.Errorf("id is neither string nor number: %s", data)
}

type wireUser struct {
	ID    flexID `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (w wireUser) user() service.User {
	return service.User{ID: string(w.ID), Name: w.Name, Email: w.Email}
}

type wireTicket struct {
	ID          flexID  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Status      string  `json:"status"`
	Priority    string  `json:"priority"`
	DueDate     *string `json:"due_date"`
	CreatedAt   *string `json:"created_at"`
	AuthorID    flexID  `json:"author_id"`
}

func (w wireTicket) ticket() service.Ticket {
	t := service.Ticket{
		ID:          string(w.ID),
		Name:        w.Name,
		Description: w.Description,
		Status:      service.NormalizeStatus(w.Status),
		Priority:    w.Priority,
		AuthorID:    string(w.AuthorID),
	}
	if w.DueDate != nil {
		if d, err := service.ParseDate(*w.DueDate); err == nil {
			t.DueDate = d
		}
	}
	if w.CreatedAt != nil {
		if ts, err := time.Parse(createdAtLayout, *w.CreatedAt); err == nil {
			t.CreatedAt = ts
		}
	}
	return t
}

// ticketPayload is the request body for ticket create/update. The due date
// is sent as a YYYY-MM-DD string or JSON null.
type ticketPayload struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Status      string  `json:"status"`
	Priority    string  `json:"priority,omitempty"`
	DueDate     *string `json:"due_date"`
}

func payloadFor(t service.Ticket) ticketPayload {
	p := ticketPayload{
		Name:        t.Name,
		Description: t.Description,
		Status:      string(service.NormalizeStatus(string(t.Status))),
		Priority:    t.Priority,
	}
	if !t.DueDate.IsZero() {
		s := t.DueDate.String()
		p.DueDate = &s
	}
	return p
}

// Login implements service.Service. The success body may carry the user
// either nested under "user" or flat at the top level; both normalize to
// the same service.User.
func (c *Client) Login(ctx context.Context, creds service.Credentials) (service.User, error) {
	body := map[string]string{"email": creds.Email, "password": creds.Password}

	var resp struct {
		wireUser
		User *wireUser `json:"user"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/users/login", body, &resp); err != nil {
		return service.User{}, err
	}

	u := resp.wireUser.user()
	if resp.User != nil {
		u = resp.User.user()
	}
	if !u.Valid() {
		return service.User{}, fmt.Errorf("%w: login body has no valid user", service.ErrBadResponse)
	}
	return u, nil
}

// Register implements service.Service. Non-2xx responses with a JSON error
// body become a failed RegisterResult carrying the server message and any
// per-field details; only transport and shape problems are errors.
func (c *Client) Register(ctx context.Context, reg service.Registration) (service.RegisterResult, error) {
	body := map[string]string{"name": reg.Name, "email": reg.Email, "password": reg.Password}

	status, data, err := c.doRaw(ctx, http.MethodPost, "/api/users/register", body)
	if err != nil {
		return service.RegisterResult{}, err
	}

	if status >= 200 && status < 300 {
		var ok struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(data, &ok); err != nil {
			return service.RegisterResult{}, fmt.Errorf("%w: %v", service.ErrBadResponse, err)
		}
		msg := ok.Message
		if msg == "" {
			msg = "Registration successful"
		}
		return service.RegisterResult{OK: true, Message: msg}, nil
	}

	var rej struct {
		Error   string            `json:"error"`
		Details map[string]string `json:"details"`
	}
	if err := json.Unmarshal(data, &rej); err != nil || rej.Error == "" {
		return service.RegisterResult{}, apiError(status, data)
	}
	return service.RegisterResult{OK: false, Message: rej.Error, FieldErrors: rej.Details}, nil
}

// Logout implements service.Service.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/users/logout", nil, nil)
}

// Session implements service.Service.
func (c *Client) Session(ctx context.Context) (service.User, error) {
	var w wireUser
	if err := c.do(ctx, http.MethodGet, "/api/users/session", nil, &w); err != nil {
		return service.User{}, err
	}
	u := w.user()
	if !u.Valid() {
		return service.User{}, fmt.Errorf("%w: session body has no valid user", service.ErrBadResponse)
	}
	return u, nil
}

// UpdateProfile implements service.Service.
func (c *Client) UpdateProfile(ctx context.Context, p service.Profile) error {
	body := map[string]string{"name": p.Name}
	if p.Password != "" {
		body["password"] = p.Password
	}
	return c.do(ctx, http.MethodPut, "/api/users/update", body, nil)
}

// UpdatePreferences implements service.Service.
func (c *Client) UpdatePreferences(ctx context.Context, theme string) error {
	return c.do(ctx, http.MethodPut, "/api/users/preferences", map[string]string{"theme": theme}, nil)
}

// ListTickets implements service.Service.
func (c *Client) ListTickets(ctx context.Context) ([]service.Ticket, error) {
	var wires []wireTicket
	if err := c.do(ctx, http.MethodGet, "/api/tickets", nil, &wires); err != nil {
		return nil, err
	}
	tickets := make([]service.Ticket, 0, len(wires))
	for _, w := range wires {
		tickets = append(tickets, w.ticket())
	}
	return tickets, nil
}

// CreateTicket implements service.Service.
func (c *Client) CreateTicket(ctx context.Context, t service.Ticket) (service.Ticket, error) {
	if t.ID != "" {
		return service.Ticket{}, fmt.Errorf("create called with existing id %s", t.ID)
	}
	var w wireTicket
	if err := c.do(ctx, http.MethodPost, "/api/tickets", payloadFor(t), &w); err != nil {
		return service.Ticket{}, err
	}
	return w.ticket(), nil
}

// UpdateTicket implements service.Service.
func (c *Client) UpdateTicket(ctx context.Context, t service.Ticket) (service.Ticket, error) {
	if t.ID == "" {
		return service.Ticket{}, errors.New("update called without id")
	}
	var w wireTicket
	if err := c.do(ctx, http.MethodPut, "/api/tickets/"+url.PathEscape(t.ID), payloadFor(t), &w); err != nil {
		return service.Ticket{}, err
	}
	return w.ticket(), nil
}

// DeleteTicket implements service.Service.
func (c *Client) DeleteTicket(ctx context.Context, id string) error {
	if id == "" {
		return errors.New("delete called without id")
	}
	return c.do(ctx, http.MethodDelete, "/api/tickets/"+url.PathEscape(id), nil, nil)
}

// do issues a JSON request and decodes a 2xx body into out (when non-nil).
// Non-2xx responses become *service.APIError.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	status, data, err := c.doRaw(ctx, method, path, body)
	if err != nil {
		return err
	}
	if status < 200 || status > 299 {
		return apiError(status, data)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: %v", service.ErrBadResponse, err)
	}
	return nil
}

// doRaw issues the request with the per-call timeout and returns the raw
// status and body. Only transport-level failures are errors here.
func (c *Client) doRaw(ctx context.Context, method, path string, body any) (int, []byte, error) {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	var rdr io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return 0, nil, err
		}
		rdr = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rdr)
	if err != nil {
		return 0, nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return 0, nil, service.ErrTimeout
		}
		return 0, nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, err
	}
	return resp.StatusCode, data, nil
}

// apiError shapes a non-2xx response into *service.APIError, preferring the
// server's JSON error message.
func apiError(status int, data []byte) error {
	var body struct {
		Error string `json:"error"`
	}
	msg := ""
	if err := json.Unmarshal(data, &body); err == nil {
		msg = body.Error
	}
	if msg == "" {
		msg = http.StatusText(status)
	}
	return &service.APIError{StatusCode: status, Message: msg}
}
