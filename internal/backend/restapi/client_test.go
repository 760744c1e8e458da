package restapi_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskdash/internal/backend/restapi"
	"taskdash/internal/service"
)

// request is one recorded call to the test server.
type request struct {
	method string
	path   string
	body   []byte
}

// newTestServer routes every request through handler and records it.
func newTestServer(t *testing.T, handler http.HandlerFunc) (*restapi.Client, *[]request) {
	t.Helper()
	var reqs []request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		reqs = append(reqs, request{method: r.Method, path: r.URL.Path, body: body})
		handler(w, r)
	}))
	t.Cleanup(srv.Close)
	return restapi.NewWithHTTPClient(srv.URL, srv.Client()), &reqs
}

func respond(t *testing.T, w http.ResponseWriter, status int, body string) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != "" {
		_, _ = io.WriteString(w, body)
	}
}

func TestLogin_NestedUserBody(t *testing.T) {
	client, reqs := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		respond(t, w, 200, `{"message":"Login successful","user":{"id":7,"name":"Ada","email":"ada@example.com"}}`)
	})

	u, err := client.Login(context.Background(), service.Credentials{Email: "ada@example.com", Password: "pw"})
	require.NoError(t, err)

	// Numeric wire IDs normalize to strings.
	assert.Equal(t, service.User{ID: "7", Name: "Ada", Email: "ada@example.com"}, u)

	require.Len(t, *reqs, 1)
	got := (*reqs)[0]
	assert.Equal(t, http.MethodPost, got.method)
	assert.Equal(t, "/api/users/login", got.path)
	assert.JSONEq(t, `{"email":"ada@example.com","password":"pw"}`, string(got.body))
}

func TestLogin_FlatUserBody(t *testing.T) {
	client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		respond(t, w, 200, `{"id":"7","name":"Ada","email":"ada@example.com"}`)
	})

	u, err := client.Login(context.Background(), service.Credentials{Email: "ada@example.com", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "Ada", u.Name)
}

func TestLogin_Unauthorized(t *testing.T) {
	client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		respond(t, w, 401, `{"error":"Invalid email or password."}`)
	})

	_, err := client.Login(context.Background(), service.Credentials{Email: "ada@example.com", Password: "bad"})
	require.Error(t, err)

	var apiErr *service.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 401, apiErr.StatusCode)
	assert.Equal(t, "Invalid email or password.", apiErr.Message)
	assert.ErrorIs(t, err, service.ErrUnauthorized)
}

func TestLogin_MissingUserIsBadResponse(t *testing.T) {
	client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		respond(t, w, 200, `{"message":"Login successful"}`)
	})

	_, err := client.Login(context.Background(), service.Credentials{Email: "ada@example.com", Password: "pw"})
	assert.ErrorIs(t, err, service.ErrBadResponse)
}

func TestRegister_Created(t *testing.T) {
	client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		respond(t, w, 201, `{"message":"User registered successfully."}`)
	})

	res, err := client.Register(context.Background(), service.Registration{
		Name: "Ada", Email: "ada@example.com", Password: "pw",
	})
	require.NoError(t, err)
	assert.True(t, res.OK)
	assert.Equal(t, "User registered successfully.", res.Message)
}

func TestRegister_ValidationDetails(t *testing.T) {
	client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		respond(t, w, 400, `{"error":"Validation failed","details":{"email":"Invalid email address."}}`)
	})

	res, err := client.Register(context.Background(), service.Registration{
		Name: "Ada", Email: "bad", Password: "pw",
	})
	require.NoError(t, err)
	assert.False(t, res.OK)
	assert.Equal(t, "Validation failed", res.Message)
	assert.Equal(t, map[string]string{"email": "Invalid email address."}, res.FieldErrors)
}

func TestRegister_OpaqueErrorBody(t *testing.T) {
	client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		respond(t, w, 500, `oops`)
	})

	_, err := client.Register(context.Background(), service.Registration{
		Name: "Ada", Email: "ada@example.com", Password: "pw",
	})
	var apiErr *service.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 500, apiErr.StatusCode)
	assert.Equal(t, "Internal Server Error", apiErr.Message)
}

func TestSession_FlatUser(t *testing.T) {
	client, reqs := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		respond(t, w, 200, `{"id":3,"name":"Ada","email":"ada@example.com"}`)
	})

	u, err := client.Session(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "3", u.ID)
	assert.Equal(t, http.MethodGet, (*reqs)[0].method)
	assert.Equal(t, "/api/users/session", (*reqs)[0].path)
}

func TestSession_IncompleteUserIsBadResponse(t *testing.T) {
	client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		respond(t, w, 200, `{"id":3,"name":"Ada"}`)
	})

	_, err := client.Session(context.Background())
	assert.ErrorIs(t, err, service.ErrBadResponse)
}

func TestSession_Unauthorized(t *testing.T) {
	client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		respond(t, w, 401, `{"error":"Unauthorized"}`)
	})

	_, err := client.Session(context.Background())
	assert.ErrorIs(t, err, service.ErrUnauthorized)
}

func TestListTickets_Normalization(t *testing.T) {
	client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		respond(t, w, 200, `[
			{"id":1,"name":"Buy milk","description":"","status":"Pending","priority":"low","due_date":null,"created_at":"2026-08-30 10:15:00","author_id":3},
			{"id":2,"name":"Write docs","description":"API docs","status":"sideways","priority":"","due_date":"2026-09-10","created_at":null,"author_id":3}
		]`)
	})

	tickets, err := client.ListTickets(context.Background())
	require.NoError(t, err)
	require.Len(t, tickets, 2)

	assert.Equal(t, "1", tickets[0].ID)
	assert.True(t, tickets[0].DueDate.IsZero())
	assert.Equal(t, 2026, tickets[0].CreatedAt.Year())

	// Unknown statuses normalize to the default.
	assert.Equal(t, service.StatusPending, tickets[1].Status)
	assert.Equal(t, service.Date("2026-09-10"), tickets[1].DueDate)
	assert.True(t, tickets[1].CreatedAt.IsZero())
}

func TestCreateTicket_PostsWithNullDueDate(t *testing.T) {
	client, reqs := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		respond(t, w, 201, `{"id":9,"name":"Buy milk","status":"Pending","due_date":null,"author_id":3}`)
	})

	created, err := client.CreateTicket(context.Background(), service.Ticket{Name: "Buy milk"})
	require.NoError(t, err)
	assert.Equal(t, "9", created.ID)

	got := (*reqs)[0]
	assert.Equal(t, http.MethodPost, got.method)
	assert.Equal(t, "/api/tickets", got.path)

	var body map[string]any
	require.NoError(t, json.Unmarshal(got.body, &body))
	// No due date travels as an explicit null, and the status defaults.
	assert.Contains(t, body, "due_date")
	assert.Nil(t, body["due_date"])
	assert.Equal(t, "Pending", body["status"])
}

func TestCreateTicket_RejectsExistingID(t *testing.T) {
	client, reqs := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		respond(t, w, 201, `{}`)
	})

	_, err := client.CreateTicket(context.Background(), service.Ticket{ID: "4", Name: "Buy milk"})
	require.Error(t, err)
	assert.Empty(t, *reqs)
}

func TestUpdateTicket_PutsToIDPath(t *testing.T) {
	client, reqs := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		respond(t, w, 200, `{"id":4,"name":"Buy oat milk","status":"Pending","due_date":"2026-09-10"}`)
	})

	updated, err := client.UpdateTicket(context.Background(), service.Ticket{
		ID: "4", Name: "Buy oat milk", DueDate: "2026-09-10",
	})
	require.NoError(t, err)
	assert.Equal(t, service.Date("2026-09-10"), updated.DueDate)

	got := (*reqs)[0]
	assert.Equal(t, http.MethodPut, got.method)
	assert.Equal(t, "/api/tickets/4", got.path)

	var body map[string]any
	require.NoError(t, json.Unmarshal(got.body, &body))
	assert.Equal(t, "2026-09-10", body["due_date"])
}

func TestUpdateTicket_RejectsMissingID(t *testing.T) {
	client, reqs := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		respond(t, w, 200, `{}`)
	})

	_, err := client.UpdateTicket(context.Background(), service.Ticket{Name: "Buy milk"})
	require.Error(t, err)
	assert.Empty(t, *reqs)
}

func TestDeleteTicket(t *testing.T) {
	client, reqs := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		respond(t, w, 200, `{"message":"Ticket deleted successfully."}`)
	})

	require.NoError(t, client.DeleteTicket(context.Background(), "4"))
	got := (*reqs)[0]
	assert.Equal(t, http.MethodDelete, got.method)
	assert.Equal(t, "/api/tickets/4", got.path)
}

func TestDeleteTicket_NotFound(t *testing.T) {
	client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		respond(t, w, 404, `{"error":"Ticket not found."}`)
	})

	err := client.DeleteTicket(context.Background(), "99")
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestUpdatePreferences(t *testing.T) {
	client, reqs := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		respond(t, w, 200, `{"message":"Preferences updated successfully."}`)
	})

	require.NoError(t, client.UpdatePreferences(context.Background(), "dark"))
	got := (*reqs)[0]
	assert.Equal(t, http.MethodPut, got.method)
	assert.Equal(t, "/api/users/preferences", got.path)
	assert.JSONEq(t, `{"theme":"dark"}`, string(got.body))
}

func TestUpdateProfile_OmitsEmptyPassword(t *testing.T) {
	client, reqs := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		respond(t, w, 200, `{"message":"User updated successfully."}`)
	})

	require.NoError(t, client.UpdateProfile(context.Background(), service.Profile{Name: "Ada L."}))
	assert.JSONEq(t, `{"name":"Ada L."}`, string((*reqs)[0].body))
}

func TestDo_MalformedBodyIsBadResponse(t *testing.T) {
	client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		respond(t, w, 200, `{truncated`)
	})

	_, err := client.ListTickets(context.Background())
	assert.ErrorIs(t, err, service.ErrBadResponse)
}

func TestDo_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	client := restapi.NewWithHTTPClient(url, http.DefaultClient)
	_, err := client.ListTickets(context.Background())
	require.Error(t, err)

	var apiErr *service.APIError
	assert.False(t, errors.As(err, &apiErr), "transport failures are not API errors")
}
