// Package service defines the backend-agnostic interface for dashboard operations.
package service

import "context"

// Service defines the interface for dashboard backend operations.
// All REST calls go through this interface. Stores and commands never
// build HTTP requests directly.
type Service interface {
	// Login authenticates with email and password. On success the
	// transport keeps the session cookie for later calls.
	Login(ctx context.Context, creds Credentials) (User, error)

	// Register creates a new account. Semantic rejections (taken email,
	// field validation) are reported in the result, not as an error.
	Register(ctx context.Context, reg Registration) (RegisterResult, error)

	// Logout invalidates the server session.
	Logout(ctx context.Context) error

	// Session validates the stored session cookie and returns the user
	// it identifies.
	Session(ctx context.Context) (User, error)

	// UpdateProfile updates the current user's name and, if set, password.
	UpdateProfile(ctx context.Context, p Profile) error

	// UpdatePreferences stores the user's theme preference ("light" or "dark").
	UpdatePreferences(ctx context.Context, theme string) error

	// ListTickets returns the full ticket collection.
	ListTickets(ctx context.Context) ([]Ticket, error)

	// CreateTicket creates a ticket. The ticket must have no ID.
	CreateTicket(ctx context.Context, t Ticket) (Ticket, error)

	// UpdateTicket updates an existing ticket by its ID.
	UpdateTicket(ctx context.Context, t Ticket) (Ticket, error)

	// DeleteTicket deletes a ticket by ID.
	DeleteTicket(ctx context.Context, id string) error
}
