package commands

import (
	"context"
	"errors"

	"taskdash/internal/service"
	"taskdash/internal/store"
)

// ErrTicketNotFound is returned when no ticket carries the requested ID.
var ErrTicketNotFound = errors.New("ticket not found")

// findTicket fetches the current collection through the tasks store and
// returns the ticket with the given ID.
func findTicket(ctx context.Context, tasks *store.Tasks, id string) (service.Ticket, error) {
	if !tasks.Fetch(ctx) {
		return service.Ticket{}, errors.New(tasks.State().Err)
	}
	for _, t := range tasks.State().Tickets {
		if t.ID == id {
			return t, nil
		}
	}
	return service.Ticket{}, ErrTicketNotFound
}
