package tui

import (
	"github.com/charmbracelet/bubbles/list"

	"taskdash/internal/service"
)

// ticketItem adapts a ticket to the bubbles list.
type ticketItem struct {
	t service.Ticket
}

func (i ticketItem) Title() string { return i.t.Name }

func (i ticketItem) Description() string {
	desc := string(i.t.Status)
	if !i.t.DueDate.IsZero() {
		desc += "  due " + i.t.DueDate.String()
	}
	if i.t.Description != "" {
		desc += "  " + i.t.Description
	}
	return desc
}

func (i ticketItem) FilterValue() string { return i.t.Name }

func newTicketList() list.Model {
	delegate := list.NewDefaultDelegate()
	l := list.New([]list.Item{}, delegate, 0, 0)
	l.Title = "Tickets"
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.DisableQuitKeybindings()
	return l
}

func ticketItems(tickets []service.Ticket) []list.Item {
	items := make([]list.Item, len(tickets))
	for i, t := range tickets {
		items[i] = ticketItem{t: t}
	}
	return items
}
