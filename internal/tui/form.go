package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"taskdash/internal/service"
)

// ticketForm is the create/edit dialog body. The subject (ticket being
// edited, nil for a new one) is owned by the app model and passed to Load
// and Build; the form itself only holds field state.
type ticketForm struct {
	name        textinput.Model
	description textinput.Model
	due         textinput.Model
	statusIdx   int
	focus       int // 0 name, 1 description, 2 status, 3 due
	errMsg      string
}

func newTicketForm() ticketForm {
	name := textinput.New()
	name.Placeholder = "name"
	name.CharLimit = 100
	name.Width = 40
	name.Focus()

	description := textinput.New()
	description.Placeholder = "description"
	description.CharLimit = 400
	description.Width = 40

	due := textinput.New()
	due.Placeholder = "due date (YYYY-MM-DD)"
	due.CharLimit = 10
	due.Width = 40

	return ticketForm{name: name, description: description, due: due}
}

// Load fills the form from the subject. A nil subject resets to a blank
// create form with status Pending.
func (f *ticketForm) Load(subject *service.Ticket) {
	f.errMsg = ""
	f.statusIdx = 0
	if subject == nil {
		f.name.SetValue("")
		f.description.SetValue("")
		f.due.SetValue("")
	} else {
		f.name.SetValue(subject.Name)
		f.description.SetValue(subject.Description)
		f.due.SetValue(subject.DueDate.String())
		for i, s := range service.Statuses {
			if s == subject.Status {
				f.statusIdx = i
			}
		}
	}
	f.setFocus(0)
}

// Build assembles a ticket from the form. The subject supplies identity and
// the fields the form doesn't edit; validation failures set the form's
// error message and return false.
func (f *ticketForm) Build(subject *service.Ticket) (service.Ticket, bool) {
	name := strings.TrimSpace(f.name.Value())
	if name == "" {
		f.errMsg = "name is required"
		return service.Ticket{}, false
	}
	due, err := service.ParseDate(strings.TrimSpace(f.due.Value()))
	if err != nil {
		f.errMsg = err.Error()
		return service.Ticket{}, false
	}

	var t service.Ticket
	if subject != nil {
		t = *subject
	}
	t.Name = name
	t.Description = f.description.Value()
	t.Status = service.Statuses[f.statusIdx]
	t.DueDate = due
	return t, true
}

func (f *ticketForm) setFocus(i int) {
	f.focus = i
	f.name.Blur()
	f.description.Blur()
	f.due.Blur()
	switch i {
	case 0:
		f.name.Focus()
	case 1:
		f.description.Focus()
	case 3:
		f.due.Focus()
	}
}

// update handles one message. It reports submit=true when the user pressed
// enter on the last field.
func (f ticketForm) update(msg tea.Msg) (ticketForm, tea.Cmd, bool) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "tab", "down":
			f.setFocus((f.focus + 1) % 4)
			return f, nil, false
		case "shift+tab", "up":
			f.setFocus((f.focus + 3) % 4)
			return f, nil, false
		case "left":
			if f.focus == 2 {
				f.statusIdx = (f.statusIdx + len(service.Statuses) - 1) % len(service.Statuses)
				return f, nil, false
			}
		case "right":
			if f.focus == 2 {
				f.statusIdx = (f.statusIdx + 1) % len(service.Statuses)
				return f, nil, false
			}
		case "enter":
			if f.focus < 3 {
				f.setFocus(f.focus + 1)
				return f, nil, false
			}
			return f, nil, true
		}
	}

	var cmd tea.Cmd
	switch f.focus {
	case 0:
		f.name, cmd = f.name.Update(msg)
	case 1:
		f.description, cmd = f.description.Update(msg)
	case 3:
		f.due, cmd = f.due.Update(msg)
	}
	return f, cmd, false
}

func (f ticketForm) view(st styles, editing bool) string {
	var b strings.Builder
	if f.errMsg != "" {
		b.WriteString(st.errMsg.Render(f.errMsg))
		b.WriteString("\n\n")
	}
	b.WriteString(f.name.View())
	b.WriteString("\n")
	b.WriteString(f.description.View())
	b.WriteString("\n")

	status := string(service.Statuses[f.statusIdx])
	if f.focus == 2 {
		b.WriteString(st.btnActive.Render("< " + status + " >"))
	} else {
		b.WriteString(st.btnBase.Render(status))
	}
	b.WriteString("\n")
	b.WriteString(f.due.View())
	b.WriteString("\n\n")

	action := "create"
	if editing {
		action = "save"
	}
	b.WriteString(st.muted.Render("tab: next field   left/right: status   enter: " + action + "   esc: cancel"))
	return b.String()
}
