package tui

import (
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"taskdash/internal/service"
)

// registerModel is the account-creation form. Field-level validation errors
// from the server annotate the matching inputs.
type registerModel struct {
	inputs      []textinput.Model // name, email, password
	focus       int
	fieldErrors map[string]string
	message     string
}

var registerFields = []string{"name", "email", "password"}

func newRegisterModel() registerModel {
	inputs := make([]textinput.Model, 3)
	for i, field := range registerFields {
		in := textinput.New()
		in.Placeholder = field
		in.CharLimit = 100
		in.Width = 40
		inputs[i] = in
	}
	inputs[2].EchoMode = textinput.EchoPassword
	inputs[2].EchoCharacter = '•'
	inputs[0].Focus()
	return registerModel{inputs: inputs}
}

func (r *registerModel) reset() {
	for i := range r.inputs {
		r.inputs[i].SetValue("")
	}
	r.fieldErrors = nil
	r.message = ""
	r.setFocus(0)
}

func (r *registerModel) setFocus(i int) {
	r.focus = i
	for j := range r.inputs {
		if j == i {
			r.inputs[j].Focus()
		} else {
			r.inputs[j].Blur()
		}
	}
}

// setResult records the server's outcome for display.
func (r *registerModel) setResult(res service.RegisterResult) {
	r.fieldErrors = res.FieldErrors
	r.message = res.Message
}

// update handles one message. A non-nil registration means the form was
// submitted.
func (r registerModel) update(msg tea.Msg) (registerModel, tea.Cmd, *service.Registration) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "tab", "down":
			r.setFocus((r.focus + 1) % len(r.inputs))
			return r, nil, nil
		case "shift+tab", "up":
			r.setFocus((r.focus + len(r.inputs) - 1) % len(r.inputs))
			return r, nil, nil
		case "enter":
			if r.focus < len(r.inputs)-1 {
				r.setFocus(r.focus + 1)
				return r, nil, nil
			}
			reg := service.Registration{
				Name:     strings.TrimSpace(r.inputs[0].Value()),
				Email:    strings.TrimSpace(r.inputs[1].Value()),
				Password: r.inputs[2].Value(),
			}
			if reg.Name == "" || reg.Email == "" || reg.Password == "" {
				return r, nil, nil
			}
			return r, nil, &reg
		}
	}

	var cmd tea.Cmd
	r.inputs[r.focus], cmd = r.inputs[r.focus].Update(msg)
	return r, cmd, nil
}

func (r registerModel) view(st styles, loading bool) string {
	var b strings.Builder
	b.WriteString(st.title.Render("Create account"))
	b.WriteString("\n\n")
	if r.message != "" {
		b.WriteString(st.banner.Render(r.message))
		b.WriteString("\n\n")
	}
	for i, field := range registerFields {
		b.WriteString(r.inputs[i].View())
		if msg, ok := r.fieldErrors[field]; ok {
			b.WriteString("  ")
			b.WriteString(st.errMsg.Render(msg))
		}
		b.WriteString("\n")
	}
	// Any leftover field errors that don't match an input still show.
	var extra []string
	for field := range r.fieldErrors {
		known := false
		for _, f := range registerFields {
			if f == field {
				known = true
			}
		}
		if !known {
			extra = append(extra, field)
		}
	}
	sort.Strings(extra)
	for _, field := range extra {
		b.WriteString(st.errMsg.Render(field + ": " + r.fieldErrors[field]))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	if loading {
		b.WriteString(st.muted.Render("registering..."))
	} else {
		b.WriteString(st.muted.Render("enter: submit   esc: back to sign in   ctrl+c: quit"))
	}
	return b.String()
}
