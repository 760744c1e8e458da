package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"taskdash/internal/service"
)

// profileModel is the profile edit form. The name is prefilled from the
// session user; an empty password leaves the current one unchanged.
type profileModel struct {
	name     textinput.Model
	password textinput.Model
	focus    int
	errMsg   string
}

func newProfileModel() profileModel {
	name := textinput.New()
	name.Placeholder = "name"
	name.CharLimit = 100
	name.Width = 40

	password := textinput.New()
	password.Placeholder = "new password (leave blank to keep)"
	password.CharLimit = 100
	password.Width = 40
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	return profileModel{name: name, password: password}
}

// load prefills the form from the current session user.
func (p *profileModel) load(u *service.User) {
	p.name.SetValue("")
	if u != nil {
		p.name.SetValue(u.Name)
	}
	p.password.SetValue("")
	p.errMsg = ""
	p.setFocus(0)
}

func (p *profileModel) setFocus(i int) {
	p.focus = i
	p.name.Blur()
	p.password.Blur()
	if i == 0 {
		p.name.Focus()
	} else {
		p.password.Focus()
	}
}

// update handles one message. A non-nil profile return means the user
// submitted the form.
func (p profileModel) update(msg tea.Msg) (profileModel, tea.Cmd, *service.Profile) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "tab", "down":
			p.setFocus((p.focus + 1) % 2)
			return p, nil, nil
		case "shift+tab", "up":
			p.setFocus((p.focus + 1) % 2)
			return p, nil, nil
		case "enter":
			if p.focus == 0 {
				p.setFocus(1)
				return p, nil, nil
			}
			name := strings.TrimSpace(p.name.Value())
			if name == "" {
				p.errMsg = "name is required"
				p.setFocus(0)
				return p, nil, nil
			}
			p.errMsg = ""
			return p, nil, &service.Profile{Name: name, Password: p.password.Value()}
		}
	}

	var cmd tea.Cmd
	if p.focus == 0 {
		p.name, cmd = p.name.Update(msg)
	} else {
		p.password, cmd = p.password.Update(msg)
	}
	return p, cmd, nil
}

func (p profileModel) view(st styles, saving bool) string {
	var b strings.Builder
	if p.errMsg != "" {
		b.WriteString(st.banner.Render(p.errMsg))
		b.WriteString("\n\n")
	}
	b.WriteString(p.name.View())
	b.WriteString("\n")
	b.WriteString(p.password.View())
	b.WriteString("\n\n")
	if saving {
		b.WriteString(st.muted.Render("saving..."))
	} else {
		b.WriteString(st.muted.Render("enter: save   esc: cancel"))
	}
	return b.String()
}
