package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"taskdash/internal/service"
)

// loginModel is the login form. The auth error banner comes from the
// session store at render time; the form holds only input state.
type loginModel struct {
	email    textinput.Model
	password textinput.Model
	focus    int
}

func newLoginModel() loginModel {
	email := textinput.New()
	email.Placeholder = "email"
	email.CharLimit = 100
	email.Width = 40
	email.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 100
	password.Width = 40
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	return loginModel{email: email, password: password}
}

func (l *loginModel) reset() {
	l.email.SetValue("")
	l.password.SetValue("")
	l.setFocus(0)
}

func (l *loginModel) setFocus(i int) {
	l.focus = i
	l.email.Blur()
	l.password.Blur()
	if i == 0 {
		l.email.Focus()
	} else {
		l.password.Focus()
	}
}

// update handles one message. A non-nil credentials return means the user
// submitted the form.
func (l loginModel) update(msg tea.Msg) (loginModel, tea.Cmd, *service.Credentials) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "tab", "down":
			l.setFocus((l.focus + 1) % 2)
			return l, nil, nil
		case "shift+tab", "up":
			l.setFocus((l.focus + 1) % 2)
			return l, nil, nil
		case "enter":
			email := strings.TrimSpace(l.email.Value())
			password := l.password.Value()
			if l.focus == 0 && password == "" {
				l.setFocus(1)
				return l, nil, nil
			}
			if email == "" || password == "" {
				return l, nil, nil
			}
			return l, nil, &service.Credentials{Email: email, Password: password}
		}
	}

	var cmd tea.Cmd
	if l.focus == 0 {
		l.email, cmd = l.email.Update(msg)
	} else {
		l.password, cmd = l.password.Update(msg)
	}
	return l, cmd, nil
}

func (l loginModel) view(st styles, banner string, loading bool) string {
	var b strings.Builder
	b.WriteString(st.title.Render("Sign in"))
	b.WriteString("\n\n")
	if banner != "" {
		b.WriteString(st.banner.Render(banner))
		b.WriteString("\n\n")
	}
	b.WriteString(l.email.View())
	b.WriteString("\n")
	b.WriteString(l.password.View())
	b.WriteString("\n\n")
	if loading {
		b.WriteString(st.muted.Render("signing in..."))
	} else {
		b.WriteString(st.muted.Render("enter: sign in   ctrl+r: register   ctrl+c: quit"))
	}
	return b.String()
}
