// Package tui implements the interactive terminal dashboard.
//
// The app model is a thin view layer over the session and tasks stores: it
// issues store operations as bubbletea commands and re-renders from store
// snapshots. Authentication gating lives in Update/View: while the initial
// session validation settles only a spinner renders; once settled, either
// the requested view mounts or the login form does, and the originally
// requested view is restored after a successful login.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"taskdash/internal/config"
	"taskdash/internal/service"
	"taskdash/internal/store"
)

type view int

const (
	viewTickets view = iota
	viewProfile
)

const noticeTTL = 3 * time.Second

type sessionCheckedMsg struct{ ok bool }

type loginDoneMsg struct{ ok bool }

type registerDoneMsg struct{ res service.RegisterResult }

type logoutDoneMsg struct{}

type tasksFetchedMsg struct{ ok bool }

type saveDoneMsg struct {
	err      error
	creating bool
}

type deleteDoneMsg struct{ err error }

type profileSavedMsg struct{ err error }

type themeSavedMsg struct {
	theme string
	err   error
}

type noticeExpiredMsg struct{ seq int }

// Run starts the interactive dashboard and blocks until it exits.
func Run(ctx context.Context, cfg *config.Config, svc service.Service) error {
	settings, _ := cfg.LoadSettings()
	m := newAppModel(ctx, cfg, svc, settings.Theme)
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}

type appModel struct {
	ctx context.Context
	cfg *config.Config
	svc service.Service

	session *store.Session
	tasks   *store.Tasks

	ticketModal store.Modal
	deleteModal store.Modal

	view     view
	returnTo view

	theme  string
	styles styles

	width  int
	height int

	spin       spinner.Model
	login      loginModel
	register   registerModel
	onRegister bool

	tickets list.Model
	form    ticketForm
	confirm confirmFocus

	profile        profileModel
	profileEditing bool
	profileSaving  bool

	// current is the subject of the open ticket/delete modal. The modals
	// only track visibility; the subject lives here.
	current *service.Ticket

	// checked flips once the startup session validation has settled.
	checked bool

	notice    string
	noticeSeq int

	fetchCancel context.CancelFunc
}

func newAppModel(ctx context.Context, cfg *config.Config, svc service.Service, theme string) appModel {
	if theme == "" {
		theme = "dark"
	}
	st := newStyles(theme)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = st.muted

	return appModel{
		ctx:      ctx,
		cfg:      cfg,
		svc:      svc,
		session:  store.NewSession(svc, cfg),
		tasks:    store.NewTasks(svc),
		theme:    theme,
		styles:   st,
		spin:     sp,
		login:    newLoginModel(),
		register: newRegisterModel(),
		tickets:  newTicketList(),
		form:     newTicketForm(),
		profile:  newProfileModel(),
	}
}

func (m appModel) Init() tea.Cmd {
	sess, ctx := m.session, m.ctx
	return tea.Batch(m.spin.Tick, func() tea.Msg {
		return sessionCheckedMsg{ok: sess.Restore(ctx)}
	})
}

func validateSession(ctx context.Context, sess *store.Session) tea.Cmd {
	return func() tea.Msg { return sessionCheckedMsg{ok: sess.Validate(ctx)} }
}

func doLogin(ctx context.Context, sess *store.Session, creds service.Credentials) tea.Cmd {
	return func() tea.Msg { return loginDoneMsg{ok: sess.Login(ctx, creds)} }
}

func doRegister(ctx context.Context, sess *store.Session, reg service.Registration) tea.Cmd {
	return func() tea.Msg { return registerDoneMsg{res: sess.Register(ctx, reg)} }
}

func doLogout(ctx context.Context, sess *store.Session) tea.Cmd {
	return func() tea.Msg {
		sess.Logout(ctx)
		return logoutDoneMsg{}
	}
}

func doSave(ctx context.Context, tasks *store.Tasks, t service.Ticket) tea.Cmd {
	return func() tea.Msg {
		return saveDoneMsg{err: tasks.Save(ctx, t), creating: t.ID == ""}
	}
}

func doDelete(ctx context.Context, tasks *store.Tasks, id string) tea.Cmd {
	return func() tea.Msg { return deleteDoneMsg{err: tasks.Delete(ctx, id)} }
}

func doProfile(ctx context.Context, sess *store.Session, svc service.Service, p service.Profile) tea.Cmd {
	return func() tea.Msg {
		if err := svc.UpdateProfile(ctx, p); err != nil {
			return profileSavedMsg{err: err}
		}
		// Re-validate so the stored session user picks up the new name.
		sess.Validate(ctx)
		return profileSavedMsg{}
	}
}

func doTheme(ctx context.Context, svc service.Service, cfg *config.Config, theme string) tea.Cmd {
	return func() tea.Msg {
		err := svc.UpdatePreferences(ctx, theme)
		if err == nil {
			settings, _ := cfg.LoadSettings()
			settings.Theme = theme
			_ = cfg.SaveSettings(settings)
		}
		return themeSavedMsg{theme: theme, err: err}
	}
}

// startFetch issues a collection fetch with a cancelable context so a guard
// redirect can abandon it.
func (m *appModel) startFetch() tea.Cmd {
	ctx, cancel := context.WithCancel(m.ctx)
	m.fetchCancel = cancel
	tasks := m.tasks
	return func() tea.Msg { return tasksFetchedMsg{ok: tasks.Fetch(ctx)} }
}

// notify shows a transient notification in the footer.
func (m *appModel) notify(text string) tea.Cmd {
	m.noticeSeq++
	m.notice = text
	seq := m.noticeSeq
	return tea.Tick(noticeTTL, func(time.Time) tea.Msg { return noticeExpiredMsg{seq: seq} })
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.tickets.SetSize(msg.Width-4, msg.Height-6)
		return m, nil

	case spinner.TickMsg:
		if !m.checked || m.session.State().Loading || m.tasks.State().Loading {
			var cmd tea.Cmd
			m.spin, cmd = m.spin.Update(msg)
			return m, cmd
		}
		return m, nil

	case sessionCheckedMsg:
		m.checked = true
		if msg.ok {
			return m, tea.Batch(m.spin.Tick, m.startFetch())
		}
		// Guard redirect: remember the requested view, abandon any
		// outstanding fetch, and let View fall back to the login form.
		m.returnTo = m.view
		if m.fetchCancel != nil {
			m.fetchCancel()
		}
		return m, nil

	case loginDoneMsg:
		if msg.ok {
			m.view = m.returnTo
			m.login.reset()
			return m, tea.Batch(m.spin.Tick, m.startFetch())
		}
		// The login view renders the session store's error banner.
		return m, nil

	case registerDoneMsg:
		m.register.setResult(msg.res)
		if msg.res.OK {
			m.onRegister = false
			m.login.reset()
			return m, m.notify(msg.res.Message)
		}
		return m, nil

	case logoutDoneMsg:
		m.onRegister = false
		m.login.reset()
		return m, nil

	case tasksFetchedMsg:
		state := m.tasks.State()
		cmd := m.tickets.SetItems(ticketItems(state.Tickets))
		if !msg.ok && !state.Loading && m.session.IsAuthenticated() {
			// The fetch may have failed because the session expired out
			// from under us; re-validate so the guard can redirect. A
			// false result with a fetch still in flight is just the
			// reentrancy guard and needs nothing.
			return m, tea.Batch(cmd, validateSession(m.ctx, m.session))
		}
		return m, cmd

	case saveDoneMsg:
		if msg.err != nil {
			// The modal stays open; the error shows inside it.
			m.form.errMsg = m.tasks.State().Err
			return m, nil
		}
		m.ticketModal.Close()
		m.current = nil
		if msg.creating {
			return m, m.notify("Task created successfully")
		}
		return m, m.notify("Task updated successfully")

	case deleteDoneMsg:
		m.deleteModal.Close()
		m.current = nil
		if msg.err != nil {
			return m, m.notify(m.tasks.State().Err)
		}
		return m, m.notify("Task deleted successfully")

	case profileSavedMsg:
		m.profileSaving = false
		if msg.err != nil {
			// The form stays up; the error shows inside it.
			m.profile.errMsg = service.Message(msg.err, "Failed to update profile")
			return m, nil
		}
		m.profileEditing = false
		return m, m.notify("Profile updated successfully")

	case themeSavedMsg:
		if msg.err != nil {
			return m, m.notify("Failed to update theme preference")
		}
		return m, m.notify("Theme preference updated")

	case noticeExpiredMsg:
		if msg.seq == m.noticeSeq {
			m.notice = ""
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	// The guard screen takes no input until validation settles.
	if !m.checked {
		return m, nil
	}

	if !m.session.IsAuthenticated() {
		return m.handleAuthKey(msg)
	}

	if m.ticketModal.IsOpen() {
		if msg.String() == "esc" {
			m.ticketModal.Close()
			m.current = nil
			return m, nil
		}
		var cmd tea.Cmd
		var submit bool
		m.form, cmd, submit = m.form.update(msg)
		if submit {
			if ticket, ok := m.form.Build(m.current); ok {
				return m, doSave(m.ctx, m.tasks, ticket)
			}
		}
		return m, cmd
	}

	if m.deleteModal.IsOpen() {
		switch msg.String() {
		case "esc":
			m.deleteModal.Close()
			m.current = nil
			return m, nil
		case "tab", "left", "right":
			if m.confirm == confirmFocusConfirm {
				m.confirm = confirmFocusCancel
			} else {
				m.confirm = confirmFocusConfirm
			}
			return m, nil
		case "enter":
			if m.confirm == confirmFocusConfirm && m.current != nil && m.current.ID != "" {
				return m, doDelete(m.ctx, m.tasks, m.current.ID)
			}
			m.deleteModal.Close()
			m.current = nil
			return m, nil
		}
		return m, nil
	}

	if m.view == viewProfile {
		if m.profileEditing {
			if msg.String() == "esc" {
				m.profileEditing = false
				return m, nil
			}
			var cmd tea.Cmd
			var p *service.Profile
			m.profile, cmd, p = m.profile.update(msg)
			if p != nil {
				m.profileSaving = true
				return m, doProfile(m.ctx, m.session, m.svc, *p)
			}
			return m, cmd
		}
		switch msg.String() {
		case "esc", "p":
			m.view = viewTickets
			return m, nil
		case "e":
			m.profile.load(m.session.State().User)
			m.profileEditing = true
			return m, nil
		case "t":
			next := "dark"
			if m.theme == "dark" {
				next = "light"
			}
			m.theme = next
			m.styles = newStyles(next)
			return m, doTheme(m.ctx, m.svc, m.cfg, next)
		case "L":
			return m, doLogout(m.ctx, m.session)
		}
		return m, nil
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "n":
		m.current = nil
		m.form.Load(nil)
		m.ticketModal.Open()
		return m, nil
	case "e", "enter":
		if item, ok := m.tickets.SelectedItem().(ticketItem); ok {
			t := item.t
			m.current = &t
			m.form.Load(&t)
			m.ticketModal.Open()
		}
		return m, nil
	case "d", "x":
		if item, ok := m.tickets.SelectedItem().(ticketItem); ok {
			t := item.t
			m.current = &t
			m.confirm = confirmFocusCancel
			m.deleteModal.Open()
		}
		return m, nil
	case "r":
		return m, tea.Batch(m.spin.Tick, m.startFetch())
	case "p":
		m.view = viewProfile
		return m, nil
	case "L":
		return m, doLogout(m.ctx, m.session)
	}

	var cmd tea.Cmd
	m.tickets, cmd = m.tickets.Update(msg)
	return m, cmd
}

func (m appModel) handleAuthKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.onRegister {
		if msg.String() == "esc" {
			m.onRegister = false
			return m, nil
		}
		var cmd tea.Cmd
		var reg *service.Registration
		m.register, cmd, reg = m.register.update(msg)
		if reg != nil {
			return m, tea.Batch(m.spin.Tick, doRegister(m.ctx, m.session, *reg))
		}
		return m, cmd
	}

	if msg.String() == "ctrl+r" {
		m.onRegister = true
		m.register.reset()
		return m, nil
	}

	var cmd tea.Cmd
	var creds *service.Credentials
	m.login, cmd, creds = m.login.update(msg)
	if creds != nil {
		return m, tea.Batch(m.spin.Tick, doLogin(m.ctx, m.session, *creds))
	}
	return m, cmd
}

func (m appModel) View() string {
	sess := m.session.State()

	// Session guard: only a loading indicator until validation settles.
	if !m.checked {
		return m.center(m.spin.View() + " Checking session...")
	}

	if sess.User == nil {
		var body string
		if m.onRegister {
			body = m.register.view(m.styles, sess.Loading)
		} else {
			body = m.login.view(m.styles, sess.Err, sess.Loading)
		}
		// A registration success notice shows below the form.
		if m.notice != "" {
			body += "\n\n" + m.styles.notice.Render(m.notice)
		}
		return m.center(body)
	}

	if m.ticketModal.IsOpen() {
		title := "New ticket"
		if m.current != nil {
			title = "Edit ticket"
		}
		box := m.styles.renderModalBox(m.width, title, m.form.view(m.styles, m.current != nil))
		return m.center(box)
	}

	if m.deleteModal.IsOpen() {
		name := ""
		if m.current != nil {
			name = m.current.Name
		}
		body := renderConfirm(m.styles, "Delete ticket \""+name+"\"?", "Delete", "Cancel", m.confirm)
		return m.center(m.styles.renderModalBox(m.width, "Confirm deletion", body))
	}

	header := m.styles.title.Render("taskdash") + m.styles.muted.Render("  "+sess.User.Name)

	var body string
	if m.view == viewProfile {
		body = m.profileView(sess)
	} else {
		body = m.ticketsView()
	}

	footer := m.footerView()
	return lipgloss.JoinVertical(lipgloss.Left, header, "", body, footer)
}

func (m appModel) ticketsView() string {
	state := m.tasks.State()

	if state.Loading && len(state.Tickets) == 0 {
		return m.styles.muted.Render(m.spin.View() + " Loading tickets...")
	}
	// An error is not an empty list: it gets a retry affordance.
	if state.Err != "" && len(state.Tickets) == 0 {
		return m.styles.errMsg.Render("Error: "+state.Err) + "\n" +
			m.styles.muted.Render("press r to retry")
	}
	if len(state.Tickets) == 0 {
		return m.styles.muted.Render("No tickets yet. Press n to create one.")
	}
	return m.tickets.View()
}

func (m appModel) profileView(sess store.SessionState) string {
	if m.profileEditing {
		return lipgloss.JoinVertical(lipgloss.Left,
			m.styles.title.Render("Edit profile"),
			"",
			m.profile.view(m.styles, m.profileSaving),
		)
	}
	u := sess.User
	lines := []string{
		m.styles.title.Render("Profile"),
		"",
		"Name:  " + u.Name,
		"Email: " + u.Email,
		"Theme: " + m.theme,
		"",
		m.styles.muted.Render("e: edit   t: toggle theme   L: log out   esc: back"),
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m appModel) footerView() string {
	if m.notice != "" {
		return m.styles.notice.Render(m.notice)
	}
	if m.view == viewProfile {
		return ""
	}
	return m.styles.muted.Render("n: new   e: edit   d: delete   r: refresh   p: profile   L: log out   q: quit")
}

func (m appModel) center(content string) string {
	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}
