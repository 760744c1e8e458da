package tui

import (
	"github.com/charmbracelet/lipgloss"

	"taskdash/internal/service"
)

// palette is one theme's color set. Which palette loads follows the
// persisted theme preference, mirroring the server-side setting.
type palette struct {
	fg         lipgloss.Color
	muted      lipgloss.Color
	accent     lipgloss.Color
	errFg      lipgloss.Color
	controlBg  lipgloss.Color
	controlFg  lipgloss.Color
	selectedBg lipgloss.Color
	selectedFg lipgloss.Color
	border     lipgloss.Color
}

func paletteFor(theme string) palette {
	if theme == "light" {
		return palette{
			fg:         lipgloss.Color("235"),
			muted:      lipgloss.Color("245"),
			accent:     lipgloss.Color("26"),
			errFg:      lipgloss.Color("124"),
			controlBg:  lipgloss.Color("254"),
			controlFg:  lipgloss.Color("235"),
			selectedBg: lipgloss.Color("26"),
			selectedFg: lipgloss.Color("255"),
			border:     lipgloss.Color("250"),
		}
	}
	return palette{
		fg:         lipgloss.Color("252"),
		muted:      lipgloss.Color("243"),
		accent:     lipgloss.Color("39"),
		errFg:      lipgloss.Color("203"),
		controlBg:  lipgloss.Color("237"),
		controlFg:  lipgloss.Color("252"),
		selectedBg: lipgloss.Color("39"),
		selectedFg: lipgloss.Color("232"),
		border:     lipgloss.Color("240"),
	}
}

type styles struct {
	pal palette

	title  lipgloss.Style
	muted  lipgloss.Style
	errMsg lipgloss.Style
	notice lipgloss.Style
	banner lipgloss.Style

	modalBox   lipgloss.Style
	modalTitle lipgloss.Style
	btnBase    lipgloss.Style
	btnActive  lipgloss.Style

	status map[service.Status]lipgloss.Style
}

func newStyles(theme string) styles {
	p := paletteFor(theme)
	s := styles{
		pal:    p,
		title:  lipgloss.NewStyle().Bold(true).Foreground(p.accent),
		muted:  lipgloss.NewStyle().Foreground(p.muted),
		errMsg: lipgloss.NewStyle().Foreground(p.errFg),
		notice: lipgloss.NewStyle().Foreground(p.accent),
		banner: lipgloss.NewStyle().Foreground(p.errFg).Bold(true),

		modalBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.border).
			Padding(1, 2),
		modalTitle: lipgloss.NewStyle().Bold(true).Foreground(p.accent),

		btnBase: lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(p.controlFg).
			Background(p.controlBg),
	}
	s.btnActive = s.btnBase.
		Foreground(p.selectedFg).
		Background(p.selectedBg).
		Bold(true)

	s.status = map[service.Status]lipgloss.Style{
		service.StatusPending:    lipgloss.NewStyle().Foreground(p.muted),
		service.StatusInProgress: lipgloss.NewStyle().Foreground(p.accent),
		service.StatusCompleted:  lipgloss.NewStyle().Foreground(lipgloss.Color("71")),
		service.StatusBlocked:    lipgloss.NewStyle().Foreground(p.errFg),
	}
	return s
}

// renderModalBox frames modal content in a bordered box sized to the
// terminal width.
func (s styles) renderModalBox(width int, title, content string) string {
	w := width - 8
	if w > 60 {
		w = 60
	}
	if w < 24 {
		w = 24
	}
	box := s.modalBox.Width(w)
	return box.Render(s.modalTitle.Render(title) + "\n\n" + content)
}
