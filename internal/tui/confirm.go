package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type confirmFocus int

const (
	confirmFocusConfirm confirmFocus = iota
	confirmFocusCancel
)

// renderConfirm renders the body of a confirmation dialog with two buttons.
func renderConfirm(st styles, body, confirmLabel, cancelLabel string, focus confirmFocus) string {
	confirm := st.btnBase.Render(confirmLabel)
	cancel := st.btnBase.Render(cancelLabel)
	if focus == confirmFocusConfirm {
		confirm = st.btnActive.Render(confirmLabel)
	} else {
		cancel = st.btnActive.Render(cancelLabel)
	}

	controls := lipgloss.JoinHorizontal(lipgloss.Top, confirm, " ", cancel)
	help := st.muted.Render("tab: focus   enter: select   esc: cancel")

	return strings.Join([]string{body, "", controls, "", help}, "\n")
}
