// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"taskdash/internal/service"
)

// FormatTicket formats one ticket line.
// Format: "{ID:>4}  {STATUS:<11}  {DUE:<10}  {NAME}\n". An unset due date
// renders as "-". Widths fit the longest status ("In Progress") and the
// YYYY-MM-DD date form.
func FormatTicket(w io.Writer, t service.Ticket) {
	due := t.DueDate.String()
	if due == "" {
		due = "-"
	}
	fmt.Fprintf(w, "%4s  %-11s  %-10s  %s\n", t.ID, t.Status, due, normalizeTitle(t.Name))
}

// FormatHeader writes the column header matching FormatTicket.
func FormatHeader(w io.Writer) {
	fmt.Fprintf(w, "%4s  %-11s  %-10s  %s\n", "ID", "STATUS", "DUE", "NAME")
}

// FormatUser formats a user line for whoami.
func FormatUser(w io.Writer, u service.User) {
	fmt.Fprintf(w, "%s <%s> (id %s)\n", u.Name, u.Email, u.ID)
}

// normalizeTitle normalizes a ticket name for display.
// - Empty or whitespace-only names become "(untitled)"
// - Newlines are replaced with spaces
func normalizeTitle(title string) string {
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.ReplaceAll(title, "\n", " ")

	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}
