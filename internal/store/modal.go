package store

// Modal is a two-state visibility controller for a single overlay dialog.
// It knows nothing about what the dialog shows; the subject being edited or
// deleted is owned by the caller and passed to the dialog at render time.
//
// Open on an open modal and Close on a closed one are no-ops.
type Modal struct {
	open bool
}

// Open transitions the modal to open.
func (m *Modal) Open() { m.open = true }

// Close transitions the modal to closed.
func (m *Modal) Close() { m.open = false }

// IsOpen reports the current visibility.
func (m *Modal) IsOpen() bool { return m.open }
