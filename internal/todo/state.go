// Package todo holds the list manager and task panel: explicit state
// machines that keep local collections in sync with the remote store.
//
// Each machine guards its state with a mutex, so operations may run from
// any goroutine. Mutations on one collection are not ordered against each
// other; the last response to arrive wins.
package todo

import "errors"

// Phase is the load state of a component.
type Phase int

const (
	// PhaseLoading precedes both content and error.
	PhaseLoading Phase = iota
	// PhaseReady means the collection mirrors the last fetch.
	PhaseReady
	// PhaseFailed means a fetch or mutation failed; the error replaces content.
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseReady:
		return "ready"
	case PhaseFailed:
		return "failed"
	}
	return "unknown"
}

// ModalKind is the form state of a task panel.
type ModalKind int

const (
	ModalClosed ModalKind = iota
	ModalCreating
	ModalEditing
)

// Modal is the orthogonal form state of a ready task panel.
type Modal struct {
	Kind ModalKind
	// TaskID is set when Kind is ModalEditing.
	TaskID string
}

var (
	// ErrTaskNotFound is returned when an operation names a task that is
	// not in the local collection.
	ErrTaskNotFound = errors.New("task not found")

	// ErrNoForm is returned by Save when no form is open.
	ErrNoForm = errors.New("no task form open")
)
