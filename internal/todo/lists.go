package todo

import (
	"context"
	"slices"
	"sync"

	"github.com/charmbracelet/log"

	"todolist/internal/logging"
	"todolist/internal/service"
)

// ListsState is a snapshot of a ListManager.
type ListsState struct {
	Phase    Phase
	Err      error
	Lists    []service.List
	Expanded string
	Creating bool
}

// ListManager owns the collection of lists, the create dialog and the
// single expanded list with its task panel.
type ListManager struct {
	svc         service.Service
	log         *log.Logger
	deleteLimit int

	mu       sync.Mutex
	phase    Phase
	err      error
	lists    []service.List
	expanded string
	creating bool
	panel    *TaskPanel
}

// ListManagerOption configures a ListManager.
type ListManagerOption func(*ListManager)

// WithLogger sets the logger.
func WithLogger(l *log.Logger) ListManagerOption {
	return func(m *ListManager) { m.log = logging.OrDiscard(l) }
}

// WithDeleteConcurrency caps concurrent task deletions during list
// deletion. Zero or less means no cap.
func WithDeleteConcurrency(n int) ListManagerOption {
	return func(m *ListManager) { m.deleteLimit = n }
}

// NewListManager creates a manager in the loading phase.
func NewListManager(svc service.Service, opts ...ListManagerOption) *ListManager {
	m := &ListManager{
		svc:   svc,
		log:   logging.Discard(),
		phase: PhaseLoading,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// State returns a snapshot of the manager.
func (m *ListManager) State() ListsState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return ListsState{
		Phase:    m.phase,
		Err:      m.err,
		Lists:    slices.Clone(m.lists),
		Expanded: m.expanded,
		Creating: m.creating,
	}
}

// Panel returns the task panel of the expanded list, or nil.
func (m *ListManager) Panel() *TaskPanel {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.panel
}

// Load fetches all lists and replaces the local collection.
func (m *ListManager) Load(ctx context.Context) error {
	m.mu.Lock()
	m.phase = PhaseLoading
	m.mu.Unlock()

	lists, err := m.svc.ListLists(ctx)

	m.mu.Lock()
	defer m.mu.Unlock()
	if err != nil {
		m.fail(err)
		return err
	}
	m.lists = lists
	m.phase = PhaseReady
	m.err = nil
	if m.expanded != "" && !slices.ContainsFunc(lists, func(l service.List) bool { return l.ID == m.expanded }) {
		m.expanded = ""
		m.panel = nil
	}
	m.log.Debug("lists loaded", "count", len(lists))
	return nil
}

// OpenCreate opens the new-list dialog.
func (m *ListManager) OpenCreate() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.creating = true
}

// CloseCreate closes the new-list dialog.
func (m *ListManager) CloseCreate() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.creating = false
}

// Create adds a list, reloads the collection and closes the dialog. If
// the create request fails the error is recorded and the dialog is left
// as it was; once the list exists the dialog closes even if the reload
// fails.
func (m *ListManager) Create(ctx context.Context, title string) (service.List, error) {
	list, err := m.svc.CreateList(ctx, title)
	if err != nil {
		m.mu.Lock()
		m.fail(err)
		m.mu.Unlock()
		return service.List{}, err
	}
	m.log.Debug("list created", "id", list.ID, "title", list.Title)

	err = m.Load(ctx)
	m.CloseCreate()
	return list, err
}

// Delete removes a list after deleting its tasks, then reloads the
// collection. A failed task cleanup is reported as *PartialDeleteError.
func (m *ListManager) Delete(ctx context.Context, listID string) (DeleteResult, error) {
	result, err := DeleteList(ctx, m.svc, listID, m.deleteLimit)
	if err != nil {
		m.log.Debug("list deletion failed", "id", listID, "deleted", result.Succeeded, "of", result.Attempted, "err", err)
		m.mu.Lock()
		m.fail(err)
		m.mu.Unlock()
		return result, err
	}
	m.log.Debug("list deleted", "id", listID, "tasks", result.Attempted)
	return result, m.Load(ctx)
}

// ToggleExpand expands listID, or collapses it when it is already
// expanded. It returns the newly mounted task panel, or nil on collapse.
// The caller loads the panel.
func (m *ListManager) ToggleExpand(listID string) *TaskPanel {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.expanded == listID {
		m.expanded = ""
		m.panel = nil
		return nil
	}
	m.expanded = listID
	m.panel = NewTaskPanel(m.svc, listID, WithPanelLogger(m.log))
	return m.panel
}

// fail records err; callers hold m.mu.
func (m *ListManager) fail(err error) {
	m.phase = PhaseFailed
	m.err = err
}
