package todo

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"todolist/internal/logging"
	"todolist/internal/service"
)

// TasksState is a snapshot of a TaskPanel.
type TasksState struct {
	ListID string
	Phase  Phase
	Err    error
	Tasks  []service.Task
	Modal  Modal
	Draft  Draft
}

// TaskPanel owns the task collection of one list, the task form and its
// working draft.
type TaskPanel struct {
	svc    service.Service
	listID string
	log    *log.Logger
	now    func() time.Time

	mu    sync.Mutex
	phase Phase
	err   error
	tasks []service.Task
	modal Modal
	draft Draft
}

// TaskPanelOption configures a TaskPanel.
type TaskPanelOption func(*TaskPanel)

// WithPanelLogger sets the logger.
func WithPanelLogger(l *log.Logger) TaskPanelOption {
	return func(p *TaskPanel) { p.log = logging.OrDiscard(l) }
}

// WithClock sets the clock used for draft defaults.
func WithClock(now func() time.Time) TaskPanelOption {
	return func(p *TaskPanel) { p.now = now }
}

// NewTaskPanel creates a panel for listID in the loading phase.
func NewTaskPanel(svc service.Service, listID string, opts ...TaskPanelOption) *TaskPanel {
	p := &TaskPanel{
		svc:    svc,
		listID: listID,
		log:    logging.Discard(),
		now:    time.Now,
		phase:  PhaseLoading,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.draft = NewDraft(p.now())
	return p
}

// ListID returns the list the panel is scoped to.
func (p *TaskPanel) ListID() string {
	return p.listID
}

// State returns a snapshot of the panel.
func (p *TaskPanel) State() TasksState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return TasksState{
		ListID: p.listID,
		Phase:  p.phase,
		Err:    p.err,
		Tasks:  slices.Clone(p.tasks),
		Modal:  p.modal,
		Draft:  p.draft,
	}
}

// Task returns the local record with the given id.
func (p *TaskPanel) Task(taskID string) (service.Task, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	i := p.indexOf(taskID)
	if i < 0 {
		return service.Task{}, false
	}
	return p.tasks[i], true
}

// Load fetches the list's tasks. A not-found answer yields an empty
// collection rather than an error.
func (p *TaskPanel) Load(ctx context.Context) error {
	p.mu.Lock()
	p.phase = PhaseLoading
	p.err = nil
	p.mu.Unlock()

	tasks, err := p.svc.ListTasks(ctx, p.listID)
	if service.IsNotFound(err) {
		tasks, err = nil, nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if err != nil {
		p.fail(err)
		return err
	}
	p.tasks = tasks
	p.phase = PhaseReady
	p.log.Debug("tasks loaded", "list", p.listID, "count", len(tasks))
	return nil
}

// Create posts a new task and appends the server's record.
func (p *TaskPanel) Create(ctx context.Context, d Draft) (service.Task, error) {
	task, err := p.svc.CreateTask(ctx, p.listID, d.Input())

	p.mu.Lock()
	defer p.mu.Unlock()
	if err != nil {
		p.fail(err)
		return service.Task{}, err
	}
	p.tasks = append(p.tasks, task)
	return task, nil
}

// Edit replaces a task with a full record and swaps the server's response
// into place. Collection order is preserved.
func (p *TaskPanel) Edit(ctx context.Context, taskID string, task service.Task) (service.Task, error) {
	updated, err := p.svc.UpdateTask(ctx, p.listID, taskID, task)

	p.mu.Lock()
	defer p.mu.Unlock()
	if err != nil {
		p.fail(err)
		return service.Task{}, err
	}
	if i := p.indexOf(taskID); i >= 0 {
		p.tasks[i] = updated
	}
	return updated, nil
}

// Delete removes a task remotely, then locally.
func (p *TaskPanel) Delete(ctx context.Context, taskID string) error {
	err := p.svc.DeleteTask(ctx, p.listID, taskID)

	p.mu.Lock()
	defer p.mu.Unlock()
	if err != nil {
		p.fail(err)
		return err
	}
	p.tasks = slices.DeleteFunc(p.tasks, func(t service.Task) bool { return t.ID == taskID })
	return nil
}

// ToggleCompleted flips the completed flag of the local record and sends
// the whole record as an edit.
func (p *TaskPanel) ToggleCompleted(ctx context.Context, taskID string) (service.Task, error) {
	task, ok := p.Task(taskID)
	if !ok {
		return service.Task{}, ErrTaskNotFound
	}
	task.Completed = !task.Completed
	return p.Edit(ctx, taskID, task)
}

// OpenNew resets the draft to defaults and opens the form for a new task.
func (p *TaskPanel) OpenNew() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.draft = NewDraft(p.now())
	p.modal = Modal{Kind: ModalCreating}
}

// OpenEdit seeds the draft from a task and opens the form for editing it.
func (p *TaskPanel) OpenEdit(taskID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	i := p.indexOf(taskID)
	if i < 0 {
		return ErrTaskNotFound
	}
	p.draft = DraftFromTask(p.tasks[i])
	p.modal = Modal{Kind: ModalEditing, TaskID: taskID}
	return nil
}

// SetDraft replaces the working draft.
func (p *TaskPanel) SetDraft(d Draft) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.draft = d
}

// CloseForm closes the form and resets the draft.
func (p *TaskPanel) CloseForm() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.resetForm()
}

// Save creates or edits depending on the open form, then resets the draft
// and closes the form whether or not the call succeeded.
func (p *TaskPanel) Save(ctx context.Context) (service.Task, error) {
	p.mu.Lock()
	modal, draft := p.modal, p.draft
	var prior service.Task
	found := false
	if modal.Kind == ModalEditing {
		if i := p.indexOf(modal.TaskID); i >= 0 {
			prior, found = p.tasks[i], true
		}
	}
	p.mu.Unlock()

	var (
		task service.Task
		err  error
	)
	switch modal.Kind {
	case ModalCreating:
		task, err = p.Create(ctx, draft)
	case ModalEditing:
		if !found {
			err = ErrTaskNotFound
			break
		}
		task, err = p.Edit(ctx, modal.TaskID, draft.ApplyTo(prior))
	default:
		return service.Task{}, ErrNoForm
	}

	p.CloseForm()
	return task, err
}

// indexOf returns the index of taskID; callers hold p.mu.
func (p *TaskPanel) indexOf(taskID string) int {
	return slices.IndexFunc(p.tasks, func(t service.Task) bool { return t.ID == taskID })
}

// resetForm closes the form; callers hold p.mu.
func (p *TaskPanel) resetForm() {
	p.modal = Modal{}
	p.draft = NewDraft(p.now())
}

// fail records err; callers hold p.mu.
func (p *TaskPanel) fail(err error) {
	p.phase = PhaseFailed
	p.err = err
	p.log.Debug("task panel failed", "list", p.listID, "err", err)
}
