// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"todolist/internal/service"
)

// FakeService is an in-memory implementation of service.Service for testing.
// Like the hosted API it assigns sequential ids and answers not-found for
// the tasks of a list that has none. Every call is recorded in Calls as
// "METHOD /path".
type FakeService struct {
	mu     sync.Mutex
	lists  []service.List
	tasks  map[string][]service.Task // listID -> tasks
	nextID int
	calls  []string

	// Error injection for testing
	ListListsErr   error
	GetListErr     error
	CreateListErr  error
	DeleteListErr  error
	ListTasksErr   map[string]error // listID -> error
	GetTaskErr     error
	CreateTaskErr  error
	UpdateTaskErr  error
	DeleteTaskErr  map[string]error // taskID -> error
	DeleteTasksErr error            // applies to every task
}

// NewFakeService creates an empty FakeService.
func NewFakeService() *FakeService {
	return &FakeService{
		tasks:         make(map[string][]service.Task),
		ListTasksErr:  make(map[string]error),
		DeleteTaskErr: make(map[string]error),
	}
}

// AddList adds a list with a fixed id.
func (f *FakeService) AddList(id, title string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists = append(f.lists, service.List{ID: id, Title: title})
}

// AddTask adds a task to a list. ID and ListID default from the arguments.
func (f *FakeService) AddTask(listID string, task service.Task) service.Task {
	f.mu.Lock()
	defer f.mu.Unlock()
	if task.ID == "" {
		task.ID = f.newID()
	}
	task.ListID = listID
	f.tasks[listID] = append(f.tasks[listID], task)
	return task
}

// Calls returns the recorded calls in order.
func (f *FakeService) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

// CallCount returns how many recorded calls equal call.
func (f *FakeService) CallCount(call string) int {
	n := 0
	for _, c := range f.Calls() {
		if c == call {
			n++
		}
	}
	return n
}

// Tasks returns the stored tasks of a list.
func (f *FakeService) Tasks(listID string) []service.Task {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]service.Task(nil), f.tasks[listID]...)
}

func (f *FakeService) record(format string, args ...any) {
	f.calls = append(f.calls, fmt.Sprintf(format, args...))
}

func (f *FakeService) newID() string {
	f.nextID++
	return "f" + strconv.Itoa(f.nextID)
}

func (f *FakeService) listIndex(id string) int {
	for i, l := range f.lists {
		if l.ID == id {
			return i
		}
	}
	return -1
}

func (f *FakeService) taskIndex(listID, taskID string) int {
	for i, t := range f.tasks[listID] {
		if t.ID == taskID {
			return i
		}
	}
	return -1
}

// ListLists implements service.Service.
func (f *FakeService) ListLists(ctx context.Context) ([]service.List, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("GET /list")
	if f.ListListsErr != nil {
		return nil, f.ListListsErr
	}
	return append([]service.List(nil), f.lists...), nil
}

// GetList implements service.Service.
func (f *FakeService) GetList(ctx context.Context, listID string) (service.List, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("GET /list/%s", listID)
	if f.GetListErr != nil {
		return service.List{}, f.GetListErr
	}
	i := f.listIndex(listID)
	if i < 0 {
		return service.List{}, service.ErrNotFound
	}
	return f.lists[i], nil
}

// CreateList implements service.Service.
func (f *FakeService) CreateList(ctx context.Context, title string) (service.List, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("POST /list")
	if f.CreateListErr != nil {
		return service.List{}, f.CreateListErr
	}
	l := service.List{ID: f.newID(), Title: title}
	f.lists = append(f.lists, l)
	return l, nil
}

// DeleteList implements service.Service. Tasks of the list are kept, as
// the remote API does.
func (f *FakeService) DeleteList(ctx context.Context, listID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("DELETE /list/%s", listID)
	if f.DeleteListErr != nil {
		return f.DeleteListErr
	}
	i := f.listIndex(listID)
	if i < 0 {
		return service.ErrNotFound
	}
	f.lists = append(f.lists[:i], f.lists[i+1:]...)
	return nil
}

// ListTasks implements service.Service.
func (f *FakeService) ListTasks(ctx context.Context, listID string) ([]service.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("GET /list/%s/tasks", listID)
	if err := f.ListTasksErr[listID]; err != nil {
		return nil, err
	}
	tasks := f.tasks[listID]
	if len(tasks) == 0 {
		return nil, service.ErrNotFound
	}
	return append([]service.Task(nil), tasks...), nil
}

// GetTask implements service.Service.
func (f *FakeService) GetTask(ctx context.Context, listID, taskID string) (service.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("GET /list/%s/tasks/%s", listID, taskID)
	if f.GetTaskErr != nil {
		return service.Task{}, f.GetTaskErr
	}
	i := f.taskIndex(listID, taskID)
	if i < 0 {
		return service.Task{}, service.ErrNotFound
	}
	return f.tasks[listID][i], nil
}

// CreateTask implements service.Service.
func (f *FakeService) CreateTask(ctx context.Context, listID string, in service.TaskInput) (service.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("POST /list/%s/tasks", listID)
	if f.CreateTaskErr != nil {
		return service.Task{}, f.CreateTaskErr
	}
	if f.listIndex(listID) < 0 {
		return service.Task{}, service.ErrNotFound
	}
	t := service.Task{
		ID:          f.newID(),
		ListID:      listID,
		Title:       in.Title,
		Description: in.Description,
		DueDate:     in.DueDate.UTC(),
		Priority:    in.Priority,
		Completed:   in.Completed,
	}
	f.tasks[listID] = append(f.tasks[listID], t)
	return t, nil
}

// UpdateTask implements service.Service.
func (f *FakeService) UpdateTask(ctx context.Context, listID, taskID string, task service.Task) (service.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("PUT /list/%s/tasks/%s", listID, taskID)
	if f.UpdateTaskErr != nil {
		return service.Task{}, f.UpdateTaskErr
	}
	i := f.taskIndex(listID, taskID)
	if i < 0 {
		return service.Task{}, service.ErrNotFound
	}
	task.ID = taskID
	task.ListID = listID
	task.DueDate = task.DueDate.UTC()
	f.tasks[listID][i] = task
	return task, nil
}

// DeleteTask implements service.Service.
func (f *FakeService) DeleteTask(ctx context.Context, listID, taskID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("DELETE /list/%s/tasks/%s", listID, taskID)
	if f.DeleteTasksErr != nil {
		return f.DeleteTasksErr
	}
	if err := f.DeleteTaskErr[taskID]; err != nil {
		return err
	}
	i := f.taskIndex(listID, taskID)
	if i < 0 {
		return service.ErrNotFound
	}
	f.tasks[listID] = append(f.tasks[listID][:i], f.tasks[listID][i+1:]...)
	return nil
}
