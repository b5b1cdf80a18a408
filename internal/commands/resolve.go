package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"todolist/internal/exitcode"
	"todolist/internal/output"
	"todolist/internal/service"
	"todolist/internal/todo"
)

var (
	// ErrTaskRefRequired indicates no task reference was provided.
	ErrTaskRefRequired = errors.New("task reference required")

	// ErrListNotFound indicates a list argument matched nothing.
	ErrListNotFound = errors.New("list not found")

	// ErrAmbiguousList indicates a list title matched more than one list.
	ErrAmbiguousList = errors.New("ambiguous list name")

	// ErrListLetterNotFound indicates a list letter past the last list.
	ErrListLetterNotFound = errors.New("list letter not found")

	// ErrTaskOutOfRange indicates a task number past the end of its list.
	ErrTaskOutOfRange = errors.New("task number out of range")
)

// usageError is a failure caused by the command line itself.
type usageError struct {
	msg string
}

func (e *usageError) Error() string { return e.msg }

func usageErrorf(format string, args ...any) error {
	return &usageError{msg: fmt.Sprintf(format, args...)}
}

// isUserError reports whether err should exit with exitcode.UserError.
func isUserError(err error) bool {
	var ue *usageError
	if errors.As(err, &ue) {
		return true
	}
	for _, target := range []error{ErrTaskRefRequired, ErrListNotFound, ErrAmbiguousList, ErrListLetterNotFound, ErrTaskOutOfRange} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// report prints err and returns the matching exit code.
func report(errOut io.Writer, err error) int {
	if isUserError(err) {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	fmt.Fprintf(errOut, "error: backend error: %v\n", err)
	return exitcode.BackendError
}

// resolveList finds a list by id, then by case-insensitive title, then by
// reference letter.
func resolveList(ctx context.Context, svc service.Service, name string) (service.List, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return service.List{}, usageErrorf("list name required")
	}
	lists, err := svc.ListLists(ctx)
	if err != nil {
		return service.List{}, err
	}
	return matchList(lists, name)
}

func matchList(lists []service.List, name string) (service.List, error) {
	for _, l := range lists {
		if l.ID == name {
			return l, nil
		}
	}

	var found []service.List
	for _, l := range lists {
		if strings.EqualFold(strings.TrimSpace(l.Title), name) {
			found = append(found, l)
		}
	}
	switch {
	case len(found) == 1:
		return found[0], nil
	case len(found) > 1:
		return service.List{}, fmt.Errorf("%w: %s", ErrAmbiguousList, name)
	}

	if len(name) == 1 && isLetter(rune(name[0])) {
		if l, ok := listByLetter(lists, rune(name[0])); ok {
			return l, nil
		}
	}
	return service.List{}, fmt.Errorf("%w: %s", ErrListNotFound, name)
}

// listByLetter returns the list a letter refers to. Letters follow API order.
func listByLetter(lists []service.List, letter rune) (service.List, bool) {
	for i, l := range lists {
		if output.Letter(i) == letter {
			return l, true
		}
	}
	return service.List{}, false
}

// ResolveListByLetter resolves a list letter to a List.
func ResolveListByLetter(ctx context.Context, svc service.Service, letter rune) (service.List, error) {
	lists, err := svc.ListLists(ctx)
	if err != nil {
		return service.List{}, err
	}
	l, ok := listByLetter(lists, letter)
	if !ok {
		return service.List{}, fmt.Errorf("%w: %c", ErrListLetterNotFound, letter)
	}
	return l, nil
}

// taskTarget is a resolved task reference with the loaded panel of its list.
type taskTarget struct {
	List  service.List
	Task  service.Task
	Panel *todo.TaskPanel
}

// resolveTask resolves a task reference. listName comes from --list and
// is mutually exclusive with a list letter.
func resolveTask(ctx context.Context, svc service.Service, listName string, args []string) (taskTarget, error) {
	ref, err := ParseTaskRef(args)
	if err != nil {
		return taskTarget{}, err
	}
	if listName != "" && ref.HasLetter {
		return taskTarget{}, usageErrorf("cannot use both --list and list letter")
	}
	if listName == "" && !ref.HasLetter {
		return taskTarget{}, usageErrorf("list required (use a list letter or --list)")
	}
	if ref.TaskNum < 1 {
		return taskTarget{}, fmt.Errorf("%w: %d", ErrTaskOutOfRange, ref.TaskNum)
	}

	var list service.List
	if ref.HasLetter {
		list, err = ResolveListByLetter(ctx, svc, ref.Letter)
	} else {
		list, err = resolveList(ctx, svc, listName)
	}
	if err != nil {
		return taskTarget{}, err
	}

	panel := todo.NewTaskPanel(svc, list.ID, todo.WithPanelLogger(log.FromContext(ctx)))
	if err := panel.Load(ctx); err != nil {
		return taskTarget{}, err
	}
	tasks := panel.State().Tasks
	if ref.TaskNum > len(tasks) {
		return taskTarget{}, fmt.Errorf("%w: %d", ErrTaskOutOfRange, ref.TaskNum)
	}
	return taskTarget{List: list, Task: tasks[ref.TaskNum-1], Panel: panel}, nil
}

// joinArgs joins positional arguments into one trimmed string.
func joinArgs(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}
