package todo

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"todolist/internal/service"
)

// DeletePlan is the resolved first phase of deleting a list: the list and
// the tasks that must be removed before it.
type DeletePlan struct {
	ListID string
	Tasks  []service.Task
}

// TaskFailure records one task that could not be deleted.
type TaskFailure struct {
	TaskID string
	Err    error
}

// DeleteResult is the outcome of executing a DeletePlan.
type DeleteResult struct {
	ListID string

	// Attempted is the number of task deletions issued.
	Attempted int

	// Succeeded is the number of task deletions that completed.
	Succeeded int

	// Failures lists failed task deletions in plan order.
	Failures []TaskFailure

	// ListDeleted is true once the list itself was deleted.
	ListDeleted bool
}

// Partial reports whether any task deletion failed.
func (r DeleteResult) Partial() bool {
	return len(r.Failures) > 0
}

// PartialDeleteError is returned when task cleanup did not fully succeed.
// Tasks already deleted are not restored and the list is left in place.
type PartialDeleteError struct {
	Result DeleteResult
}

func (e *PartialDeleteError) Error() string {
	r := e.Result
	msg := fmt.Sprintf("deleting list %s: %d of %d tasks deleted", r.ListID, r.Succeeded, r.Attempted)
	if len(r.Failures) > 0 {
		msg += fmt.Sprintf(": task %s: %v", r.Failures[0].TaskID, r.Failures[0].Err)
	}
	return msg
}

// Unwrap returns the first task failure.
func (e *PartialDeleteError) Unwrap() error {
	if len(e.Result.Failures) == 0 {
		return nil
	}
	return e.Result.Failures[0].Err
}

// PlanDeletion resolves the tasks of a list. A not-found answer means the
// list has no tasks; any other error aborts before anything is deleted.
func PlanDeletion(ctx context.Context, svc service.Service, listID string) (DeletePlan, error) {
	tasks, err := svc.ListTasks(ctx, listID)
	if err != nil && !service.IsNotFound(err) {
		return DeletePlan{}, fmt.Errorf("fetching tasks of list %s: %w", listID, err)
	}
	return DeletePlan{ListID: listID, Tasks: tasks}, nil
}

// ExecuteDeletion deletes every planned task concurrently (at most limit
// at a time; limit <= 0 means no bound), waits for all of them to settle,
// and deletes the list only when every task deletion succeeded.
func ExecuteDeletion(ctx context.Context, svc service.Service, plan DeletePlan, limit int) (DeleteResult, error) {
	result := DeleteResult{ListID: plan.ListID, Attempted: len(plan.Tasks)}

	if len(plan.Tasks) > 0 {
		errs := make([]error, len(plan.Tasks))
		var g errgroup.Group
		if limit > 0 {
			g.SetLimit(limit)
		}
		for i, task := range plan.Tasks {
			g.Go(func() error {
				errs[i] = svc.DeleteTask(ctx, plan.ListID, task.ID)
				// Never short-circuit: every deletion settles independently.
				return nil
			})
		}
		_ = g.Wait()

		for i, err := range errs {
			if err != nil {
				result.Failures = append(result.Failures, TaskFailure{TaskID: plan.Tasks[i].ID, Err: err})
				continue
			}
			result.Succeeded++
		}
		if result.Partial() {
			return result, &PartialDeleteError{Result: result}
		}
	}

	if err := svc.DeleteList(ctx, plan.ListID); err != nil {
		return result, fmt.Errorf("deleting list %s: %w", plan.ListID, err)
	}
	result.ListDeleted = true
	return result, nil
}

// DeleteList plans and executes the deletion of a list and its tasks.
func DeleteList(ctx context.Context, svc service.Service, listID string, limit int) (DeleteResult, error) {
	plan, err := PlanDeletion(ctx, svc, listID)
	if err != nil {
		return DeleteResult{ListID: listID}, err
	}
	return ExecuteDeletion(ctx, svc, plan, limit)
}
