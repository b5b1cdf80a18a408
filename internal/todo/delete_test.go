package todo_test

import (
	"context"
	"errors"
	"slices"
	"strings"
	"testing"

	"todolist/internal/service"
	"todolist/internal/testutil"
	"todolist/internal/todo"
)

func taskDeletes(calls []string) []string {
	var out []string
	for _, c := range calls {
		if strings.HasPrefix(c, "DELETE ") && strings.Contains(c, "/tasks/") {
			out = append(out, c)
		}
	}
	return out
}

func TestDeleteList_NoTasks(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddList("1", "Groceries")

	result, err := todo.DeleteList(context.Background(), svc, "1", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.ListDeleted || result.Attempted != 0 {
		t.Errorf("unexpected result: %+v", result)
	}

	calls := svc.Calls()
	if n := len(taskDeletes(calls)); n != 0 {
		t.Errorf("expected no task deletes, got %d", n)
	}
	if n := svc.CallCount("DELETE /list/1"); n != 1 {
		t.Errorf("expected exactly one DELETE /list/1, got %d (calls %v)", n, calls)
	}
}

func TestDeleteList_DeletesTasksBeforeList(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddList("1", "Work")
	for _, title := range []string{"a", "b", "c", "d"} {
		svc.AddTask("1", service.Task{Title: title})
	}

	result, err := todo.DeleteList(context.Background(), svc, "1", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Attempted != 4 || result.Succeeded != 4 || !result.ListDeleted {
		t.Errorf("unexpected result: %+v", result)
	}

	calls := svc.Calls()
	if n := len(taskDeletes(calls)); n != 4 {
		t.Errorf("expected 4 task deletes, got %d", n)
	}
	listDelete := slices.Index(calls, "DELETE /list/1")
	if listDelete < 0 {
		t.Fatalf("list was not deleted: %v", calls)
	}
	for i, c := range calls {
		if strings.Contains(c, "/tasks/") && strings.HasPrefix(c, "DELETE") && i > listDelete {
			t.Errorf("task delete %q issued after list delete", c)
		}
	}
}

func TestDeleteList_FetchErrorAborts(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddList("1", "Work")
	svc.ListTasksErr["1"] = errors.New("connection refused")

	_, err := todo.DeleteList(context.Background(), svc, "1", 0)
	if err == nil || !strings.Contains(err.Error(), "connection refused") {
		t.Fatalf("expected fetch error, got %v", err)
	}
	for _, c := range svc.Calls() {
		if strings.HasPrefix(c, "DELETE") {
			t.Errorf("no delete expected after fetch failure, got %q", c)
		}
	}
}

func TestDeleteList_PartialFailure(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddList("1", "Work")
	svc.AddTask("1", service.Task{ID: "t1"})
	svc.AddTask("1", service.Task{ID: "t2"})
	svc.AddTask("1", service.Task{ID: "t3"})
	svc.DeleteTaskErr["t2"] = errors.New("server returned 500: boom")

	result, err := todo.DeleteList(context.Background(), svc, "1", 0)

	var partial *todo.PartialDeleteError
	if !errors.As(err, &partial) {
		t.Fatalf("expected PartialDeleteError, got %v", err)
	}
	if result.Attempted != 3 || result.Succeeded != 2 {
		t.Errorf("expected 2 of 3, got %d of %d", result.Succeeded, result.Attempted)
	}
	if len(result.Failures) != 1 || result.Failures[0].TaskID != "t2" {
		t.Errorf("unexpected failures: %+v", result.Failures)
	}
	if result.ListDeleted {
		t.Error("list must not be deleted after partial failure")
	}
	if svc.CallCount("DELETE /list/1") != 0 {
		t.Error("expected no list delete call")
	}
	if !strings.Contains(err.Error(), "2 of 3 tasks deleted") {
		t.Errorf("expected k of n in message, got %q", err.Error())
	}
	// No rollback: the deleted tasks stay deleted.
	if remaining := svc.Tasks("1"); len(remaining) != 1 || remaining[0].ID != "t2" {
		t.Errorf("expected only t2 to remain, got %+v", remaining)
	}
}

func TestExecuteDeletion_ListDeleteFails(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddList("1", "Work")
	svc.DeleteListErr = errors.New("server returned 500: boom")

	result, err := todo.ExecuteDeletion(context.Background(), svc, todo.DeletePlan{ListID: "1"}, 0)
	if err == nil {
		t.Fatal("expected error")
	}
	var partial *todo.PartialDeleteError
	if errors.As(err, &partial) {
		t.Error("list delete failure is not a partial task cleanup")
	}
	if result.ListDeleted {
		t.Error("expected ListDeleted false")
	}
}

func TestPlanDeletion_NotFoundMeansNoTasks(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddList("1", "Empty")

	plan, err := todo.PlanDeletion(context.Background(), svc, "1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(plan.Tasks) != 0 {
		t.Errorf("expected empty plan, got %+v", plan.Tasks)
	}
}
