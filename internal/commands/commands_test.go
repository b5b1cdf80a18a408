package commands_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"todolist/internal/commands"
	"todolist/internal/config"
	"todolist/internal/exitcode"
	"todolist/internal/service"
	"todolist/internal/testutil"
)

// runCommand is a helper to run a command with FakeService.
func runCommand(t *testing.T, cmd commands.Command, svc *testutil.FakeService, args []string, quiet bool) (stdout, stderr string, code int) {
	t.Helper()

	var outBuf, errBuf bytes.Buffer

	cfg := &config.Config{
		Dir:   t.TempDir(),
		Quiet: quiet,
	}

	ctx := context.Background()
	code = cmd.Run(ctx, cfg, svc, args, &outBuf, &errBuf)
	return outBuf.String(), errBuf.String(), code
}

// seeded returns a service with two lists; Work holds two tasks.
func seeded() *testutil.FakeService {
	svc := testutil.NewFakeService()
	svc.AddList("g", "Groceries")
	svc.AddList("w", "Work")
	svc.AddTask("w", service.Task{ID: "t1", Title: "Report", Priority: service.PriorityLow})
	svc.AddTask("w", service.Task{ID: "t2", Title: "Email", Completed: true})
	return svc
}

func TestVersionCommand(t *testing.T) {
	stdout, stderr, code := runCommand(t, &commands.VersionCmd{}, nil, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "todolist 0.1.0\n" {
		t.Errorf("expected version output, got %q", stdout)
	}
}

func TestHelpCommand(t *testing.T) {
	stdout, _, code := runCommand(t, &commands.HelpCmd{}, nil, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if !strings.Contains(stdout, "Usage:") {
		t.Error("help output should contain 'Usage:'")
	}
}

func TestHelpCommand_ForCommand(t *testing.T) {
	stdout, _, code := runCommand(t, &commands.HelpCmd{}, nil, []string{"addlist"}, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if !strings.Contains(stdout, "todolist createlist") {
		t.Errorf("expected createlist usage, got %q", stdout)
	}
}

func TestListsCommand(t *testing.T) {
	stdout, stderr, code := runCommand(t, &commands.ListsCmd{}, seeded(), nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	expected := "a  Groceries\nb  Work\n"
	if stdout != expected {
		t.Errorf("expected %q, got %q", expected, stdout)
	}
}

func TestListsCommand_Empty(t *testing.T) {
	stdout, _, code := runCommand(t, &commands.ListsCmd{}, testutil.NewFakeService(), nil, false)
	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "no lists found\n" {
		t.Errorf("expected %q, got %q", "no lists found\n", stdout)
	}

	stdout, _, _ = runCommand(t, &commands.ListsCmd{}, testutil.NewFakeService(), nil, true)
	if stdout != "" {
		t.Errorf("expected no output in quiet mode, got %q", stdout)
	}
}

func TestListsCommand_BackendError(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.ListListsErr = errors.New("connection refused")

	_, stderr, code := runCommand(t, &commands.ListsCmd{}, svc, nil, false)

	if code != exitcode.BackendError {
		t.Errorf("expected exit code %d, got %d", exitcode.BackendError, code)
	}
	expected := "error: backend error: connection refused\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestListCommand(t *testing.T) {
	stdout, stderr, code := runCommand(t, &commands.ListCmd{}, seeded(), []string{"work"}, false)

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (%q)", exitcode.Success, code, stderr)
	}
	expected := "------------\nb  Work\n------------\n" +
		"   1  [ ] Report  !low\n" +
		"   2  [x] Email\n"
	if stdout != expected {
		t.Errorf("expected %q, got %q", expected, stdout)
	}
}

func TestListCommand_ByLetterWithoutTasks(t *testing.T) {
	svc := seeded()
	stdout, _, code := runCommand(t, &commands.ListCmd{}, svc, []string{"a"}, false)

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d", exitcode.Success, code)
	}
	expected := "------------\na  Groceries\n------------\nno tasks\n"
	if stdout != expected {
		t.Errorf("expected %q, got %q", expected, stdout)
	}
	if n := svc.CallCount("GET /list/g/tasks"); n != 1 {
		t.Errorf("expected one task fetch, got %d", n)
	}
}

func TestListCommand_NotFound(t *testing.T) {
	_, stderr, code := runCommand(t, &commands.ListCmd{}, seeded(), []string{"Chores"}, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: list not found: Chores\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestListCommand_Ambiguous(t *testing.T) {
	svc := seeded()
	svc.AddList("w2", "work")

	_, stderr, code := runCommand(t, &commands.ListCmd{}, svc, []string{"Work"}, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: ambiguous list name: Work\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestCreateListCommand(t *testing.T) {
	svc := seeded()
	stdout, stderr, code := runCommand(t, &commands.CreateListCmd{}, svc, []string{"Home", "Chores"}, false)

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (%q)", exitcode.Success, code, stderr)
	}
	if stdout != "ok (id f1)\n" {
		t.Errorf("expected %q, got %q", "ok (id f1)\n", stdout)
	}
	if n := svc.CallCount("POST /list"); n != 1 {
		t.Errorf("expected one create request, got %d", n)
	}
}

func TestCreateListCommand_Duplicate(t *testing.T) {
	svc := seeded()
	_, stderr, code := runCommand(t, &commands.CreateListCmd{}, svc, []string{"work"}, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: list already exists: work\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
	if n := svc.CallCount("POST /list"); n != 0 {
		t.Errorf("expected no create request, got %d", n)
	}
}

func TestCreateListCommand_MissingTitle(t *testing.T) {
	_, stderr, code := runCommand(t, &commands.CreateListCmd{}, seeded(), []string{"  "}, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: list name required\n" {
		t.Errorf("expected %q, got %q", "error: list name required\n", stderr)
	}
}

func TestRmListCommand_Empty(t *testing.T) {
	svc := seeded()
	stdout, stderr, code := runCommand(t, &commands.RmListCmd{}, svc, []string{"Groceries"}, false)

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (%q)", exitcode.Success, code, stderr)
	}
	if stdout != "ok (0 tasks deleted)\n" {
		t.Errorf("expected %q, got %q", "ok (0 tasks deleted)\n", stdout)
	}
	if n := svc.CallCount("DELETE /list/g"); n != 1 {
		t.Errorf("expected list delete, got %d", n)
	}
}

func TestRmListCommand_NotEmptyNeedsForce(t *testing.T) {
	svc := seeded()
	_, stderr, code := runCommand(t, &commands.RmListCmd{}, svc, []string{"b"}, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: list not empty: 2 tasks (use --force)\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
	if len(svc.Tasks("w")) != 2 {
		t.Error("no task should be deleted without --force")
	}
}

func TestRmListCommand_Force(t *testing.T) {
	svc := seeded()
	cmd := &commands.RmListCmd{}
	cmd.SetForce(true)

	stdout, stderr, code := runCommand(t, cmd, svc, []string{"Work"}, false)

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (%q)", exitcode.Success, code, stderr)
	}
	if stdout != "ok (2 tasks deleted)\n" {
		t.Errorf("expected %q, got %q", "ok (2 tasks deleted)\n", stdout)
	}

	calls := svc.Calls()
	if last := calls[len(calls)-1]; last != "DELETE /list/w" {
		t.Errorf("expected list delete last, got %q", last)
	}
}

func TestRmListCommand_PartialFailure(t *testing.T) {
	svc := seeded()
	svc.DeleteTaskErr["t2"] = errors.New("boom")
	cmd := &commands.RmListCmd{}
	cmd.SetForce(true)

	_, stderr, code := runCommand(t, cmd, svc, []string{"Work"}, false)

	if code != exitcode.BackendError {
		t.Errorf("expected exit code %d, got %d", exitcode.BackendError, code)
	}
	expected := "error: deleting list w: 1 of 2 tasks deleted: task t2: boom\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
	if n := svc.CallCount("DELETE /list/w"); n != 0 {
		t.Errorf("list must survive a partial failure, got %d deletes", n)
	}
}

func TestAddCommand(t *testing.T) {
	svc := seeded()
	cmd := &commands.AddCmd{}
	cmd.SetListName("Groceries")
	cmd.SetField("desc", "two litres")
	cmd.SetField("due", "15-07-2024")
	cmd.SetField("priority", "high")

	stdout, stderr, code := runCommand(t, cmd, svc, []string{"Buy", "milk"}, false)

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (%q)", exitcode.Success, code, stderr)
	}
	if stdout != "ok (id f1)\n" {
		t.Errorf("expected %q, got %q", "ok (id f1)\n", stdout)
	}

	tasks := svc.Tasks("g")
	if len(tasks) != 1 {
		t.Fatalf("expected 1 task, got %d", len(tasks))
	}
	task := tasks[0]
	if task.Title != "Buy milk" {
		t.Errorf("expected %q, got %q", "Buy milk", task.Title)
	}
	if task.Description != "two litres" {
		t.Errorf("expected %q, got %q", "two litres", task.Description)
	}
	if task.Priority != service.PriorityHigh {
		t.Errorf("expected %q, got %q", service.PriorityHigh, task.Priority)
	}
	if got := task.DueDate.Local().Format("02/01/2006"); got != "15/07/2024" {
		t.Errorf("expected %q, got %q", "15/07/2024", got)
	}
	if task.Completed {
		t.Error("new task should be open")
	}
}

func TestAddCommand_DefaultsDueToday(t *testing.T) {
	svc := seeded()
	cmd := &commands.AddCmd{}
	cmd.SetListName("g")

	_, stderr, code := runCommand(t, cmd, svc, []string{"Bread"}, false)

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (%q)", exitcode.Success, code, stderr)
	}
	task := svc.Tasks("g")[0]
	if task.Priority != service.PriorityNone {
		t.Errorf("expected no priority, got %q", task.Priority)
	}
	if d := time.Since(task.DueDate); d < 0 || d > time.Minute {
		t.Errorf("expected due date near now, got %v", task.DueDate)
	}
}

func TestAddCommand_Errors(t *testing.T) {
	tests := []struct {
		name     string
		list     string
		field    string
		value    string
		args     []string
		expected string
	}{
		{"no title", "g", "", "", nil, "error: title required\n"},
		{"no list", "", "", "", []string{"Bread"}, "error: list required (use --list)\n"},
		{"unknown list", "Chores", "", "", []string{"Bread"}, "error: list not found: Chores\n"},
		{"bad date", "g", "due", "31-31-2024", []string{"Bread"}, "error: invalid due date: \"31-31-2024\" (use dd-mm-yyyy)\n"},
		{"bad priority", "g", "priority", "urgent", []string{"Bread"}, "error: invalid priority: urgent (use high, medium, low or none)\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := seeded()
			cmd := &commands.AddCmd{}
			cmd.SetListName(tt.list)
			if tt.field != "" {
				cmd.SetField(tt.field, tt.value)
			}

			_, stderr, code := runCommand(t, cmd, svc, tt.args, false)

			if code != exitcode.UserError {
				t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
			}
			if stderr != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, stderr)
			}
			if n := svc.CallCount("POST /list/g/tasks"); n != 0 {
				t.Errorf("expected no create request, got %d", n)
			}
		})
	}
}

func TestEditCommand(t *testing.T) {
	svc := seeded()
	cmd := &commands.EditCmd{}
	cmd.SetField("title", "Quarterly report")

	stdout, stderr, code := runCommand(t, cmd, svc, []string{"b1"}, false)

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (%q)", exitcode.Success, code, stderr)
	}
	if stdout != "ok\n" {
		t.Errorf("expected %q, got %q", "ok\n", stdout)
	}

	task := svc.Tasks("w")[0]
	if task.Title != "Quarterly report" {
		t.Errorf("expected %q, got %q", "Quarterly report", task.Title)
	}
	if task.Priority != service.PriorityLow {
		t.Errorf("untouched priority changed to %q", task.Priority)
	}
	if n := svc.CallCount("PUT /list/w/tasks/t1"); n != 1 {
		t.Errorf("expected one update request, got %d", n)
	}
}

func TestEditCommand_NothingToEdit(t *testing.T) {
	_, stderr, code := runCommand(t, &commands.EditCmd{}, seeded(), []string{"b1"}, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: nothing to edit (use --title, --desc, --due or --priority)\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestEditCommand_EmptyTitleIsSent(t *testing.T) {
	svc := seeded()
	cmd := &commands.EditCmd{}
	cmd.SetField("title", "")
	cmd.SetField("desc", "  padded  ")

	_, stderr, code := runCommand(t, cmd, svc, []string{"b1"}, false)

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (%q)", exitcode.Success, code, stderr)
	}
	task := svc.Tasks("w")[0]
	if task.Title != "" {
		t.Errorf("expected empty title, got %q", task.Title)
	}
	if task.Description != "  padded  " {
		t.Errorf("expected %q, got %q", "  padded  ", task.Description)
	}
}

func TestDoneCommand_Toggles(t *testing.T) {
	svc := seeded()

	stdout, stderr, code := runCommand(t, &commands.DoneCmd{}, svc, []string{"b", "1"}, false)
	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (%q)", exitcode.Success, code, stderr)
	}
	if stdout != "ok (done)\n" {
		t.Errorf("expected %q, got %q", "ok (done)\n", stdout)
	}

	stdout, _, _ = runCommand(t, &commands.DoneCmd{}, svc, []string{"b1"}, false)
	if stdout != "ok (reopened)\n" {
		t.Errorf("expected %q, got %q", "ok (reopened)\n", stdout)
	}
	if svc.Tasks("w")[0].Completed {
		t.Error("expected task reopened")
	}
}

func TestDoneCommand_WithListFlag(t *testing.T) {
	svc := seeded()
	cmd := &commands.DoneCmd{}
	cmd.SetListName("Work")

	stdout, _, code := runCommand(t, cmd, svc, []string{"2"}, false)

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "ok (reopened)\n" {
		t.Errorf("expected %q, got %q", "ok (reopened)\n", stdout)
	}
}

func TestRmCommand(t *testing.T) {
	svc := seeded()
	stdout, stderr, code := runCommand(t, &commands.RmCmd{}, svc, []string{"b2"}, false)

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (%q)", exitcode.Success, code, stderr)
	}
	if stdout != "ok\n" {
		t.Errorf("expected %q, got %q", "ok\n", stdout)
	}
	tasks := svc.Tasks("w")
	if len(tasks) != 1 || tasks[0].ID != "t1" {
		t.Errorf("expected only t1 left, got %+v", tasks)
	}
}

func TestRmCommand_Quiet(t *testing.T) {
	stdout, _, code := runCommand(t, &commands.RmCmd{}, seeded(), []string{"b1"}, true)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "" {
		t.Errorf("expected no output, got %q", stdout)
	}
}

func TestShowCommand_Raw(t *testing.T) {
	cmd := &commands.ShowCmd{}
	cmd.SetRaw(true)

	stdout, stderr, code := runCommand(t, cmd, seeded(), []string{"b1"}, false)

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (%q)", exitcode.Success, code, stderr)
	}
	for _, want := range []string{"# Report", "- **List:** Work", "- **Priority:** Low"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("expected %q in %q", want, stdout)
		}
	}
}

func TestTaskRefErrors(t *testing.T) {
	tests := []struct {
		name     string
		list     string
		args     []string
		expected string
	}{
		{"missing ref", "", nil, "error: task reference required\n"},
		{"letter without number", "", []string{"b"}, "error: task reference required\n"},
		{"invalid ref", "", []string{"1b"}, "error: invalid task reference: 1b\n"},
		{"number without list", "", []string{"1"}, "error: list required (use a list letter or --list)\n"},
		{"letter and list", "Work", []string{"b1"}, "error: cannot use both --list and list letter\n"},
		{"unknown letter", "", []string{"z1"}, "error: list letter not found: z\n"},
		{"out of range", "", []string{"b9"}, "error: task number out of range: 9\n"},
		{"zero", "", []string{"b0"}, "error: task number out of range: 0\n"},
		{"empty list", "", []string{"a1"}, "error: task number out of range: 1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := &commands.RmCmd{}
			cmd.SetListName(tt.list)

			_, stderr, code := runCommand(t, cmd, seeded(), tt.args, false)

			if code != exitcode.UserError {
				t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
			}
			if stderr != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, stderr)
			}
		})
	}
}

func TestRegistry_Aliases(t *testing.T) {
	for alias, name := range map[string]string{"ls": "list", "addlist": "createlist", "create": "add", "toggle": "done", "tui": "ui"} {
		cmd, ok := commands.DefaultRegistry.Find(alias)
		if !ok {
			t.Errorf("alias %q not registered", alias)
			continue
		}
		if cmd.Name() != name {
			t.Errorf("expected %q for alias %q, got %q", name, alias, cmd.Name())
		}
	}
}

func TestRegistry_RejectsTakenName(t *testing.T) {
	r := commands.NewRegistry()
	if err := r.Register(&commands.ListCmd{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := r.Register(&commands.VersionCmd{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err := r.Register(&commands.ListCmd{})
	if err == nil || err.Error() != "list: name taken by list" {
		t.Errorf("expected name clash, got %v", err)
	}

	var names []string
	for _, cmd := range r.All() {
		names = append(names, cmd.Name())
	}
	if strings.Join(names, ",") != "list,version" {
		t.Errorf("expected each command once, got %v", names)
	}
}

func TestHelpCommand_ListsCommandsAndNotes(t *testing.T) {
	stdout, _, _ := runCommand(t, &commands.HelpCmd{}, nil, nil, false)

	for _, want := range []string{
		"Commands:\n",
		"  createlist  Create a new list (alias: addlist)\n",
		"createlist refuses a title already in use",
		"needs --force",
	} {
		if !strings.Contains(stdout, want) {
			t.Errorf("expected %q in help output", want)
		}
	}
}
