package tracker

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestTodoUndoAcrossInvocations(t *testing.T) {
	db := testDB(t)
	mustRun(t, "--db", db, "todo", "add", "first")
	mustRun(t, "--db", db, "todo", "add", "second")
	mustRun(t, "--db", db, "todo", "add", "third")

	out := mustRun(t, "--db", db, "todo", "undo")
	if !strings.Contains(out, "Undone (1 todos)") {
		t.Fatalf("unexpected undo output %q", out)
	}
	out = mustRun(t, "--db", db, "todo", "redo")
	if !strings.Contains(out, "Redone (2 todos)") {
		t.Fatalf("unexpected redo output %q", out)
	}
	out = mustRun(t, "--db", db, "todo", "redo")
	if !strings.Contains(out, "Nothing to redo") {
		t.Fatalf("expected empty redo, got %q", out)
	}
}

func TestTodoListFiltersAndToggle(t *testing.T) {
	db := testDB(t)
	id := addedID(t, mustRun(t, "--db", db, "todo", "add", "pay", "rent", "--priority", "high", "--category", "home"))
	mustRun(t, "--db", db, "todo", "add", "stretch")

	out := mustRun(t, "--db", db, "todo", "list", "--priority", "high")
	if !strings.Contains(out, "pay rent") || strings.Contains(out, "stretch") {
		t.Fatalf("priority filter failed: %q", out)
	}

	out = mustRun(t, "--db", db, "todo", "toggle", id)
	if !strings.Contains(out, "is done") {
		t.Fatalf("unexpected toggle output %q", out)
	}
	out = mustRun(t, "--db", db, "todo", "list", "--status", "pending")
	if strings.Contains(out, "pay rent") || !strings.Contains(out, "stretch") {
		t.Fatalf("status filter failed: %q", out)
	}

	out = mustRun(t, "--db", db, "todo", "stats")
	for _, want := range []string{"Total: 2", "Completed: 1", "Completion: 50%", "high: 1"} {
		if !strings.Contains(out, want) {
			t.Fatalf("stats missing %q in %q", want, out)
		}
	}

	if _, err := run(t, "--db", db, "todo", "list", "--status", "someday"); err == nil {
		t.Fatalf("expected invalid status to fail")
	}
	if _, err := run(t, "--db", db, "todo", "add", "   "); err == nil {
		t.Fatalf("expected blank title to fail")
	}
}

func TestTodoBatchUpdateAndDelete(t *testing.T) {
	db := testDB(t)
	a := addedID(t, mustRun(t, "--db", db, "todo", "add", "a"))
	b := addedID(t, mustRun(t, "--db", db, "todo", "add", "b"))
	mustRun(t, "--db", db, "todo", "add", "c")

	out := mustRun(t, "--db", db, "todo", "update", a+","+b, "ghost", "--done")
	if !strings.Contains(out, "Updated 2 of 3 todos") {
		t.Fatalf("unexpected batch update output %q", out)
	}
	out = mustRun(t, "--db", db, "todo", "delete", a, b)
	if !strings.Contains(out, "Deleted 2 todos") {
		t.Fatalf("unexpected batch delete output %q", out)
	}
	out = mustRun(t, "--db", db, "todo", "list")
	if strings.Count(out, "\n") != 2 {
		t.Fatalf("expected header and one todo, got %q", out)
	}
}

func TestTodoExportImport(t *testing.T) {
	src := testDB(t)
	mustRun(t, "--db", src, "todo", "add", "carry", "--category", "travel")
	file := filepath.Join(t.TempDir(), "todos.json")
	mustRun(t, "--db", src, "todo", "export", "--out", file)
	if _, err := os.Stat(file); err != nil {
		t.Fatalf("export file missing: %v", err)
	}

	dst := filepath.Join(t.TempDir(), "dst.db")
	out := mustRun(t, "--db", dst, "todo", "import", "--in", file)
	if !strings.Contains(out, "Imported 1 todos") {
		t.Fatalf("unexpected import output %q", out)
	}
	out = mustRun(t, "--db", dst, "todo", "list", "--category", "travel")
	if !strings.Contains(out, "carry") {
		t.Fatalf("imported todo missing: %q", out)
	}

	mustRun(t, "--db", dst, "todo", "clear")
	out = mustRun(t, "--db", dst, "todo", "list")
	if strings.Contains(out, "carry") {
		t.Fatalf("clear left todos behind: %q", out)
	}
}
