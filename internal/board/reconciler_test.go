package board

import (
	"errors"
	"testing"

	"github.com/tasksheet/tasksheet-cli/internal/model"
)

// assertSingleLocation checks the collection-wide invariant: each task id
// lives in at most one column.
func assertSingleLocation(t *testing.T, collection model.TaskCollection) {
	t.Helper()
	seen := make(map[string]string)
	for columnID, tasks := range collection {
		for _, task := range tasks {
			if prev, ok := seen[task.ID]; ok {
				t.Fatalf("task %s appears in both %s and %s", task.ID, prev, columnID)
			}
			seen[task.ID] = columnID
		}
	}
}

func TestAddTaskDefaults(t *testing.T) {
	collection := model.NewTaskCollection()

	updated, task, ok := AddTask(collection, "", "  Write report  ", "")
	if !ok {
		t.Fatalf("expected add to succeed")
	}
	if task.ID == "" {
		t.Fatalf("expected a generated id")
	}
	if task.Title != "Write report" {
		t.Fatalf("expected trimmed title, got %q", task.Title)
	}
	if task.Tag != model.DefaultTag {
		t.Fatalf("expected fallback tag, got %q", task.Tag)
	}
	if len(updated[model.ColumnToday]) != 1 {
		t.Fatalf("expected task in default column")
	}
	if len(collection[model.ColumnToday]) != 0 {
		t.Fatalf("input collection must not be mutated")
	}
}

func TestAddTaskRejectsBlankTitle(t *testing.T) {
	collection := model.NewTaskCollection()
	for _, title := range []string{"", "   ", "\t\n"} {
		updated, _, ok := AddTask(collection, model.ColumnToday, title, "")
		if ok {
			t.Fatalf("expected blank title %q rejected", title)
		}
		if updated.TotalTasks() != 0 {
			t.Fatalf("expected no task added for blank title")
		}
	}
}

func TestUpdateTaskReplacesInPlace(t *testing.T) {
	collection, task, _ := AddTask(model.NewTaskCollection(), model.ColumnPriority, "Ship release", "work")

	task.Title = "Ship v2"
	updated, err := UpdateTask(collection, task, "")
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated[model.ColumnPriority][0].Title != "Ship v2" {
		t.Fatalf("expected title replaced in place")
	}
	assertSingleLocation(t, updated)
}

func TestUpdateTaskInsertsUnknownIntoTarget(t *testing.T) {
	collection := model.NewTaskCollection()
	stray := model.Task{ID: "stray", Title: "Imported", Tag: "work"}

	updated, err := UpdateTask(collection, stray, model.ColumnNonNegotiables)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if len(updated[model.ColumnNonNegotiables]) != 1 {
		t.Fatalf("expected stray task inserted into declared column")
	}

	updated, err = UpdateTask(collection, stray, "")
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if len(updated[model.ColumnToday]) != 1 {
		t.Fatalf("expected stray task inserted into default column")
	}
}

func TestUpdateTaskInvalidColumnIsError(t *testing.T) {
	collection := model.NewTaskCollection()
	stray := model.Task{ID: "stray", Title: "Imported"}

	updated, err := UpdateTask(collection, stray, "someday")
	if err == nil {
		t.Fatalf("expected error for invalid column")
	}
	if updated.TotalTasks() != 0 {
		t.Fatalf("task must be dropped, not misplaced")
	}
}

func TestDeleteTask(t *testing.T) {
	collection, task, _ := AddTask(model.NewTaskCollection(), model.ColumnToday, "Tidy desk", "")

	updated := DeleteTask(collection, task.ID)
	if updated.TotalTasks() != 0 {
		t.Fatalf("expected task removed")
	}

	unchanged := DeleteTask(updated, "missing")
	if unchanged.TotalTasks() != 0 {
		t.Fatalf("delete of a missing task must be a no-op")
	}
}

func TestMoveTask(t *testing.T) {
	collection, task, _ := AddTask(model.NewTaskCollection(), model.ColumnToday, "Review PR", "")
	before := collection.TotalTasks()

	moved, err := MoveTask(collection, task.ID, model.ColumnToday, model.ColumnPriority)
	if err != nil {
		t.Fatalf("move failed: %v", err)
	}
	if moved.TotalTasks() != before {
		t.Fatalf("move must preserve total task count")
	}
	if len(moved[model.ColumnToday]) != 0 {
		t.Fatalf("expected task removed from source")
	}
	if len(moved[model.ColumnPriority]) != 1 || moved[model.ColumnPriority][0].ID != task.ID {
		t.Fatalf("expected task appended to target")
	}
	assertSingleLocation(t, moved)
}

func TestMoveTaskSameColumnIsNoOp(t *testing.T) {
	collection, task, _ := AddTask(model.NewTaskCollection(), model.ColumnToday, "Review PR", "")

	unchanged, err := MoveTask(collection, task.ID, model.ColumnToday, model.ColumnToday)
	if err != nil {
		t.Fatalf("same-column move must not error: %v", err)
	}
	if len(unchanged[model.ColumnToday]) != 1 {
		t.Fatalf("same-column move must leave the collection unchanged")
	}
}

func TestMoveTaskMissingFromSource(t *testing.T) {
	collection, task, _ := AddTask(model.NewTaskCollection(), model.ColumnToday, "Review PR", "")

	_, err := MoveTask(collection, task.ID, model.ColumnPriority, model.ColumnNonNegotiables)
	if !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
}

func TestMoveAppendsToTargetEnd(t *testing.T) {
	collection, first, _ := AddTask(model.NewTaskCollection(), model.ColumnPriority, "First", "")
	collection, _, _ = AddTask(collection, model.ColumnPriority, "Second", "")
	collection, moved, _ := AddTask(collection, model.ColumnToday, "Moved", "")

	updated, err := MoveTask(collection, moved.ID, model.ColumnToday, model.ColumnPriority)
	if err != nil {
		t.Fatalf("move failed: %v", err)
	}
	priority := updated[model.ColumnPriority]
	if len(priority) != 3 || priority[2].ID != moved.ID || priority[0].ID != first.ID {
		t.Fatalf("expected moved task appended at the end, got %+v", priority)
	}
}

func TestUpdateTagAndColor(t *testing.T) {
	collection, task, _ := AddTask(model.NewTaskCollection(), model.ColumnToday, "Stretch", "health")

	updated, err := UpdateTag(collection, task.ID, "fitness")
	if err != nil {
		t.Fatalf("update tag failed: %v", err)
	}
	if updated[model.ColumnToday][0].Tag != "fitness" {
		t.Fatalf("expected tag updated")
	}

	updated, err = UpdateTagColor(updated, task.ID, "#ff8800")
	if err != nil {
		t.Fatalf("update tag color failed: %v", err)
	}
	if updated[model.ColumnToday][0].TagColor != "#ff8800" {
		t.Fatalf("expected tag color updated")
	}

	if _, err := UpdateTag(collection, "missing", "x"); !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound for unknown task, got %v", err)
	}
}

func TestDeleteTagReassignsToFallback(t *testing.T) {
	collection, _, _ := AddTask(model.NewTaskCollection(), model.ColumnToday, "Run", "health")
	collection, _, _ = AddTask(collection, model.ColumnPriority, "Lift", "health")
	collection, kept, _ := AddTask(collection, model.ColumnToday, "Plan", "work")

	updated := DeleteTag(collection, "health")
	for _, tasks := range updated {
		for _, task := range tasks {
			if task.Tag == "health" {
				t.Fatalf("expected no task left with deleted tag")
			}
		}
	}
	if updated[model.ColumnToday][0].Tag != model.DefaultTag {
		t.Fatalf("expected reassignment to fallback tag")
	}
	_, found, _ := updated.Find(kept.ID)
	if found.Tag != "work" {
		t.Fatalf("unrelated tags must be untouched")
	}
	if updated.TotalTasks() != 3 {
		t.Fatalf("tag deletion must never remove tasks")
	}
}

func TestOpSequencePreservesSingleLocation(t *testing.T) {
	collection := model.NewTaskCollection()

	collection, a, _ := AddTask(collection, model.ColumnToday, "a", "")
	collection, b, _ := AddTask(collection, model.ColumnToday, "b", "work")
	collection, c, _ := AddTask(collection, model.ColumnPriority, "c", "")

	ops := []Op{
		{Kind: OpMove, TaskID: a.ID, Source: model.ColumnToday, Target: model.ColumnPriority},
		{Kind: OpUpdate, Task: model.Task{ID: b.ID, Title: "b2", Tag: "work"}},
		{Kind: OpMove, TaskID: a.ID, Source: model.ColumnPriority, Target: model.ColumnNonNegotiables},
		{Kind: OpDelete, TaskID: c.ID},
		{Kind: OpAdd, Task: model.Task{Title: "d"}, Column: model.ColumnPriority},
	}

	for _, op := range ops {
		var err error
		collection, err = Apply(collection, op)
		if err != nil {
			t.Fatalf("apply %s failed: %v", op.Kind, err)
		}
		assertSingleLocation(t, collection)
	}

	if collection.TotalTasks() != 3 {
		t.Fatalf("expected 3 tasks after sequence, got %d", collection.TotalTasks())
	}
	columnID, _, ok := collection.Find(a.ID)
	if !ok || columnID != model.ColumnNonNegotiables {
		t.Fatalf("expected task a in non-negotiables, got %q", columnID)
	}
}

func TestApplyRejectsUnknownKind(t *testing.T) {
	if _, err := Apply(model.NewTaskCollection(), Op{Kind: "promote"}); err == nil {
		t.Fatalf("expected error for unknown op kind")
	}
}
