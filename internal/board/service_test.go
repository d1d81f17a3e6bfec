package board

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/tasksheet/tasksheet-cli/internal/model"
	"github.com/tasksheet/tasksheet-cli/internal/store"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	svc, err := NewService(context.Background(), store.NewJSONStore(t.TempDir()), "local")
	if err != nil {
		t.Fatalf("failed to build service: %v", err)
	}
	return svc
}

func TestServiceAddPersistsTasksAndSnapshot(t *testing.T) {
	svc := newTestService(t)
	now := time.Date(2026, 3, 20, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }
	ctx := context.Background()

	task, ok := svc.AddTask(ctx, "", "Walk the dog", "")
	if !ok {
		t.Fatalf("expected add to succeed")
	}

	reloaded, err := NewService(ctx, svc.store, "local")
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if _, _, found := reloaded.Find(task.ID); !found {
		t.Fatalf("expected task persisted across service instances")
	}

	snapshots := reloaded.History()
	if len(snapshots) != 1 || snapshots[0].Date != "2026-03-20" {
		t.Fatalf("expected a snapshot for today, got %+v", snapshots)
	}
	if snapshots[0].Tasks.TotalTasks() != 1 {
		t.Fatalf("expected snapshot to capture the collection")
	}
}

func TestServiceMutationUpsertsSameDaySnapshot(t *testing.T) {
	svc := newTestService(t)
	now := time.Date(2026, 3, 20, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }
	ctx := context.Background()

	taskA, _ := svc.AddTask(ctx, "", "a", "")
	svc.AddTask(ctx, model.ColumnPriority, "b", "")
	if err := svc.DeleteTask(ctx, taskA.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	snapshots := svc.History()
	if len(snapshots) != 1 {
		t.Fatalf("expected one snapshot per day, got %d", len(snapshots))
	}
	if snapshots[0].Tasks.TotalTasks() != 1 {
		t.Fatalf("expected snapshot upserted to latest state, got %d tasks", snapshots[0].Tasks.TotalTasks())
	}
}

func TestServiceCompleteStampsEndTimeAndStopsTimer(t *testing.T) {
	svc := newTestService(t)
	t0 := time.Date(2026, 3, 20, 9, 0, 0, 0, time.UTC)
	current := t0
	svc.now = func() time.Time { return current }
	ctx := context.Background()

	task, _ := svc.AddTask(ctx, "", "Focus block", "")
	if _, err := svc.StartTimer(ctx, task.ID); err != nil {
		t.Fatalf("start timer failed: %v", err)
	}

	current = t0.Add(25 * time.Minute)
	if err := svc.CompleteTask(ctx, task.ID); err != nil {
		t.Fatalf("complete failed: %v", err)
	}

	_, got, _ := svc.Find(task.ID)
	if !got.Completed || got.EndTime == nil {
		t.Fatalf("expected completion to set flag and endTime, got %+v", got)
	}
	if got.TimerRunning {
		t.Fatalf("expected running timer folded on completion")
	}
	if got.TimerElapsed != 25*60*1000 {
		t.Fatalf("expected 25m elapsed folded, got %d", got.TimerElapsed)
	}
}

func TestServicePauseWinsOverTick(t *testing.T) {
	svc := newTestService(t)
	t0 := time.Date(2026, 3, 20, 9, 0, 0, 0, time.UTC)
	current := t0
	svc.now = func() time.Time { return current }
	ctx := context.Background()

	task, _ := svc.AddTask(ctx, "", "Focus block", "")
	svc.StartTimer(ctx, task.ID)

	current = t0.Add(10 * time.Second)
	if _, err := svc.RefreshTimer(ctx, task.ID); err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	_, mid, _ := svc.Find(task.ID)
	if mid.TimerElapsed != 0 {
		t.Fatalf("refresh must never advance timerElapsed, got %d", mid.TimerElapsed)
	}

	current = t0.Add(12 * time.Second)
	paused, err := svc.PauseTimer(ctx, task.ID)
	if err != nil {
		t.Fatalf("pause failed: %v", err)
	}
	if paused.TimerElapsed != 12_000 {
		t.Fatalf("pause owns the authoritative elapsed, got %d", paused.TimerElapsed)
	}
}

func TestServiceReplaceAllValidatesColumns(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	bad := model.TaskCollection{"someday": []model.Task{{ID: "x", Title: "x"}}}
	if err := svc.ReplaceAll(ctx, bad); err == nil {
		t.Fatalf("expected invalid column rejected")
	}

	good := model.NewTaskCollection()
	good[model.ColumnToday] = []model.Task{{ID: "x", Title: "x", Tag: model.DefaultTag}}
	if err := svc.ReplaceAll(ctx, good); err != nil {
		t.Fatalf("replace failed: %v", err)
	}
	if svc.Tasks().TotalTasks() != 1 {
		t.Fatalf("expected replaced collection")
	}
}

func TestServiceReplaceAllRejectsDuplicateTaskIDs(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	before, _ := svc.AddTask(ctx, "", "keep me", "")

	dup := model.NewTaskCollection()
	dup[model.ColumnToday] = []model.Task{{ID: "x1", Title: "one", Tag: model.DefaultTag}}
	dup[model.ColumnPriority] = []model.Task{{ID: "x1", Title: "one again", Tag: model.DefaultTag}}
	if err := svc.ReplaceAll(ctx, dup); err == nil {
		t.Fatalf("expected duplicate task id rejected")
	}

	// the rejected save must leave the previous collection untouched
	collection := svc.Tasks()
	locations := 0
	for _, columnID := range model.ColumnOrder {
		for _, task := range collection[columnID] {
			if task.ID == "x1" {
				locations++
			}
		}
	}
	if locations != 0 {
		t.Fatalf("rejected collection leaked into state, x1 found %d times", locations)
	}
	if _, _, found := svc.Find(before.ID); !found {
		t.Fatalf("expected prior state preserved after rejected replace")
	}
}

func TestServiceTimerOnMissingTask(t *testing.T) {
	svc := newTestService(t)
	if _, err := svc.StartTimer(context.Background(), "missing"); !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
}
