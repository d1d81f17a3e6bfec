package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/tasksheet/tasksheet-cli/internal/model"
)

func TestJSONStoreTasksRoundTrip(t *testing.T) {
	ctx := context.Background()
	st := NewJSONStore(t.TempDir())

	loaded, err := st.LoadTasks(ctx, "local")
	if err != nil {
		t.Fatalf("load on empty dir failed: %v", err)
	}
	if loaded != nil {
		t.Fatalf("expected nil collection before first save, got %v", loaded)
	}

	collection := model.NewTaskCollection()
	collection[model.ColumnToday] = []model.Task{{ID: "t1", Title: "Write report", Tag: "work"}}
	if err := st.SaveTasks(ctx, "local", collection); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err = st.LoadTasks(ctx, "local")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(loaded[model.ColumnToday]) != 1 || loaded[model.ColumnToday][0].Title != "Write report" {
		t.Fatalf("unexpected round trip result: %v", loaded)
	}
	for _, columnID := range model.ColumnOrder {
		if _, ok := loaded[columnID]; !ok {
			t.Fatalf("expected column %q to be backfilled", columnID)
		}
	}
}

func TestJSONStoreMalformedFileFallsBack(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, tasksFile), []byte("{not json"), 0644); err != nil {
		t.Fatalf("failed to write corrupt file: %v", err)
	}

	st := NewJSONStore(dir)
	loaded, err := st.LoadTasks(ctx, "local")
	if err != nil {
		t.Fatalf("corrupt file must not be a hard error: %v", err)
	}
	if loaded != nil {
		t.Fatalf("expected absent collection for corrupt file, got %v", loaded)
	}
}

func TestJSONStoreHistoryUpsert(t *testing.T) {
	ctx := context.Background()
	st := NewJSONStore(t.TempDir())

	first := model.NewTaskCollection()
	first[model.ColumnToday] = []model.Task{{ID: "t1", Title: "One"}}
	if err := st.SaveHistorySnapshot(ctx, "local", "2026-03-01", first); err != nil {
		t.Fatalf("first snapshot failed: %v", err)
	}

	second := model.NewTaskCollection()
	second[model.ColumnToday] = []model.Task{{ID: "t1", Title: "One"}, {ID: "t2", Title: "Two"}}
	if err := st.SaveHistorySnapshot(ctx, "local", "2026-03-01", second); err != nil {
		t.Fatalf("second snapshot failed: %v", err)
	}

	snapshots, err := st.LoadHistory(ctx, "local")
	if err != nil {
		t.Fatalf("load history failed: %v", err)
	}
	if len(snapshots) != 1 {
		t.Fatalf("same-day snapshot must replace, got %d entries", len(snapshots))
	}
	if snapshots[0].Tasks.TotalTasks() != 2 {
		t.Fatalf("expected latest snapshot content, got %d tasks", snapshots[0].Tasks.TotalTasks())
	}
}

func TestAvailableTagsSeedAndDelete(t *testing.T) {
	dir := t.TempDir()

	tags, err := LoadAvailableTags(dir)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(tags) != len(DefaultTags) {
		t.Fatalf("expected seeded defaults, got %v", tags)
	}

	if err := AddAvailableTag(dir, "reading"); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := DeleteAvailableTag(dir, model.DefaultTag); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	tags, err = LoadAvailableTags(dir)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	found := map[string]bool{}
	for _, tag := range tags {
		found[tag] = true
	}
	if !found[model.DefaultTag] {
		t.Fatalf("fallback tag must never be removed, got %v", tags)
	}
	if !found["reading"] {
		t.Fatalf("added tag missing, got %v", tags)
	}
}

func TestTagColors(t *testing.T) {
	dir := t.TempDir()

	if err := SaveTagColor(dir, "work", "#ff8800"); err != nil {
		t.Fatalf("save color failed: %v", err)
	}
	colors, err := LoadTagColors(dir)
	if err != nil {
		t.Fatalf("load colors failed: %v", err)
	}
	if colors["work"] != "#ff8800" {
		t.Fatalf("unexpected colors %v", colors)
	}
}
