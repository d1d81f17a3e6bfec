package store

import (
	"fmt"
	"testing"

	"github.com/tasksheet/tasksheet-cli/internal/model"
)

func TestPruneHistoryKeepsRetentionWindow(t *testing.T) {
	snapshots := make([]model.Snapshot, 0, model.HistoryRetention+1)
	for i := 0; i < model.HistoryRetention+1; i++ {
		snapshots = append(snapshots, model.Snapshot{
			Date:  fmt.Sprintf("2026-01-%02d", i+1),
			Tasks: model.NewTaskCollection(),
		})
	}

	pruned := pruneHistory(snapshots)
	if len(pruned) != model.HistoryRetention {
		t.Fatalf("expected %d entries, got %d", model.HistoryRetention, len(pruned))
	}
	if pruned[0].Date != "2026-01-02" {
		t.Fatalf("expected oldest entry dropped, first is %s", pruned[0].Date)
	}
	if pruned[len(pruned)-1].Date != "2026-01-31" {
		t.Fatalf("expected newest entry kept, last is %s", pruned[len(pruned)-1].Date)
	}
}

func TestPruneHistoryLeavesShortListsAlone(t *testing.T) {
	snapshots := []model.Snapshot{
		{Date: "2026-03-01", Tasks: model.NewTaskCollection()},
		{Date: "2026-03-02", Tasks: model.NewTaskCollection()},
	}
	if got := pruneHistory(snapshots); len(got) != 2 {
		t.Fatalf("expected list unchanged, got %d entries", len(got))
	}
}
