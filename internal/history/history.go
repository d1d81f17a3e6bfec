package history

import (
	"sort"
	"time"

	"github.com/tasksheet/tasksheet-cli/internal/model"
	"github.com/tasksheet/tasksheet-cli/internal/util"
)

// Upsert replaces the entry for dateKey or appends a new one, then keeps
// the history sorted ascending by date and bounded to the retention window
// by dropping the oldest entries.
func Upsert(snapshots []model.Snapshot, dateKey string, tasks model.TaskCollection) []model.Snapshot {
	updated := make([]model.Snapshot, 0, len(snapshots)+1)
	replaced := false
	for _, snapshot := range snapshots {
		if snapshot.Date == dateKey {
			snapshot.Tasks = tasks.Clone()
			replaced = true
		}
		updated = append(updated, snapshot)
	}
	if !replaced {
		updated = append(updated, model.Snapshot{Date: dateKey, Tasks: tasks.Clone()})
	}

	sort.Slice(updated, func(i, j int) bool {
		return updated[i].Date < updated[j].Date
	})

	if len(updated) > model.HistoryRetention {
		updated = updated[len(updated)-model.HistoryRetention:]
	}
	return updated
}

// UpsertToday records the collection under today's date key.
func UpsertToday(snapshots []model.Snapshot, tasks model.TaskCollection, now time.Time) []model.Snapshot {
	return Upsert(snapshots, util.DateKey(now), tasks)
}

// SnapshotFor returns the collection stored for dateKey, or an empty
// default collection (all columns present) when no entry matches.
func SnapshotFor(snapshots []model.Snapshot, dateKey string) model.TaskCollection {
	for _, snapshot := range snapshots {
		if snapshot.Date == dateKey {
			return snapshot.Tasks.Clone()
		}
	}
	return model.NewTaskCollection()
}
