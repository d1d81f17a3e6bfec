package store

import (
	"context"

	"github.com/tasksheet/tasksheet-cli/internal/model"
)

// Store is the persistence collaborator the board and server consume.
// SaveTasks has wholesale-replace semantics: the stored set is always
// overwritten with the full current collection.
type Store interface {
	LoadTasks(ctx context.Context, userID string) (model.TaskCollection, error)
	LoadHistory(ctx context.Context, userID string) ([]model.Snapshot, error)
	SaveTasks(ctx context.Context, userID string, collection model.TaskCollection) error
	SaveHistorySnapshot(ctx context.Context, userID, dateKey string, collection model.TaskCollection) error
}
