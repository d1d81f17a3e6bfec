package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/tasksheet/tasksheet-cli/internal/history"
	"github.com/tasksheet/tasksheet-cli/internal/model"
)

const (
	tasksFile   = "tasks.json"
	historyFile = "taskHistory.json"
)

// JSONStore is the local fallback store: one JSON file per concern under
// the configured data dir.
type JSONStore struct {
	Dir string
}

func NewJSONStore(dir string) *JSONStore {
	return &JSONStore{Dir: dir}
}

// loadJSON reads a JSON file into v. A missing file leaves v untouched;
// malformed content is logged and treated as absent.
func loadJSON(filePath string, v any) error {
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return nil
	} else if err != nil {
		return fmt.Errorf("❌ Failed to check JSON file: %w", err)
	}

	jsonBytes, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("❌ Failed to read JSON file: %w", err)
	}

	if len(jsonBytes) > 0 {
		if err := json.Unmarshal(jsonBytes, v); err != nil {
			log.Printf("⚠️ Malformed JSON in %s, falling back to defaults: %v", filePath, err)
		}
	}

	return nil
}

func saveJSON(filePath string, v any) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("❌ Failed to convert to JSON: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return fmt.Errorf("❌ Failed to create data directory: %w", err)
	}

	if err := os.WriteFile(filePath, jsonBytes, 0644); err != nil {
		return fmt.Errorf("❌ Failed to write JSON file: %w", err)
	}

	return nil
}

func (s *JSONStore) LoadTasks(ctx context.Context, userID string) (model.TaskCollection, error) {
	var collection model.TaskCollection
	if err := loadJSON(filepath.Join(s.Dir, tasksFile), &collection); err != nil {
		return nil, err
	}
	if collection == nil {
		return nil, nil
	}
	// columns added after the file was written must still show up
	for _, columnID := range model.ColumnOrder {
		if _, ok := collection[columnID]; !ok {
			collection[columnID] = []model.Task{}
		}
	}
	return collection, nil
}

func (s *JSONStore) SaveTasks(ctx context.Context, userID string, collection model.TaskCollection) error {
	return saveJSON(filepath.Join(s.Dir, tasksFile), collection)
}

func (s *JSONStore) LoadHistory(ctx context.Context, userID string) ([]model.Snapshot, error) {
	var snapshots []model.Snapshot
	if err := loadJSON(filepath.Join(s.Dir, historyFile), &snapshots); err != nil {
		return nil, err
	}
	return snapshots, nil
}

func (s *JSONStore) SaveHistorySnapshot(ctx context.Context, userID, dateKey string, collection model.TaskCollection) error {
	snapshots, err := s.LoadHistory(ctx, userID)
	if err != nil {
		return err
	}
	snapshots = history.Upsert(snapshots, dateKey, collection)
	return saveJSON(filepath.Join(s.Dir, historyFile), snapshots)
}
