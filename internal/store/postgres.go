package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/tasksheet/tasksheet-cli/internal/model"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TaskRow is one persisted task, flattened for the relational store.
type TaskRow struct {
	ID           string `gorm:"primaryKey"`
	UserID       string `gorm:"index:idx_task_user;not null"`
	ColumnID     string `gorm:"not null"`
	Position     int    `gorm:"not null"`
	Title        string `gorm:"not null"`
	Tag          string
	TagColor     string
	Notes        string
	Completed    bool
	TimerRunning bool
	TimerStart   int64
	TimerElapsed int64
	Duration     int64
	StartTime    *time.Time
	EndTime      *time.Time
	UpdatedAt    time.Time
}

// HistoryRow stores one day's snapshot as serialized JSON, upserted on
// (user_id, date).
type HistoryRow struct {
	UserID    string `gorm:"primaryKey"`
	Date      string `gorm:"primaryKey"`
	Tasks     string `gorm:"type:jsonb;not null"`
	UpdatedAt time.Time
}

func (TaskRow) TableName() string    { return "tasks" }
func (HistoryRow) TableName() string { return "task_history" }

// queryTimeout bounds every database call so a dead backend cannot hang
// a CLI invocation.
const queryTimeout = 10 * time.Second

func withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, queryTimeout)
}

type PostgresStore struct {
	db *gorm.DB
}

func NewPostgresStore(dsn string) (*PostgresStore, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(&TaskRow{}, &HistoryRow{}); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) LoadTasks(ctx context.Context, userID string) (model.TaskCollection, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var rows []TaskRow
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("column_id, position").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load tasks: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	collection := model.NewTaskCollection()
	for _, row := range rows {
		columnID := row.ColumnID
		if !model.IsValidColumn(columnID) {
			columnID = model.DefaultColumn
		}
		collection[columnID] = append(collection[columnID], model.Task{
			ID:           row.ID,
			Title:        row.Title,
			Tag:          row.Tag,
			TagColor:     row.TagColor,
			Notes:        row.Notes,
			Completed:    row.Completed,
			TimerRunning: row.TimerRunning,
			TimerStart:   row.TimerStart,
			TimerElapsed: row.TimerElapsed,
			Duration:     row.Duration,
			StartTime:    row.StartTime,
			EndTime:      row.EndTime,
		})
	}
	return collection, nil
}

// SaveTasks replaces the user's task rows wholesale inside one transaction.
func (s *PostgresStore) SaveTasks(ctx context.Context, userID string, collection model.TaskCollection) error {
	rows := make([]TaskRow, 0, collection.TotalTasks())
	for _, columnID := range model.ColumnOrder {
		for position, task := range collection[columnID] {
			rows = append(rows, TaskRow{
				ID:           task.ID,
				UserID:       userID,
				ColumnID:     columnID,
				Position:     position,
				Title:        task.Title,
				Tag:          task.Tag,
				TagColor:     task.TagColor,
				Notes:        task.Notes,
				Completed:    task.Completed,
				TimerRunning: task.TimerRunning,
				TimerStart:   task.TimerStart,
				TimerElapsed: task.TimerElapsed,
				Duration:     task.Duration,
				StartTime:    task.StartTime,
				EndTime:      task.EndTime,
			})
		}
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&TaskRow{}).Error; err != nil {
			return fmt.Errorf("failed to clear task rows: %w", err)
		}
		if len(rows) == 0 {
			return nil
		}
		if err := tx.Create(&rows).Error; err != nil {
			return fmt.Errorf("failed to insert task rows: %w", err)
		}
		return nil
	})
}

func (s *PostgresStore) LoadHistory(ctx context.Context, userID string) ([]model.Snapshot, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var rows []HistoryRow
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}

	snapshots := make([]model.Snapshot, 0, len(rows))
	for _, row := range rows {
		var tasks model.TaskCollection
		if err := json.Unmarshal([]byte(row.Tasks), &tasks); err != nil {
			// a malformed snapshot should not take down the whole history
			continue
		}
		snapshots = append(snapshots, model.Snapshot{Date: row.Date, Tasks: tasks})
	}
	return pruneHistory(snapshots), nil
}

// pruneHistory bounds an ascending-by-date snapshot list to the retention
// window, dropping the oldest entries first.
func pruneHistory(snapshots []model.Snapshot) []model.Snapshot {
	if len(snapshots) > model.HistoryRetention {
		return snapshots[len(snapshots)-model.HistoryRetention:]
	}
	return snapshots
}

func (s *PostgresStore) SaveHistorySnapshot(ctx context.Context, userID, dateKey string, collection model.TaskCollection) error {
	tasksJSON, err := json.Marshal(collection)
	if err != nil {
		return fmt.Errorf("failed to serialize snapshot: %w", err)
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	row := HistoryRow{UserID: userID, Date: dateKey, Tasks: string(tasksJSON)}
	err = s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "date"}},
			DoUpdates: clause.AssignmentColumns([]string{"tasks", "updated_at"}),
		}).
		Create(&row).Error
	if err != nil {
		return fmt.Errorf("failed to upsert snapshot: %w", err)
	}

	// drop rows that fell out of the retention window
	keep := s.db.Model(&HistoryRow{}).
		Select("date").
		Where("user_id = ?", userID).
		Order("date DESC").
		Limit(model.HistoryRetention)
	err = s.db.WithContext(ctx).
		Where("user_id = ? AND date NOT IN (?)", userID, keep).
		Delete(&HistoryRow{}).Error
	if err != nil {
		return fmt.Errorf("failed to prune history: %w", err)
	}
	return nil
}
