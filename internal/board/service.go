package board

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/tasksheet/tasksheet-cli/internal/history"
	"github.com/tasksheet/tasksheet-cli/internal/model"
	"github.com/tasksheet/tasksheet-cli/internal/store"
	"github.com/tasksheet/tasksheet-cli/internal/timer"
	"github.com/tasksheet/tasksheet-cli/internal/util"
)

// Service keeps the in-memory task collection consistent with the
// persistence collaborator. Mutations are applied optimistically: the
// in-memory state is replaced first, then saved wholesale together with a
// history upsert for today. Persistence failures are logged and surfaced,
// never rolled back.
type Service struct {
	mu      sync.Mutex
	store   store.Store
	userID  string
	tasks   model.TaskCollection
	history []model.Snapshot
	now     func() time.Time
}

func NewService(ctx context.Context, st store.Store, userID string) (*Service, error) {
	tasks, err := st.LoadTasks(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load tasks: %w", err)
	}
	if tasks == nil {
		tasks = model.NewTaskCollection()
	}

	snapshots, err := st.LoadHistory(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}

	return &Service{
		store:   st,
		userID:  userID,
		tasks:   tasks,
		history: snapshots,
		now:     time.Now,
	}, nil
}

// Tasks returns a copy of the current collection.
func (s *Service) Tasks() model.TaskCollection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tasks.Clone()
}

// History returns a copy of the snapshot history.
func (s *Service) History() []model.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshots := make([]model.Snapshot, len(s.history))
	copy(snapshots, s.history)
	return snapshots
}

// Find locates a task by id in the current collection.
func (s *Service) Find(taskID string) (string, model.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tasks.Find(taskID)
}

// persist writes the full collection and upserts today's snapshot. The
// optimistic in-memory state is kept on failure. Callers hold the lock.
func (s *Service) persist(ctx context.Context) {
	today := util.DateKey(s.now())
	s.history = history.Upsert(s.history, today, s.tasks)

	if err := s.store.SaveTasks(ctx, s.userID, s.tasks); err != nil {
		log.Printf("⚠️ Failed to save tasks, keeping local state: %v", err)
		return
	}
	if err := s.store.SaveHistorySnapshot(ctx, s.userID, today, s.tasks); err != nil {
		log.Printf("⚠️ Failed to save history snapshot: %v", err)
	}
}

func (s *Service) AddTask(ctx context.Context, columnID, title, tag string) (model.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	updated, task, ok := AddTask(s.tasks, columnID, title, tag)
	if !ok {
		return model.Task{}, false
	}
	s.tasks = updated
	s.persist(ctx)
	return task, true
}

// Apply folds one tagged operation into the collection and persists.
func (s *Service) Apply(ctx context.Context, op Op) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	updated, err := Apply(s.tasks, op)
	if err != nil {
		return err
	}
	s.tasks = updated
	s.persist(ctx)
	return nil
}

func (s *Service) MoveTask(ctx context.Context, taskID, sourceColumn, targetColumn string) error {
	return s.Apply(ctx, Op{Kind: OpMove, TaskID: taskID, Source: sourceColumn, Target: targetColumn})
}

func (s *Service) DeleteTask(ctx context.Context, taskID string) error {
	return s.Apply(ctx, Op{Kind: OpDelete, TaskID: taskID})
}

// ReplaceAll swaps in a full collection, as the SPA does on a board save.
// Collections naming an unknown column or carrying the same task id in
// more than one place are rejected wholesale.
func (s *Service) ReplaceAll(ctx context.Context, collection model.TaskCollection) error {
	seen := make(map[string]string)
	for columnID, tasks := range collection {
		if !model.IsValidColumn(columnID) {
			return fmt.Errorf("invalid column %q", columnID)
		}
		for _, task := range tasks {
			if prev, ok := seen[task.ID]; ok {
				return fmt.Errorf("task %s appears in both %s and %s", task.ID, prev, columnID)
			}
			seen[task.ID] = columnID
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = collection.Clone()
	for _, columnID := range model.ColumnOrder {
		if _, ok := s.tasks[columnID]; !ok {
			s.tasks[columnID] = []model.Task{}
		}
	}
	s.persist(ctx)
	return nil
}

// CompleteTask marks the task done, stamping EndTime and folding any
// running timer interval.
func (s *Service) CompleteTask(ctx context.Context, taskID string) error {
	return s.mutateTask(ctx, taskID, func(task model.Task) model.Task {
		now := s.now()
		task = timer.Pause(task, now)
		task.Completed = true
		task.EndTime = &now
		return task
	})
}

func (s *Service) ReopenTask(ctx context.Context, taskID string) error {
	return s.mutateTask(ctx, taskID, func(task model.Task) model.Task {
		task.Completed = false
		task.EndTime = nil
		return task
	})
}

// StartTimer opens a timing interval on the task.
func (s *Service) StartTimer(ctx context.Context, taskID string) (model.Task, error) {
	return s.mutateTaskReturning(ctx, taskID, func(task model.Task) model.Task {
		return timer.Start(task, s.now())
	})
}

// PauseTimer closes the open interval. It re-reads the stored task under
// the lock, so an explicit pause always wins over a display tick.
func (s *Service) PauseTimer(ctx context.Context, taskID string) (model.Task, error) {
	return s.mutateTaskReturning(ctx, taskID, func(task model.Task) model.Task {
		return timer.Pause(task, s.now())
	})
}

// RefreshTimer recomputes the display-only elapsed value and persists it,
// leaving TimerElapsed untouched. Used by the periodic watch persistence.
func (s *Service) RefreshTimer(ctx context.Context, taskID string) (model.Task, error) {
	return s.mutateTaskReturning(ctx, taskID, func(task model.Task) model.Task {
		return timer.Tick(task, s.now())
	})
}

func (s *Service) UpdateTag(ctx context.Context, taskID, newTag string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	updated, err := UpdateTag(s.tasks, taskID, newTag)
	if err != nil {
		return err
	}
	s.tasks = updated
	s.persist(ctx)
	return nil
}

func (s *Service) UpdateTagColor(ctx context.Context, taskID, color string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	updated, err := UpdateTagColor(s.tasks, taskID, color)
	if err != nil {
		return err
	}
	s.tasks = updated
	s.persist(ctx)
	return nil
}

// DeleteTag reassigns every task carrying tag to the fallback category.
func (s *Service) DeleteTag(ctx context.Context, tag string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tasks = DeleteTag(s.tasks, tag)
	s.persist(ctx)
	return nil
}

func (s *Service) mutateTask(ctx context.Context, taskID string, mutate func(model.Task) model.Task) error {
	_, err := s.mutateTaskReturning(ctx, taskID, mutate)
	return err
}

func (s *Service) mutateTaskReturning(ctx context.Context, taskID string, mutate func(model.Task) model.Task) (model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, task, ok := s.tasks.Find(taskID)
	if !ok {
		return model.Task{}, fmt.Errorf("%w: %s", ErrTaskNotFound, taskID)
	}

	task = mutate(task)
	updated, err := UpdateTask(s.tasks, task, "")
	if err != nil {
		return model.Task{}, err
	}
	s.tasks = updated
	s.persist(ctx)
	return task, nil
}
