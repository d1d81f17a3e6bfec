package model

import "time"

// DefaultTag is the fallback category a task reverts to when its tag is
// unset or its source tag gets deleted.
const DefaultTag = "personal"

// Column ids from the fixed board layout.
const (
	ColumnNonNegotiables = "nonnegotiables"
	ColumnToday          = "today"
	ColumnPriority       = "priority"
)

// DefaultColumn receives new tasks when no target column is specified.
const DefaultColumn = ColumnToday

// ColumnOrder is the board's display order.
var ColumnOrder = []string{ColumnNonNegotiables, ColumnToday, ColumnPriority}

var ColumnTitles = map[string]string{
	ColumnNonNegotiables: "Non-negotiables",
	ColumnToday:          "Today",
	ColumnPriority:       "Priority",
}

func IsValidColumn(columnID string) bool {
	_, ok := ColumnTitles[columnID]
	return ok
}

type Task struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Tag          string     `json:"tag,omitempty"`
	TagColor     string     `json:"tagColor,omitempty"`
	Notes        string     `json:"notes,omitempty"` // markdown
	Completed    bool       `json:"completed,omitempty"`
	TimerRunning bool       `json:"timerRunning,omitempty"`
	TimerStart   int64      `json:"timerStart,omitempty"`   // unix milliseconds, 0 unless running
	TimerElapsed int64      `json:"timerElapsed,omitempty"` // milliseconds, advanced only at pause
	TimerDisplay string     `json:"timerDisplay,omitempty"` // derived, never authoritative
	StartTime    *time.Time `json:"startTime,omitempty"`
	EndTime      *time.Time `json:"endTime,omitempty"`
	Duration     int64      `json:"duration,omitempty"` // explicit tracked seconds
}

// IsCompleted treats an explicit flag and a set endTime as equivalent
// completion signals.
func (t Task) IsCompleted() bool {
	return t.Completed || t.EndTime != nil
}

// TrackedSeconds returns the task's tracked time, preferring the explicit
// duration, then endTime-startTime, then the accumulated timer elapsed.
func (t Task) TrackedSeconds() int64 {
	if t.Duration > 0 {
		return t.Duration
	}
	if t.StartTime != nil && t.EndTime != nil {
		secs := int64(t.EndTime.Sub(*t.StartTime).Seconds())
		if secs > 0 {
			return secs
		}
		return 0
	}
	if t.TimerElapsed > 0 {
		return t.TimerElapsed / 1000
	}
	return 0
}

// TaskCollection maps a column id to its ordered task list. A task id
// appears in at most one column.
type TaskCollection map[string][]Task

// NewTaskCollection returns a collection with every column present and empty.
func NewTaskCollection() TaskCollection {
	collection := make(TaskCollection, len(ColumnOrder))
	for _, columnID := range ColumnOrder {
		collection[columnID] = []Task{}
	}
	return collection
}

// Clone deep-copies the collection so callers can mutate freely.
func (c TaskCollection) Clone() TaskCollection {
	cloned := make(TaskCollection, len(c))
	for columnID, tasks := range c {
		copied := make([]Task, len(tasks))
		copy(copied, tasks)
		cloned[columnID] = copied
	}
	return cloned
}

// Find locates a task by id across all columns.
func (c TaskCollection) Find(taskID string) (string, Task, bool) {
	for _, columnID := range ColumnOrder {
		for _, task := range c[columnID] {
			if task.ID == taskID {
				return columnID, task, true
			}
		}
	}
	return "", Task{}, false
}

// TotalTasks counts tasks across every column.
func (c TaskCollection) TotalTasks() int {
	total := 0
	for _, tasks := range c {
		total += len(tasks)
	}
	return total
}
