package timer

import (
	"fmt"
	"time"

	"github.com/tasksheet/tasksheet-cli/internal/model"
)

// Start opens a timing interval on the task. No-op if already running.
func Start(task model.Task, now time.Time) model.Task {
	if task.TimerRunning {
		return task
	}
	task.TimerRunning = true
	task.TimerStart = now.UnixMilli()
	if task.StartTime == nil {
		started := now
		task.StartTime = &started
	}
	return task
}

// Pause closes the open interval and folds it into TimerElapsed. This is
// the only place TimerElapsed advances. No-op if not running.
func Pause(task model.Task, now time.Time) model.Task {
	if !task.TimerRunning {
		return task
	}
	delta := now.UnixMilli() - task.TimerStart
	if delta < 0 {
		delta = 0
	}
	task.TimerElapsed += delta
	task.TimerRunning = false
	task.TimerStart = 0
	task.TimerDisplay = FormatDuration(task.TimerElapsed)
	return task
}

// Tick refreshes the display-only elapsed value while running. It never
// touches TimerElapsed, so a tick racing a pause cannot double-count.
func Tick(task model.Task, now time.Time) model.Task {
	if !task.TimerRunning {
		return task
	}
	task.TimerDisplay = FormatDuration(LiveElapsed(task, now))
	return task
}

// LiveElapsed is the accumulated elapsed plus the currently-open interval.
func LiveElapsed(task model.Task, now time.Time) int64 {
	if !task.TimerRunning {
		return task.TimerElapsed
	}
	live := task.TimerElapsed + (now.UnixMilli() - task.TimerStart)
	if live < task.TimerElapsed {
		return task.TimerElapsed
	}
	return live
}

// FormatDuration renders milliseconds as "1h 2m 3s", "2m 3s" or "3s",
// floored to whole seconds.
func FormatDuration(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	totalSeconds := ms / 1000
	hours := totalSeconds / 3600
	minutes := (totalSeconds % 3600) / 60
	seconds := totalSeconds % 60

	if hours > 0 {
		return fmt.Sprintf("%dh %dm %ds", hours, minutes, seconds)
	}
	if minutes > 0 {
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	}
	return fmt.Sprintf("%ds", seconds)
}
