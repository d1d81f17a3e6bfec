package board

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/tasksheet/tasksheet-cli/internal/model"
)

var ErrTaskNotFound = errors.New("task not found")

// AddTask appends a fresh task to columnID (default column when empty).
// A blank title is rejected and the collection is returned unchanged.
func AddTask(collection model.TaskCollection, columnID, title, tag string) (model.TaskCollection, model.Task, bool) {
	if strings.TrimSpace(title) == "" {
		return collection, model.Task{}, false
	}
	if columnID == "" {
		columnID = model.DefaultColumn
	}
	if !model.IsValidColumn(columnID) {
		return collection, model.Task{}, false
	}
	if tag == "" {
		tag = model.DefaultTag
	}

	task := model.Task{
		ID:    uuid.NewString(),
		Title: strings.TrimSpace(title),
		Tag:   tag,
	}

	updated := collection.Clone()
	updated[columnID] = append(updated[columnID], task)
	return updated, task, true
}

// UpdateTask replaces the task in place wherever it lives. An unknown id
// is inserted into targetColumn (default column when empty); an invalid
// target column is an error and the task is dropped.
func UpdateTask(collection model.TaskCollection, task model.Task, targetColumn string) (model.TaskCollection, error) {
	updated := collection.Clone()
	for columnID, tasks := range updated {
		for i := range tasks {
			if tasks[i].ID == task.ID {
				updated[columnID][i] = task
				return updated, nil
			}
		}
	}

	if targetColumn == "" {
		targetColumn = model.DefaultColumn
	}
	if !model.IsValidColumn(targetColumn) {
		return collection, fmt.Errorf("invalid column %q for task %q", targetColumn, task.ID)
	}
	updated[targetColumn] = append(updated[targetColumn], task)
	return updated, nil
}

// DeleteTask removes the task from whichever column holds it. No-op when
// absent.
func DeleteTask(collection model.TaskCollection, taskID string) model.TaskCollection {
	updated := collection.Clone()
	for columnID, tasks := range updated {
		for i := range tasks {
			if tasks[i].ID == taskID {
				updated[columnID] = append(tasks[:i:i], tasks[i+1:]...)
				return updated
			}
		}
	}
	return updated
}

// MoveTask removes the task from sourceColumn and appends it to the end of
// targetColumn. Same-column moves are a no-op; a task missing from the
// source column is reported as ErrTaskNotFound.
func MoveTask(collection model.TaskCollection, taskID, sourceColumn, targetColumn string) (model.TaskCollection, error) {
	if sourceColumn == targetColumn {
		return collection, nil
	}
	if !model.IsValidColumn(sourceColumn) || !model.IsValidColumn(targetColumn) {
		return collection, fmt.Errorf("invalid move %q -> %q", sourceColumn, targetColumn)
	}

	updated := collection.Clone()
	tasks := updated[sourceColumn]
	for i := range tasks {
		if tasks[i].ID == taskID {
			task := tasks[i]
			updated[sourceColumn] = append(tasks[:i:i], tasks[i+1:]...)
			updated[targetColumn] = append(updated[targetColumn], task)
			return updated, nil
		}
	}
	return collection, fmt.Errorf("%w: %s in column %s", ErrTaskNotFound, taskID, sourceColumn)
}

// UpdateTag rewrites a task's tag in place.
func UpdateTag(collection model.TaskCollection, taskID, newTag string) (model.TaskCollection, error) {
	columnID, task, ok := collection.Find(taskID)
	if !ok {
		return collection, fmt.Errorf("%w: %s", ErrTaskNotFound, taskID)
	}
	if newTag == "" {
		newTag = model.DefaultTag
	}
	task.Tag = newTag
	updated := collection.Clone()
	for i := range updated[columnID] {
		if updated[columnID][i].ID == taskID {
			updated[columnID][i] = task
		}
	}
	return updated, nil
}

// UpdateTagColor overrides a task's tag color independent of the tag.
func UpdateTagColor(collection model.TaskCollection, taskID, color string) (model.TaskCollection, error) {
	columnID, task, ok := collection.Find(taskID)
	if !ok {
		return collection, fmt.Errorf("%w: %s", ErrTaskNotFound, taskID)
	}
	task.TagColor = color
	updated := collection.Clone()
	for i := range updated[columnID] {
		if updated[columnID][i].ID == taskID {
			updated[columnID][i] = task
		}
	}
	return updated, nil
}

// DeleteTag reassigns every task carrying tag to the fallback category.
// Removing the tag from the available-tags set is the store's concern.
func DeleteTag(collection model.TaskCollection, tag string) model.TaskCollection {
	updated := collection.Clone()
	for columnID, tasks := range updated {
		for i := range tasks {
			if tasks[i].Tag == tag {
				updated[columnID][i].Tag = model.DefaultTag
			}
		}
	}
	return updated
}
