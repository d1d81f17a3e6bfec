package board

import (
	"fmt"

	"github.com/tasksheet/tasksheet-cli/internal/model"
)

// OpKind enumerates collection mutations as an explicit tagged union
// rather than overloading the task shape with a deletion marker.
type OpKind string

const (
	OpAdd    OpKind = "add"
	OpUpdate OpKind = "update"
	OpMove   OpKind = "move"
	OpDelete OpKind = "delete"
)

type Op struct {
	Kind   OpKind     `json:"kind"`
	Task   model.Task `json:"task,omitempty"`   // add, update
	TaskID string     `json:"taskId,omitempty"` // move, delete
	Column string     `json:"column,omitempty"` // add/update target
	Source string     `json:"source,omitempty"` // move
	Target string     `json:"target,omitempty"` // move
}

// Apply folds one operation into the collection.
func Apply(collection model.TaskCollection, op Op) (model.TaskCollection, error) {
	switch op.Kind {
	case OpAdd:
		updated, _, ok := AddTask(collection, op.Column, op.Task.Title, op.Task.Tag)
		if !ok {
			return collection, fmt.Errorf("rejected add of %q", op.Task.Title)
		}
		return updated, nil
	case OpUpdate:
		return UpdateTask(collection, op.Task, op.Column)
	case OpMove:
		return MoveTask(collection, op.TaskID, op.Source, op.Target)
	case OpDelete:
		return DeleteTask(collection, op.TaskID), nil
	default:
		return collection, fmt.Errorf("unknown op kind %q", op.Kind)
	}
}
