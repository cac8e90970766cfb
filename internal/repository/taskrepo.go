package repository

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/avelichko/taskkeeper/internal/model"
)

// TaskRepository provides owner-scoped access to tasks. Every single-item
// operation filters by id AND owner in one statement, so a task owned by a
// different account is indistinguishable from a nonexistent one.
type TaskRepository interface {
	// Create inserts a new task.
	Create(ctx context.Context, t *model.Task) error
	// ListByOwner returns all tasks owned by the account.
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Task, error)
	// GetOwned returns a task by id scoped to its owner.
	GetOwned(ctx context.Context, ownerID, taskID uuid.UUID) (*model.Task, error)
	// UpdateOwned applies a partial update atomically and returns the new row.
	// nowMillis is the completion timestamp stamped when completed flips true.
	UpdateOwned(ctx context.Context, ownerID, taskID uuid.UUID, patch model.TaskPatch, nowMillis int64) (*model.Task, error)
	// DeleteOwned removes a task scoped to its owner and returns the deleted row.
	DeleteOwned(ctx context.Context, ownerID, taskID uuid.UUID) (*model.Task, error)
}
