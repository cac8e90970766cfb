package service

import (
	"context"
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/avelichko/taskkeeper/internal/errs"
	"github.com/avelichko/taskkeeper/internal/model"
	"github.com/avelichko/taskkeeper/internal/repository"
)

// TaskService defines owner-scoped task operations. Task ids arrive as raw
// strings from the transport and are validated before any store round-trip.
type TaskService interface {
	// Create stores a new task owned by the account.
	Create(ctx context.Context, ownerID uuid.UUID, text string) (*model.Task, error)
	// List returns all tasks owned by the account.
	List(ctx context.Context, ownerID uuid.UUID) ([]model.Task, error)
	// Get returns a single owned task.
	Get(ctx context.Context, ownerID uuid.UUID, id string) (*model.Task, error)
	// Update applies a partial update, maintaining the completedAt invariant.
	Update(ctx context.Context, ownerID uuid.UUID, id string, patch model.TaskPatch) (*model.Task, error)
	// Delete removes an owned task and returns it.
	Delete(ctx context.Context, ownerID uuid.UUID, id string) (*model.Task, error)
}

type TaskServiceImpl struct {
	repo repository.TaskRepository
}

// NewTaskService constructs TaskService.
func NewTaskService(repo repository.TaskRepository) *TaskServiceImpl {
	return &TaskServiceImpl{repo: repo}
}

// parseID rejects structurally invalid identifiers before touching the store.
func parseID(id string) (uuid.UUID, error) {
	parsed, err := uuid.FromString(id)
	if err != nil {
		return uuid.Nil, errs.ErrInvalidID
	}
	return parsed, nil
}

// Create validates the text and stores a new task.
func (s *TaskServiceImpl) Create(ctx context.Context, ownerID uuid.UUID, text string) (*model.Task, error) {
	if len(text) < 1 {
		return nil, fmt.Errorf("%w: text is required", errs.ErrValidation)
	}
	id, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	t := &model.Task{ID: id, OwnerID: ownerID, Text: text}
	if err := s.repo.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// List returns all tasks owned by the account.
func (s *TaskServiceImpl) List(ctx context.Context, ownerID uuid.UUID) ([]model.Task, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

// Get returns a single owned task.
func (s *TaskServiceImpl) Get(ctx context.Context, ownerID uuid.UUID, id string) (*model.Task, error) {
	taskID, err := parseID(id)
	if err != nil {
		return nil, err
	}
	return s.repo.GetOwned(ctx, ownerID, taskID)
}

// Update applies a partial update. Flipping completed to true stamps
// completedAt with the current epoch milliseconds; flipping it to false nulls
// completedAt in the same statement.
func (s *TaskServiceImpl) Update(ctx context.Context, ownerID uuid.UUID, id string, patch model.TaskPatch) (*model.Task, error) {
	taskID, err := parseID(id)
	if err != nil {
		return nil, err
	}
	if patch.Text != nil && len(*patch.Text) < 1 {
		return nil, fmt.Errorf("%w: text is required", errs.ErrValidation)
	}
	return s.repo.UpdateOwned(ctx, ownerID, taskID, patch, time.Now().UnixMilli())
}

// Delete removes an owned task.
func (s *TaskServiceImpl) Delete(ctx context.Context, ownerID uuid.UUID, id string) (*model.Task, error) {
	taskID, err := parseID(id)
	if err != nil {
		return nil, err
	}
	return s.repo.DeleteOwned(ctx, ownerID, taskID)
}
