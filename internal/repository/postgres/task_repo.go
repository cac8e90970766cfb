package postgres

import (
	"context"
	"errors"

	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"

	"github.com/avelichko/taskkeeper/internal/errs"
	"github.com/avelichko/taskkeeper/internal/model"
)

// TaskRepo implements TaskRepository using PostgreSQL.
type TaskRepo struct{ db *DB }

// NewTaskRepo constructs a task repository.
func NewTaskRepo(db *DB) *TaskRepo { return &TaskRepo{db: db} }

// Create inserts a new task row.
func (r *TaskRepo) Create(ctx context.Context, t *model.Task) error {
	const q = `
INSERT INTO tasks (id, owner_id, text, completed, completed_at)
VALUES ($1, $2, $3, $4, $5)`
	_, err := r.db.Pool.Exec(ctx, q, t.ID, t.OwnerID, t.Text, t.Completed, t.CompletedAt)
	return err
}

// ListByOwner returns all tasks owned by the account, oldest first.
func (r *TaskRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Task, error) {
	const q = `
SELECT id, owner_id, text, completed, completed_at, created_at
FROM tasks
WHERE owner_id=$1
ORDER BY created_at ASC`
	rows, err := r.db.Pool.Query(ctx, q, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Task{}
	for rows.Next() {
		var t model.Task
		if err = rows.Scan(&t.ID, &t.OwnerID, &t.Text, &t.Completed, &t.CompletedAt, &t.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// GetOwned returns a task by id scoped to its owner.
func (r *TaskRepo) GetOwned(ctx context.Context, ownerID, taskID uuid.UUID) (*model.Task, error) {
	const q = `
SELECT id, owner_id, text, completed, completed_at, created_at
FROM tasks WHERE id=$1 AND owner_id=$2`
	return scanTask(r.db.Pool.QueryRow(ctx, q, taskID, ownerID))
}

// UpdateOwned applies a partial update in a single statement so the ownership
// check and the mutation cannot race. completed_at is kept when the task stays
// completed, stamped with nowMillis when it flips to completed, and nulled
// whenever the row ends up not completed.
func (r *TaskRepo) UpdateOwned(ctx context.Context, ownerID, taskID uuid.UUID, patch model.TaskPatch, nowMillis int64) (*model.Task, error) {
	const q = `
UPDATE tasks
SET text = COALESCE($3, text),
    completed = COALESCE($4, completed),
    completed_at = CASE
        WHEN COALESCE($4, completed) THEN COALESCE(completed_at, $5)
        ELSE NULL
    END
WHERE id=$1 AND owner_id=$2
RETURNING id, owner_id, text, completed, completed_at, created_at`
	return scanTask(r.db.Pool.QueryRow(ctx, q, taskID, ownerID, patch.Text, patch.Completed, nowMillis))
}

// DeleteOwned removes a task scoped to its owner and returns the deleted row.
func (r *TaskRepo) DeleteOwned(ctx context.Context, ownerID, taskID uuid.UUID) (*model.Task, error) {
	const q = `
DELETE FROM tasks WHERE id=$1 AND owner_id=$2
RETURNING id, owner_id, text, completed, completed_at, created_at`
	return scanTask(r.db.Pool.QueryRow(ctx, q, taskID, ownerID))
}

func scanTask(row pgx.Row) (*model.Task, error) {
	var t model.Task
	if err := row.Scan(&t.ID, &t.OwnerID, &t.Text, &t.Completed, &t.CompletedAt, &t.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}
