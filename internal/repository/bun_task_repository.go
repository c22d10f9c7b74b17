package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/terraconstructs/tasklists/internal/apperr"
	"github.com/terraconstructs/tasklists/internal/db/bunx"
	"github.com/terraconstructs/tasklists/internal/db/models"
	"github.com/uptrace/bun"
)

// BunTaskRepository persists tasks using Bun ORM.
type BunTaskRepository struct {
	db bun.IDB
}

// NewBunTaskRepository constructs a repository backed by Bun.
func NewBunTaskRepository(db bun.IDB) *BunTaskRepository {
	return &BunTaskRepository{db: db}
}

// Create inserts a new task row.
func (r *BunTaskRepository) Create(ctx context.Context, task *models.Task) error {
	if task.ID == "" {
		task.ID = bunx.NewUUIDv7()
	}
	now := time.Now().UTC()
	task.CreatedAt = now
	task.UpdatedAt = now

	if _, err := r.db.NewInsert().Model(task).Exec(ctx); err != nil {
		if isForeignKeyViolation(err) {
			return apperr.NotFound("owner or list not found").With("owner_id", task.OwnerID)
		}
		return fmt.Errorf("insert task: %w", err)
	}
	return nil
}

// GetByID fetches a task by its ID.
func (r *BunTaskRepository) GetByID(ctx context.Context, id string) (*models.Task, error) {
	task := new(models.Task)
	err := r.db.NewSelect().Model(task).Where("t.id = ?", id).Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, apperr.NotFound("task not found").With("task_id", id)
		}
		return nil, fmt.Errorf("query task: %w", err)
	}
	return task, nil
}

// Update persists mutated task data.
func (r *BunTaskRepository) Update(ctx context.Context, task *models.Task) error {
	task.UpdatedAt = time.Now().UTC()

	result, err := r.db.NewUpdate().
		Model(task).
		Column("title", "description", "is_completed", "is_started", "due_date", "list_id", "updated_at").
		Where("id = ?", task.ID).
		Exec(ctx)
	if err != nil {
		if isForeignKeyViolation(err) {
			return apperr.NotFound("list not found").With("task_id", task.ID)
		}
		return fmt.Errorf("update task: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperr.NotFound("task not found").With("task_id", task.ID)
	}
	return nil
}

// Delete removes a task by its ID.
func (r *BunTaskRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.NewDelete().Model((*models.Task)(nil)).Where("id = ?", id).Exec(ctx)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperr.NotFound("task not found").With("task_id", id)
	}
	return nil
}

// ListByOwner returns every task owned by ownerID, oldest first.
func (r *BunTaskRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.NewSelect().
		Model(&tasks).
		Where("t.owner_id = ?", ownerID).
		Order("t.created_at ASC", "t.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("query tasks by owner: %w", err)
	}
	return tasks, nil
}

// ListByList returns every task attached to listID, oldest first.
func (r *BunTaskRepository) ListByList(ctx context.Context, listID string) ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.NewSelect().
		Model(&tasks).
		Where("t.list_id = ?", listID).
		Order("t.created_at ASC", "t.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("query tasks by list: %w", err)
	}
	return tasks, nil
}

// CountByList counts the tasks attached to listID.
func (r *BunTaskRepository) CountByList(ctx context.Context, listID string) (int, error) {
	count, err := r.db.NewSelect().
		Model((*models.Task)(nil)).
		Where("t.list_id = ?", listID).
		Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count tasks by list: %w", err)
	}
	return count, nil
}

// DeleteByList removes every task attached to listID.
func (r *BunTaskRepository) DeleteByList(ctx context.Context, listID string) (int, error) {
	result, err := r.db.NewDelete().
		Model((*models.Task)(nil)).
		Where("list_id = ?", listID).
		Exec(ctx)
	if err != nil {
		return 0, fmt.Errorf("delete tasks by list: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("check rows affected: %w", err)
	}
	return int(rowsAffected), nil
}
