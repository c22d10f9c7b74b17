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

// BunListShareRepository persists list grants using Bun ORM.
type BunListShareRepository struct {
	db bun.IDB
}

// NewBunListShareRepository constructs a repository backed by Bun.
func NewBunListShareRepository(db bun.IDB) *BunListShareRepository {
	return &BunListShareRepository{db: db}
}

// Create inserts a grant. The (list_id, user_id) unique index turns a
// concurrent duplicate into a conflict.
func (r *BunListShareRepository) Create(ctx context.Context, share *models.ListShare) error {
	if share.ID == "" {
		share.ID = bunx.NewUUIDv7()
	}
	now := time.Now().UTC()
	share.CreatedAt = now
	share.UpdatedAt = now

	if _, err := r.db.NewInsert().Model(share).Exec(ctx); err != nil {
		switch {
		case isUniqueViolation(err):
			return apperr.Conflict("list is already shared with this user").
				With("list_id", share.ListID).
				With("user_id", share.UserID)
		case isForeignKeyViolation(err):
			return apperr.NotFound("list or user not found").
				With("list_id", share.ListID).
				With("user_id", share.UserID)
		}
		return fmt.Errorf("insert list share: %w", err)
	}
	return nil
}

// ListByLists fetches the grants of several lists in one query.
func (r *BunListShareRepository) ListByLists(ctx context.Context, listIDs []string) ([]models.ListShare, error) {
	if len(listIDs) == 0 {
		return nil, nil
	}

	var shares []models.ListShare
	err := r.db.NewSelect().
		Model(&shares).
		Relation("User").
		Where("ls.list_id IN (?)", bun.In(listIDs)).
		Order("ls.created_at ASC", "ls.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("query shares by lists: %w", err)
	}
	return shares, nil
}

// ListByUser fetches every grant held by userID together with its list.
func (r *BunListShareRepository) ListByUser(ctx context.Context, userID string) ([]models.ListShare, error) {
	var shares []models.ListShare
	err := r.db.NewSelect().
		Model(&shares).
		Relation("List").
		Where("ls.user_id = ?", userID).
		Order("ls.created_at ASC", "ls.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("query shares by user: %w", err)
	}
	return shares, nil
}

// UpdateRole overwrites the role of an existing grant.
func (r *BunListShareRepository) UpdateRole(ctx context.Context, listID, userID, role string) error {
	result, err := r.db.NewUpdate().
		Model((*models.ListShare)(nil)).
		Set("role = ?", role).
		Set("updated_at = ?", time.Now().UTC()).
		Where("list_id = ?", listID).
		Where("user_id = ?", userID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("update list share role: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperr.NotFound("user is not shared on this list").
			With("list_id", listID).
			With("user_id", userID)
	}
	return nil
}

// Delete removes the grant for (listID, userID).
func (r *BunListShareRepository) Delete(ctx context.Context, listID, userID string) error {
	result, err := r.db.NewDelete().
		Model((*models.ListShare)(nil)).
		Where("list_id = ?", listID).
		Where("user_id = ?", userID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("delete list share: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperr.NotFound("user is not shared on this list").
			With("list_id", listID).
			With("user_id", userID)
	}
	return nil
}

// DeleteByList removes every grant on a list and reports how many went.
func (r *BunListShareRepository) DeleteByList(ctx context.Context, listID string) (int, error) {
	result, err := r.db.NewDelete().
		Model((*models.ListShare)(nil)).
		Where("list_id = ?", listID).
		Exec(ctx)
	if err != nil {
		return 0, fmt.Errorf("delete list shares: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("check rows affected: %w", err)
	}
	return int(rowsAffected), nil
}
