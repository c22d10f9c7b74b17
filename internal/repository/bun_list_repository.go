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

// BunListRepository persists lists using Bun ORM.
type BunListRepository struct {
	db bun.IDB
}

// NewBunListRepository constructs a repository backed by Bun.
func NewBunListRepository(db bun.IDB) *BunListRepository {
	return &BunListRepository{db: db}
}

// Create inserts a new list row. A duplicate (owner_id, name) is a conflict.
func (r *BunListRepository) Create(ctx context.Context, list *models.List) error {
	if list.ID == "" {
		list.ID = bunx.NewUUIDv7()
	}
	now := time.Now().UTC()
	list.CreatedAt = now
	list.UpdatedAt = now

	if _, err := r.db.NewInsert().Model(list).Exec(ctx); err != nil {
		switch {
		case isUniqueViolation(err):
			return apperr.Conflict("a list with this name already exists").With("name", list.Name)
		case isForeignKeyViolation(err):
			return apperr.NotFound("owner not found").With("owner_id", list.OwnerID)
		}
		return fmt.Errorf("insert list: %w", err)
	}
	return nil
}

// GetWithGrants fetches the list with its owner, then its grants with grantees.
func (r *BunListRepository) GetWithGrants(ctx context.Context, id string) (*ListAggregate, error) {
	agg := &ListAggregate{}
	err := r.db.NewSelect().
		Model(&agg.List).
		Relation("Owner").
		Where("l.id = ?", id).
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, apperr.NotFound("list not found").With("list_id", id)
		}
		return nil, fmt.Errorf("query list with owner: %w", err)
	}

	err = r.db.NewSelect().
		Model(&agg.Grants).
		Relation("User").
		Where("ls.list_id = ?", id).
		Order("ls.created_at ASC", "ls.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("query list grants: %w", err)
	}

	return agg, nil
}

// ExistsByOwnerAndName reports whether ownerID already has a list called name.
func (r *BunListRepository) ExistsByOwnerAndName(ctx context.Context, ownerID, name string) (bool, error) {
	exists, err := r.db.NewSelect().
		Model((*models.List)(nil)).
		Where("l.owner_id = ?", ownerID).
		Where("l.name = ?", name).
		Exists(ctx)
	if err != nil {
		return false, fmt.Errorf("check list name: %w", err)
	}
	return exists, nil
}

// ListByOwner returns every list owned by ownerID, oldest first.
func (r *BunListRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.List, error) {
	var lists []models.List
	err := r.db.NewSelect().
		Model(&lists).
		Where("l.owner_id = ?", ownerID).
		Order("l.created_at ASC", "l.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("query lists by owner: %w", err)
	}
	return lists, nil
}

// CountByOwner counts the lists owned by ownerID.
func (r *BunListRepository) CountByOwner(ctx context.Context, ownerID string) (int, error) {
	count, err := r.db.NewSelect().
		Model((*models.List)(nil)).
		Where("l.owner_id = ?", ownerID).
		Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count lists by owner: %w", err)
	}
	return count, nil
}

// Update persists the mutable list fields.
func (r *BunListRepository) Update(ctx context.Context, list *models.List) error {
	list.UpdatedAt = time.Now().UTC()

	result, err := r.db.NewUpdate().
		Model(list).
		Column("name", "icon", "color", "due_date", "updated_at").
		Where("id = ?", list.ID).
		Exec(ctx)
	if err != nil {
		if isUniqueViolation(err) {
			return apperr.Conflict("a list with this name already exists").With("name", list.Name)
		}
		return fmt.Errorf("update list: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperr.NotFound("list not found").With("list_id", list.ID)
	}
	return nil
}

// Delete removes a list by its ID. Grants cascade; attached tasks block it.
func (r *BunListRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.NewDelete().Model((*models.List)(nil)).Where("id = ?", id).Exec(ctx)
	if err != nil {
		if isForeignKeyViolation(err) {
			return apperr.ConflictState("list contains tasks; relocate or delete them first").With("list_id", id)
		}
		return fmt.Errorf("delete list: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperr.NotFound("list not found").With("list_id", id)
	}
	return nil
}
