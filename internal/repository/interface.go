package repository

import (
	"context"

	"github.com/terraconstructs/tasklists/internal/db/models"
)

// UserRepository reads and seeds the user directory.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	SearchByEmail(ctx context.Context, fragment string, limit int) ([]models.User, error)
	List(ctx context.Context) ([]models.User, error)
}

// ListRepository exposes persistence operations for lists.
type ListRepository interface {
	Create(ctx context.Context, list *models.List) error
	// GetWithGrants loads the list, its owner and every share with the
	// grantee's directory entry in one call.
	GetWithGrants(ctx context.Context, id string) (*ListAggregate, error)
	ExistsByOwnerAndName(ctx context.Context, ownerID, name string) (bool, error)
	ListByOwner(ctx context.Context, ownerID string) ([]models.List, error)
	CountByOwner(ctx context.Context, ownerID string) (int, error)
	Update(ctx context.Context, list *models.List) error
	Delete(ctx context.Context, id string) error
}

// ListShareRepository exposes persistence operations for list grants.
type ListShareRepository interface {
	Create(ctx context.Context, share *models.ListShare) error
	// ListByLists returns the grants of every given list with User populated.
	ListByLists(ctx context.Context, listIDs []string) ([]models.ListShare, error)
	// ListByUser returns the grants held by a user with List populated.
	ListByUser(ctx context.Context, userID string) ([]models.ListShare, error)
	UpdateRole(ctx context.Context, listID, userID, role string) error
	Delete(ctx context.Context, listID, userID string) error
	DeleteByList(ctx context.Context, listID string) (int, error)
}

// TaskRepository exposes persistence operations for tasks.
type TaskRepository interface {
	Create(ctx context.Context, task *models.Task) error
	GetByID(ctx context.Context, id string) (*models.Task, error)
	Update(ctx context.Context, task *models.Task) error
	Delete(ctx context.Context, id string) error
	ListByOwner(ctx context.Context, ownerID string) ([]models.Task, error)
	ListByList(ctx context.Context, listID string) ([]models.Task, error)
	CountByList(ctx context.Context, listID string) (int, error)
	DeleteByList(ctx context.Context, listID string) (int, error)
}

// Repositories bundles the repositories bound to one connection or transaction.
type Repositories struct {
	Users  UserRepository
	Lists  ListRepository
	Shares ListShareRepository
	Tasks  TaskRepository
}

// Store hands out repositories, either directly or inside a transaction.
type Store interface {
	Repositories() Repositories
	// RunInTx runs fn with repositories bound to a single transaction. The
	// transaction commits when fn returns nil and rolls back otherwise.
	RunInTx(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error
}

// ListAggregate is a list together with its owner and grants.
type ListAggregate struct {
	List   models.List
	Grants []models.ListShare
}

// Grant returns the share held by userID, or nil.
func (a *ListAggregate) Grant(userID string) *models.ListShare {
	for i := range a.Grants {
		if a.Grants[i].UserID == userID {
			return &a.Grants[i]
		}
	}
	return nil
}
