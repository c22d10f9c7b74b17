package repository

import (
	"context"

	"github.com/uptrace/bun"
)

// BunStore hands out Bun repositories bound to the pool or to a transaction.
type BunStore struct {
	db *bun.DB
}

// NewBunStore constructs a Store over db.
func NewBunStore(db *bun.DB) *BunStore {
	return &BunStore{db: db}
}

func newBunRepositories(db bun.IDB) Repositories {
	return Repositories{
		Users:  NewBunUserRepository(db),
		Lists:  NewBunListRepository(db),
		Shares: NewBunListShareRepository(db),
		Tasks:  NewBunTaskRepository(db),
	}
}

// Repositories returns repositories that run each statement on its own.
func (s *BunStore) Repositories() Repositories {
	return newBunRepositories(s.db)
}

// RunInTx runs fn inside a single database transaction.
func (s *BunStore) RunInTx(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error {
	return s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		return fn(ctx, newBunRepositories(tx))
	})
}
