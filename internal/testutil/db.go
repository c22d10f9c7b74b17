// Package testutil provides a migrated in-memory database and directory
// fixtures for tests.
package testutil

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/terraconstructs/tasklists/internal/db/bunx"
	"github.com/terraconstructs/tasklists/internal/db/models"
	"github.com/terraconstructs/tasklists/internal/migrations"
	"github.com/terraconstructs/tasklists/internal/repository"
	"github.com/uptrace/bun"
)

// NewTestDB opens a private SQLite database and applies every migration.
// The database is closed when the test ends.
func NewTestDB(t *testing.T) *bun.DB {
	t.Helper()

	db, err := bunx.NewDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = bunx.Close(db) })

	_, err = migrations.Apply(context.Background(), db)
	require.NoError(t, err)
	return db
}

// NewTestStore returns a Store over a fresh migrated database.
func NewTestStore(t *testing.T) *repository.BunStore {
	t.Helper()
	return repository.NewBunStore(NewTestDB(t))
}

// CreateUser adds a directory entry named after the local part of email.
func CreateUser(t *testing.T, store repository.Store, email string) *models.User {
	t.Helper()

	name, _, _ := strings.Cut(email, "@")
	user := &models.User{Email: email, Name: name, Role: models.SystemRoleUser}
	require.NoError(t, store.Repositories().Users.Create(context.Background(), user))
	return user
}

// CreateAdmin adds a directory entry with the system admin role.
func CreateAdmin(t *testing.T, store repository.Store, email string) *models.User {
	t.Helper()

	name, _, _ := strings.Cut(email, "@")
	user := &models.User{Email: email, Name: name, Role: models.SystemRoleAdmin}
	require.NoError(t, store.Repositories().Users.Create(context.Background(), user))
	return user
}
