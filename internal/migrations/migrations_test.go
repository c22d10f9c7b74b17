package migrations

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/terraconstructs/tasklists/internal/db/bunx"
	"github.com/terraconstructs/tasklists/internal/db/models"
	"github.com/uptrace/bun/migrate"
)

func TestApply_SQLite(t *testing.T) {
	db, err := bunx.NewDB(":memory:")
	require.NoError(t, err)
	defer bunx.Close(db)

	ctx := context.Background()
	assert.True(t, IsSQLite(db))
	assert.False(t, IsPostgreSQL(db))

	groupID, err := Apply(ctx, db)
	require.NoError(t, err)
	assert.NotZero(t, groupID)

	for _, table := range []string{"users", "lists", "list_shares", "tasks"} {
		_, err := db.NewSelect().Table(table).Limit(1).Exec(ctx)
		assert.NoError(t, err, "table %s should exist", table)
	}

	t.Run("user email index ignores case", func(t *testing.T) {
		now := time.Now().UTC()
		insert := func(id, email string) error {
			_, err := db.NewInsert().Model(&models.User{
				ID: id, Email: email, Name: "bob", Role: models.SystemRoleUser, CreatedAt: now, UpdatedAt: now,
			}).Exec(ctx)
			return err
		}

		require.NoError(t, insert(bunx.NewUUIDv7(), "Bob@Example.com"))
		assert.Error(t, insert(bunx.NewUUIDv7(), "bob@example.com"))

		_, err := db.NewDelete().Model((*models.User)(nil)).Where("1 = 1").Exec(ctx)
		require.NoError(t, err)
	})

	t.Run("second apply is a no-op", func(t *testing.T) {
		groupID, err := Apply(ctx, db)
		require.NoError(t, err)
		assert.Zero(t, groupID)
	})

	t.Run("rollback drops tables", func(t *testing.T) {
		migrator := migrate.NewMigrator(db, Migrations)
		group, err := migrator.Rollback(ctx)
		require.NoError(t, err)
		assert.NotZero(t, group.ID)

		_, err = db.NewSelect().Table("lists").Limit(1).Exec(ctx)
		assert.Error(t, err)
	})
}
