package migrations

import (
	"context"
	"fmt"

	"github.com/terraconstructs/tasklists/internal/db/models"
	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(up_20261018000000, down_20261018000000)
}

// up_20261018000000 creates users, lists, list_shares and tasks
func up_20261018000000(ctx context.Context, db *bun.DB) error {
	fmt.Print(" [up] creating users table...")
	if _, err := db.NewCreateTable().
		Model((*models.User)(nil)).
		IfNotExists().
		Exec(ctx); err != nil {
		return fmt.Errorf("failed to create users table: %w", err)
	}
	// Emails are looked up case-insensitively, so they must be unique that way too.
	emailExpr, err := foldedColumn(db, "email")
	if err != nil {
		return err
	}
	if _, err := db.NewCreateIndex().
		Model((*models.User)(nil)).
		Index("idx_users_email").
		Unique().
		IfNotExists().
		ColumnExpr(emailExpr).
		Exec(ctx); err != nil {
		return fmt.Errorf("failed to create idx_users_email: %w", err)
	}
	fmt.Println(" OK")

	fmt.Print(" [up] creating lists table...")
	if _, err := db.NewCreateTable().
		Model((*models.List)(nil)).
		IfNotExists().
		ForeignKey(`("owner_id") REFERENCES "users" ("id") ON DELETE CASCADE`).
		Exec(ctx); err != nil {
		return fmt.Errorf("failed to create lists table: %w", err)
	}
	// A name is unique within one owner's namespace only.
	if _, err := db.NewCreateIndex().
		Model((*models.List)(nil)).
		Index("idx_lists_owner_name").
		Unique().
		IfNotExists().
		Column("owner_id", "name").
		Exec(ctx); err != nil {
		return fmt.Errorf("failed to create idx_lists_owner_name: %w", err)
	}
	fmt.Println(" OK")

	fmt.Print(" [up] creating list_shares table...")
	if _, err := db.NewCreateTable().
		Model((*models.ListShare)(nil)).
		IfNotExists().
		ForeignKey(`("list_id") REFERENCES "lists" ("id") ON DELETE CASCADE`).
		ForeignKey(`("user_id") REFERENCES "users" ("id") ON DELETE CASCADE`).
		ForeignKey(`("shared_by_user_id") REFERENCES "users" ("id") ON DELETE CASCADE`).
		Exec(ctx); err != nil {
		return fmt.Errorf("failed to create list_shares table: %w", err)
	}
	if _, err := db.NewCreateIndex().
		Model((*models.ListShare)(nil)).
		Index("idx_list_shares_list_user").
		Unique().
		IfNotExists().
		Column("list_id", "user_id").
		Exec(ctx); err != nil {
		return fmt.Errorf("failed to create idx_list_shares_list_user: %w", err)
	}
	if _, err := db.NewCreateIndex().
		Model((*models.ListShare)(nil)).
		Index("idx_list_shares_user").
		IfNotExists().
		Column("user_id").
		Exec(ctx); err != nil {
		return fmt.Errorf("failed to create idx_list_shares_user: %w", err)
	}
	fmt.Println(" OK")

	fmt.Print(" [up] creating tasks table...")
	if _, err := db.NewCreateTable().
		Model((*models.Task)(nil)).
		IfNotExists().
		ForeignKey(`("owner_id") REFERENCES "users" ("id") ON DELETE CASCADE`).
		ForeignKey(`("list_id") REFERENCES "lists" ("id") ON DELETE RESTRICT`).
		Exec(ctx); err != nil {
		return fmt.Errorf("failed to create tasks table: %w", err)
	}
	for name, column := range map[string]string{
		"idx_tasks_owner": "owner_id",
		"idx_tasks_list":  "list_id",
	} {
		if _, err := db.NewCreateIndex().
			Model((*models.Task)(nil)).
			Index(name).
			IfNotExists().
			Column(column).
			Exec(ctx); err != nil {
			return fmt.Errorf("failed to create %s: %w", name, err)
		}
	}
	fmt.Println(" OK")

	return nil
}

// down_20261018000000 drops the schema in reverse dependency order
func down_20261018000000(ctx context.Context, db *bun.DB) error {
	tables := []struct {
		name  string
		model any
	}{
		{"tasks", (*models.Task)(nil)},
		{"list_shares", (*models.ListShare)(nil)},
		{"lists", (*models.List)(nil)},
		{"users", (*models.User)(nil)},
	}

	for _, table := range tables {
		fmt.Printf(" [down] dropping %s table...", table.name)
		if _, err := db.NewDropTable().
			Model(table.model).
			IfExists().
			Exec(ctx); err != nil {
			return fmt.Errorf("failed to drop %s table: %w", table.name, err)
		}
		fmt.Println(" OK")
	}

	return nil
}
