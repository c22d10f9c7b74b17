package migrations

import (
	"fmt"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect"
)

// IsSQLite checks if the database is SQLite
func IsSQLite(db *bun.DB) bool {
	return db.Dialect().Name() == dialect.SQLite
}

// IsPostgreSQL checks if the database is PostgreSQL
func IsPostgreSQL(db *bun.DB) bool {
	return db.Dialect().Name() == dialect.PG
}

// foldedColumn returns an index expression over column that compares without
// regard to case: lower() on PostgreSQL, the NOCASE collation on SQLite.
func foldedColumn(db *bun.DB, column string) (string, error) {
	switch {
	case IsPostgreSQL(db):
		return fmt.Sprintf("lower(%q)", column), nil
	case IsSQLite(db):
		return fmt.Sprintf("%q COLLATE NOCASE", column), nil
	default:
		return "", fmt.Errorf("unsupported dialect %s", db.Dialect().Name())
	}
}
