package models

import (
	"time"

	"github.com/uptrace/bun"
)

// List is a named container of tasks owned by exactly one user.
// (owner_id, name) is unique.
type List struct {
	bun.BaseModel `bun:"table:lists,alias:l"`

	ID        string     `bun:"id,pk,type:uuid"`
	Name      string     `bun:"name,notnull"`
	Icon      string     `bun:"icon,notnull"`
	Color     string     `bun:"color,notnull"`
	DueDate   *time.Time `bun:"due_date"`
	OwnerID   string     `bun:"owner_id,notnull,type:uuid"` // FK to users(id)
	CreatedAt time.Time  `bun:"created_at,notnull"`
	UpdatedAt time.Time  `bun:"updated_at,notnull"`

	Owner *User `bun:"rel:belongs-to,join:owner_id=id"`
}

// ListShare grants a non-owner user access to a list.
// (list_id, user_id) is unique and user_id never equals the list owner.
type ListShare struct {
	bun.BaseModel `bun:"table:list_shares,alias:ls"`

	ID             string    `bun:"id,pk,type:uuid"`
	ListID         string    `bun:"list_id,notnull,type:uuid"`           // FK to lists(id), cascade
	UserID         string    `bun:"user_id,notnull,type:uuid"`           // FK to users(id), cascade
	Role           string    `bun:"role,notnull"`                        // viewer | editor | admin
	SharedByUserID string    `bun:"shared_by_user_id,notnull,type:uuid"` // FK to users(id)
	CreatedAt      time.Time `bun:"created_at,notnull"`
	UpdatedAt      time.Time `bun:"updated_at,notnull"`

	User *User `bun:"rel:belongs-to,join:user_id=id"`
	List *List `bun:"rel:belongs-to,join:list_id=id"`
}
