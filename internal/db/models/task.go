package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Task is owned by a single user and may optionally sit in a list.
type Task struct {
	bun.BaseModel `bun:"table:tasks,alias:t"`

	ID          string     `bun:"id,pk,type:uuid"`
	Title       string     `bun:"title,notnull"`
	Description *string    `bun:"description"`
	IsCompleted bool       `bun:"is_completed,notnull"`
	IsStarted   bool       `bun:"is_started,notnull"`
	DueDate     *time.Time `bun:"due_date"`
	OwnerID     string     `bun:"owner_id,notnull,type:uuid"` // FK to users(id)
	ListID      *string    `bun:"list_id,type:uuid"`          // FK to lists(id), restrict
	CreatedAt   time.Time  `bun:"created_at,notnull"`
	UpdatedAt   time.Time  `bun:"updated_at,notnull"`
}
