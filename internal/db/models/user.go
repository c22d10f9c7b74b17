package models

import (
	"time"

	"github.com/uptrace/bun"
)

// SystemRole is the directory-wide role of a user, independent of any list.
type SystemRole string

const (
	SystemRoleUser  SystemRole = "user"
	SystemRoleAdmin SystemRole = "admin"
)

// User is an entry in the user directory. Accounts are owned by the identity
// service; this table is read to resolve share targets and rosters.
type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID        string     `bun:"id,pk,type:uuid"`
	Email     string     `bun:"email,notnull"`
	Name      string     `bun:"name,notnull"`
	Role      SystemRole `bun:"role,notnull"`
	CreatedAt time.Time  `bun:"created_at,notnull"`
	UpdatedAt time.Time  `bun:"updated_at,notnull"`
}
