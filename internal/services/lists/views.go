package lists

import (
	"time"

	"github.com/terraconstructs/tasklists/internal/db/models"
	"github.com/terraconstructs/tasklists/internal/repository"
	"github.com/terraconstructs/tasklists/internal/roles"
)

// ListView is a list as seen by one caller: the list fields, the caller's
// effective role and the shared-user roster.
type ListView struct {
	ID          string
	Name        string
	Icon        string
	Color       string
	DueDate     *time.Time
	OwnerID     string
	Role        roles.Role
	SharedUsers []SharedUser
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// SharedUser is one roster entry.
type SharedUser struct {
	UserID         string
	Email          string
	Name           string
	Role           roles.Role
	SharedByUserID string
	CreatedAt      time.Time
}

// UserMatch is a directory entry returned by SearchUsers.
type UserMatch struct {
	ID    string
	Email string
	Name  string
}

func toListView(list *models.List, role roles.Role, grants []models.ListShare) ListView {
	return ListView{
		ID:          list.ID,
		Name:        list.Name,
		Icon:        list.Icon,
		Color:       list.Color,
		DueDate:     list.DueDate,
		OwnerID:     list.OwnerID,
		Role:        role,
		SharedUsers: toRoster(grants),
		CreatedAt:   list.CreatedAt,
		UpdatedAt:   list.UpdatedAt,
	}
}

func toAggregateView(agg *repository.ListAggregate, role roles.Role) ListView {
	return toListView(&agg.List, role, agg.Grants)
}

func toRoster(grants []models.ListShare) []SharedUser {
	roster := make([]SharedUser, 0, len(grants))
	for i := range grants {
		roster = append(roster, toSharedUser(&grants[i], grants[i].User))
	}
	return roster
}

func toSharedUser(grant *models.ListShare, user *models.User) SharedUser {
	entry := SharedUser{
		UserID:         grant.UserID,
		Role:           roles.Role(grant.Role),
		SharedByUserID: grant.SharedByUserID,
		CreatedAt:      grant.CreatedAt,
	}
	if user != nil {
		entry.Email = user.Email
		entry.Name = user.Name
	}
	return entry
}

func toUserMatch(user *models.User) UserMatch {
	return UserMatch{ID: user.ID, Email: user.Email, Name: user.Name}
}
