package server

import (
	"github.com/terraconstructs/tasklists/internal/services/lists"
	"github.com/terraconstructs/tasklists/internal/services/provisioning"
	"github.com/terraconstructs/tasklists/internal/services/tasks"
	listsv1 "github.com/terraconstructs/tasklists/pkg/api/lists/v1"
)

func listToWire(v *lists.ListView) listsv1.List {
	return listsv1.List{
		ID:          v.ID,
		Name:        v.Name,
		Icon:        v.Icon,
		Color:       v.Color,
		DueDate:     v.DueDate,
		OwnerID:     v.OwnerID,
		Role:        v.Role.String(),
		SharedUsers: rosterToWire(v.SharedUsers),
		CreatedAt:   v.CreatedAt,
		UpdatedAt:   v.UpdatedAt,
	}
}

func rosterToWire(roster []lists.SharedUser) []listsv1.SharedUser {
	out := make([]listsv1.SharedUser, 0, len(roster))
	for i := range roster {
		out = append(out, sharedUserToWire(&roster[i]))
	}
	return out
}

func sharedUserToWire(u *lists.SharedUser) listsv1.SharedUser {
	return listsv1.SharedUser{
		UserID:         u.UserID,
		Email:          u.Email,
		Name:           u.Name,
		Role:           u.Role.String(),
		SharedByUserID: u.SharedByUserID,
		CreatedAt:      u.CreatedAt,
	}
}

func taskToWire(t *tasks.TaskView) listsv1.Task {
	return listsv1.Task{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		IsCompleted: t.IsCompleted,
		IsStarted:   t.IsStarted,
		DueDate:     t.DueDate,
		OwnerID:     t.OwnerID,
		ListID:      t.ListID,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func provisionToWire(r *provisioning.Result) *listsv1.ProvisionDefaultsResponse {
	resp := &listsv1.ProvisionDefaultsResponse{
		AlreadyProvisioned: r.AlreadyProvisioned,
		Lists:              make([]listsv1.ProvisionedList, 0, len(r.Lists)),
		TaskCount:          r.TaskCount,
	}
	for _, l := range r.Lists {
		resp.Lists = append(resp.Lists, listsv1.ProvisionedList{
			ID:        l.ID,
			Name:      l.Name,
			Icon:      l.Icon,
			Color:     l.Color,
			TaskCount: l.TaskCount,
		})
	}
	return resp
}
