// Package listsv1 defines the wire records and procedures of the
// tasklists.v1.ListService Connect service. Messages are plain Go structs
// encoded as JSON.
package listsv1

import "time"

// List is a list as seen by the caller.
type List struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Icon        string       `json:"icon"`
	Color       string       `json:"color"`
	DueDate     *time.Time   `json:"dueDate,omitempty"`
	OwnerID     string       `json:"ownerId"`
	Role        string       `json:"role"`
	SharedUsers []SharedUser `json:"sharedUsers"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

// SharedUser is a roster entry.
type SharedUser struct {
	UserID         string    `json:"userId"`
	Email          string    `json:"email"`
	Name           string    `json:"name"`
	Role           string    `json:"role"`
	SharedByUserID string    `json:"sharedByUserId"`
	CreatedAt      time.Time `json:"createdAt"`
}

// UserMatch is a directory search hit.
type UserMatch struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Task is an owner-scoped task.
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description *string    `json:"description,omitempty"`
	IsCompleted bool       `json:"isCompleted"`
	IsStarted   bool       `json:"isStarted"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	OwnerID     string     `json:"ownerId"`
	ListID      *string    `json:"listId,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// ProvisionedList summarises a starter list.
type ProvisionedList struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Icon      string `json:"icon"`
	Color     string `json:"color"`
	TaskCount int    `json:"taskCount"`
}

type CreateListRequest struct {
	Name    string     `json:"name"`
	Icon    string     `json:"icon,omitempty"`
	Color   string     `json:"color,omitempty"`
	DueDate *time.Time `json:"dueDate,omitempty"`
}

type CreateListResponse struct {
	List List `json:"list"`
}

type ListListsRequest struct {
	// Filter is an optional go-bexpr expression over id, name, icon, color,
	// role, owner_id and shared_count.
	Filter string `json:"filter,omitempty"`
}

type ListListsResponse struct {
	Lists []List `json:"lists"`
}

type GetListRequest struct {
	ListID string `json:"listId"`
}

type GetListResponse struct {
	List List `json:"list"`
}

// UpdateListRequest is a partial update; absent fields are left untouched.
type UpdateListRequest struct {
	ListID       string     `json:"listId"`
	Name         *string    `json:"name,omitempty"`
	Icon         *string    `json:"icon,omitempty"`
	Color        *string    `json:"color,omitempty"`
	DueDate      *time.Time `json:"dueDate,omitempty"`
	ClearDueDate bool       `json:"clearDueDate,omitempty"`
}

type UpdateListResponse struct {
	List List `json:"list"`
}

type DeleteListRequest struct {
	ListID string `json:"listId"`
}

type DeleteListResponse struct{}

type ShareListRequest struct {
	ListID string `json:"listId"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

type ShareListResponse struct {
	SharedUser SharedUser `json:"sharedUser"`
}

type UpdateSharedRoleRequest struct {
	ListID string `json:"listId"`
	UserID string `json:"userId"`
	Role   string `json:"role"`
}

type UpdateSharedRoleResponse struct {
	SharedUser SharedUser `json:"sharedUser"`
}

type RemoveSharedUserRequest struct {
	ListID string `json:"listId"`
	UserID string `json:"userId"`
}

type RemoveSharedUserResponse struct{}

type GetSharedUsersRequest struct {
	ListID string `json:"listId"`
}

type GetSharedUsersResponse struct {
	SharedUsers []SharedUser `json:"sharedUsers"`
}

type SearchUsersRequest struct {
	Query string `json:"query"`
}

type SearchUsersResponse struct {
	Users []UserMatch `json:"users"`
}

type ProvisionDefaultsRequest struct{}

type ProvisionDefaultsResponse struct {
	AlreadyProvisioned bool              `json:"alreadyProvisioned"`
	Lists              []ProvisionedList `json:"lists"`
	TaskCount          int               `json:"taskCount"`
}

type CreateTaskRequest struct {
	Title       string     `json:"title"`
	Description *string    `json:"description,omitempty"`
	IsStarted   bool       `json:"isStarted,omitempty"`
	IsCompleted bool       `json:"isCompleted,omitempty"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	ListID      *string    `json:"listId,omitempty"`
}

type CreateTaskResponse struct {
	Task Task `json:"task"`
}

type GetTaskRequest struct {
	TaskID string `json:"taskId"`
}

type GetTaskResponse struct {
	Task Task `json:"task"`
}

// ListTasksRequest lists the caller's tasks, or with ListID the tasks of
// that list.
type ListTasksRequest struct {
	ListID string `json:"listId,omitempty"`
}

type ListTasksResponse struct {
	Tasks []Task `json:"tasks"`
}

type UpdateTaskRequest struct {
	TaskID           string     `json:"taskId"`
	Title            *string    `json:"title,omitempty"`
	Description      *string    `json:"description,omitempty"`
	ClearDescription bool       `json:"clearDescription,omitempty"`
	IsCompleted      *bool      `json:"isCompleted,omitempty"`
	IsStarted        *bool      `json:"isStarted,omitempty"`
	DueDate          *time.Time `json:"dueDate,omitempty"`
	ClearDueDate     bool       `json:"clearDueDate,omitempty"`
	ListID           *string    `json:"listId,omitempty"`
	ClearListID      bool       `json:"clearListId,omitempty"`
}

type UpdateTaskResponse struct {
	Task Task `json:"task"`
}

type DeleteTaskRequest struct {
	TaskID string `json:"taskId"`
}

type DeleteTaskResponse struct{}
