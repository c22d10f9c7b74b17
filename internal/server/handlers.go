package server

import (
	"context"
	"errors"

	"connectrpc.com/connect"
	"github.com/sirupsen/logrus"

	"github.com/terraconstructs/tasklists/internal/auth"
	"github.com/terraconstructs/tasklists/internal/services/lists"
	"github.com/terraconstructs/tasklists/internal/services/provisioning"
	"github.com/terraconstructs/tasklists/internal/services/tasks"
	listsv1 "github.com/terraconstructs/tasklists/pkg/api/lists/v1"
)

// ListServiceHandler wires the core services to the Connect contract.
type ListServiceHandler struct {
	lists       *lists.Service
	tasks       *tasks.Service
	provisioner *provisioning.Service
	logger      logrus.FieldLogger
}

var _ listsv1.ListServiceHandler = (*ListServiceHandler)(nil)

// NewListServiceHandler constructs a handler backed by the provided services.
func NewListServiceHandler(listSvc *lists.Service, taskSvc *tasks.Service, provisioner *provisioning.Service, logger logrus.FieldLogger) *ListServiceHandler {
	return &ListServiceHandler{lists: listSvc, tasks: taskSvc, provisioner: provisioner, logger: logger}
}

var errNoIdentity = errors.New("no identity on request")

// caller returns the identity the authn interceptor attached.
func caller(ctx context.Context) (auth.Identity, error) {
	id, ok := auth.IdentityFromContext(ctx)
	if !ok {
		return auth.Identity{}, connect.NewError(connect.CodeUnauthenticated, errNoIdentity)
	}
	return id, nil
}

func (h *ListServiceHandler) CreateList(
	ctx context.Context,
	req *connect.Request[listsv1.CreateListRequest],
) (*connect.Response[listsv1.CreateListResponse], error) {
	id, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	view, err := h.lists.Create(ctx, id.UserID, lists.CreateInput{
		Name:    req.Msg.Name,
		Icon:    req.Msg.Icon,
		Color:   req.Msg.Color,
		DueDate: req.Msg.DueDate,
	})
	if err != nil {
		return nil, h.toConnectError(ctx, req.Spec().Procedure, err)
	}
	return connect.NewResponse(&listsv1.CreateListResponse{List: listToWire(view)}), nil
}

func (h *ListServiceHandler) ListLists(
	ctx context.Context,
	req *connect.Request[listsv1.ListListsRequest],
) (*connect.Response[listsv1.ListListsResponse], error) {
	id, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	views, err := h.lists.FindAll(ctx, id.UserID, req.Msg.Filter)
	if err != nil {
		return nil, h.toConnectError(ctx, req.Spec().Procedure, err)
	}
	resp := &listsv1.ListListsResponse{Lists: make([]listsv1.List, 0, len(views))}
	for i := range views {
		resp.Lists = append(resp.Lists, listToWire(&views[i]))
	}
	return connect.NewResponse(resp), nil
}

func (h *ListServiceHandler) GetList(
	ctx context.Context,
	req *connect.Request[listsv1.GetListRequest],
) (*connect.Response[listsv1.GetListResponse], error) {
	id, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	view, err := h.lists.FindOne(ctx, id.UserID, req.Msg.ListID)
	if err != nil {
		return nil, h.toConnectError(ctx, req.Spec().Procedure, err)
	}
	return connect.NewResponse(&listsv1.GetListResponse{List: listToWire(view)}), nil
}

func (h *ListServiceHandler) UpdateList(
	ctx context.Context,
	req *connect.Request[listsv1.UpdateListRequest],
) (*connect.Response[listsv1.UpdateListResponse], error) {
	id, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	view, err := h.lists.Update(ctx, id.UserID, req.Msg.ListID, lists.Patch{
		Name:         req.Msg.Name,
		Icon:         req.Msg.Icon,
		Color:        req.Msg.Color,
		DueDate:      req.Msg.DueDate,
		ClearDueDate: req.Msg.ClearDueDate,
	})
	if err != nil {
		return nil, h.toConnectError(ctx, req.Spec().Procedure, err)
	}
	return connect.NewResponse(&listsv1.UpdateListResponse{List: listToWire(view)}), nil
}

func (h *ListServiceHandler) DeleteList(
	ctx context.Context,
	req *connect.Request[listsv1.DeleteListRequest],
) (*connect.Response[listsv1.DeleteListResponse], error) {
	id, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	if err := h.lists.Remove(ctx, id.UserID, req.Msg.ListID); err != nil {
		return nil, h.toConnectError(ctx, req.Spec().Procedure, err)
	}
	return connect.NewResponse(&listsv1.DeleteListResponse{}), nil
}

func (h *ListServiceHandler) ShareList(
	ctx context.Context,
	req *connect.Request[listsv1.ShareListRequest],
) (*connect.Response[listsv1.ShareListResponse], error) {
	id, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	entry, err := h.lists.ShareList(ctx, id.UserID, req.Msg.ListID, req.Msg.Email, req.Msg.Role)
	if err != nil {
		return nil, h.toConnectError(ctx, req.Spec().Procedure, err)
	}
	return connect.NewResponse(&listsv1.ShareListResponse{SharedUser: sharedUserToWire(entry)}), nil
}

func (h *ListServiceHandler) UpdateSharedRole(
	ctx context.Context,
	req *connect.Request[listsv1.UpdateSharedRoleRequest],
) (*connect.Response[listsv1.UpdateSharedRoleResponse], error) {
	id, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	entry, err := h.lists.UpdateSharedRole(ctx, id.UserID, req.Msg.ListID, req.Msg.UserID, req.Msg.Role)
	if err != nil {
		return nil, h.toConnectError(ctx, req.Spec().Procedure, err)
	}
	return connect.NewResponse(&listsv1.UpdateSharedRoleResponse{SharedUser: sharedUserToWire(entry)}), nil
}

func (h *ListServiceHandler) RemoveSharedUser(
	ctx context.Context,
	req *connect.Request[listsv1.RemoveSharedUserRequest],
) (*connect.Response[listsv1.RemoveSharedUserResponse], error) {
	id, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	if err := h.lists.RemoveSharedUser(ctx, id.UserID, req.Msg.ListID, req.Msg.UserID); err != nil {
		return nil, h.toConnectError(ctx, req.Spec().Procedure, err)
	}
	return connect.NewResponse(&listsv1.RemoveSharedUserResponse{}), nil
}

func (h *ListServiceHandler) GetSharedUsers(
	ctx context.Context,
	req *connect.Request[listsv1.GetSharedUsersRequest],
) (*connect.Response[listsv1.GetSharedUsersResponse], error) {
	id, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	roster, err := h.lists.SharedUsers(ctx, id.UserID, req.Msg.ListID)
	if err != nil {
		return nil, h.toConnectError(ctx, req.Spec().Procedure, err)
	}
	return connect.NewResponse(&listsv1.GetSharedUsersResponse{SharedUsers: rosterToWire(roster)}), nil
}

func (h *ListServiceHandler) SearchUsers(
	ctx context.Context,
	req *connect.Request[listsv1.SearchUsersRequest],
) (*connect.Response[listsv1.SearchUsersResponse], error) {
	if _, err := caller(ctx); err != nil {
		return nil, err
	}
	found, err := h.lists.SearchUsers(ctx, req.Msg.Query)
	if err != nil {
		return nil, h.toConnectError(ctx, req.Spec().Procedure, err)
	}
	resp := &listsv1.SearchUsersResponse{Users: make([]listsv1.UserMatch, 0, len(found))}
	for _, u := range found {
		resp.Users = append(resp.Users, listsv1.UserMatch{ID: u.ID, Email: u.Email, Name: u.Name})
	}
	return connect.NewResponse(resp), nil
}

func (h *ListServiceHandler) ProvisionDefaults(
	ctx context.Context,
	req *connect.Request[listsv1.ProvisionDefaultsRequest],
) (*connect.Response[listsv1.ProvisionDefaultsResponse], error) {
	id, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	result, err := h.provisioner.Provision(ctx, id.UserID)
	if err != nil {
		return nil, h.toConnectError(ctx, req.Spec().Procedure, err)
	}
	return connect.NewResponse(provisionToWire(result)), nil
}

func (h *ListServiceHandler) CreateTask(
	ctx context.Context,
	req *connect.Request[listsv1.CreateTaskRequest],
) (*connect.Response[listsv1.CreateTaskResponse], error) {
	id, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	task, err := h.tasks.Create(ctx, id, tasks.CreateInput{
		Title:       req.Msg.Title,
		Description: req.Msg.Description,
		IsStarted:   req.Msg.IsStarted,
		IsCompleted: req.Msg.IsCompleted,
		DueDate:     req.Msg.DueDate,
		ListID:      req.Msg.ListID,
	})
	if err != nil {
		return nil, h.toConnectError(ctx, req.Spec().Procedure, err)
	}
	return connect.NewResponse(&listsv1.CreateTaskResponse{Task: taskToWire(task)}), nil
}

func (h *ListServiceHandler) GetTask(
	ctx context.Context,
	req *connect.Request[listsv1.GetTaskRequest],
) (*connect.Response[listsv1.GetTaskResponse], error) {
	id, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	task, err := h.tasks.Get(ctx, id, req.Msg.TaskID)
	if err != nil {
		return nil, h.toConnectError(ctx, req.Spec().Procedure, err)
	}
	return connect.NewResponse(&listsv1.GetTaskResponse{Task: taskToWire(task)}), nil
}

func (h *ListServiceHandler) ListTasks(
	ctx context.Context,
	req *connect.Request[listsv1.ListTasksRequest],
) (*connect.Response[listsv1.ListTasksResponse], error) {
	id, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	views, err := h.tasks.List(ctx, id, req.Msg.ListID)
	if err != nil {
		return nil, h.toConnectError(ctx, req.Spec().Procedure, err)
	}
	resp := &listsv1.ListTasksResponse{Tasks: make([]listsv1.Task, 0, len(views))}
	for i := range views {
		resp.Tasks = append(resp.Tasks, taskToWire(&views[i]))
	}
	return connect.NewResponse(resp), nil
}

func (h *ListServiceHandler) UpdateTask(
	ctx context.Context,
	req *connect.Request[listsv1.UpdateTaskRequest],
) (*connect.Response[listsv1.UpdateTaskResponse], error) {
	id, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	task, err := h.tasks.Update(ctx, id, req.Msg.TaskID, tasks.Patch{
		Title:            req.Msg.Title,
		Description:      req.Msg.Description,
		ClearDescription: req.Msg.ClearDescription,
		IsCompleted:      req.Msg.IsCompleted,
		IsStarted:        req.Msg.IsStarted,
		DueDate:          req.Msg.DueDate,
		ClearDueDate:     req.Msg.ClearDueDate,
		ListID:           req.Msg.ListID,
		ClearListID:      req.Msg.ClearListID,
	})
	if err != nil {
		return nil, h.toConnectError(ctx, req.Spec().Procedure, err)
	}
	return connect.NewResponse(&listsv1.UpdateTaskResponse{Task: taskToWire(task)}), nil
}

func (h *ListServiceHandler) DeleteTask(
	ctx context.Context,
	req *connect.Request[listsv1.DeleteTaskRequest],
) (*connect.Response[listsv1.DeleteTaskResponse], error) {
	id, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	if err := h.tasks.Delete(ctx, id, req.Msg.TaskID); err != nil {
		return nil, h.toConnectError(ctx, req.Spec().Procedure, err)
	}
	return connect.NewResponse(&listsv1.DeleteTaskResponse{}), nil
}
