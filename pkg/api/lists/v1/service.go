package listsv1

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"
)

// ListServiceName is the fully-qualified name of the service.
const ListServiceName = "tasklists.v1.ListService"

// Procedure paths, relative to the server root.
const (
	ListServiceCreateListProcedure        = "/" + ListServiceName + "/CreateList"
	ListServiceListListsProcedure         = "/" + ListServiceName + "/ListLists"
	ListServiceGetListProcedure           = "/" + ListServiceName + "/GetList"
	ListServiceUpdateListProcedure        = "/" + ListServiceName + "/UpdateList"
	ListServiceDeleteListProcedure        = "/" + ListServiceName + "/DeleteList"
	ListServiceShareListProcedure         = "/" + ListServiceName + "/ShareList"
	ListServiceUpdateSharedRoleProcedure  = "/" + ListServiceName + "/UpdateSharedRole"
	ListServiceRemoveSharedUserProcedure  = "/" + ListServiceName + "/RemoveSharedUser"
	ListServiceGetSharedUsersProcedure    = "/" + ListServiceName + "/GetSharedUsers"
	ListServiceSearchUsersProcedure       = "/" + ListServiceName + "/SearchUsers"
	ListServiceProvisionDefaultsProcedure = "/" + ListServiceName + "/ProvisionDefaults"
	ListServiceCreateTaskProcedure        = "/" + ListServiceName + "/CreateTask"
	ListServiceGetTaskProcedure           = "/" + ListServiceName + "/GetTask"
	ListServiceListTasksProcedure         = "/" + ListServiceName + "/ListTasks"
	ListServiceUpdateTaskProcedure        = "/" + ListServiceName + "/UpdateTask"
	ListServiceDeleteTaskProcedure        = "/" + ListServiceName + "/DeleteTask"
)

// ListServiceHandler is implemented by the server.
type ListServiceHandler interface {
	CreateList(context.Context, *connect.Request[CreateListRequest]) (*connect.Response[CreateListResponse], error)
	ListLists(context.Context, *connect.Request[ListListsRequest]) (*connect.Response[ListListsResponse], error)
	GetList(context.Context, *connect.Request[GetListRequest]) (*connect.Response[GetListResponse], error)
	UpdateList(context.Context, *connect.Request[UpdateListRequest]) (*connect.Response[UpdateListResponse], error)
	DeleteList(context.Context, *connect.Request[DeleteListRequest]) (*connect.Response[DeleteListResponse], error)
	ShareList(context.Context, *connect.Request[ShareListRequest]) (*connect.Response[ShareListResponse], error)
	UpdateSharedRole(context.Context, *connect.Request[UpdateSharedRoleRequest]) (*connect.Response[UpdateSharedRoleResponse], error)
	RemoveSharedUser(context.Context, *connect.Request[RemoveSharedUserRequest]) (*connect.Response[RemoveSharedUserResponse], error)
	GetSharedUsers(context.Context, *connect.Request[GetSharedUsersRequest]) (*connect.Response[GetSharedUsersResponse], error)
	SearchUsers(context.Context, *connect.Request[SearchUsersRequest]) (*connect.Response[SearchUsersResponse], error)
	ProvisionDefaults(context.Context, *connect.Request[ProvisionDefaultsRequest]) (*connect.Response[ProvisionDefaultsResponse], error)
	CreateTask(context.Context, *connect.Request[CreateTaskRequest]) (*connect.Response[CreateTaskResponse], error)
	GetTask(context.Context, *connect.Request[GetTaskRequest]) (*connect.Response[GetTaskResponse], error)
	ListTasks(context.Context, *connect.Request[ListTasksRequest]) (*connect.Response[ListTasksResponse], error)
	UpdateTask(context.Context, *connect.Request[UpdateTaskRequest]) (*connect.Response[UpdateTaskResponse], error)
	DeleteTask(context.Context, *connect.Request[DeleteTaskRequest]) (*connect.Response[DeleteTaskResponse], error)
}

// NewListServiceHandler builds an HTTP handler serving every procedure of
// svc. It returns the path prefix to mount it on.
func NewListServiceHandler(svc ListServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{WithJSON()}, opts...)
	handlers := map[string]http.Handler{
		ListServiceCreateListProcedure:        connect.NewUnaryHandler(ListServiceCreateListProcedure, svc.CreateList, opts...),
		ListServiceListListsProcedure:         connect.NewUnaryHandler(ListServiceListListsProcedure, svc.ListLists, opts...),
		ListServiceGetListProcedure:           connect.NewUnaryHandler(ListServiceGetListProcedure, svc.GetList, opts...),
		ListServiceUpdateListProcedure:        connect.NewUnaryHandler(ListServiceUpdateListProcedure, svc.UpdateList, opts...),
		ListServiceDeleteListProcedure:        connect.NewUnaryHandler(ListServiceDeleteListProcedure, svc.DeleteList, opts...),
		ListServiceShareListProcedure:         connect.NewUnaryHandler(ListServiceShareListProcedure, svc.ShareList, opts...),
		ListServiceUpdateSharedRoleProcedure:  connect.NewUnaryHandler(ListServiceUpdateSharedRoleProcedure, svc.UpdateSharedRole, opts...),
		ListServiceRemoveSharedUserProcedure:  connect.NewUnaryHandler(ListServiceRemoveSharedUserProcedure, svc.RemoveSharedUser, opts...),
		ListServiceGetSharedUsersProcedure:    connect.NewUnaryHandler(ListServiceGetSharedUsersProcedure, svc.GetSharedUsers, opts...),
		ListServiceSearchUsersProcedure:       connect.NewUnaryHandler(ListServiceSearchUsersProcedure, svc.SearchUsers, opts...),
		ListServiceProvisionDefaultsProcedure: connect.NewUnaryHandler(ListServiceProvisionDefaultsProcedure, svc.ProvisionDefaults, opts...),
		ListServiceCreateTaskProcedure:        connect.NewUnaryHandler(ListServiceCreateTaskProcedure, svc.CreateTask, opts...),
		ListServiceGetTaskProcedure:           connect.NewUnaryHandler(ListServiceGetTaskProcedure, svc.GetTask, opts...),
		ListServiceListTasksProcedure:         connect.NewUnaryHandler(ListServiceListTasksProcedure, svc.ListTasks, opts...),
		ListServiceUpdateTaskProcedure:        connect.NewUnaryHandler(ListServiceUpdateTaskProcedure, svc.UpdateTask, opts...),
		ListServiceDeleteTaskProcedure:        connect.NewUnaryHandler(ListServiceDeleteTaskProcedure, svc.DeleteTask, opts...),
	}

	prefix := "/" + ListServiceName + "/"
	return prefix, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h, ok := handlers[r.URL.Path]; ok {
			h.ServeHTTP(w, r)
			return
		}
		if strings.HasPrefix(r.URL.Path, prefix) {
			http.NotFound(w, r)
			return
		}
		http.Error(w, "unknown service", http.StatusNotFound)
	})
}

// ListServiceClient calls the service over Connect.
type ListServiceClient struct {
	createList        *connect.Client[CreateListRequest, CreateListResponse]
	listLists         *connect.Client[ListListsRequest, ListListsResponse]
	getList           *connect.Client[GetListRequest, GetListResponse]
	updateList        *connect.Client[UpdateListRequest, UpdateListResponse]
	deleteList        *connect.Client[DeleteListRequest, DeleteListResponse]
	shareList         *connect.Client[ShareListRequest, ShareListResponse]
	updateSharedRole  *connect.Client[UpdateSharedRoleRequest, UpdateSharedRoleResponse]
	removeSharedUser  *connect.Client[RemoveSharedUserRequest, RemoveSharedUserResponse]
	getSharedUsers    *connect.Client[GetSharedUsersRequest, GetSharedUsersResponse]
	searchUsers       *connect.Client[SearchUsersRequest, SearchUsersResponse]
	provisionDefaults *connect.Client[ProvisionDefaultsRequest, ProvisionDefaultsResponse]
	createTask        *connect.Client[CreateTaskRequest, CreateTaskResponse]
	getTask           *connect.Client[GetTaskRequest, GetTaskResponse]
	listTasks         *connect.Client[ListTasksRequest, ListTasksResponse]
	updateTask        *connect.Client[UpdateTaskRequest, UpdateTaskResponse]
	deleteTask        *connect.Client[DeleteTaskRequest, DeleteTaskResponse]
}

// NewListServiceClient constructs a client for the service at baseURL.
func NewListServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *ListServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{WithJSON()}, opts...)
	return &ListServiceClient{
		createList:        connect.NewClient[CreateListRequest, CreateListResponse](httpClient, baseURL+ListServiceCreateListProcedure, opts...),
		listLists:         connect.NewClient[ListListsRequest, ListListsResponse](httpClient, baseURL+ListServiceListListsProcedure, opts...),
		getList:           connect.NewClient[GetListRequest, GetListResponse](httpClient, baseURL+ListServiceGetListProcedure, opts...),
		updateList:        connect.NewClient[UpdateListRequest, UpdateListResponse](httpClient, baseURL+ListServiceUpdateListProcedure, opts...),
		deleteList:        connect.NewClient[DeleteListRequest, DeleteListResponse](httpClient, baseURL+ListServiceDeleteListProcedure, opts...),
		shareList:         connect.NewClient[ShareListRequest, ShareListResponse](httpClient, baseURL+ListServiceShareListProcedure, opts...),
		updateSharedRole:  connect.NewClient[UpdateSharedRoleRequest, UpdateSharedRoleResponse](httpClient, baseURL+ListServiceUpdateSharedRoleProcedure, opts...),
		removeSharedUser:  connect.NewClient[RemoveSharedUserRequest, RemoveSharedUserResponse](httpClient, baseURL+ListServiceRemoveSharedUserProcedure, opts...),
		getSharedUsers:    connect.NewClient[GetSharedUsersRequest, GetSharedUsersResponse](httpClient, baseURL+ListServiceGetSharedUsersProcedure, opts...),
		searchUsers:       connect.NewClient[SearchUsersRequest, SearchUsersResponse](httpClient, baseURL+ListServiceSearchUsersProcedure, opts...),
		provisionDefaults: connect.NewClient[ProvisionDefaultsRequest, ProvisionDefaultsResponse](httpClient, baseURL+ListServiceProvisionDefaultsProcedure, opts...),
		createTask:        connect.NewClient[CreateTaskRequest, CreateTaskResponse](httpClient, baseURL+ListServiceCreateTaskProcedure, opts...),
		getTask:           connect.NewClient[GetTaskRequest, GetTaskResponse](httpClient, baseURL+ListServiceGetTaskProcedure, opts...),
		listTasks:         connect.NewClient[ListTasksRequest, ListTasksResponse](httpClient, baseURL+ListServiceListTasksProcedure, opts...),
		updateTask:        connect.NewClient[UpdateTaskRequest, UpdateTaskResponse](httpClient, baseURL+ListServiceUpdateTaskProcedure, opts...),
		deleteTask:        connect.NewClient[DeleteTaskRequest, DeleteTaskResponse](httpClient, baseURL+ListServiceDeleteTaskProcedure, opts...),
	}
}

// CreateList calls tasklists.v1.ListService.CreateList.
func (c *ListServiceClient) CreateList(ctx context.Context, req *connect.Request[CreateListRequest]) (*connect.Response[CreateListResponse], error) {
	return c.createList.CallUnary(ctx, req)
}

// ListLists calls tasklists.v1.ListService.ListLists.
func (c *ListServiceClient) ListLists(ctx context.Context, req *connect.Request[ListListsRequest]) (*connect.Response[ListListsResponse], error) {
	return c.listLists.CallUnary(ctx, req)
}

// GetList calls tasklists.v1.ListService.GetList.
func (c *ListServiceClient) GetList(ctx context.Context, req *connect.Request[GetListRequest]) (*connect.Response[GetListResponse], error) {
	return c.getList.CallUnary(ctx, req)
}

// UpdateList calls tasklists.v1.ListService.UpdateList.
func (c *ListServiceClient) UpdateList(ctx context.Context, req *connect.Request[UpdateListRequest]) (*connect.Response[UpdateListResponse], error) {
	return c.updateList.CallUnary(ctx, req)
}

// DeleteList calls tasklists.v1.ListService.DeleteList.
func (c *ListServiceClient) DeleteList(ctx context.Context, req *connect.Request[DeleteListRequest]) (*connect.Response[DeleteListResponse], error) {
	return c.deleteList.CallUnary(ctx, req)
}

// ShareList calls tasklists.v1.ListService.ShareList.
func (c *ListServiceClient) ShareList(ctx context.Context, req *connect.Request[ShareListRequest]) (*connect.Response[ShareListResponse], error) {
	return c.shareList.CallUnary(ctx, req)
}

// UpdateSharedRole calls tasklists.v1.ListService.UpdateSharedRole.
func (c *ListServiceClient) UpdateSharedRole(ctx context.Context, req *connect.Request[UpdateSharedRoleRequest]) (*connect.Response[UpdateSharedRoleResponse], error) {
	return c.updateSharedRole.CallUnary(ctx, req)
}

// RemoveSharedUser calls tasklists.v1.ListService.RemoveSharedUser.
func (c *ListServiceClient) RemoveSharedUser(ctx context.Context, req *connect.Request[RemoveSharedUserRequest]) (*connect.Response[RemoveSharedUserResponse], error) {
	return c.removeSharedUser.CallUnary(ctx, req)
}

// GetSharedUsers calls tasklists.v1.ListService.GetSharedUsers.
func (c *ListServiceClient) GetSharedUsers(ctx context.Context, req *connect.Request[GetSharedUsersRequest]) (*connect.Response[GetSharedUsersResponse], error) {
	return c.getSharedUsers.CallUnary(ctx, req)
}

// SearchUsers calls tasklists.v1.ListService.SearchUsers.
func (c *ListServiceClient) SearchUsers(ctx context.Context, req *connect.Request[SearchUsersRequest]) (*connect.Response[SearchUsersResponse], error) {
	return c.searchUsers.CallUnary(ctx, req)
}

// ProvisionDefaults calls tasklists.v1.ListService.ProvisionDefaults.
func (c *ListServiceClient) ProvisionDefaults(ctx context.Context, req *connect.Request[ProvisionDefaultsRequest]) (*connect.Response[ProvisionDefaultsResponse], error) {
	return c.provisionDefaults.CallUnary(ctx, req)
}

// CreateTask calls tasklists.v1.ListService.CreateTask.
func (c *ListServiceClient) CreateTask(ctx context.Context, req *connect.Request[CreateTaskRequest]) (*connect.Response[CreateTaskResponse], error) {
	return c.createTask.CallUnary(ctx, req)
}

// GetTask calls tasklists.v1.ListService.GetTask.
func (c *ListServiceClient) GetTask(ctx context.Context, req *connect.Request[GetTaskRequest]) (*connect.Response[GetTaskResponse], error) {
	return c.getTask.CallUnary(ctx, req)
}

// ListTasks calls tasklists.v1.ListService.ListTasks.
func (c *ListServiceClient) ListTasks(ctx context.Context, req *connect.Request[ListTasksRequest]) (*connect.Response[ListTasksResponse], error) {
	return c.listTasks.CallUnary(ctx, req)
}

// UpdateTask calls tasklists.v1.ListService.UpdateTask.
func (c *ListServiceClient) UpdateTask(ctx context.Context, req *connect.Request[UpdateTaskRequest]) (*connect.Response[UpdateTaskResponse], error) {
	return c.updateTask.CallUnary(ctx, req)
}

// DeleteTask calls tasklists.v1.ListService.DeleteTask.
func (c *ListServiceClient) DeleteTask(ctx context.Context, req *connect.Request[DeleteTaskRequest]) (*connect.Response[DeleteTaskResponse], error) {
	return c.deleteTask.CallUnary(ctx, req)
}
