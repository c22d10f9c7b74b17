// Package sdk is a Go client for the tasklists ListService.
package sdk

import (
	"context"
	"net/http"

	"connectrpc.com/connect"

	listsv1 "github.com/terraconstructs/tasklists/pkg/api/lists/v1"
)

// Client provides a high-level interface to the tasklists API.
// It wraps the Connect client with ergonomic methods and converts failures
// into *Error.
type Client struct {
	rpc     *listsv1.ListServiceClient
	baseURL string
}

// ClientOptions configures SDK client construction.
type ClientOptions struct {
	HTTPClient  *http.Client
	Credentials *Credentials
}

// ClientOption mutates ClientOptions.
type ClientOption func(*ClientOptions)

// WithHTTPClient overrides the HTTP client used for RPC calls.
func WithHTTPClient(client *http.Client) ClientOption {
	return func(opts *ClientOptions) {
		opts.HTTPClient = client
	}
}

// WithCredentials sends the bearer token on every call.
func WithCredentials(creds *Credentials) ClientOption {
	return func(opts *ClientOptions) {
		opts.Credentials = creds
	}
}

// WithToken is shorthand for WithCredentials with a non-expiring token.
func WithToken(token string) ClientOption {
	return WithCredentials(&Credentials{AccessToken: token})
}

// NewClient creates a client for the API server at baseURL.
func NewClient(baseURL string, optFns ...ClientOption) *Client {
	opts := ClientOptions{}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}

	var connectOpts []connect.ClientOption
	if opts.Credentials != nil {
		connectOpts = append(connectOpts, connect.WithInterceptors(bearerInterceptor(opts.Credentials)))
	}

	return &Client{
		rpc:     listsv1.NewListServiceClient(opts.HTTPClient, baseURL, connectOpts...),
		baseURL: baseURL,
	}
}

func bearerInterceptor(creds *Credentials) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			if creds.AccessToken != "" {
				req.Header().Set("Authorization", "Bearer "+creds.AccessToken)
			}
			return next(ctx, req)
		}
	}
}

// CreateList creates a list owned by the caller.
func (c *Client) CreateList(ctx context.Context, in listsv1.CreateListRequest) (*listsv1.List, error) {
	resp, err := c.rpc.CreateList(ctx, connect.NewRequest(&in))
	if err != nil {
		return nil, fromConnect(err)
	}
	return &resp.Msg.List, nil
}

// ListLists returns the caller's owned and shared lists, optionally
// narrowed by a go-bexpr filter.
func (c *Client) ListLists(ctx context.Context, filter string) ([]listsv1.List, error) {
	resp, err := c.rpc.ListLists(ctx, connect.NewRequest(&listsv1.ListListsRequest{Filter: filter}))
	if err != nil {
		return nil, fromConnect(err)
	}
	return resp.Msg.Lists, nil
}

// GetList fetches a single list with its roster.
func (c *Client) GetList(ctx context.Context, listID string) (*listsv1.List, error) {
	resp, err := c.rpc.GetList(ctx, connect.NewRequest(&listsv1.GetListRequest{ListID: listID}))
	if err != nil {
		return nil, fromConnect(err)
	}
	return &resp.Msg.List, nil
}

// UpdateList applies a partial update.
func (c *Client) UpdateList(ctx context.Context, in listsv1.UpdateListRequest) (*listsv1.List, error) {
	resp, err := c.rpc.UpdateList(ctx, connect.NewRequest(&in))
	if err != nil {
		return nil, fromConnect(err)
	}
	return &resp.Msg.List, nil
}

// DeleteList deletes an empty list owned by the caller.
func (c *Client) DeleteList(ctx context.Context, listID string) error {
	_, err := c.rpc.DeleteList(ctx, connect.NewRequest(&listsv1.DeleteListRequest{ListID: listID}))
	return fromConnect(err)
}

// ShareList grants the user with email the given role.
func (c *Client) ShareList(ctx context.Context, listID, email, role string) (*listsv1.SharedUser, error) {
	resp, err := c.rpc.ShareList(ctx, connect.NewRequest(&listsv1.ShareListRequest{ListID: listID, Email: email, Role: role}))
	if err != nil {
		return nil, fromConnect(err)
	}
	return &resp.Msg.SharedUser, nil
}

// UpdateSharedRole changes an existing grant.
func (c *Client) UpdateSharedRole(ctx context.Context, listID, userID, role string) (*listsv1.SharedUser, error) {
	resp, err := c.rpc.UpdateSharedRole(ctx, connect.NewRequest(&listsv1.UpdateSharedRoleRequest{ListID: listID, UserID: userID, Role: role}))
	if err != nil {
		return nil, fromConnect(err)
	}
	return &resp.Msg.SharedUser, nil
}

// RemoveSharedUser revokes a grant.
func (c *Client) RemoveSharedUser(ctx context.Context, listID, userID string) error {
	_, err := c.rpc.RemoveSharedUser(ctx, connect.NewRequest(&listsv1.RemoveSharedUserRequest{ListID: listID, UserID: userID}))
	return fromConnect(err)
}

// GetSharedUsers returns the roster of a list.
func (c *Client) GetSharedUsers(ctx context.Context, listID string) ([]listsv1.SharedUser, error) {
	resp, err := c.rpc.GetSharedUsers(ctx, connect.NewRequest(&listsv1.GetSharedUsersRequest{ListID: listID}))
	if err != nil {
		return nil, fromConnect(err)
	}
	return resp.Msg.SharedUsers, nil
}

// SearchUsers looks up share targets by email fragment.
func (c *Client) SearchUsers(ctx context.Context, query string) ([]listsv1.UserMatch, error) {
	resp, err := c.rpc.SearchUsers(ctx, connect.NewRequest(&listsv1.SearchUsersRequest{Query: query}))
	if err != nil {
		return nil, fromConnect(err)
	}
	return resp.Msg.Users, nil
}

// ProvisionDefaults seeds the caller's starter lists.
func (c *Client) ProvisionDefaults(ctx context.Context) (*listsv1.ProvisionDefaultsResponse, error) {
	resp, err := c.rpc.ProvisionDefaults(ctx, connect.NewRequest(&listsv1.ProvisionDefaultsRequest{}))
	if err != nil {
		return nil, fromConnect(err)
	}
	return resp.Msg, nil
}

// CreateTask creates a task owned by the caller.
func (c *Client) CreateTask(ctx context.Context, in listsv1.CreateTaskRequest) (*listsv1.Task, error) {
	resp, err := c.rpc.CreateTask(ctx, connect.NewRequest(&in))
	if err != nil {
		return nil, fromConnect(err)
	}
	return &resp.Msg.Task, nil
}

// GetTask fetches a task.
func (c *Client) GetTask(ctx context.Context, taskID string) (*listsv1.Task, error) {
	resp, err := c.rpc.GetTask(ctx, connect.NewRequest(&listsv1.GetTaskRequest{TaskID: taskID}))
	if err != nil {
		return nil, fromConnect(err)
	}
	return &resp.Msg.Task, nil
}

// ListTasks returns the caller's tasks, or the tasks of listID when set.
func (c *Client) ListTasks(ctx context.Context, listID string) ([]listsv1.Task, error) {
	resp, err := c.rpc.ListTasks(ctx, connect.NewRequest(&listsv1.ListTasksRequest{ListID: listID}))
	if err != nil {
		return nil, fromConnect(err)
	}
	return resp.Msg.Tasks, nil
}

// UpdateTask applies a partial update.
func (c *Client) UpdateTask(ctx context.Context, in listsv1.UpdateTaskRequest) (*listsv1.Task, error) {
	resp, err := c.rpc.UpdateTask(ctx, connect.NewRequest(&in))
	if err != nil {
		return nil, fromConnect(err)
	}
	return &resp.Msg.Task, nil
}

// DeleteTask deletes a task.
func (c *Client) DeleteTask(ctx context.Context, taskID string) error {
	_, err := c.rpc.DeleteTask(ctx, connect.NewRequest(&listsv1.DeleteTaskRequest{TaskID: taskID}))
	return fromConnect(err)
}
