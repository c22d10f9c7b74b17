package tasks_test

import (
	"context"
	"testing"

	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terraconstructs/tasklists/internal/apperr"
	"github.com/terraconstructs/tasklists/internal/auth"
	"github.com/terraconstructs/tasklists/internal/db/models"
	"github.com/terraconstructs/tasklists/internal/roles"
	"github.com/terraconstructs/tasklists/internal/services/lists"
	"github.com/terraconstructs/tasklists/internal/services/tasks"
	"github.com/terraconstructs/tasklists/internal/testutil"
)

func identity(u *models.User) auth.Identity {
	return auth.Identity{UserID: u.ID, Email: u.Email, Role: u.Role}
}

func ptr[T any](v T) *T { return &v }

type fixture struct {
	tasks  *tasks.Service
	owner  *models.User
	editor *models.User
	viewer *models.User
	admin  *models.User
	listID string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	store := testutil.NewTestStore(t)
	logger, _ := logtest.NewNullLogger()
	listSvc := lists.NewService(store, logger)

	f := &fixture{
		tasks:  tasks.NewService(store, logger),
		owner:  testutil.CreateUser(t, store, "owner@example.com"),
		editor: testutil.CreateUser(t, store, "editor@example.com"),
		viewer: testutil.CreateUser(t, store, "viewer@example.com"),
		admin:  testutil.CreateAdmin(t, store, "root@example.com"),
	}
	list, err := listSvc.Create(ctx, f.owner.ID, lists.CreateInput{Name: "Groceries"})
	require.NoError(t, err)
	f.listID = list.ID
	_, err = listSvc.ShareList(ctx, f.owner.ID, list.ID, f.editor.Email, string(roles.Editor))
	require.NoError(t, err)
	_, err = listSvc.ShareList(ctx, f.owner.ID, list.ID, f.viewer.Email, string(roles.Viewer))
	require.NoError(t, err)
	return f
}

func TestCreateTask(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	t.Run("unlisted task", func(t *testing.T) {
		task, err := f.tasks.Create(ctx, identity(f.viewer), tasks.CreateInput{Title: " Call mom "})
		require.NoError(t, err)
		assert.Equal(t, "Call mom", task.Title)
		assert.Equal(t, f.viewer.ID, task.OwnerID)
		assert.Nil(t, task.ListID)
	})

	t.Run("editor attaches to shared list", func(t *testing.T) {
		task, err := f.tasks.Create(ctx, identity(f.editor), tasks.CreateInput{Title: "Milk", ListID: &f.listID})
		require.NoError(t, err)
		require.NotNil(t, task.ListID)
		assert.Equal(t, f.listID, *task.ListID)
	})

	t.Run("viewer cannot attach", func(t *testing.T) {
		_, err := f.tasks.Create(ctx, identity(f.viewer), tasks.CreateInput{Title: "Eggs", ListID: &f.listID})
		assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
	})

	t.Run("empty title", func(t *testing.T) {
		_, err := f.tasks.Create(ctx, identity(f.owner), tasks.CreateInput{Title: "  "})
		assert.Equal(t, apperr.KindInvalidInput, apperr.KindOf(err))
	})

	t.Run("malformed list id", func(t *testing.T) {
		_, err := f.tasks.Create(ctx, identity(f.owner), tasks.CreateInput{Title: "x", ListID: ptr("abc")})
		assert.Equal(t, apperr.KindInvalidInput, apperr.KindOf(err))
	})
}

func TestTaskOwnership(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	task, err := f.tasks.Create(ctx, identity(f.owner), tasks.CreateInput{Title: "Bread", ListID: &f.listID})
	require.NoError(t, err)

	_, err = f.tasks.Get(ctx, identity(f.editor), task.ID)
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err), "list access does not grant task access")

	got, err := f.tasks.Get(ctx, identity(f.admin), task.ID)
	require.NoError(t, err)
	assert.Equal(t, "Bread", got.Title)

	_, err = f.tasks.Update(ctx, identity(f.viewer), task.ID, tasks.Patch{IsCompleted: ptr(true)})
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))

	err = f.tasks.Delete(ctx, identity(f.editor), task.ID)
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))

	_, err = f.tasks.Get(ctx, identity(f.owner), "0192a000-0000-7000-8000-000000000000")
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestUpdateTaskListGate(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	task, err := f.tasks.Create(ctx, identity(f.viewer), tasks.CreateInput{Title: "Butter"})
	require.NoError(t, err)

	_, err = f.tasks.Update(ctx, identity(f.viewer), task.ID, tasks.Patch{ListID: &f.listID})
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))

	updated, err := f.tasks.Update(ctx, identity(f.viewer), task.ID, tasks.Patch{IsStarted: ptr(true), Description: ptr("salted")})
	require.NoError(t, err)
	assert.True(t, updated.IsStarted)
	require.NotNil(t, updated.Description)
	assert.Equal(t, "salted", *updated.Description)

	moved, err := f.tasks.Create(ctx, identity(f.editor), tasks.CreateInput{Title: "Jam", ListID: &f.listID})
	require.NoError(t, err)

	// unchanged list id is not re-checked; clearing never is
	_, err = f.tasks.Update(ctx, identity(f.editor), moved.ID, tasks.Patch{ListID: &f.listID, Title: ptr("Jam jar")})
	require.NoError(t, err)
	cleared, err := f.tasks.Update(ctx, identity(f.editor), moved.ID, tasks.Patch{ClearListID: true})
	require.NoError(t, err)
	assert.Nil(t, cleared.ListID)
	assert.Equal(t, "Jam jar", cleared.Title)

	_, err = f.tasks.Update(ctx, identity(f.editor), moved.ID, tasks.Patch{ClearListID: true, ListID: &f.listID})
	assert.Equal(t, apperr.KindInvalidInput, apperr.KindOf(err))
}

func TestListTasks(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.tasks.Create(ctx, identity(f.owner), tasks.CreateInput{Title: "A", ListID: &f.listID})
	require.NoError(t, err)
	_, err = f.tasks.Create(ctx, identity(f.editor), tasks.CreateInput{Title: "B", ListID: &f.listID})
	require.NoError(t, err)
	_, err = f.tasks.Create(ctx, identity(f.owner), tasks.CreateInput{Title: "C"})
	require.NoError(t, err)

	mine, err := f.tasks.List(ctx, identity(f.owner), "")
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	inList, err := f.tasks.List(ctx, identity(f.viewer), f.listID)
	require.NoError(t, err)
	require.Len(t, inList, 2)
	assert.Equal(t, "A", inList[0].Title)
	assert.Equal(t, "B", inList[1].Title)

	_, err = f.tasks.List(ctx, identity(f.admin), f.listID)
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
}

func TestDeleteTask(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	task, err := f.tasks.Create(ctx, identity(f.owner), tasks.CreateInput{Title: "Rice"})
	require.NoError(t, err)

	require.NoError(t, f.tasks.Delete(ctx, identity(f.owner), task.ID))
	err = f.tasks.Delete(ctx, identity(f.owner), task.ID)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}
