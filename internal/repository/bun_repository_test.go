package repository_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/terraconstructs/tasklists/internal/apperr"
	"github.com/terraconstructs/tasklists/internal/db/models"
	"github.com/terraconstructs/tasklists/internal/repository"
	"github.com/terraconstructs/tasklists/internal/testutil"
)

func createList(t *testing.T, repos repository.Repositories, owner *models.User, name string) *models.List {
	t.Helper()

	list := &models.List{Name: name, Icon: "list", Color: "#6B7280", OwnerID: owner.ID}
	require.NoError(t, repos.Lists.Create(context.Background(), list))
	return list
}

func TestBunUserRepository(t *testing.T) {
	store := testutil.NewTestStore(t)
	repos := store.Repositories()
	ctx := context.Background()

	alice := testutil.CreateUser(t, store, "alice@example.com")
	testutil.CreateUser(t, store, "bob@example.com")
	testutil.CreateUser(t, store, "bo_b@example.org")

	t.Run("get by id and email", func(t *testing.T) {
		got, err := repos.Users.GetByID(ctx, alice.ID)
		require.NoError(t, err)
		assert.Equal(t, "alice@example.com", got.Email)
		assert.Equal(t, models.SystemRoleUser, got.Role)

		got, err = repos.Users.GetByEmail(ctx, "  ALICE@example.com ")
		require.NoError(t, err)
		assert.Equal(t, alice.ID, got.ID)
	})

	t.Run("missing user is not found", func(t *testing.T) {
		_, err := repos.Users.GetByEmail(ctx, "nobody@example.com")
		assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		err := repos.Users.Create(ctx, &models.User{Email: "alice@example.com"})
		assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
	})

	t.Run("email is stored folded and unique regardless of case", func(t *testing.T) {
		carol := &models.User{Email: "  Carol@Example.COM "}
		require.NoError(t, repos.Users.Create(ctx, carol))
		assert.Equal(t, "carol@example.com", carol.Email)

		err := repos.Users.Create(ctx, &models.User{Email: "CAROL@example.com"})
		assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))

		got, err := repos.Users.GetByEmail(ctx, "carol@EXAMPLE.com")
		require.NoError(t, err)
		assert.Equal(t, carol.ID, got.ID)
	})

	t.Run("search is bounded and treats wildcards literally", func(t *testing.T) {
		users, err := repos.Users.SearchByEmail(ctx, "EXAMPLE", 2)
		require.NoError(t, err)
		assert.Len(t, users, 2)

		users, err = repos.Users.SearchByEmail(ctx, "o_b", 10)
		require.NoError(t, err)
		require.Len(t, users, 1)
		assert.Equal(t, "bo_b@example.org", users[0].Email)
	})
}

func TestBunListRepository(t *testing.T) {
	store := testutil.NewTestStore(t)
	repos := store.Repositories()
	ctx := context.Background()

	owner := testutil.CreateUser(t, store, "owner@example.com")
	other := testutil.CreateUser(t, store, "other@example.com")

	groceries := createList(t, repos, owner, "Groceries")

	t.Run("same name under same owner conflicts", func(t *testing.T) {
		err := repos.Lists.Create(ctx, &models.List{Name: "Groceries", Icon: "x", Color: "y", OwnerID: owner.ID})
		assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
	})

	t.Run("same name under another owner succeeds", func(t *testing.T) {
		createList(t, repos, other, "Groceries")
	})

	t.Run("exists and count", func(t *testing.T) {
		exists, err := repos.Lists.ExistsByOwnerAndName(ctx, owner.ID, "Groceries")
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = repos.Lists.ExistsByOwnerAndName(ctx, owner.ID, "Hardware")
		require.NoError(t, err)
		assert.False(t, exists)

		count, err := repos.Lists.CountByOwner(ctx, owner.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("get with grants loads owner and grantees", func(t *testing.T) {
		require.NoError(t, repos.Shares.Create(ctx, &models.ListShare{
			ListID: groceries.ID, UserID: other.ID, Role: "editor", SharedByUserID: owner.ID,
		}))

		agg, err := repos.Lists.GetWithGrants(ctx, groceries.ID)
		require.NoError(t, err)
		require.NotNil(t, agg.List.Owner)
		assert.Equal(t, owner.Email, agg.List.Owner.Email)
		require.Len(t, agg.Grants, 1)
		require.NotNil(t, agg.Grants[0].User)
		assert.Equal(t, other.Email, agg.Grants[0].User.Email)
		assert.NotNil(t, agg.Grant(other.ID))
		assert.Nil(t, agg.Grant(owner.ID))
	})

	t.Run("missing list is not found", func(t *testing.T) {
		_, err := repos.Lists.GetWithGrants(ctx, "0192a000-0000-7000-8000-000000000000")
		assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	})

	t.Run("rename into an existing name conflicts", func(t *testing.T) {
		hardware := createList(t, repos, owner, "Hardware")
		hardware.Name = "Groceries"
		err := repos.Lists.Update(ctx, hardware)
		assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
	})

	t.Run("delete with attached task is refused by the store", func(t *testing.T) {
		listID := groceries.ID
		require.NoError(t, repos.Tasks.Create(ctx, &models.Task{Title: "milk", OwnerID: owner.ID, ListID: &listID}))

		err := repos.Lists.Delete(ctx, groceries.ID)
		require.Error(t, err)
		assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
		e, ok := apperr.As(err)
		require.True(t, ok)
		assert.True(t, e.Precondition, "a list with tasks is a state conflict, not a duplicate")

		_, err = repos.Lists.GetWithGrants(ctx, groceries.ID)
		assert.NoError(t, err, "the refused delete must leave the list in place")
	})

	t.Run("delete cascades grants", func(t *testing.T) {
		n, err := repos.Tasks.DeleteByList(ctx, groceries.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, n)

		require.NoError(t, repos.Lists.Delete(ctx, groceries.ID))

		shares, err := repos.Shares.ListByUser(ctx, other.ID)
		require.NoError(t, err)
		assert.Empty(t, shares)
	})
}

func TestBunListShareRepository(t *testing.T) {
	store := testutil.NewTestStore(t)
	repos := store.Repositories()
	ctx := context.Background()

	owner := testutil.CreateUser(t, store, "owner@example.com")
	viewer := testutil.CreateUser(t, store, "viewer@example.com")
	list := createList(t, repos, owner, "Groceries")
	second := createList(t, repos, owner, "Errands")

	share := &models.ListShare{ListID: list.ID, UserID: viewer.ID, Role: "viewer", SharedByUserID: owner.ID}
	require.NoError(t, repos.Shares.Create(ctx, share))

	t.Run("duplicate grant conflicts", func(t *testing.T) {
		err := repos.Shares.Create(ctx, &models.ListShare{ListID: list.ID, UserID: viewer.ID, Role: "admin", SharedByUserID: owner.ID})
		assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
	})

	t.Run("update role", func(t *testing.T) {
		require.NoError(t, repos.Shares.UpdateRole(ctx, list.ID, viewer.ID, "editor"))
		got, err := repos.Shares.ListByLists(ctx, []string{list.ID})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "editor", got[0].Role)

		err = repos.Shares.UpdateRole(ctx, second.ID, viewer.ID, "editor")
		assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	})

	t.Run("list by user carries the list", func(t *testing.T) {
		shares, err := repos.Shares.ListByUser(ctx, viewer.ID)
		require.NoError(t, err)
		require.Len(t, shares, 1)
		require.NotNil(t, shares[0].List)
		assert.Equal(t, "Groceries", shares[0].List.Name)
	})

	t.Run("list by lists", func(t *testing.T) {
		shares, err := repos.Shares.ListByLists(ctx, []string{list.ID, second.ID})
		require.NoError(t, err)
		require.Len(t, shares, 1)
		assert.Equal(t, viewer.Email, shares[0].User.Email)

		shares, err = repos.Shares.ListByLists(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, shares)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, repos.Shares.Delete(ctx, list.ID, viewer.ID))
		err := repos.Shares.Delete(ctx, list.ID, viewer.ID)
		assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	})
}

func TestBunTaskRepository(t *testing.T) {
	store := testutil.NewTestStore(t)
	repos := store.Repositories()
	ctx := context.Background()

	owner := testutil.CreateUser(t, store, "owner@example.com")
	list := createList(t, repos, owner, "Inbox")
	listID := list.ID

	task := &models.Task{Title: "write report", OwnerID: owner.ID, ListID: &listID}
	require.NoError(t, repos.Tasks.Create(ctx, task))
	require.NoError(t, repos.Tasks.Create(ctx, &models.Task{Title: "loose task", OwnerID: owner.ID}))

	count, err := repos.Tasks.CountByList(ctx, list.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	byOwner, err := repos.Tasks.ListByOwner(ctx, owner.ID)
	require.NoError(t, err)
	assert.Len(t, byOwner, 2)

	task.IsStarted = true
	task.ListID = nil
	require.NoError(t, repos.Tasks.Update(ctx, task))

	got, err := repos.Tasks.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.True(t, got.IsStarted)
	assert.Nil(t, got.ListID)

	inList, err := repos.Tasks.ListByList(ctx, list.ID)
	require.NoError(t, err)
	assert.Empty(t, inList)

	require.NoError(t, repos.Tasks.Delete(ctx, task.ID))
	_, err = repos.Tasks.GetByID(ctx, task.ID)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestBunStore_RunInTx(t *testing.T) {
	store := testutil.NewTestStore(t)
	ctx := context.Background()
	owner := testutil.CreateUser(t, store, "owner@example.com")

	boom := errors.New("boom")
	err := store.RunInTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		createList(t, repos, owner, "Rolled back")
		return boom
	})
	require.ErrorIs(t, err, boom)

	count, err := store.Repositories().Lists.CountByOwner(ctx, owner.ID)
	require.NoError(t, err)
	assert.Zero(t, count)

	err = store.RunInTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		createList(t, repos, owner, "Committed")
		return nil
	})
	require.NoError(t, err)

	count, err = store.Repositories().Lists.CountByOwner(ctx, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
