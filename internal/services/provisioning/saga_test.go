package provisioning_test

import (
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/terraconstructs/tasklists/internal/apperr"
	"github.com/terraconstructs/tasklists/internal/db/models"
	"github.com/terraconstructs/tasklists/internal/repository"
	"github.com/terraconstructs/tasklists/internal/services/lists"
	"github.com/terraconstructs/tasklists/internal/services/provisioning"
	"github.com/terraconstructs/tasklists/internal/testutil"
)

type mockListCreator struct {
	mock.Mock
}

func (m *mockListCreator) Create(ctx context.Context, ownerID string, in lists.CreateInput) (*lists.ListView, error) {
	args := m.Called(ctx, ownerID, in)
	if fn, ok := args.Get(0).(func(context.Context, string, lists.CreateInput) (*lists.ListView, error)); ok {
		return fn(ctx, ownerID, in)
	}
	view, _ := args.Get(0).(*lists.ListView)
	return view, args.Error(1)
}

func ownedCounts(t *testing.T, store repository.Store, userID string) (int, int) {
	t.Helper()
	ctx := context.Background()
	repos := store.Repositories()
	listCount, err := repos.Lists.CountByOwner(ctx, userID)
	require.NoError(t, err)
	tasks, err := repos.Tasks.ListByOwner(ctx, userID)
	require.NoError(t, err)
	return listCount, len(tasks)
}

func TestProvisionIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewTestStore(t)
	logger, _ := logtest.NewNullLogger()
	svc := provisioning.NewService(store, lists.NewService(store, logger), logger)
	user := testutil.CreateUser(t, store, "new@example.com")

	first, err := svc.Provision(ctx, user.ID)
	require.NoError(t, err)
	assert.False(t, first.AlreadyProvisioned)
	require.Len(t, first.Lists, 2)
	assert.Equal(t, "Personal", first.Lists[0].Name)
	assert.Equal(t, "user", first.Lists[0].Icon)
	assert.Equal(t, "Work", first.Lists[1].Name)
	assert.Equal(t, "briefcase", first.Lists[1].Icon)
	assert.Equal(t, provisioning.StarterTaskCount(), first.TaskCount)
	assert.Equal(t, first.TaskCount, first.Lists[0].TaskCount+first.Lists[1].TaskCount)

	second, err := svc.Provision(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, second.AlreadyProvisioned)
	assert.Empty(t, second.Lists)
	assert.Zero(t, second.TaskCount)

	listCount, taskCount := ownedCounts(t, store, user.ID)
	assert.Equal(t, 2, listCount)
	assert.Equal(t, provisioning.StarterTaskCount(), taskCount)
}

func TestProvisionCompensatesPartialFailure(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewTestStore(t)
	logger, hook := logtest.NewNullLogger()
	listSvc := lists.NewService(store, logger)
	user := testutil.CreateUser(t, store, "new@example.com")

	creator := new(mockListCreator)
	creator.On("Create", mock.Anything, user.ID, mock.MatchedBy(func(in lists.CreateInput) bool { return in.Name == "Personal" })).
		Return(func(ctx context.Context, ownerID string, in lists.CreateInput) (*lists.ListView, error) {
			return listSvc.Create(ctx, ownerID, in)
		}).
		Once()
	creator.On("Create", mock.Anything, user.ID, mock.MatchedBy(func(in lists.CreateInput) bool { return in.Name == "Work" })).
		Return(nil, errors.New("store unavailable")).
		Once()

	svc := provisioning.NewService(store, creator, logger)
	_, err := svc.Provision(ctx, user.ID)
	require.Error(t, err)
	assert.Equal(t, apperr.KindInternal, apperr.KindOf(err))
	creator.AssertExpectations(t)

	listCount, taskCount := ownedCounts(t, store, user.ID)
	assert.Zero(t, listCount)
	assert.Zero(t, taskCount)

	var warned bool
	for _, entry := range hook.AllEntries() {
		if entry.Level == logrus.WarnLevel {
			warned = true
		}
	}
	assert.True(t, warned)

	// a retry behaves like a first call
	retry := provisioning.NewService(store, listSvc, logger)
	result, err := retry.Provision(ctx, user.ID)
	require.NoError(t, err)
	assert.False(t, result.AlreadyProvisioned)
	assert.Len(t, result.Lists, 2)
}

// failingTasks fails the failOn-th Create call and delegates everything else.
type failingTasks struct {
	repository.TaskRepository
	failOn int
	calls  int
}

func (f *failingTasks) Create(ctx context.Context, task *models.Task) error {
	f.calls++
	if f.calls == f.failOn {
		return errors.New("disk I/O error")
	}
	return f.TaskRepository.Create(ctx, task)
}

type failingTaskStore struct {
	repository.Store
	tasks *failingTasks
}

func (s *failingTaskStore) Repositories() repository.Repositories {
	repos := s.Store.Repositories()
	s.tasks.TaskRepository = repos.Tasks
	repos.Tasks = s.tasks
	return repos
}

func TestProvisionCompensatesTaskFailure(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewTestStore(t)
	logger, _ := logtest.NewNullLogger()
	listSvc := lists.NewService(store, logger)
	user := testutil.CreateUser(t, store, "new@example.com")

	// Personal carries three tasks, so the fourth write is the first Work task
	// and both lists exist when it fails.
	tasks := &failingTasks{failOn: 4}
	svc := provisioning.NewService(&failingTaskStore{Store: store, tasks: tasks}, listSvc, logger)

	_, err := svc.Provision(ctx, user.ID)
	require.Error(t, err)
	assert.Equal(t, apperr.KindInternal, apperr.KindOf(err))
	assert.Equal(t, 4, tasks.calls)

	listCount, taskCount := ownedCounts(t, store, user.ID)
	assert.Zero(t, listCount)
	assert.Zero(t, taskCount)

	retry := provisioning.NewService(store, listSvc, logger)
	result, err := retry.Provision(ctx, user.ID)
	require.NoError(t, err)
	assert.False(t, result.AlreadyProvisioned)
	assert.Len(t, result.Lists, 2)
	assert.Equal(t, provisioning.StarterTaskCount(), result.TaskCount)

	listCount, taskCount = ownedCounts(t, store, user.ID)
	assert.Equal(t, 2, listCount)
	assert.Equal(t, provisioning.StarterTaskCount(), taskCount)
}

func TestProvisionUnknownUser(t *testing.T) {
	store := testutil.NewTestStore(t)
	logger, _ := logtest.NewNullLogger()
	svc := provisioning.NewService(store, lists.NewService(store, logger), logger)

	_, err := svc.Provision(context.Background(), "0192a000-0000-7000-8000-000000000000")
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	_, err = svc.Provision(context.Background(), "nope")
	assert.Equal(t, apperr.KindInvalidInput, apperr.KindOf(err))
}
