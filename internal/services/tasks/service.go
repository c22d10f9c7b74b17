// Package tasks implements owner-scoped task operations. Tasks are never
// shared; placing a task in a list is a list mutation and needs editor
// access on that list.
package tasks

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"github.com/terraconstructs/tasklists/internal/apperr"
	"github.com/terraconstructs/tasklists/internal/auth"
	"github.com/terraconstructs/tasklists/internal/db/bunx"
	"github.com/terraconstructs/tasklists/internal/db/models"
	"github.com/terraconstructs/tasklists/internal/repository"
	"github.com/terraconstructs/tasklists/internal/roles"
	"github.com/terraconstructs/tasklists/internal/services/access"
)

const MaxTitleLength = 200

// TaskView is the response record for a task.
type TaskView struct {
	ID          string
	Title       string
	Description *string
	IsCompleted bool
	IsStarted   bool
	DueDate     *time.Time
	OwnerID     string
	ListID      *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CreateInput carries the fields of a new task.
type CreateInput struct {
	Title       string
	Description *string
	IsStarted   bool
	IsCompleted bool
	DueDate     *time.Time
	ListID      *string
}

// Patch is a partial update. The Clear flags unset optional fields.
type Patch struct {
	Title            *string
	Description      *string
	ClearDescription bool
	IsCompleted      *bool
	IsStarted        *bool
	DueDate          *time.Time
	ClearDueDate     bool
	ListID           *string
	ClearListID      bool
}

// Service orchestrates task persistence.
type Service struct {
	store  repository.Store
	logger logrus.FieldLogger
}

// NewService constructs a new Service instance.
func NewService(store repository.Store, logger logrus.FieldLogger) *Service {
	return &Service{store: store, logger: logger}
}

// Create stores a task owned by the caller, optionally inside a list the
// caller can edit.
func (s *Service) Create(ctx context.Context, caller auth.Identity, in CreateInput) (*TaskView, error) {
	title, err := normalizeTitle(in.Title)
	if err != nil {
		return nil, err
	}
	if in.ListID != nil {
		if err := bunx.ValidateID("list_id", *in.ListID); err != nil {
			return nil, err
		}
	}

	task := &models.Task{
		Title:       title,
		Description: in.Description,
		IsStarted:   in.IsStarted,
		IsCompleted: in.IsCompleted,
		DueDate:     in.DueDate,
		OwnerID:     caller.UserID,
		ListID:      in.ListID,
	}

	err = s.store.RunInTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		if task.ListID != nil {
			if _, err := access.Require(ctx, repos, *task.ListID, caller.UserID, roles.Editor); err != nil {
				return err
			}
		}
		return repos.Tasks.Create(ctx, task)
	})
	if err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}

	view := toTaskView(task)
	return &view, nil
}

// Get returns a task to its owner or a system admin.
func (s *Service) Get(ctx context.Context, caller auth.Identity, taskID string) (*TaskView, error) {
	task, err := s.load(ctx, s.store.Repositories(), caller, taskID)
	if err != nil {
		return nil, err
	}
	view := toTaskView(task)
	return &view, nil
}

// List returns the caller's own tasks, or with a listID the tasks of a list
// the caller holds any role on.
func (s *Service) List(ctx context.Context, caller auth.Identity, listID string) ([]TaskView, error) {
	repos := s.store.Repositories()

	var (
		rows []models.Task
		err  error
	)
	if listID == "" {
		rows, err = repos.Tasks.ListByOwner(ctx, caller.UserID)
	} else {
		if _, err := access.Resolve(ctx, repos, listID, caller.UserID); err != nil {
			return nil, err
		}
		rows, err = repos.Tasks.ListByList(ctx, listID)
	}
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	views := make([]TaskView, 0, len(rows))
	for i := range rows {
		views = append(views, toTaskView(&rows[i]))
	}
	return views, nil
}

// Update applies patch. Moving the task into a list, or between lists,
// requires editor access on the destination.
func (s *Service) Update(ctx context.Context, caller auth.Identity, taskID string, patch Patch) (*TaskView, error) {
	if err := validatePatch(&patch); err != nil {
		return nil, err
	}

	var view TaskView
	err := s.store.RunInTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		task, err := s.load(ctx, repos, caller, taskID)
		if err != nil {
			return err
		}

		if patch.Title != nil {
			task.Title = *patch.Title
		}
		switch {
		case patch.ClearDescription:
			task.Description = nil
		case patch.Description != nil:
			task.Description = patch.Description
		}
		if patch.IsCompleted != nil {
			task.IsCompleted = *patch.IsCompleted
		}
		if patch.IsStarted != nil {
			task.IsStarted = *patch.IsStarted
		}
		switch {
		case patch.ClearDueDate:
			task.DueDate = nil
		case patch.DueDate != nil:
			task.DueDate = patch.DueDate
		}
		switch {
		case patch.ClearListID:
			task.ListID = nil
		case patch.ListID != nil && (task.ListID == nil || *task.ListID != *patch.ListID):
			if _, err := access.Require(ctx, repos, *patch.ListID, caller.UserID, roles.Editor); err != nil {
				return err
			}
			task.ListID = patch.ListID
		}

		if err := repos.Tasks.Update(ctx, task); err != nil {
			return err
		}
		view = toTaskView(task)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}
	return &view, nil
}

// Delete removes a task owned by the caller, or any task for a system admin.
func (s *Service) Delete(ctx context.Context, caller auth.Identity, taskID string) error {
	err := s.store.RunInTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		if _, err := s.load(ctx, repos, caller, taskID); err != nil {
			return err
		}
		return repos.Tasks.Delete(ctx, taskID)
	})
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	s.logger.WithFields(logrus.Fields{"task_id": taskID, "actor": caller.UserID}).Debug("task deleted")
	return nil
}

// load fetches the task and checks the caller may act on it.
func (s *Service) load(ctx context.Context, repos repository.Repositories, caller auth.Identity, taskID string) (*models.Task, error) {
	if err := bunx.ValidateID("task_id", taskID); err != nil {
		return nil, err
	}
	task, err := repos.Tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task.OwnerID != caller.UserID && !caller.IsAdmin() {
		return nil, apperr.Forbidden("you do not own this task").
			With("task_id", taskID).
			With("user_id", caller.UserID)
	}
	return task, nil
}

func normalizeTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", apperr.InvalidInput("task title is required")
	}
	if utf8.RuneCountInString(title) > MaxTitleLength {
		return "", apperr.InvalidInput("task title must be at most %d characters", MaxTitleLength)
	}
	return title, nil
}

func validatePatch(patch *Patch) error {
	if patch.Title != nil {
		title, err := normalizeTitle(*patch.Title)
		if err != nil {
			return err
		}
		patch.Title = &title
	}
	if patch.ListID != nil {
		if patch.ClearListID {
			return apperr.InvalidInput("list id cannot be both set and cleared")
		}
		if err := bunx.ValidateID("list_id", *patch.ListID); err != nil {
			return err
		}
	}
	if patch.ClearDueDate && patch.DueDate != nil {
		return apperr.InvalidInput("due date cannot be both set and cleared")
	}
	if patch.ClearDescription && patch.Description != nil {
		return apperr.InvalidInput("description cannot be both set and cleared")
	}
	return nil
}

func toTaskView(task *models.Task) TaskView {
	return TaskView{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		IsCompleted: task.IsCompleted,
		IsStarted:   task.IsStarted,
		DueDate:     task.DueDate,
		OwnerID:     task.OwnerID,
		ListID:      task.ListID,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}
