// Package provisioning seeds a new user's starter lists and tasks. The
// writes are independent; a failure part way through is undone by an
// explicit compensation so a retry starts from a clean slate.
package provisioning

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/terraconstructs/tasklists/internal/apperr"
	"github.com/terraconstructs/tasklists/internal/db/bunx"
	"github.com/terraconstructs/tasklists/internal/db/models"
	"github.com/terraconstructs/tasklists/internal/repository"
	"github.com/terraconstructs/tasklists/internal/services/lists"
	"github.com/terraconstructs/tasklists/internal/telemetry"
)

const tracerName = "tasklists/services/provisioning"

// ListCreator creates a list owned by ownerID.
type ListCreator interface {
	Create(ctx context.Context, ownerID string, in lists.CreateInput) (*lists.ListView, error)
}

// ProvisionedList summarises one created starter list.
type ProvisionedList struct {
	ID        string
	Name      string
	Icon      string
	Color     string
	TaskCount int
}

// Result is the outcome of Provision.
type Result struct {
	AlreadyProvisioned bool
	Lists              []ProvisionedList
	TaskCount          int
}

// Service runs the provisioning workflow. It acts as the system and does
// not consult list access.
type Service struct {
	store  repository.Store
	lists  ListCreator
	logger logrus.FieldLogger
}

// NewService constructs a provisioning Service.
func NewService(store repository.Store, creator ListCreator, logger logrus.FieldLogger) *Service {
	return &Service{store: store, lists: creator, logger: logger}
}

// saga records the writes performed so far.
type saga struct {
	userID  string
	listIDs []string
	taskIDs []string
}

// Provision creates the starter lists and tasks for userID. A user that
// already owns a list is left untouched.
func (s *Service) Provision(ctx context.Context, userID string) (result *Result, err error) {
	ctx, span := telemetry.StartSpan(ctx, tracerName, "provisioning.Provision",
		attribute.String(telemetry.AttrUserID, userID),
	)
	defer func() {
		telemetry.RecordError(span, err)
		span.End()
	}()

	if err := bunx.ValidateID("user_id", userID); err != nil {
		return nil, err
	}

	repos := s.store.Repositories()
	if _, err := repos.Users.GetByID(ctx, userID); err != nil {
		return nil, fmt.Errorf("provision defaults: %w", err)
	}

	owned, err := repos.Lists.CountByOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("provision defaults: %w", err)
	}
	log := s.logger.WithField("user_id", userID)
	if owned > 0 {
		log.WithField("lists", owned).Debug("user already provisioned")
		return &Result{AlreadyProvisioned: true}, nil
	}

	run := &saga{userID: userID}
	result, err = s.execute(ctx, repos, run, log)
	if err != nil {
		log.WithError(err).Warn("provisioning failed, compensating")
		telemetry.AddEvent(span, "saga.compensate",
			attribute.Int("lists", len(run.listIDs)),
			attribute.Int("tasks", len(run.taskIDs)),
		)
		if cerr := s.compensate(ctx, repos, run, log); cerr != nil {
			log.WithError(cerr).Error("provisioning compensation failed")
			return nil, apperr.Internal(errors.Join(err, cerr), "provisioning failed and could not be rolled back").
				With("user_id", userID)
		}
		return nil, apperr.Internal(err, "provisioning failed").With("user_id", userID)
	}
	return result, nil
}

func (s *Service) execute(ctx context.Context, repos repository.Repositories, run *saga, log logrus.FieldLogger) (*Result, error) {
	result := &Result{}
	for _, starter := range starterLists {
		view, err := s.lists.Create(ctx, run.userID, lists.CreateInput{
			Name:  starter.Name,
			Icon:  starter.Icon,
			Color: starter.Color,
		})
		if err != nil {
			return nil, fmt.Errorf("create list %q: %w", starter.Name, err)
		}
		run.listIDs = append(run.listIDs, view.ID)
		log.WithFields(logrus.Fields{"step": "create_list", "list_id": view.ID}).Debug("provisioning step done")
		telemetry.AddEvent(trace.SpanFromContext(ctx), "saga.step",
			attribute.String(telemetry.AttrSagaStep, "create_list"),
			attribute.String(telemetry.AttrListID, view.ID),
		)

		for _, title := range starter.Tasks {
			listID := view.ID
			task := &models.Task{Title: title, OwnerID: run.userID, ListID: &listID}
			if err := repos.Tasks.Create(ctx, task); err != nil {
				return nil, fmt.Errorf("create task %q: %w", title, err)
			}
			run.taskIDs = append(run.taskIDs, task.ID)
			log.WithFields(logrus.Fields{"step": "create_task", "task_id": task.ID}).Debug("provisioning step done")
		}

		result.Lists = append(result.Lists, ProvisionedList{
			ID:        view.ID,
			Name:      view.Name,
			Icon:      view.Icon,
			Color:     view.Color,
			TaskCount: len(starter.Tasks),
		})
		result.TaskCount += len(starter.Tasks)
	}
	return result, nil
}

// compensate undoes the recorded writes in reverse order: tasks under each
// created list first, then the list itself.
func (s *Service) compensate(ctx context.Context, repos repository.Repositories, run *saga, log logrus.FieldLogger) error {
	var errs []error
	for i := len(run.listIDs) - 1; i >= 0; i-- {
		listID := run.listIDs[i]
		removed, err := repos.Tasks.DeleteByList(ctx, listID)
		if err != nil {
			errs = append(errs, fmt.Errorf("delete tasks of list %s: %w", listID, err))
			continue
		}
		if err := repos.Lists.Delete(ctx, listID); err != nil && !apperr.Is(err, apperr.KindNotFound) {
			errs = append(errs, fmt.Errorf("delete list %s: %w", listID, err))
			continue
		}
		log.WithFields(logrus.Fields{"list_id": listID, "tasks": removed}).Warn("provisioning write compensated")
	}
	return errors.Join(errs...)
}
