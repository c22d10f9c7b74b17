// Package lists implements the list lifecycle: create, read, update, delete
// and the sharing operations. Every list-scoped operation resolves the
// caller's role through the access package exactly once, inside the same
// transaction as its write.
package lists

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"github.com/terraconstructs/tasklists/internal/apperr"
	"github.com/terraconstructs/tasklists/internal/db/bunx"
	"github.com/terraconstructs/tasklists/internal/db/models"
	"github.com/terraconstructs/tasklists/internal/repository"
	"github.com/terraconstructs/tasklists/internal/roles"
	"github.com/terraconstructs/tasklists/internal/services/access"
)

const (
	MaxNameLength = 100

	DefaultIcon  = "list"
	DefaultColor = "#6B7280"

	DefaultSearchLimit = 10
	MaxSearchLimit     = 50
)

// CreateInput carries the fields of a new list.
type CreateInput struct {
	Name    string
	Icon    string
	Color   string
	DueDate *time.Time
}

// Patch is a partial update. Nil fields are left untouched; ClearDueDate
// removes the due date.
type Patch struct {
	Name         *string
	Icon         *string
	Color        *string
	DueDate      *time.Time
	ClearDueDate bool
}

// Service orchestrates list persistence and authorization for RPC handlers.
type Service struct {
	store       repository.Store
	logger      logrus.FieldLogger
	searchLimit int
	filters     *filterCache
}

// NewService constructs a new Service instance.
func NewService(store repository.Store, logger logrus.FieldLogger) *Service {
	return &Service{
		store:       store,
		logger:      logger,
		searchLimit: DefaultSearchLimit,
		filters:     newFilterCache(),
	}
}

// WithSearchLimit bounds the page returned by SearchUsers, clamped to 1..MaxSearchLimit.
func (s *Service) WithSearchLimit(limit int) *Service {
	s.searchLimit = min(max(limit, 1), MaxSearchLimit)
	return s
}

// Create stores a new list owned by ownerID. The name must be unique among
// the owner's lists.
func (s *Service) Create(ctx context.Context, ownerID string, in CreateInput) (*ListView, error) {
	if err := bunx.ValidateID("owner_id", ownerID); err != nil {
		return nil, err
	}
	name, err := normalizeName(in.Name)
	if err != nil {
		return nil, err
	}

	list := &models.List{
		Name:    name,
		Icon:    defaultIfEmpty(in.Icon, DefaultIcon),
		Color:   defaultIfEmpty(in.Color, DefaultColor),
		DueDate: in.DueDate,
		OwnerID: ownerID,
	}

	err = s.store.RunInTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		exists, err := repos.Lists.ExistsByOwnerAndName(ctx, ownerID, name)
		if err != nil {
			return err
		}
		if exists {
			return apperr.Conflict("a list with this name already exists").With("name", name)
		}
		return repos.Lists.Create(ctx, list)
	})
	if err != nil {
		return nil, fmt.Errorf("create list: %w", err)
	}

	view := toListView(list, roles.Owner, nil)
	return &view, nil
}

// FindAll returns the lists owned by subjectID followed by the lists shared
// with it, each tagged with the caller's role and carrying its roster. A
// non-empty filter is a go-bexpr expression over id, name, icon, color, role,
// owner_id and shared_count.
func (s *Service) FindAll(ctx context.Context, subjectID, filter string) ([]ListView, error) {
	if err := bunx.ValidateID("user_id", subjectID); err != nil {
		return nil, err
	}
	evaluator, err := s.filters.compile(filter)
	if err != nil {
		return nil, err
	}

	repos := s.store.Repositories()

	owned, err := repos.Lists.ListByOwner(ctx, subjectID)
	if err != nil {
		return nil, fmt.Errorf("list owned lists: %w", err)
	}
	held, err := repos.Shares.ListByUser(ctx, subjectID)
	if err != nil {
		return nil, fmt.Errorf("list shared lists: %w", err)
	}
	sort.SliceStable(held, func(i, j int) bool {
		a, b := held[i].List, held[j].List
		if a == nil || b == nil {
			return false
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})

	ids := make([]string, 0, len(owned)+len(held))
	for i := range owned {
		ids = append(ids, owned[i].ID)
	}
	for i := range held {
		ids = append(ids, held[i].ListID)
	}

	rosters := make(map[string][]models.ListShare, len(ids))
	if len(ids) > 0 {
		grants, err := repos.Shares.ListByLists(ctx, ids)
		if err != nil {
			return nil, fmt.Errorf("load rosters: %w", err)
		}
		for _, g := range grants {
			rosters[g.ListID] = append(rosters[g.ListID], g)
		}
	}

	views := make([]ListView, 0, len(ids))
	appendView := func(view ListView) error {
		ok, err := matches(evaluator, &view)
		if err != nil {
			return err
		}
		if ok {
			views = append(views, view)
		}
		return nil
	}

	for i := range owned {
		if err := appendView(toListView(&owned[i], roles.Owner, rosters[owned[i].ID])); err != nil {
			return nil, err
		}
	}
	for i := range held {
		if held[i].List == nil {
			continue
		}
		view := toListView(held[i].List, roles.Role(held[i].Role), rosters[held[i].ListID])
		if err := appendView(view); err != nil {
			return nil, err
		}
	}
	return views, nil
}

// FindOne returns a list to any caller holding a role on it.
func (s *Service) FindOne(ctx context.Context, subjectID, listID string) (*ListView, error) {
	decision, err := access.Resolve(ctx, s.store.Repositories(), listID, subjectID)
	if err != nil {
		return nil, err
	}
	view := toAggregateView(decision.List, decision.Role)
	return &view, nil
}

// Update applies patch to the list. Requires editor or above; a rename is
// checked against the owner's namespace, not the caller's.
func (s *Service) Update(ctx context.Context, subjectID, listID string, patch Patch) (*ListView, error) {
	if err := validatePatch(&patch); err != nil {
		return nil, err
	}

	var view ListView
	err := s.store.RunInTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		decision, err := access.Require(ctx, repos, listID, subjectID, roles.Editor)
		if err != nil {
			return err
		}
		list := &decision.List.List

		if patch.Name != nil && *patch.Name != list.Name {
			exists, err := repos.Lists.ExistsByOwnerAndName(ctx, list.OwnerID, *patch.Name)
			if err != nil {
				return err
			}
			if exists {
				return apperr.Conflict("a list with this name already exists").With("name", *patch.Name)
			}
			list.Name = *patch.Name
		}
		if patch.Icon != nil {
			list.Icon = *patch.Icon
		}
		if patch.Color != nil {
			list.Color = *patch.Color
		}
		switch {
		case patch.ClearDueDate:
			list.DueDate = nil
		case patch.DueDate != nil:
			list.DueDate = patch.DueDate
		}

		if err := repos.Lists.Update(ctx, list); err != nil {
			return err
		}
		view = toAggregateView(decision.List, decision.Role)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("update list: %w", err)
	}
	return &view, nil
}

// Remove deletes a list and its grants. Only the owner may delete, and only
// once no task is attached.
func (s *Service) Remove(ctx context.Context, subjectID, listID string) error {
	err := s.store.RunInTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		decision, err := access.Resolve(ctx, repos, listID, subjectID)
		if err != nil {
			return err
		}
		if !roles.IsOwner(decision.Role) {
			return access.Denied(decision, subjectID, roles.Owner)
		}

		count, err := repos.Tasks.CountByList(ctx, listID)
		if err != nil {
			return err
		}
		if count > 0 {
			return apperr.ConflictState("list contains tasks; relocate or delete them first").
				With("list_id", listID).
				With("tasks", count)
		}

		if _, err := repos.Shares.DeleteByList(ctx, listID); err != nil {
			return err
		}
		return repos.Lists.Delete(ctx, listID)
	})
	if err != nil {
		return fmt.Errorf("remove list: %w", err)
	}
	return nil
}

// ShareList grants targetEmail the given role. Requires admin or owner.
func (s *Service) ShareList(ctx context.Context, subjectID, listID, targetEmail, role string) (*SharedUser, error) {
	grant, err := roles.ParseGrant(role)
	if err != nil {
		return nil, err
	}
	targetEmail = strings.TrimSpace(targetEmail)
	if targetEmail == "" {
		return nil, apperr.InvalidInput("email is required")
	}

	var entry SharedUser
	err = s.store.RunInTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		decision, err := access.Require(ctx, repos, listID, subjectID, roles.Admin)
		if err != nil {
			return err
		}

		target, err := repos.Users.GetByEmail(ctx, targetEmail)
		if err != nil {
			return err
		}
		if target.ID == decision.List.List.OwnerID {
			return apperr.ConflictState("cannot share a list with its owner").With("list_id", listID)
		}
		if decision.List.Grant(target.ID) != nil {
			return apperr.Conflict("list is already shared with this user").
				With("list_id", listID).
				With("user_id", target.ID)
		}

		share := &models.ListShare{
			ListID:         listID,
			UserID:         target.ID,
			Role:           string(grant),
			SharedByUserID: subjectID,
		}
		if err := repos.Shares.Create(ctx, share); err != nil {
			return err
		}
		entry = toSharedUser(share, target)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("share list: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"list_id": listID,
		"actor":   subjectID,
		"target":  entry.UserID,
		"role":    grant,
	}).Info("list shared")
	return &entry, nil
}

// UpdateSharedRole overwrites an existing grant. Requires admin or owner;
// an admin grantee may promote another grantee up to admin.
func (s *Service) UpdateSharedRole(ctx context.Context, subjectID, listID, targetUserID, role string) (*SharedUser, error) {
	grant, err := roles.ParseGrant(role)
	if err != nil {
		return nil, err
	}
	if err := bunx.ValidateID("user_id", targetUserID); err != nil {
		return nil, err
	}

	var entry SharedUser
	err = s.store.RunInTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		decision, err := access.Require(ctx, repos, listID, subjectID, roles.Admin)
		if err != nil {
			return err
		}

		share := decision.List.Grant(targetUserID)
		if share == nil {
			return apperr.NotFound("user is not shared on this list").
				With("list_id", listID).
				With("user_id", targetUserID)
		}
		if err := repos.Shares.UpdateRole(ctx, listID, targetUserID, string(grant)); err != nil {
			return err
		}
		share.Role = string(grant)
		entry = toSharedUser(share, share.User)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("update shared role: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"list_id": listID,
		"actor":   subjectID,
		"target":  targetUserID,
		"role":    grant,
	}).Info("shared role updated")
	return &entry, nil
}

// RemoveSharedUser revokes a grant. Admins and the owner may revoke any
// grant; any grantee may revoke its own.
func (s *Service) RemoveSharedUser(ctx context.Context, subjectID, listID, targetUserID string) error {
	if err := bunx.ValidateID("user_id", targetUserID); err != nil {
		return err
	}

	err := s.store.RunInTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		decision, err := access.Resolve(ctx, repos, listID, subjectID)
		if err != nil {
			return err
		}
		if subjectID != targetUserID && !roles.AtLeast(decision.Role, roles.Admin) {
			return access.Denied(decision, subjectID, roles.Admin)
		}
		if decision.List.Grant(targetUserID) == nil {
			return apperr.NotFound("user is not shared on this list").
				With("list_id", listID).
				With("user_id", targetUserID)
		}
		return repos.Shares.Delete(ctx, listID, targetUserID)
	})
	if err != nil {
		return fmt.Errorf("remove shared user: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"list_id": listID,
		"actor":   subjectID,
		"target":  targetUserID,
	}).Info("shared user removed")
	return nil
}

// SharedUsers returns the roster to any caller holding a role on the list.
func (s *Service) SharedUsers(ctx context.Context, subjectID, listID string) ([]SharedUser, error) {
	decision, err := access.Resolve(ctx, s.store.Repositories(), listID, subjectID)
	if err != nil {
		return nil, err
	}
	return toRoster(decision.List.Grants), nil
}

// SearchUsers finds share targets whose email contains fragment,
// case-insensitively, ordered by email.
func (s *Service) SearchUsers(ctx context.Context, fragment string) ([]UserMatch, error) {
	fragment = strings.TrimSpace(fragment)
	if fragment == "" {
		return nil, apperr.InvalidInput("search fragment is required")
	}

	users, err := s.store.Repositories().Users.SearchByEmail(ctx, fragment, s.searchLimit)
	if err != nil {
		return nil, fmt.Errorf("search users: %w", err)
	}
	out := make([]UserMatch, 0, len(users))
	for i := range users {
		out = append(out, toUserMatch(&users[i]))
	}
	return out, nil
}

func normalizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", apperr.InvalidInput("list name is required")
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return "", apperr.InvalidInput("list name must be at most %d characters", MaxNameLength)
	}
	return name, nil
}

func validatePatch(patch *Patch) error {
	if patch.Name != nil {
		name, err := normalizeName(*patch.Name)
		if err != nil {
			return err
		}
		patch.Name = &name
	}
	if patch.Icon != nil && strings.TrimSpace(*patch.Icon) == "" {
		return apperr.InvalidInput("icon must not be empty")
	}
	if patch.Color != nil && strings.TrimSpace(*patch.Color) == "" {
		return apperr.InvalidInput("color must not be empty")
	}
	if patch.ClearDueDate && patch.DueDate != nil {
		return apperr.InvalidInput("due date cannot be both set and cleared")
	}
	return nil
}

func defaultIfEmpty(value, fallback string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return fallback
}
