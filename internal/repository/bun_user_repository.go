package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/terraconstructs/tasklists/internal/apperr"
	"github.com/terraconstructs/tasklists/internal/db/bunx"
	"github.com/terraconstructs/tasklists/internal/db/models"
	"github.com/uptrace/bun"
)

// BunUserRepository implements UserRepository using Bun ORM
type BunUserRepository struct {
	db bun.IDB
}

// NewBunUserRepository creates a new Bun-based user repository
func NewBunUserRepository(db bun.IDB) *BunUserRepository {
	return &BunUserRepository{db: db}
}

// Create inserts a new user into the directory
func (r *BunUserRepository) Create(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = bunx.NewUUIDv7()
	}
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	if user.Role == "" {
		user.Role = models.SystemRoleUser
	}
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	if _, err := r.db.NewInsert().Model(user).Exec(ctx); err != nil {
		if isUniqueViolation(err) {
			return apperr.Conflict("a user with this email already exists").With("email", user.Email)
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// GetByID retrieves a user by their ID
func (r *BunUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	user := new(models.User)
	err := r.db.NewSelect().
		Model(user).
		Where("u.id = ?", id).
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, apperr.NotFound("user not found").With("user_id", id)
		}
		return nil, fmt.Errorf("get user by ID: %w", err)
	}
	return user, nil
}

// GetByEmail retrieves a user by email, ignoring case
func (r *BunUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	user := new(models.User)
	err := r.db.NewSelect().
		Model(user).
		Where("lower(u.email) = ?", strings.ToLower(strings.TrimSpace(email))).
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, apperr.NotFound("no user with this email").With("email", email)
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return user, nil
}

// SearchByEmail returns up to limit users whose email contains fragment
func (r *BunUserRepository) SearchByEmail(ctx context.Context, fragment string, limit int) ([]models.User, error) {
	pattern := "%" + escapeLike(strings.ToLower(fragment)) + "%"

	var users []models.User
	err := r.db.NewSelect().
		Model(&users).
		Where(`lower(u.email) LIKE ? ESCAPE '\'`, pattern).
		Order("u.email ASC").
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("search users: %w", err)
	}
	return users, nil
}

// List retrieves all users ordered by email
func (r *BunUserRepository) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := r.db.NewSelect().
		Model(&users).
		Order("u.email ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
