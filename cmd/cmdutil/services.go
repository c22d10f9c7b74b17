package cmdutil

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/uptrace/bun"

	"github.com/terraconstructs/tasklists/internal/config"
	"github.com/terraconstructs/tasklists/internal/db/bunx"
	"github.com/terraconstructs/tasklists/internal/repository"
	"github.com/terraconstructs/tasklists/internal/services/lists"
	"github.com/terraconstructs/tasklists/internal/services/provisioning"
	"github.com/terraconstructs/tasklists/internal/services/tasks"
)

// Runtime is what the root command resolves before any subcommand runs.
type Runtime struct {
	Config *config.Config
	Logger *logrus.Logger
}

type runtimeContextKey struct{}

// WithRuntime stores rt on ctx.
func WithRuntime(ctx context.Context, rt *Runtime) context.Context {
	return context.WithValue(ctx, runtimeContextKey{}, rt)
}

// RuntimeFromContext returns the Runtime stored by the root command.
func RuntimeFromContext(ctx context.Context) (*Runtime, error) {
	rt, ok := ctx.Value(runtimeContextKey{}).(*Runtime)
	if !ok || rt == nil {
		return nil, fmt.Errorf("configuration not loaded")
	}
	return rt, nil
}

// OpenDB connects to the configured database.
func OpenDB(cfg *config.Config) (*bun.DB, error) {
	db, err := bunx.NewDB(cfg.DatabaseURL, bunx.Options{MaxConnections: cfg.MaxDBConnections})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// ServiceBundle bundles the domain services with their underlying DB
// connection so callers can reuse it for health checks or migrations.
type ServiceBundle struct {
	DB           *bun.DB
	Store        *repository.BunStore
	Lists        *lists.Service
	Tasks        *tasks.Service
	Provisioning *provisioning.Service
}

// Close releases the underlying database connection.
func (b *ServiceBundle) Close() {
	if b == nil || b.DB == nil {
		return
	}
	bunx.Close(b.DB)
}

// NewServiceBundle centralizes service construction for the server and CLI commands.
func NewServiceBundle(cfg *config.Config, logger logrus.FieldLogger) (*ServiceBundle, error) {
	db, err := OpenDB(cfg)
	if err != nil {
		return nil, err
	}

	store := repository.NewBunStore(db)
	listSvc := lists.NewService(store, logger.WithField("component", "lists")).
		WithSearchLimit(cfg.Users.SearchLimit)

	return &ServiceBundle{
		DB:           db,
		Store:        store,
		Lists:        listSvc,
		Tasks:        tasks.NewService(store, logger.WithField("component", "tasks")),
		Provisioning: provisioning.NewService(store, listSvc, logger.WithField("component", "provisioning")),
	}, nil
}
