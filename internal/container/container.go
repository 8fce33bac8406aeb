package container

import (
	"context"
	"fmt"
	"strings"

	"hrdash/adapters/excel"
	"hrdash/adapters/postgres"
	"hrdash/internal"
	"hrdash/internal/analysis"
	"hrdash/internal/config"
	"hrdash/internal/dataset"
	"hrdash/internal/errors"
	"hrdash/internal/usage"
	"hrdash/ports"
)

// Container holds all application dependencies and manages their lifecycle
type Container struct {
	Config *config.Config
	Logger *internal.Logger

	// Infrastructure
	Repository *postgres.EmployeeRepository
	Metrics    *usage.Metrics

	// Data access, already decorated with metrics and (optionally) the cache
	Source ports.EmployeeSource

	Service *analysis.Service

	// probe checks the raw source once at startup
	probe func(ctx context.Context) error
}

// New builds the dataset source chosen by cfg and the analysis service over it
func New(ctx context.Context, cfg *config.Config, logger *internal.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if logger == nil {
		logger = internal.DefaultLogger
	}

	c := &Container{
		Config:  cfg,
		Logger:  logger,
		Metrics: usage.NewMetrics(),
	}

	var (
		source ports.EmployeeSource
		name   string
	)
	switch cfg.Data.Source {
	case config.SourcePostgres:
		db, err := postgres.Open(ctx, cfg.Database.URL)
		if err != nil {
			return nil, errors.Wrap(err, "failed to connect to database")
		}
		repo := postgres.NewEmployeeRepository(db, cfg.Database.Table, logger)
		c.Repository = repo
		source, name, c.probe = repo, repo.Name(), repo.Probe
	default:
		file := excel.NewFileSource(excel.DefaultReaderConfig(cfg.Data.Path), logger)
		source, name = file, file.Name()
		c.probe = func(context.Context) error {
			missing, err := file.Probe()
			if err != nil {
				return err
			}
			if len(missing) > 0 {
				// Rows will fail to parse, but the file exists; keep serving.
				logger.Warn("[Container] %s lacks columns: %s", cfg.Data.Path, strings.Join(missing, ", "))
			}
			return nil
		}
	}

	source = dataset.NewInstrumentedSource(name, source, c.Metrics)
	if cfg.Data.CacheEnabled {
		source = dataset.NewCachedSource(source, logger)
	}
	c.Source = source
	c.Service = analysis.NewService(source, logger)

	logger.Info("[Container] dataset source %s ready (cache=%t)", name, cfg.Data.CacheEnabled)
	return c, nil
}

// Probe verifies the dataset source is reachable
func (c *Container) Probe(ctx context.Context) error {
	if c.probe == nil {
		return nil
	}
	return c.probe(ctx)
}

// Shutdown releases held resources
func (c *Container) Shutdown(ctx context.Context) error {
	if c.Repository != nil {
		return c.Repository.Close()
	}
	return nil
}
