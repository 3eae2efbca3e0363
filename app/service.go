// Package app wires the scheduler from configuration.
package app

import (
	"context"
	"fmt"

	"github.com/fleetops/wrangler/config"
	"github.com/fleetops/wrangler/core/audit"
	coremetrics "github.com/fleetops/wrangler/core/metrics"
	"github.com/fleetops/wrangler/core/scheduling"
	"github.com/fleetops/wrangler/core/storage"
	"github.com/fleetops/wrangler/infra/logger"
	"github.com/fleetops/wrangler/infra/metrics"
	"github.com/fleetops/wrangler/infra/storage/memstore"
	"github.com/fleetops/wrangler/infra/storage/sqlstore"
	"github.com/fleetops/wrangler/internal/eventbus"
)

// Service bundles the scheduling manager with the resources it owns.
type Service struct {
	Manager *scheduling.Manager
	Store   storage.Store
	Bus     *eventbus.Bus

	log         logger.Logger
	auditStore  audit.Store
	sqlCloser   *sqlstore.Store
	promEnabled bool
	promPort    string
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	logg := logger.New("service")

	store, sqlCloser, err := newStore(cfg.Storage)
	if err != nil {
		return nil, err
	}

	var sinks []coremetrics.Sink
	if cfg.Metrics.PrometheusEnabled {
		sink, err := metrics.NewPromSink(cfg.Metrics)
		if err != nil {
			return nil, fmt.Errorf("prom sink: %w", err)
		}
		sinks = append(sinks, sink)
	}
	if cfg.Metrics.InfluxEnabled {
		sink := metrics.NewInfluxSinkWithFallback(
			cfg.Metrics.InfluxURL, cfg.Metrics.InfluxToken, cfg.Metrics.InfluxOrg, cfg.Metrics.InfluxBucket)
		sinks = append(sinks, sink)
	}
	var sink coremetrics.Sink
	if len(sinks) == 1 {
		sink = sinks[0]
	} else if len(sinks) > 1 {
		sink = metrics.NewMultiSink(sinks...)
	}

	auditStore, err := newAuditStore(cfg.Audit)
	if err != nil {
		return nil, err
	}

	bus := eventbus.New()
	manager := scheduling.NewManager(scheduling.ManagerConfig{
		Store:   store,
		Logger:  logger.New("scheduler"),
		Metrics: sink,
		Bus:     bus,
		Audit:   auditStore,
	})

	return &Service{
		Manager:     manager,
		Store:       store,
		Bus:         bus,
		log:         logg,
		auditStore:  auditStore,
		sqlCloser:   sqlCloser,
		promEnabled: cfg.Metrics.PrometheusEnabled,
		promPort:    cfg.Metrics.PrometheusPort,
	}, nil
}

func newStore(cfg config.StorageConfig) (storage.Store, *sqlstore.Store, error) {
	switch cfg.Backend {
	case "memory":
		mem := memstore.New()
		if cfg.Fixture != "" {
			if err := mem.LoadFile(cfg.Fixture); err != nil {
				return nil, nil, err
			}
		}
		return mem, nil, nil
	case "sqlite":
		db, err := sqlstore.Open("sqlite", cfg.Path)
		if err != nil {
			return nil, nil, err
		}
		st := sqlstore.New(db, "sqlite")
		if err := st.Init(context.Background()); err != nil {
			st.Close()
			return nil, nil, err
		}
		return st, st, nil
	case "postgres":
		db, err := sqlstore.Open("pgx", cfg.DSN)
		if err != nil {
			return nil, nil, err
		}
		st := sqlstore.New(db, "pgx")
		if err := st.Init(context.Background()); err != nil {
			st.Close()
			return nil, nil, err
		}
		return st, st, nil
	default:
		return nil, nil, fmt.Errorf("storage: unknown backend %s", cfg.Backend)
	}
}

func newAuditStore(cfg config.AuditConfig) (audit.Store, error) {
	switch cfg.Backend {
	case "none":
		return nil, nil
	case "sqlite":
		return audit.NewSQLiteStore(cfg.Path)
	case "jsonl":
		if cfg.MaxSizeMB > 0 {
			return audit.NewRotatingJSONLStore(cfg.Path, cfg.MaxSizeMB, cfg.MaxBackups, cfg.MaxAgeDays)
		}
		return audit.NewJSONLStore(cfg.Path)
	default:
		return nil, fmt.Errorf("audit: unknown backend %s", cfg.Backend)
	}
}

// Run blocks until the context is cancelled, serving Prometheus metrics
// when enabled.
func (s *Service) Run(ctx context.Context) error {
	if s.promEnabled {
		go func() {
			if err := metrics.StartPromServer(ctx, s.promPort); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}
	<-ctx.Done()
	return nil
}

// Close releases resources held by the service.
func (s *Service) Close() error {
	s.Bus.Close()
	var firstErr error
	if s.auditStore != nil {
		if err := s.auditStore.Close(); err != nil {
			firstErr = err
		}
	}
	if s.sqlCloser != nil {
		if err := s.sqlCloser.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
