package cmd

import (
	"fmt"

	"resource-manager/core/archive"
	"resource-manager/core/catalog"
	"resource-manager/core/config"
	"resource-manager/core/database"
	"resource-manager/core/driver"
	"resource-manager/core/kinds"
	"resource-manager/core/logger"
	"resource-manager/core/resource"
	"resource-manager/core/source"
	"resource-manager/core/storage"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// runtime holds the components shared by the commands. Optional parts are
// nil when their backing service is unavailable.
type runtime struct {
	cfg      *config.Config
	logg     *zap.Logger
	db       *gorm.DB
	catalog  *catalog.Catalog
	store    storage.Client
	pack     *archive.Provider
	driver   *driver.Memory
	registry *resource.Registry
	manager  *resource.Manager
	prom     *prometheus.Registry
}

// bootstrap loads the configuration, applies overrides (command flags) and
// builds the resource manager with every collaborator that can be reached.
func bootstrap(overrides ...func(*config.Config)) (*runtime, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	for _, override := range overrides {
		override(cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	rt := &runtime{
		cfg:      cfg,
		logg:     logg,
		driver:   driver.NewMemory(),
		registry: resource.NewRegistry(),
		prom:     prometheus.NewRegistry(),
	}
	rt.prom.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	kinds.RegisterAll(rt.registry)

	// Storage client is lazy; it only fails on a malformed endpoint
	store, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	rt.store = store

	// Catalog database (optional): without it raw-id loads fail with ErrNoSource
	if db, err := database.Connect(cfg.Database); err != nil {
		logg.Warn("Catalog database unavailable, raw loads disabled", zap.Error(err))
	} else {
		rt.db = db
		rt.catalog = catalog.New(db)
		if err := rt.catalog.Migrate(); err != nil {
			return nil, fmt.Errorf("failed to migrate catalog: %w", err)
		}
		logg.Info("Connected to catalog database", zap.String("driver", cfg.Database.Driver))
	}

	opts := []resource.ManagerOption{
		resource.WithDriver(rt.driver),
		resource.WithMetrics(resource.NewMetrics(rt.prom)),
	}
	if rt.catalog != nil {
		opts = append(opts, resource.WithSource(source.NewStorage(store, cfg.Storage.Bucket, rt.catalog)))
	}
	rt.manager = resource.NewManager(cfg.Resources, rt.registry, logg, opts...)

	if cfg.Archive.Path != "" {
		pack, err := archive.Open(cfg.Archive)
		if err != nil {
			return nil, err
		}
		if err := rt.manager.SetArchive(pack); err != nil {
			_ = pack.Close()
			return nil, err
		}
		rt.pack = pack
		logg.Info("Expansion pack opened", zap.String("path", pack.Path()), zap.Int("entries", pack.Len()))
	}

	if err := resource.SetShared(rt.manager); err != nil {
		return nil, err
	}
	return rt, nil
}

// Close releases the expansion pack and flushes the logger.
func (rt *runtime) Close() {
	if err := rt.manager.Close(); err != nil {
		rt.logg.Warn("Failed to close expansion pack", zap.Error(err))
	}
	_ = rt.logg.Sync()
}
