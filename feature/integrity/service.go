package integrity

import (
	"context"
	"fmt"

	"resource-manager/core/catalog"
	"resource-manager/core/storage"
	"resource-manager/feature/integrity/checks"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AssetLister lists catalog rows.
type AssetLister interface {
	List(ctx context.Context) ([]catalog.Asset, error)
}

// Service handles integrity checks.
type Service struct {
	client  storage.Client
	bucket  string
	logger  *zap.Logger
	db      *gorm.DB
	catalog AssetLister
	pack    checks.Pack
}

// Option configures a Service.
type Option func(*Service)

// WithDatabase enables the catalog schema check.
func WithDatabase(db *gorm.DB) Option {
	return func(s *Service) { s.db = db }
}

// WithCatalog enables the catalog objects check.
func WithCatalog(c AssetLister) Option {
	return func(s *Service) { s.catalog = c }
}

// WithPack enables the expansion pack check.
func WithPack(p checks.Pack) Option {
	return func(s *Service) { s.pack = p }
}

// NewService creates a new integrity service.
func NewService(client storage.Client, bucket string, logger *zap.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Service{
		client: client,
		bucket: bucket,
		logger: logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CheckStructure returns a list of missing folders.
func (s *Service) CheckStructure(ctx context.Context) ([]string, error) {
	return checks.CheckStructure(ctx, s.client, s.bucket)
}

// FixStructure creates the missing folders.
func (s *Service) FixStructure(ctx context.Context, missing []string) error {
	return checks.FixStructure(ctx, s.client, s.bucket, s.logger, missing)
}

// CheckCatalog verifies every catalog row points to an existing object.
func (s *Service) CheckCatalog(ctx context.Context) (*checks.CatalogReport, error) {
	if s.catalog == nil {
		return nil, fmt.Errorf("catalog is not configured")
	}
	assets, err := s.catalog.List(ctx)
	if err != nil {
		return nil, err
	}
	return checks.CheckCatalogObjects(ctx, s.client, s.bucket, assets)
}

// CheckSchema verifies the catalog table schema.
func (s *Service) CheckSchema() (*checks.SchemaReport, error) {
	return checks.CheckCatalogSchema(s.db)
}

// CheckArchive reads every expansion pack entry.
func (s *Service) CheckArchive() (*checks.ArchiveReport, error) {
	return checks.CheckArchive(s.pack)
}
