package catalog

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

// ErrNotFound is returned when no asset is registered for a raw id.
var ErrNotFound = errors.New("asset not found in catalog")

// Asset maps a raw resource id to the object holding its bytes.
type Asset struct {
	RawID     int    `gorm:"column:raw_id;primaryKey;autoIncrement:false" json:"raw_id"`
	ObjectKey string `gorm:"column:object_key;size:512" json:"object_key"`
	Kind      string `gorm:"column:kind;size:32" json:"kind"`
	Name      string `gorm:"column:name;size:255" json:"name"`
}

// TableName overrides the table name.
func (Asset) TableName() string {
	return "assets"
}

// Catalog resolves raw ids against the assets table. Resolved rows are
// memoized; concurrent lookups of the same id share one query.
type Catalog struct {
	db   *gorm.DB
	mu   sync.RWMutex
	memo map[int]Asset
	sf   singleflight.Group
}

// New creates a catalog backed by db.
func New(db *gorm.DB) *Catalog {
	return &Catalog{
		db:   db,
		memo: make(map[int]Asset),
	}
}

// Migrate creates or updates the assets table.
func (c *Catalog) Migrate() error {
	return c.db.AutoMigrate(&Asset{})
}

// Resolve returns the asset registered under rawID.
func (c *Catalog) Resolve(ctx context.Context, rawID int) (Asset, error) {
	// Fast path
	c.mu.RLock()
	a, ok := c.memo[rawID]
	c.mu.RUnlock()
	if ok {
		return a, nil
	}

	result, err, _ := c.sf.Do(strconv.Itoa(rawID), func() (interface{}, error) {
		c.mu.RLock()
		a, ok := c.memo[rawID]
		c.mu.RUnlock()
		if ok {
			return a, nil
		}

		var row Asset
		err := c.db.WithContext(ctx).Where("raw_id = ?", rawID).First(&row).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %d", ErrNotFound, rawID)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to resolve asset %d: %w", rawID, err)
		}

		c.mu.Lock()
		c.memo[rawID] = row
		c.mu.Unlock()
		return row, nil
	})
	if err != nil {
		return Asset{}, err
	}
	return result.(Asset), nil
}

// List returns every asset ordered by raw id.
func (c *Catalog) List(ctx context.Context) ([]Asset, error) {
	var rows []Asset
	if err := c.db.WithContext(ctx).Order("raw_id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list assets: %w", err)
	}
	return rows, nil
}

// Put inserts or replaces an asset and drops its memoized row.
func (c *Catalog) Put(ctx context.Context, a Asset) error {
	if err := c.db.WithContext(ctx).Save(&a).Error; err != nil {
		return fmt.Errorf("failed to save asset %d: %w", a.RawID, err)
	}
	c.Invalidate(a.RawID)
	return nil
}

// Invalidate forgets the memoized row for rawID.
func (c *Catalog) Invalidate(rawID int) {
	c.mu.Lock()
	delete(c.memo, rawID)
	c.mu.Unlock()
}
