package checks

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"resource-manager/core/catalog"
	"resource-manager/core/storage"

	"github.com/minio/minio-go/v7"
	"golang.org/x/sync/errgroup"
)

// statConcurrency bounds parallel StatObject calls.
const statConcurrency = 16

// MissingObject is a catalog row whose object is absent from the bucket.
type MissingObject struct {
	RawID     int    `json:"raw_id"`
	ObjectKey string `json:"object_key"`
}

// CatalogReport is the result of checking catalog rows against storage.
type CatalogReport struct {
	Total   int             `json:"total"`
	Found   int             `json:"found"`
	Missing []MissingObject `json:"missing"`
	// Unkeyed lists raw ids without an object key.
	Unkeyed []int `json:"unkeyed"`
}

// CheckCatalogObjects verifies that every catalog row points to an existing
// object. A lookup failing for any other reason than a missing key aborts
// the check.
func CheckCatalogObjects(ctx context.Context, client storage.Client, bucket string, assets []catalog.Asset) (*CatalogReport, error) {
	report := &CatalogReport{
		Total:   len(assets),
		Missing: []MissingObject{},
		Unkeyed: []int{},
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(statConcurrency)

	for _, a := range assets {
		a := a
		if a.ObjectKey == "" {
			report.Unkeyed = append(report.Unkeyed, a.RawID)
			continue
		}
		g.Go(func() error {
			_, err := client.StatObject(gctx, bucket, a.ObjectKey, minio.StatObjectOptions{})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				report.Found++
			case storage.IsNotFound(err):
				report.Missing = append(report.Missing, MissingObject{RawID: a.RawID, ObjectKey: a.ObjectKey})
			default:
				return fmt.Errorf("stat %s: %w", a.ObjectKey, err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(report.Missing, func(i, j int) bool {
		return report.Missing[i].RawID < report.Missing[j].RawID
	})
	return report, nil
}
