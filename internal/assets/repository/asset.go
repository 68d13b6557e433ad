package repository

import (
	"context"
	"smartoffice/pkg/model"
	"time"
)

const (
	CollectionName = "Assets"
)

// AssetRepository is the durable keyed store of assets. Replace, TryBook and
// TryRelease are guarded writes: each checks its precondition and applies the
// change as one atomic operation, and reports whether the write happened.
//
// Replace only writes while the stored availability equals asset.IsAvailable
// and the stored holder equals expectedHolderID, so an edit built from a stale
// read can not undo a booking or release committed in between.
type AssetRepository interface {
	Create(ctx context.Context, asset *model.Asset) error
	FindByID(ctx context.Context, id string) (*model.Asset, error)
	FindAll(ctx context.Context, filter model.AssetFilter, limit int, offset int64) ([]*model.Asset, error)
	Count(ctx context.Context, filter model.AssetFilter) (int64, error)
	Stats(ctx context.Context) (*model.AssetStats, error)
	Replace(ctx context.Context, id string, asset *model.Asset, expectedHolderID string) (bool, error)
	TryBook(ctx context.Context, id string, holderID string, holderName string) (bool, error)
	TryRelease(ctx context.Context, id string, requiredHolderID string) (bool, error)
	Delete(ctx context.Context, id string) error
}

// withTimeout bounds a single store operation, keeping a shorter caller
// deadline when there is one.
func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	deadline, hasDeadline := ctx.Deadline()
	if !hasDeadline {
		return context.WithTimeout(ctx, timeout)
	}

	remaining := time.Until(deadline)
	if remaining < timeout {
		return context.WithTimeout(ctx, remaining)
	}

	return context.WithTimeout(ctx, timeout)
}

func newStats() *model.AssetStats {
	return &model.AssetStats{ByType: make(map[string]model.AssetTypeStats)}
}

func addStats(stats *model.AssetStats, assetType string, total, available int64) {
	typeStats := stats.ByType[assetType]
	typeStats.Total += total
	typeStats.Available += available
	typeStats.InUse = typeStats.Total - typeStats.Available
	stats.ByType[assetType] = typeStats

	stats.Total += total
	stats.Available += available
	stats.InUse = stats.Total - stats.Available
}
