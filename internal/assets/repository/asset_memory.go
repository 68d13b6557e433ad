package repository

import (
	"context"
	"fmt"
	assetserrors "smartoffice/internal/assets/errors"
	"smartoffice/pkg/model"
	"sync"
	"time"

	"github.com/google/uuid"
)

// memoryAssetRepository keeps assets in process memory. Every operation runs
// under one mutex, so the guarded writes are compare-and-swap steps that can
// not interleave.
type memoryAssetRepository struct {
	mu     sync.RWMutex
	assets map[string]*model.Asset
	order  []string
}

func NewMemoryAssetRepository() AssetRepository {
	return &memoryAssetRepository{
		assets: make(map[string]*model.Asset),
	}
}

func validateUUID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %s", assetserrors.ErrInvalidID, id)
	}
	return nil
}

func (r *memoryAssetRepository) Create(ctx context.Context, asset *model.Asset) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("failed to create asset: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	asset.ID = uuid.NewString()
	asset.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)

	stored := *asset
	r.assets[stored.ID] = &stored
	r.order = append(r.order, stored.ID)
	return nil
}

func (r *memoryAssetRepository) FindByID(ctx context.Context, id string) (*model.Asset, error) {
	if err := validateUUID(id); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("failed to find asset: %w", err)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, ok := r.assets[id]
	if !ok {
		return nil, assetserrors.ErrNotFound
	}
	asset := *stored
	return &asset, nil
}

func (r *memoryAssetRepository) FindAll(ctx context.Context, filter model.AssetFilter, limit int, offset int64) ([]*model.Asset, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("failed to find assets: %w", err)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	assets := []*model.Asset{}
	var skipped int64
	for _, id := range r.order {
		stored := r.assets[id]
		if !matches(stored, filter) {
			continue
		}
		if skipped < offset {
			skipped++
			continue
		}
		if len(assets) >= limit {
			break
		}
		asset := *stored
		assets = append(assets, &asset)
	}
	return assets, nil
}

func (r *memoryAssetRepository) Count(ctx context.Context, filter model.AssetFilter) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("failed to count assets: %w", err)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var count int64
	for _, stored := range r.assets {
		if matches(stored, filter) {
			count++
		}
	}
	return count, nil
}

func (r *memoryAssetRepository) Stats(ctx context.Context) (*model.AssetStats, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("failed to aggregate asset stats: %w", err)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	stats := newStats()
	for _, stored := range r.assets {
		var available int64
		if stored.IsAvailable {
			available = 1
		}
		addStats(stats, stored.Type, 1, available)
	}
	return stats, nil
}

func (r *memoryAssetRepository) Replace(ctx context.Context, id string, asset *model.Asset, expectedHolderID string) (bool, error) {
	if err := validateUUID(id); err != nil {
		return false, err
	}
	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("failed to replace asset: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.assets[id]
	if !ok || stored.IsAvailable != asset.IsAvailable || stored.BookedBy != expectedHolderID {
		return false, nil
	}
	stored.Name = asset.Name
	stored.Type = asset.Type
	stored.Description = asset.Description
	stored.IsAvailable = asset.IsAvailable
	stored.BookedBy = asset.BookedBy
	stored.BookedByFullName = asset.BookedByFullName
	return true, nil
}

func (r *memoryAssetRepository) TryBook(ctx context.Context, id string, holderID string, holderName string) (bool, error) {
	if err := validateUUID(id); err != nil {
		return false, err
	}
	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("failed to book asset: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.assets[id]
	if !ok || !stored.IsAvailable {
		return false, nil
	}
	stored.IsAvailable = false
	stored.BookedBy = holderID
	stored.BookedByFullName = holderName
	return true, nil
}

func (r *memoryAssetRepository) TryRelease(ctx context.Context, id string, requiredHolderID string) (bool, error) {
	if err := validateUUID(id); err != nil {
		return false, err
	}
	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("failed to release asset: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.assets[id]
	if !ok || stored.IsAvailable {
		return false, nil
	}
	if requiredHolderID != "" && stored.BookedBy != requiredHolderID {
		return false, nil
	}
	stored.IsAvailable = true
	stored.ClearHolder()
	return true, nil
}

func (r *memoryAssetRepository) Delete(ctx context.Context, id string) error {
	if err := validateUUID(id); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("failed to delete asset: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.assets[id]; !ok {
		return assetserrors.ErrNotFound
	}
	delete(r.assets, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func matches(asset *model.Asset, filter model.AssetFilter) bool {
	if filter.Type != "" && asset.Type != filter.Type {
		return false
	}
	if filter.Available != nil && asset.IsAvailable != *filter.Available {
		return false
	}
	return true
}
