package service

import (
	"context"
	"errors"
	assetserrors "smartoffice/internal/assets/errors"
	"smartoffice/internal/assets/policy"
	"smartoffice/internal/assets/repository"
	"smartoffice/internal/assets/validator"
	"smartoffice/pkg/config"
	apperrors "smartoffice/pkg/errors"
	"smartoffice/pkg/metrics"
	"smartoffice/pkg/model"
	"smartoffice/pkg/sanitizer"
	"sync"
)

type AssetService interface {
	Create(ctx context.Context, asset *model.Asset, principal model.Principal) error
	GetByID(ctx context.Context, id string) (*model.Asset, error)
	GetAll(ctx context.Context, filter model.AssetFilter, limit int, offset int64) ([]*model.Asset, int64, error)
	Stats(ctx context.Context) (*model.AssetStats, error)
	Update(ctx context.Context, id string, updates *model.AssetUpdate, principal model.Principal) error
	Delete(ctx context.Context, id string, principal model.Principal) error
}

type assetService struct {
	repo      repository.AssetRepository
	validator *validator.AssetValidator
	metrics   *metrics.Recorder
	cfg       *config.Config
}

func NewAssetService(
	repo repository.AssetRepository,
	validator *validator.AssetValidator,
	recorder *metrics.Recorder,
	cfg *config.Config,
) AssetService {
	return &assetService{
		repo:      repo,
		validator: validator,
		metrics:   recorder,
		cfg:       cfg,
	}
}

func (s *assetService) Create(ctx context.Context, asset *model.Asset, principal model.Principal) error {
	if !policy.CanManageCatalog(principal) {
		s.cfg.Log.Warn("Asset creation denied", "subject", principal.SubjectID, "role", principal.Role)
		s.metrics.ObserveTransition(metrics.TransitionCreate, metrics.OutcomeForbidden)
		return apperrors.Forbidden(assetserrors.MsgAdminOnly)
	}

	s.sanitize(asset)
	applyCreationDefaults(asset)

	if err := s.validator.Validate(asset); err != nil {
		s.cfg.Log.Warn("Asset validation failed", "name", asset.Name, "type", asset.Type, "error", err)
		s.metrics.ObserveTransition(metrics.TransitionCreate, metrics.OutcomeInvalid)
		return apperrors.Validation("Asset validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	if err := s.repo.Create(ctx, asset); err != nil {
		s.cfg.Log.Error("Failed to create asset", "name", asset.Name, "error", err)
		s.metrics.ObserveTransition(metrics.TransitionCreate, metrics.OutcomeError)
		return apperrors.Internal("Failed to create asset", err)
	}

	s.cfg.Log.Info("Asset created successfully",
		"id", asset.ID,
		"name", asset.Name,
		"type", asset.Type,
		"is_available", asset.IsAvailable,
		"created_by", principal.SubjectID,
	)
	s.metrics.ObserveTransition(metrics.TransitionCreate, metrics.OutcomeSuccess)
	return nil
}

func (s *assetService) GetByID(ctx context.Context, id string) (*model.Asset, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Asset ID cannot be empty")
	}

	asset, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError(err, id, "Failed to retrieve asset")
	}
	return asset, nil
}

func (s *assetService) GetAll(ctx context.Context, filter model.AssetFilter, limit int, offset int64) ([]*model.Asset, int64, error) {
	limit = config.NormalizePaginationLimit(limit)
	offset = config.NormalizeOffset(offset)
	filter.Type = sanitizer.NormalizeType(filter.Type)

	var count int64
	var assets []*model.Asset
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		var err error
		count, err = s.repo.Count(ctx, filter)
		if err != nil {
			s.cfg.Log.Error("Failed to count assets", "error", err)
			errCount = apperrors.Internal("Failed to count assets", err)
		}
	}()

	go func() {
		defer wg.Done()
		var err error
		assets, err = s.repo.FindAll(ctx, filter, limit, offset)
		if err != nil {
			s.cfg.Log.Error("Failed to list assets",
				"limit", limit,
				"offset", offset,
				"type", filter.Type,
				"error", err,
			)
			errFind = apperrors.Internal("Failed to retrieve assets", err)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return assets, count, nil
}

func (s *assetService) Stats(ctx context.Context) (*model.AssetStats, error) {
	stats, err := s.repo.Stats(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to compute asset stats", "error", err)
		return nil, apperrors.Internal("Failed to compute asset stats", err)
	}
	return stats, nil
}

// Update applies the caller's requested state. The stored state read first is
// only used to decide what kind of change this is; every write is then a
// guarded store operation that re-checks the hold state atomically.
func (s *assetService) Update(ctx context.Context, id string, updates *model.AssetUpdate, principal model.Principal) error {
	if id == "" {
		return apperrors.InvalidInput("Asset ID cannot be empty")
	}
	if updates == nil {
		return apperrors.InvalidInput("Update body cannot be empty")
	}
	if principal.SubjectID == "" {
		return apperrors.Unauthorized("Authentication required")
	}

	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return s.mapRepoError(err, id, "Failed to check asset existence")
	}

	transition := classifyTransition(current, updates, principal)
	switch transition {
	case metrics.TransitionBook:
		err = s.book(ctx, id, principal)
	case metrics.TransitionRelease:
		err = s.release(ctx, id, current, principal)
	default:
		err = s.edit(ctx, id, current, updates, principal)
	}

	s.metrics.ObserveTransition(transition, outcomeOf(err))
	return err
}

// classifyTransition decides between booking, release and a plain edit by
// comparing the stored availability with the requested one. A member asking
// for an asset someone else already holds is a booking attempt, which the
// guarded write then rejects.
func classifyTransition(current *model.Asset, updates *model.AssetUpdate, principal model.Principal) string {
	if updates.IsAvailable == nil {
		return metrics.TransitionEdit
	}
	requested := *updates.IsAvailable
	if requested == current.IsAvailable {
		if !requested && !principal.IsAdmin() && current.BookedBy != principal.SubjectID {
			return metrics.TransitionBook
		}
		return metrics.TransitionEdit
	}
	if current.IsHeld() {
		return metrics.TransitionRelease
	}
	return metrics.TransitionBook
}

func (s *assetService) book(ctx context.Context, id string, principal model.Principal) error {
	if !policy.CanHold(principal) {
		s.cfg.Log.Warn("Booking denied for reserved subject", "id", id, "subject", principal.SubjectID)
		return apperrors.Forbidden(assetserrors.MsgReservedHolder)
	}

	holderName := sanitizer.NormalizeName(principal.DisplayName)

	booked, err := s.repo.TryBook(ctx, id, principal.SubjectID, holderName)
	if err != nil {
		s.cfg.Log.Error("Failed to book asset", "id", id, "subject", principal.SubjectID, "error", err)
		return s.mapRepoError(err, id, "Failed to book asset")
	}
	if !booked {
		s.cfg.Log.Warn("Asset already held", "id", id, "subject", principal.SubjectID)
		return apperrors.Conflict(assetserrors.MsgAlreadyBooked)
	}

	s.cfg.Log.Info("Asset booked", "id", id, "booked_by", principal.SubjectID)
	return nil
}

func (s *assetService) release(ctx context.Context, id string, current *model.Asset, principal model.Principal) error {
	if !policy.CanRelease(principal, current) {
		s.cfg.Log.Warn("Asset release denied",
			"id", id,
			"subject", principal.SubjectID,
			"role", principal.Role,
			"booked_by", current.BookedBy,
		)
		if policy.IsManualHold(current) {
			return apperrors.Forbidden(assetserrors.MsgManualRelease)
		}
		return apperrors.Forbidden(assetserrors.MsgNotHolder)
	}

	released, err := s.repo.TryRelease(ctx, id, policy.ReleaseHolderGuard(principal))
	if err != nil {
		s.cfg.Log.Error("Failed to release asset", "id", id, "subject", principal.SubjectID, "error", err)
		return s.mapRepoError(err, id, "Failed to release asset")
	}
	if !released {
		s.cfg.Log.Warn("Release precondition no longer holds", "id", id, "subject", principal.SubjectID)
		return apperrors.Conflict(assetserrors.MsgStateChanged)
	}

	s.cfg.Log.Info("Asset released",
		"id", id,
		"released_by", principal.SubjectID,
		"previous_holder", current.BookedBy,
	)
	return nil
}

func (s *assetService) edit(ctx context.Context, id string, current *model.Asset, updates *model.AssetUpdate, principal model.Principal) error {
	merged := mergeAssetUpdates(current, updates, principal)
	s.sanitize(merged)
	normalizeHolder(merged)

	if err := s.validator.Validate(merged); err != nil {
		s.cfg.Log.Warn("Asset validation failed", "id", id, "error", err)
		return apperrors.Validation("Asset validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	replaced, err := s.repo.Replace(ctx, id, merged, current.BookedBy)
	if err != nil {
		s.cfg.Log.Error("Failed to update asset", "id", id, "error", err)
		return s.mapRepoError(err, id, "Failed to update asset")
	}
	if !replaced {
		s.cfg.Log.Warn("Edit rejected, hold state changed since read", "id", id, "subject", principal.SubjectID)
		return apperrors.Conflict(assetserrors.MsgStateChanged)
	}

	s.cfg.Log.Info("Asset updated successfully", "id", id, "updated_by", principal.SubjectID)
	return nil
}

func (s *assetService) Delete(ctx context.Context, id string, principal model.Principal) error {
	if id == "" {
		return apperrors.InvalidInput("Asset ID cannot be empty")
	}
	if !policy.CanManageCatalog(principal) {
		s.cfg.Log.Warn("Asset deletion denied", "id", id, "subject", principal.SubjectID, "role", principal.Role)
		s.metrics.ObserveTransition(metrics.TransitionDelete, metrics.OutcomeForbidden)
		return apperrors.Forbidden(assetserrors.MsgAdminOnly)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		mapped := s.mapRepoError(err, id, "Failed to delete asset")
		if apperrors.HasCode(mapped, apperrors.CodeInternal) {
			s.cfg.Log.Error("Failed to delete asset", "id", id, "error", err)
		}
		s.metrics.ObserveTransition(metrics.TransitionDelete, outcomeOf(mapped))
		return mapped
	}

	s.cfg.Log.Info("Asset deleted successfully", "id", id, "deleted_by", principal.SubjectID)
	s.metrics.ObserveTransition(metrics.TransitionDelete, metrics.OutcomeSuccess)
	return nil
}

func (s *assetService) mapRepoError(err error, id string, message string) error {
	switch {
	case errors.Is(err, assetserrors.ErrNotFound):
		return apperrors.NotFoundWithID("Asset", id)
	case errors.Is(err, assetserrors.ErrInvalidID):
		return apperrors.InvalidInput("Invalid asset ID format")
	default:
		return apperrors.Internal(message, err)
	}
}

func (s *assetService) sanitize(asset *model.Asset) {
	asset.Name = sanitizer.NormalizeName(asset.Name)
	asset.Type = sanitizer.NormalizeType(asset.Type)
	asset.Description = sanitizer.NormalizeDescription(asset.Description)
	asset.BookedBy = sanitizer.NormalizeIdentifier(asset.BookedBy)
	asset.BookedByFullName = sanitizer.NormalizeName(asset.BookedByFullName)
}

// mergeAssetUpdates overlays the requested fields on the stored asset.
// Booking fields are only taken from admins; everyone else keeps the
// persisted holder.
func mergeAssetUpdates(current *model.Asset, updates *model.AssetUpdate, principal model.Principal) *model.Asset {
	merged := *current

	if updates.Name != nil {
		merged.Name = *updates.Name
	}
	if updates.Type != nil {
		merged.Type = *updates.Type
	}
	if updates.Description != nil {
		merged.Description = *updates.Description
	}

	if principal.IsAdmin() {
		if updates.BookedBy != nil {
			merged.BookedBy = *updates.BookedBy
		}
		if updates.BookedByFullName != nil {
			merged.BookedByFullName = *updates.BookedByFullName
		}
	}

	merged.ID = current.ID
	merged.IsAvailable = current.IsAvailable
	merged.CreatedAt = current.CreatedAt

	return &merged
}

// normalizeHolder keeps the holder fields consistent with availability: an
// available asset has no holder, and a held asset without a real holder is a
// manual hold.
func normalizeHolder(asset *model.Asset) {
	if asset.IsAvailable {
		asset.ClearHolder()
		return
	}
	if asset.BookedBy == "" {
		asset.BookedBy = model.ManualHolder
	}
}

func applyCreationDefaults(asset *model.Asset) {
	asset.ID = ""
	normalizeHolder(asset)
}

func outcomeOf(err error) string {
	if err == nil {
		return metrics.OutcomeSuccess
	}
	switch apperrors.AsAppError(err).Code {
	case apperrors.CodeConflict:
		return metrics.OutcomeConflict
	case apperrors.CodeForbidden:
		return metrics.OutcomeForbidden
	case apperrors.CodeNotFound:
		return metrics.OutcomeNotFound
	case apperrors.CodeValidation, apperrors.CodeInvalidInput:
		return metrics.OutcomeInvalid
	default:
		return metrics.OutcomeError
	}
}
