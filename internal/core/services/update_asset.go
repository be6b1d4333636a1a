package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/wI2L/jsondiff"

	"github.com/kamal-hamza/inv-cli/internal/core/domain"
	"github.com/kamal-hamza/inv-cli/internal/core/ports"
)

// UpdateAssetService handles editing an existing asset's fields
type UpdateAssetService struct {
	repo ports.InventoryRepository
	log  logrus.FieldLogger
}

// NewUpdateAssetService creates a new asset update service
func NewUpdateAssetService(repo ports.InventoryRepository, log logrus.FieldLogger) *UpdateAssetService {
	return &UpdateAssetService{
		repo: repo,
		log:  log,
	}
}

// UpdateAssetResponse carries the stored asset and the json field names that changed
type UpdateAssetResponse struct {
	Asset    domain.Asset
	Previous domain.Asset
	Changed  []string
}

// Execute replaces the editable fields of asset id with the draft.
// Identity and creation time are preserved. No write happens when nothing changed.
func (s *UpdateAssetService) Execute(ctx context.Context, id string, draft domain.AssetDraft) (*UpdateAssetResponse, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	previous, ok := s.repo.Snapshot(ctx).FindAsset(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrAssetNotFound, id)
	}

	updated := previous.Apply(draft)

	changed, err := changedFields(previous, updated)
	if err != nil {
		return nil, fmt.Errorf("failed to compare asset: %w", err)
	}

	resp := &UpdateAssetResponse{
		Asset:    updated,
		Previous: previous,
		Changed:  changed,
	}
	if len(changed) == 0 {
		return resp, nil
	}

	if err := s.repo.UpdateAsset(ctx, updated); err != nil {
		return nil, fmt.Errorf("failed to save asset: %w", err)
	}

	s.log.WithFields(logrus.Fields{
		"asset_id": updated.ID,
		"fields":   changed,
	}).Info("asset updated")

	return resp, nil
}

// changedFields returns the top-level json keys that differ between two assets
func changedFields(before, after domain.Asset) ([]string, error) {
	src, err := json.Marshal(before)
	if err != nil {
		return nil, err
	}
	dst, err := json.Marshal(after)
	if err != nil {
		return nil, err
	}

	patch, err := jsondiff.CompareJSON(src, dst)
	if err != nil {
		return nil, err
	}

	fields := make([]string, 0, len(patch))
	for _, op := range patch {
		fields = append(fields, strings.TrimPrefix(string(op.Path), "/"))
	}
	return fields, nil
}
