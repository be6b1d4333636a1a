package services

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/kamal-hamza/inv-cli/internal/core/domain"
	"github.com/kamal-hamza/inv-cli/internal/core/ports"
)

// CreateAssetService handles registering new computers
type CreateAssetService struct {
	repo    ports.InventoryRepository
	factory *EntityFactory
	log     logrus.FieldLogger
}

// NewCreateAssetService creates a new asset creation service
func NewCreateAssetService(repo ports.InventoryRepository, factory *EntityFactory, log logrus.FieldLogger) *CreateAssetService {
	return &CreateAssetService{
		repo:    repo,
		factory: factory,
		log:     log,
	}
}

// CreateAssetResponse represents the response from creating an asset
type CreateAssetResponse struct {
	Asset domain.Asset
}

// Execute validates the draft, assigns identity and persists the new asset
func (s *CreateAssetService) Execute(ctx context.Context, draft domain.AssetDraft) (*CreateAssetResponse, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	asset := s.factory.NewAsset(draft)

	if err := s.repo.AddAsset(ctx, asset); err != nil {
		return nil, fmt.Errorf("failed to save asset: %w", err)
	}

	s.log.WithFields(logrus.Fields{
		"asset_id": asset.ID,
		"name":     asset.Name,
	}).Info("asset created")

	return &CreateAssetResponse{Asset: asset}, nil
}
