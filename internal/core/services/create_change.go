package services

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/kamal-hamza/inv-cli/internal/core/domain"
	"github.com/kamal-hamza/inv-cli/internal/core/ports"
)

// CreateChangeService handles logging changes against an asset
type CreateChangeService struct {
	repo    ports.InventoryRepository
	factory *EntityFactory
	log     logrus.FieldLogger
}

// NewCreateChangeService creates a new change logging service
func NewCreateChangeService(repo ports.InventoryRepository, factory *EntityFactory, log logrus.FieldLogger) *CreateChangeService {
	return &CreateChangeService{
		repo:    repo,
		factory: factory,
		log:     log,
	}
}

// CreateChangeResponse represents the response from logging a change
type CreateChangeResponse struct {
	Change domain.ChangeRecord
	Asset  domain.Asset
}

// Execute validates the draft and appends a change record owned by ownerID.
// The owner must exist at creation time; later dangling references are tolerated.
func (s *CreateChangeService) Execute(ctx context.Context, ownerID string, draft domain.ChangeDraft) (*CreateChangeResponse, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	owner, ok := s.repo.Snapshot(ctx).FindAsset(ownerID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrAssetNotFound, ownerID)
	}

	change := s.factory.NewChangeRecord(draft, owner.ID)

	if err := s.repo.AddChange(ctx, change); err != nil {
		return nil, fmt.Errorf("failed to save change: %w", err)
	}

	s.log.WithFields(logrus.Fields{
		"asset_id":  owner.ID,
		"change_id": change.ID,
		"type":      change.Type,
	}).Info("change recorded")

	return &CreateChangeResponse{Change: change, Asset: owner}, nil
}
