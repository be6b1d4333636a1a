package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/kamal-hamza/inv-cli/internal/core/domain"
	"github.com/kamal-hamza/inv-cli/internal/core/ports"
)

// ListService handles querying and viewing assets
type ListService struct {
	repo ports.InventoryRepository
}

// NewListService creates a new list service
func NewListService(repo ports.InventoryRepository) *ListService {
	return &ListService{
		repo: repo,
	}
}

// ListRequest represents a request to list assets
type ListRequest struct {
	Search string
	Status domain.AssetStatus
}

// ListResponse represents the response from listing assets
type ListResponse struct {
	Assets []domain.Asset
	Total  int // size of the unfiltered collection
}

// Execute returns the assets matching the search term and status filter
func (s *ListService) Execute(ctx context.Context, req ListRequest) (*ListResponse, error) {
	snap := s.repo.Snapshot(ctx)

	return &ListResponse{
		Assets: FilterAssets(snap.Assets, req.Search, req.Status),
		Total:  len(snap.Assets),
	}, nil
}

// AssetView joins an asset with its change history, newest first
type AssetView struct {
	Asset   domain.Asset
	Changes []domain.ChangeRecord
}

// View returns the asset with the given id and its changes
func (s *ListService) View(ctx context.Context, id string) (*AssetView, error) {
	snap := s.repo.Snapshot(ctx)

	asset, ok := snap.FindAsset(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrAssetNotFound, id)
	}

	return &AssetView{
		Asset:   asset,
		Changes: ChangesForAsset(snap.Changes, asset.ID),
	}, nil
}

// Resolve turns a user reference into an asset: exact id first, then an exact
// name, then a unique id prefix, then a unique fuzzy name match. Anything that
// matches more than one asset is ErrAmbiguousRef.
func (s *ListService) Resolve(ctx context.Context, ref string) (domain.Asset, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return domain.Asset{}, fmt.Errorf("%w: empty reference", domain.ErrAssetNotFound)
	}

	snap := s.repo.Snapshot(ctx)

	if asset, ok := snap.FindAsset(ref); ok {
		return asset, nil
	}

	var named []domain.Asset
	for _, a := range snap.Assets {
		if strings.EqualFold(a.Name, ref) {
			named = append(named, a)
		}
	}
	switch len(named) {
	case 0:
	case 1:
		return named[0], nil
	default:
		return domain.Asset{}, fmt.Errorf("%w: %d assets are named %q", domain.ErrAmbiguousRef, len(named), ref)
	}

	switch matches := snap.AssetsByPrefix(ref); len(matches) {
	case 0:
	case 1:
		return matches[0], nil
	default:
		return domain.Asset{}, fmt.Errorf("%w: %q matches %d ids", domain.ErrAmbiguousRef, ref, len(matches))
	}

	switch ranked := s.rank(snap.Assets, ref); len(ranked) {
	case 0:
		return domain.Asset{}, fmt.Errorf("%w: %s", domain.ErrAssetNotFound, ref)
	case 1:
		return ranked[0], nil
	default:
		return domain.Asset{}, fmt.Errorf("%w: %q matches %d names", domain.ErrAmbiguousRef, ref, len(ranked))
	}
}

// Search returns assets whose name fuzzily matches query, best match first
func (s *ListService) Search(ctx context.Context, query string) []domain.Asset {
	assets := s.repo.Snapshot(ctx).Assets
	if strings.TrimSpace(query) == "" {
		return assets
	}
	return s.rank(assets, query)
}

func (s *ListService) rank(assets []domain.Asset, query string) []domain.Asset {
	names := make([]string, len(assets))
	for i, a := range assets {
		names[i] = a.Name
	}

	ranks := fuzzy.RankFindNormalizedFold(query, names)
	sort.Stable(ranks)

	result := make([]domain.Asset, 0, len(ranks))
	for _, r := range ranks {
		result = append(result, assets[r.OriginalIndex])
	}
	return result
}
