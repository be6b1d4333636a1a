package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/kamal-hamza/inv-cli/internal/core/domain"
	"github.com/kamal-hamza/inv-cli/internal/core/ports"
)

// ImportService merges an exported JSON bundle into the inventory
type ImportService struct {
	repo ports.InventoryRepository
	log  logrus.FieldLogger
}

// NewImportService creates a new import service
func NewImportService(repo ports.InventoryRepository, log logrus.FieldLogger) *ImportService {
	return &ImportService{
		repo: repo,
		log:  log,
	}
}

// ImportRequest controls an import run
type ImportRequest struct {
	DryRun bool
}

// ImportResponse reports how many records were added and why others were skipped
type ImportResponse struct {
	AssetsAdded    int
	ChangesAdded   int
	Duplicates     int
	Invalid        int
	DanglingChange int
}

// Execute reads a {"computers": [...], "changes": [...]} document from r and
// appends every record whose id is not already present. Records with an empty
// id, unknown status or unknown change type are skipped. When the computers are
// saved but the changes are not, the response is returned along with the error.
func (s *ImportService) Execute(ctx context.Context, r io.Reader, req ImportRequest) (*ImportResponse, error) {
	var bundle domain.Snapshot
	if err := json.NewDecoder(r).Decode(&bundle); err != nil {
		return nil, fmt.Errorf("failed to decode import bundle: %w", err)
	}

	snap := s.repo.Snapshot(ctx)
	resp := &ImportResponse{}

	seen := make(map[string]bool, len(snap.Assets)+len(bundle.Assets))
	for _, a := range snap.Assets {
		seen[a.ID] = true
	}

	var assets []domain.Asset
	for _, a := range bundle.Assets {
		switch {
		case a.ID == "" || !a.Status.Valid():
			resp.Invalid++
		case seen[a.ID]:
			resp.Duplicates++
		default:
			seen[a.ID] = true
			assets = append(assets, a)
		}
	}

	seenChanges := make(map[string]bool, len(snap.Changes)+len(bundle.Changes))
	for _, c := range snap.Changes {
		seenChanges[c.ID] = true
	}

	var changes []domain.ChangeRecord
	for _, c := range bundle.Changes {
		switch {
		case c.ID == "" || !c.Type.Valid():
			resp.Invalid++
		case seenChanges[c.ID]:
			resp.Duplicates++
		default:
			if !seen[c.AssetID] {
				resp.DanglingChange++
			}
			seenChanges[c.ID] = true
			changes = append(changes, c)
		}
	}

	resp.AssetsAdded = len(assets)
	resp.ChangesAdded = len(changes)

	if req.DryRun || (len(assets) == 0 && len(changes) == 0) {
		return resp, nil
	}

	if err := s.repo.Append(ctx, assets, changes); err != nil {
		if errors.Is(err, domain.ErrPartialWrite) {
			resp.ChangesAdded = 0
			s.log.WithError(err).WithField("assets", resp.AssetsAdded).Warn("import partially saved")
			return resp, fmt.Errorf("saved %d computers but no changes: %w", resp.AssetsAdded, err)
		}
		return nil, fmt.Errorf("failed to save imported records: %w", err)
	}

	s.log.WithFields(logrus.Fields{
		"assets":     resp.AssetsAdded,
		"changes":    resp.ChangesAdded,
		"duplicates": resp.Duplicates,
		"invalid":    resp.Invalid,
	}).Info("inventory imported")

	return resp, nil
}
