package services

import (
	"context"

	"github.com/kamal-hamza/inv-cli/internal/core/domain"
	"github.com/kamal-hamza/inv-cli/internal/core/ports"
)

// StatsService computes dashboard counters
type StatsService struct {
	repo    ports.InventoryRepository
	factory *EntityFactory
}

// NewStatsService creates a new stats service; the factory supplies the clock
func NewStatsService(repo ports.InventoryRepository, factory *EntityFactory) *StatsService {
	return &StatsService{
		repo:    repo,
		factory: factory,
	}
}

// Execute summarizes the current snapshot
func (s *StatsService) Execute(ctx context.Context) domain.Stats {
	snap := s.repo.Snapshot(ctx)
	return Summarize(snap.Assets, snap.Changes, s.factory.Now())
}
