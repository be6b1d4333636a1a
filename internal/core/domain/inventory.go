package domain

import (
	"errors"
	"strings"
	"time"
)

// Storage keys for the two persisted collections
const (
	AssetsKey  = "computers"
	ChangesKey = "changes"
)

// RecentWindowDays is the length of the trailing window used for the recent change count
const RecentWindowDays = 30

var (
	ErrAssetNotFound = errors.New("asset not found")
	ErrAmbiguousRef  = errors.New("reference matches more than one asset")
	ErrPartialWrite  = errors.New("assets saved but changes were not")
)

// Snapshot is an immutable copy of both collections at one point in time
type Snapshot struct {
	Assets  []Asset        `json:"computers"`
	Changes []ChangeRecord `json:"changes"`
}

// FindAsset looks an asset up by exact identifier
func (s Snapshot) FindAsset(id string) (Asset, bool) {
	for _, a := range s.Assets {
		if a.ID == id {
			return a, true
		}
	}
	return Asset{}, false
}

// HasChange reports whether a change record with the identifier exists
func (s Snapshot) HasChange(id string) bool {
	for _, c := range s.Changes {
		if c.ID == id {
			return true
		}
	}
	return false
}

// AssetsByPrefix returns assets whose identifier starts with prefix (case-insensitive)
func (s Snapshot) AssetsByPrefix(prefix string) []Asset {
	prefix = strings.ToLower(prefix)
	var matches []Asset
	for _, a := range s.Assets {
		if strings.HasPrefix(strings.ToLower(a.ID), prefix) {
			matches = append(matches, a)
		}
	}
	return matches
}

// Stats holds the dashboard counters derived from a snapshot
type Stats struct {
	Active        int                `json:"active"`
	Maintenance   int                `json:"maintenance"`
	Retired       int                `json:"retired"`
	RecentChanges int                `json:"recentChanges"`
	TotalAssets   int                `json:"totalAssets"`
	TotalChanges  int                `json:"totalChanges"`
	ChangesByType map[ChangeType]int `json:"changesByType"`
	GeneratedAt   time.Time          `json:"generatedAt"`
}

// RecentCutoff returns the inclusive lower bound of the trailing window ending at now
func RecentCutoff(now time.Time) time.Time {
	return now.AddDate(0, 0, -RecentWindowDays)
}
