package services

import (
	"sort"
	"strings"

	"github.com/kamal-hamza/inv-cli/internal/core/domain"
)

// FilterAssets returns the assets whose name, brand, model or operating system
// contains search (case-insensitive) and whose status equals status.
// Empty search or status imposes no constraint. Input order is preserved and
// the result never aliases the input.
func FilterAssets(assets []domain.Asset, search string, status domain.AssetStatus) []domain.Asset {
	needle := strings.ToLower(search)
	result := make([]domain.Asset, 0, len(assets))

	for _, a := range assets {
		if status != "" && a.Status != status {
			continue
		}
		if needle != "" && !matchesSearch(a, needle) {
			continue
		}
		result = append(result, a)
	}

	return result
}

func matchesSearch(a domain.Asset, needle string) bool {
	for _, field := range []string{a.Name, a.Brand, a.Model, a.OperatingSystem} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

// ChangesForAsset returns the records owned by assetID, newest date first.
// Records with equal dates keep their insertion order.
func ChangesForAsset(changes []domain.ChangeRecord, assetID string) []domain.ChangeRecord {
	result := make([]domain.ChangeRecord, 0)
	for _, c := range changes {
		if c.AssetID == assetID {
			result = append(result, c)
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].EffectiveDate().After(result[j].EffectiveDate())
	})

	return result
}
