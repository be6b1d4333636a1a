package services

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/kamal-hamza/inv-cli/internal/core/domain"
)

func inventoryFixture() []domain.Asset {
	return []domain.Asset{
		asset("a1", "PC-1", "Dell", domain.StatusActive),
		asset("a2", "PC-2", "HP", domain.StatusMaintenance),
		asset("a3", "Render Node", "Dell", domain.StatusRetired),
		asset("a4", "Laptop", "Lenovo", domain.StatusActive),
	}
}

func ids(assets []domain.Asset) []string {
	out := make([]string, len(assets))
	for i, a := range assets {
		out[i] = a.ID
	}
	return out
}

func TestFilterAssets(t *testing.T) {
	assets := inventoryFixture()
	assets[3].OperatingSystem = "macOS Sonoma"

	tests := []struct {
		name   string
		search string
		status domain.AssetStatus
		want   []string
	}{
		{"no constraints", "", "", []string{"a1", "a2", "a3", "a4"}},
		{"brand case-insensitive", "dell", "", []string{"a1", "a3"}},
		{"name substring", "pc-", "", []string{"a1", "a2"}},
		{"model substring", "MODEL RENDER", "", []string{"a3"}},
		{"operating system", "sonoma", "", []string{"a4"}},
		{"status only", "", domain.StatusActive, []string{"a1", "a4"}},
		{"search and status", "dell", domain.StatusRetired, []string{"a3"}},
		{"no match", "commodore", "", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(FilterAssets(assets, tt.search, tt.status))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("FilterAssets() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFilterAssets_TwoAssetExample(t *testing.T) {
	assets := []domain.Asset{
		{ID: "1", Name: "PC-1", Brand: "Dell"},
		{ID: "2", Name: "PC-2", Brand: "HP"},
	}

	got := FilterAssets(assets, "dell", "")

	assert.Len(t, got, 1)
	assert.Equal(t, "PC-1", got[0].Name)
}

func TestFilterAssets_Idempotent(t *testing.T) {
	assets := inventoryFixture()

	for _, search := range []string{"", "dell", "pc", "x"} {
		for _, status := range append([]domain.AssetStatus{""}, domain.AssetStatuses...) {
			once := FilterAssets(assets, search, status)
			twice := FilterAssets(once, search, status)
			assert.Equal(t, ids(once), ids(twice), "search=%q status=%q", search, status)
		}
	}
}

func TestFilterAssets_FreshSlice(t *testing.T) {
	assets := inventoryFixture()

	got := FilterAssets(assets, "", "")
	got[0].Name = "mutated"

	assert.Equal(t, "PC-1", assets[0].Name)
}

func TestChangesForAsset_NewestFirst(t *testing.T) {
	changes := []domain.ChangeRecord{
		change("c1", "a1", "2024-01-10"),
		change("c2", "a1", "2024-03-05"),
	}

	got := ChangesForAsset(changes, "a1")

	assert.Equal(t, []string{"c2", "c1"}, changeIDs(got))
}

func TestChangesForAsset(t *testing.T) {
	changes := []domain.ChangeRecord{
		change("c1", "a1", "2024-01-10"),
		change("c2", "a2", "2024-05-01"),
		change("c3", "a1", "not a date"),
		change("c4", "a1", "2024-02-01"),
		change("c5", "a1", "2024-02-01"),
		change("c6", "a1", "2024-02-01T18:30:00Z"),
	}

	tests := []struct {
		name    string
		assetID string
		want    []string
	}{
		{"sorted with stable ties and malformed last", "a1", []string{"c6", "c4", "c5", "c1", "c3"}},
		{"other owner", "a2", []string{"c2"}},
		{"dangling owner", "missing", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, changeIDs(ChangesForAsset(changes, tt.assetID)))
		})
	}
}

func TestChangesForAsset_DoesNotReorderInput(t *testing.T) {
	changes := []domain.ChangeRecord{
		change("c1", "a1", "2024-01-10"),
		change("c2", "a1", "2024-03-05"),
	}

	_ = ChangesForAsset(changes, "a1")

	assert.Equal(t, []string{"c1", "c2"}, changeIDs(changes))
}

func changeIDs(changes []domain.ChangeRecord) []string {
	out := make([]string, len(changes))
	for i, c := range changes {
		out[i] = c.ID
	}
	return out
}
