package services

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"

	"github.com/kamal-hamza/inv-cli/internal/core/domain"
	"github.com/kamal-hamza/inv-cli/internal/core/ports/mocks"
)

func exportFixture() (*mocks.MockInventoryRepository, domain.Snapshot) {
	a := sequentialFactory().NewAsset(validAssetDraft())
	c := sequentialFactory().WithIDSource(func() string { return "chg-1" }).NewChangeRecord(validChangeDraft(), a.ID)

	snap := domain.Snapshot{Assets: []domain.Asset{a}, Changes: []domain.ChangeRecord{c}}
	repo := mocks.NewMockInventoryRepository()
	repo.Seed(snap.Assets, snap.Changes)
	return repo, snap
}

func TestParseExportFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    ExportFormat
		wantErr bool
	}{
		{"json", FormatJSON, false},
		{".yml", FormatYAML, false},
		{"YAML", FormatYAML, false},
		{"xlsx", FormatXLSX, false},
		{"excel", FormatXLSX, false},
		{"csv", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseExportFormat(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExportService_JSON(t *testing.T) {
	repo, snap := exportFixture()
	var buf bytes.Buffer

	resp, err := NewExportService(repo).Execute(context.Background(), FormatJSON, &buf)
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Assets)
	assert.Equal(t, 1, resp.Changes)

	var raw map[string][]map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &raw))
	assert.Equal(t, "PC-1", raw["computers"][0]["name"])
	assert.Equal(t, snap.Assets[0].ID, raw["changes"][0]["computerId"])

	var decoded domain.Snapshot
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	if diff := cmp.Diff(snap, decoded); diff != "" {
		t.Errorf("JSON export mismatch (-want +got):\n%s", diff)
	}
}

func TestExportService_JSONEmptyInventory(t *testing.T) {
	var buf bytes.Buffer

	_, err := NewExportService(mocks.NewMockInventoryRepository()).Execute(context.Background(), FormatJSON, &buf)
	require.NoError(t, err)
	assert.JSONEq(t, `{"computers":[],"changes":[]}`, buf.String())
}

func TestExportService_YAML(t *testing.T) {
	repo, _ := exportFixture()
	var buf bytes.Buffer

	_, err := NewExportService(repo).Execute(context.Background(), FormatYAML, &buf)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "computers:")
	assert.Contains(t, out, "operatingSystem: Windows 11")
	assert.Contains(t, out, "computerId: id-1")
	assert.NotContains(t, out, "{")

	var decoded map[string][]map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "Dell", decoded["computers"][0]["brand"])
}

func TestExportService_Workbook(t *testing.T) {
	repo, _ := exportFixture()
	var buf bytes.Buffer

	_, err := NewExportService(repo).Execute(context.Background(), FormatXLSX, &buf)
	require.NoError(t, err)

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Assets", "Changes"}, f.GetSheetList())

	rows, err := f.GetRows("Assets")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Name", rows[0][1])
	assert.Equal(t, "PC-1", rows[1][1])

	rows, err = f.GetRows("Changes")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "PC-1", rows[1][2])
	assert.Equal(t, "Hardware", rows[1][3])
}

func TestExportService_UnknownFormat(t *testing.T) {
	_, err := NewExportService(mocks.NewMockInventoryRepository()).Execute(context.Background(), "csv", &bytes.Buffer{})
	assert.Error(t, err)
}
