package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"

	"github.com/kamal-hamza/inv-cli/internal/core/domain"
	"github.com/kamal-hamza/inv-cli/internal/core/ports"
)

// ExportFormat names a supported export encoding
type ExportFormat string

const (
	FormatJSON ExportFormat = "json"
	FormatYAML ExportFormat = "yaml"
	FormatXLSX ExportFormat = "xlsx"
)

// ExportFormats lists the supported formats
var ExportFormats = []ExportFormat{FormatJSON, FormatYAML, FormatXLSX}

// ParseExportFormat resolves a format name or file extension
func ParseExportFormat(s string) (ExportFormat, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "xlsx", "excel":
		return FormatXLSX, nil
	}
	return "", fmt.Errorf("unsupported export format %q (expected json, yaml or xlsx)", s)
}

// Extension returns the file extension for the format, without the dot
func (f ExportFormat) Extension() string {
	return string(f)
}

const (
	assetsSheet  = "Assets"
	changesSheet = "Changes"
)

var (
	assetColumns = []string{
		"ID", "Name", "Brand", "Model", "Serial Number", "Operating System", "Processor",
		"RAM", "Storage", "Graphics", "Purchase Date", "Location", "Status", "Created At",
	}
	changeColumns = []string{
		"ID", "Computer ID", "Computer", "Type", "Component", "Previous Value", "New Value",
		"Description", "Date", "Notes", "Created At",
	}
)

// ExportService writes the inventory in a portable format
type ExportService struct {
	repo ports.InventoryRepository
}

// NewExportService creates a new export service
func NewExportService(repo ports.InventoryRepository) *ExportService {
	return &ExportService{repo: repo}
}

// ExportResponse summarizes what was written
type ExportResponse struct {
	Assets  int
	Changes int
}

// Execute writes the current snapshot to w in the requested format
func (s *ExportService) Execute(ctx context.Context, format ExportFormat, w io.Writer) (*ExportResponse, error) {
	snap := s.repo.Snapshot(ctx)
	if snap.Assets == nil {
		snap.Assets = []domain.Asset{}
	}
	if snap.Changes == nil {
		snap.Changes = []domain.ChangeRecord{}
	}

	var err error
	switch format {
	case FormatJSON:
		err = writeJSON(w, snap)
	case FormatYAML:
		err = writeYAML(w, snap)
	case FormatXLSX:
		err = writeWorkbook(w, snap)
	default:
		err = fmt.Errorf("unsupported export format %q", format)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to export inventory: %w", err)
	}

	return &ExportResponse{
		Assets:  len(snap.Assets),
		Changes: len(snap.Changes),
	}, nil
}

func writeJSON(w io.Writer, snap domain.Snapshot) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(snap)
}

// writeYAML re-encodes the JSON document so YAML keys match the persisted field names
func writeYAML(w io.Writer, snap domain.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}

	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return err
	}
	blockStyle(&node)

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&node); err != nil {
		return err
	}
	return enc.Close()
}

// blockStyle clears the flow and quoting styles inherited from JSON;
// the encoder still quotes scalars that would otherwise change type.
func blockStyle(n *yaml.Node) {
	n.Style = 0
	for _, child := range n.Content {
		blockStyle(child)
	}
}

func writeWorkbook(w io.Writer, snap domain.Snapshot) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", assetsSheet); err != nil {
		return err
	}
	if _, err := f.NewSheet(changesSheet); err != nil {
		return err
	}

	if err := setRow(f, assetsSheet, 1, toCells(assetColumns)); err != nil {
		return err
	}
	names := make(map[string]string, len(snap.Assets))
	for i, a := range snap.Assets {
		names[a.ID] = a.Name
		row := []interface{}{
			a.ID, a.Name, a.Brand, a.Model, a.SerialNumber, a.OperatingSystem, a.Processor,
			a.RAM, a.Storage, a.Graphics, a.PurchaseDate, a.Location, string(a.Status),
			a.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		if err := setRow(f, assetsSheet, i+2, row); err != nil {
			return err
		}
	}

	if err := setRow(f, changesSheet, 1, toCells(changeColumns)); err != nil {
		return err
	}
	for i, c := range snap.Changes {
		row := []interface{}{
			c.ID, c.AssetID, names[c.AssetID], string(c.Type), c.Component, c.PreviousValue, c.NewValue,
			c.Description, c.Date, c.Notes, c.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		if err := setRow(f, changesSheet, i+2, row); err != nil {
			return err
		}
	}

	for _, sheet := range []string{assetsSheet, changesSheet} {
		if err := f.SetPanes(sheet, &excelize.Panes{
			Freeze:      true,
			YSplit:      1,
			TopLeftCell: "A2",
			ActivePane:  "bottomLeft",
		}); err != nil {
			return err
		}
	}

	_, err := f.WriteTo(w)
	return err
}

func setRow(f *excelize.File, sheet string, row int, cells []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &cells)
}

func toCells(values []string) []interface{} {
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return cells
}
