package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// AssetStatus is the lifecycle state of a tracked machine
type AssetStatus string

const (
	StatusActive      AssetStatus = "Active"
	StatusMaintenance AssetStatus = "Maintenance"
	StatusRetired     AssetStatus = "Retired"
)

// AssetStatuses lists every valid status in display order
var AssetStatuses = []AssetStatus{StatusActive, StatusMaintenance, StatusRetired}

// Valid reports whether s is one of the known statuses
func (s AssetStatus) Valid() bool {
	for _, known := range AssetStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// ParseStatus resolves user input ("active", "MAINTENANCE") to a canonical status.
// An empty input yields an empty status, meaning "no constraint" for filters.
func ParseStatus(input string) (AssetStatus, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", nil
	}
	for _, known := range AssetStatuses {
		if strings.EqualFold(input, string(known)) {
			return known, nil
		}
	}
	return "", fmt.Errorf("unknown status %q (expected Active, Maintenance or Retired)", input)
}

// Asset represents one tracked computer and its specification.
// JSON keys match the browser inventory export so existing data loads unchanged.
type Asset struct {
	ID              string      `json:"id"`
	Name            string      `json:"name"`
	Brand           string      `json:"brand"`
	Model           string      `json:"model"`
	SerialNumber    string      `json:"serialNumber"`
	OperatingSystem string      `json:"operatingSystem"`
	Processor       string      `json:"processor"`
	RAM             string      `json:"ram"`
	Storage         string      `json:"storage"`
	Graphics        string      `json:"graphics"`
	PurchaseDate    string      `json:"purchaseDate"`
	Location        string      `json:"location"`
	Status          AssetStatus `json:"status"`
	CreatedAt       time.Time   `json:"createdAt"`
}

// UnmarshalJSON decodes an asset, tolerating a missing or malformed createdAt
// so one bad record never rejects the whole collection.
func (a *Asset) UnmarshalJSON(data []byte) error {
	type plain Asset
	aux := struct {
		*plain
		CreatedAt json.RawMessage `json:"createdAt"`
	}{plain: (*plain)(a)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	a.CreatedAt = decodeTimestamp(aux.CreatedAt)
	return nil
}

// AssetDraft is the user-supplied field set for creating or editing an asset
type AssetDraft struct {
	Name            string      `json:"name" validate:"required"`
	Brand           string      `json:"brand" validate:"required"`
	Model           string      `json:"model" validate:"required"`
	SerialNumber    string      `json:"serialNumber"`
	OperatingSystem string      `json:"operatingSystem" validate:"required"`
	Processor       string      `json:"processor" validate:"required"`
	RAM             string      `json:"ram" validate:"required"`
	Storage         string      `json:"storage" validate:"required"`
	Graphics        string      `json:"graphics"`
	PurchaseDate    string      `json:"purchaseDate"`
	Location        string      `json:"location" validate:"required"`
	Status          AssetStatus `json:"status" validate:"required,assetstatus"`
}

// Normalize trims surrounding whitespace from every field
func (d *AssetDraft) Normalize() {
	d.Name = strings.TrimSpace(d.Name)
	d.Brand = strings.TrimSpace(d.Brand)
	d.Model = strings.TrimSpace(d.Model)
	d.SerialNumber = strings.TrimSpace(d.SerialNumber)
	d.OperatingSystem = strings.TrimSpace(d.OperatingSystem)
	d.Processor = strings.TrimSpace(d.Processor)
	d.RAM = strings.TrimSpace(d.RAM)
	d.Storage = strings.TrimSpace(d.Storage)
	d.Graphics = strings.TrimSpace(d.Graphics)
	d.PurchaseDate = strings.TrimSpace(d.PurchaseDate)
	d.Location = strings.TrimSpace(d.Location)
	d.Status = AssetStatus(strings.TrimSpace(string(d.Status)))
}

// Validate normalizes the draft and checks required fields
func (d *AssetDraft) Validate() error {
	d.Normalize()
	return validateStruct(d)
}

// Draft returns the mutable fields of the asset, used to seed the edit flow
func (a Asset) Draft() AssetDraft {
	return AssetDraft{
		Name:            a.Name,
		Brand:           a.Brand,
		Model:           a.Model,
		SerialNumber:    a.SerialNumber,
		OperatingSystem: a.OperatingSystem,
		Processor:       a.Processor,
		RAM:             a.RAM,
		Storage:         a.Storage,
		Graphics:        a.Graphics,
		PurchaseDate:    a.PurchaseDate,
		Location:        a.Location,
		Status:          a.Status,
	}
}

// Apply returns a copy of the asset with the draft's fields.
// ID and CreatedAt are never touched.
func (a Asset) Apply(d AssetDraft) Asset {
	a.Name = d.Name
	a.Brand = d.Brand
	a.Model = d.Model
	a.SerialNumber = d.SerialNumber
	a.OperatingSystem = d.OperatingSystem
	a.Processor = d.Processor
	a.RAM = d.RAM
	a.Storage = d.Storage
	a.Graphics = d.Graphics
	a.PurchaseDate = d.PurchaseDate
	a.Location = d.Location
	a.Status = d.Status
	return a
}

// ShortID returns the first eight characters of the identifier for table display
func (a Asset) ShortID() string {
	return ShortID(a.ID)
}

// GetDisplayPurchaseDate formats the purchase date, or "-" when absent
func (a Asset) GetDisplayPurchaseDate(layout string) string {
	if a.PurchaseDate == "" {
		return "-"
	}
	t, ok := ParseDate(a.PurchaseDate)
	if !ok {
		return a.PurchaseDate
	}
	return t.Format(layout)
}

// GetSpecsString returns a compact one-line hardware summary
func (a Asset) GetSpecsString() string {
	parts := []string{a.Processor, a.RAM, a.Storage}
	if a.Graphics != "" {
		parts = append(parts, a.Graphics)
	}
	return strings.Join(parts, " / ")
}

// ShortID truncates an identifier to eight characters
func ShortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}
