package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// ChangeType classifies a change record
type ChangeType string

const (
	ChangeHardware        ChangeType = "Hardware"
	ChangeSoftware        ChangeType = "Software"
	ChangeMaintenance     ChangeType = "Maintenance"
	ChangeOperatingSystem ChangeType = "Operating System"
)

// ChangeTypes lists every valid change type in display order
var ChangeTypes = []ChangeType{ChangeHardware, ChangeSoftware, ChangeOperatingSystem, ChangeMaintenance}

// Valid reports whether t is one of the known change types
func (t ChangeType) Valid() bool {
	for _, known := range ChangeTypes {
		if t == known {
			return true
		}
	}
	return false
}

// ParseChangeType resolves user input to a canonical change type.
// "os", "operating-system" and "OperatingSystem" all map to ChangeOperatingSystem.
func ParseChangeType(input string) (ChangeType, error) {
	key := strings.NewReplacer(" ", "", "-", "", "_", "").Replace(strings.ToLower(strings.TrimSpace(input)))
	switch key {
	case "hardware", "hw":
		return ChangeHardware, nil
	case "software", "sw":
		return ChangeSoftware, nil
	case "maintenance", "maint":
		return ChangeMaintenance, nil
	case "operatingsystem", "os":
		return ChangeOperatingSystem, nil
	}
	return "", fmt.Errorf("unknown change type %q (expected Hardware, Software, Operating System or Maintenance)", input)
}

// ChangeRecord is an append-only log entry describing one modification applied to an asset
type ChangeRecord struct {
	ID            string     `json:"id"`
	AssetID       string     `json:"computerId"`
	Type          ChangeType `json:"type"`
	Description   string     `json:"description"`
	Component     string     `json:"component"`
	PreviousValue string     `json:"previousValue"`
	NewValue      string     `json:"newValue"`
	Date          string     `json:"date"`
	Notes         string     `json:"notes"`
	CreatedAt     time.Time  `json:"createdAt"`
}

// UnmarshalJSON decodes a change record, tolerating a missing or malformed createdAt
func (c *ChangeRecord) UnmarshalJSON(data []byte) error {
	type plain ChangeRecord
	aux := struct {
		*plain
		CreatedAt json.RawMessage `json:"createdAt"`
	}{plain: (*plain)(c)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	c.CreatedAt = decodeTimestamp(aux.CreatedAt)
	return nil
}

// EffectiveDate returns the parsed change date, or the Unix epoch when malformed
func (c ChangeRecord) EffectiveDate() time.Time {
	return EffectiveTime(c.Date)
}

// GetTransitionString renders "old -> new", or just the new value when there is no previous one
func (c ChangeRecord) GetTransitionString() string {
	if c.PreviousValue == "" {
		return c.NewValue
	}
	return c.PreviousValue + " -> " + c.NewValue
}

// ChangeDraft is the user-supplied field set for logging a change
type ChangeDraft struct {
	Type          ChangeType `json:"type" validate:"required,changetype"`
	Description   string     `json:"description" validate:"required"`
	Component     string     `json:"component" validate:"required"`
	PreviousValue string     `json:"previousValue"`
	NewValue      string     `json:"newValue" validate:"required"`
	Date          string     `json:"date" validate:"required"`
	Notes         string     `json:"notes"`
}

// Normalize trims surrounding whitespace from every field
func (d *ChangeDraft) Normalize() {
	d.Type = ChangeType(strings.TrimSpace(string(d.Type)))
	d.Description = strings.TrimSpace(d.Description)
	d.Component = strings.TrimSpace(d.Component)
	d.PreviousValue = strings.TrimSpace(d.PreviousValue)
	d.NewValue = strings.TrimSpace(d.NewValue)
	d.Date = strings.TrimSpace(d.Date)
	d.Notes = strings.TrimSpace(d.Notes)
}

// Validate normalizes the draft and checks required fields.
// The date is only checked for presence; malformed dates are tolerated and sort as oldest.
func (d *ChangeDraft) Validate() error {
	d.Normalize()
	return validateStruct(d)
}
