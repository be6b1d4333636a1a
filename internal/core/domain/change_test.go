package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseChangeType(t *testing.T) {
	tests := []struct {
		input    string
		expected ChangeType
	}{
		{"Hardware", ChangeHardware},
		{"software", ChangeSoftware},
		{"Operating System", ChangeOperatingSystem},
		{"OperatingSystem", ChangeOperatingSystem},
		{"operating-system", ChangeOperatingSystem},
		{"os", ChangeOperatingSystem},
		{"MAINTENANCE", ChangeMaintenance},
	}

	for _, tt := range tests {
		got, err := ParseChangeType(tt.input)
		require.NoError(t, err, "ParseChangeType(%q)", tt.input)
		assert.Equal(t, tt.expected, got, "ParseChangeType(%q)", tt.input)
	}

	_, err := ParseChangeType("firmware")
	assert.Error(t, err)
}

func TestChangeDraft_Validate(t *testing.T) {
	valid := ChangeDraft{
		Type:        ChangeHardware,
		Description: "RAM upgrade",
		Component:   "RAM",
		NewValue:    "32GB",
		Date:        "2024-03-05",
	}

	d := valid
	assert.NoError(t, d.Validate())

	d = valid
	d.NewValue = ""
	d.Date = ""
	err := d.Validate()
	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.True(t, vErr.Has("newValue"))
	assert.True(t, vErr.Has("date"))
	assert.False(t, vErr.Has("previousValue"))

	d = valid
	d.Type = "Firmware"
	err = d.Validate()
	require.True(t, errors.As(err, &vErr))
	assert.True(t, vErr.Has("type"))

	// Presence is all that is checked for the date
	d = valid
	d.Date = "sometime in March"
	assert.NoError(t, d.Validate())
}

func TestChangeRecord_EffectiveDate(t *testing.T) {
	c := ChangeRecord{Date: "2024-03-05"}
	assert.Equal(t, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), c.EffectiveDate())

	c.Date = "2024-03-05T14:30:00Z"
	assert.Equal(t, time.Date(2024, 3, 5, 14, 30, 0, 0, time.UTC), c.EffectiveDate())

	c.Date = "not a date"
	assert.True(t, c.EffectiveDate().Equal(Epoch))

	c.Date = ""
	assert.True(t, c.EffectiveDate().Equal(Epoch))
}

func TestChangeRecord_GetTransitionString(t *testing.T) {
	assert.Equal(t, "16GB", ChangeRecord{NewValue: "16GB"}.GetTransitionString())
	assert.Equal(t, "8GB -> 16GB", ChangeRecord{PreviousValue: "8GB", NewValue: "16GB"}.GetTransitionString())
}

func TestSnapshot_Lookups(t *testing.T) {
	s := Snapshot{
		Assets: []Asset{
			{ID: "ab12cd34-0000"},
			{ID: "ab99ef00-0000"},
			{ID: "ff000000-0000"},
		},
		Changes: []ChangeRecord{{ID: "c1"}},
	}

	_, ok := s.FindAsset("ff000000-0000")
	assert.True(t, ok)
	_, ok = s.FindAsset("ff")
	assert.False(t, ok)

	assert.Len(t, s.AssetsByPrefix("ab"), 2)
	assert.Len(t, s.AssetsByPrefix("AB12"), 1)
	assert.True(t, s.HasChange("c1"))
	assert.False(t, s.HasChange("c2"))
}

func TestRecentCutoff(t *testing.T) {
	now := time.Date(2024, 3, 31, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC), RecentCutoff(now))
}
