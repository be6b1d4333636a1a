package services

import (
	"time"

	"github.com/google/uuid"

	"github.com/kamal-hamza/inv-cli/internal/core/domain"
)

// EntityFactory assigns identifiers and creation timestamps to new records
type EntityFactory struct {
	now   func() time.Time
	newID func() string
}

// NewEntityFactory returns a factory using the wall clock and random UUIDs
func NewEntityFactory() *EntityFactory {
	return &EntityFactory{
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// WithClock returns a copy of the factory that reads time from now
func (f *EntityFactory) WithClock(now func() time.Time) *EntityFactory {
	c := *f
	c.now = now
	return &c
}

// WithIDSource returns a copy of the factory that draws identifiers from newID
func (f *EntityFactory) WithIDSource(newID func() string) *EntityFactory {
	c := *f
	c.newID = newID
	return &c
}

// Now returns the factory's current time in UTC
func (f *EntityFactory) Now() time.Time {
	return f.now().UTC()
}

// NewAsset builds an asset from a validated draft
func (f *EntityFactory) NewAsset(draft domain.AssetDraft) domain.Asset {
	return domain.Asset{
		ID:        f.newID(),
		CreatedAt: f.Now(),
	}.Apply(draft)
}

// NewChangeRecord builds a change record owned by ownerID from a validated draft
func (f *EntityFactory) NewChangeRecord(draft domain.ChangeDraft, ownerID string) domain.ChangeRecord {
	return domain.ChangeRecord{
		ID:            f.newID(),
		AssetID:       ownerID,
		Type:          draft.Type,
		Description:   draft.Description,
		Component:     draft.Component,
		PreviousValue: draft.PreviousValue,
		NewValue:      draft.NewValue,
		Date:          draft.Date,
		Notes:         draft.Notes,
		CreatedAt:     f.Now(),
	}
}
