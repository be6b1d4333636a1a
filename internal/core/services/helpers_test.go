package services

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/kamal-hamza/inv-cli/internal/core/domain"
)

var fixedNow = time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC)

// sequentialFactory returns a factory with a frozen clock and ids "id-1", "id-2", ...
func sequentialFactory() *EntityFactory {
	n := 0
	return NewEntityFactory().
		WithClock(func() time.Time { return fixedNow }).
		WithIDSource(func() string {
			n++
			return fmt.Sprintf("id-%d", n)
		})
}

func nullLogger() (*logrus.Logger, *test.Hook) {
	return test.NewNullLogger()
}

func validAssetDraft() domain.AssetDraft {
	return domain.AssetDraft{
		Name:            "PC-1",
		Brand:           "Dell",
		Model:           "OptiPlex 7090",
		OperatingSystem: "Windows 11",
		Processor:       "Intel i7-11700",
		RAM:             "32GB",
		Storage:         "1TB NVMe",
		Location:        "Office 2",
		Status:          domain.StatusActive,
	}
}

func validChangeDraft() domain.ChangeDraft {
	return domain.ChangeDraft{
		Type:        domain.ChangeHardware,
		Description: "Memory upgrade",
		Component:   "RAM",
		NewValue:    "64GB",
		Date:        "2024-03-01",
	}
}

func asset(id, name, brand string, status domain.AssetStatus) domain.Asset {
	return domain.Asset{
		ID:              id,
		Name:            name,
		Brand:           brand,
		Model:           "Model " + name,
		OperatingSystem: "Ubuntu 22.04",
		Status:          status,
	}
}

func change(id, owner, date string) domain.ChangeRecord {
	return domain.ChangeRecord{
		ID:       id,
		AssetID:  owner,
		Type:     domain.ChangeSoftware,
		NewValue: "v" + id,
		Date:     date,
	}
}
