package services

import (
	"time"

	"github.com/kamal-hamza/inv-cli/internal/core/domain"
)

// Summarize counts assets per status and change records dated within the
// trailing window ending at now. Records with malformed dates are never recent.
func Summarize(assets []domain.Asset, changes []domain.ChangeRecord, now time.Time) domain.Stats {
	stats := domain.Stats{
		TotalAssets:   len(assets),
		TotalChanges:  len(changes),
		ChangesByType: make(map[domain.ChangeType]int),
		GeneratedAt:   now,
	}

	for _, a := range assets {
		switch a.Status {
		case domain.StatusActive:
			stats.Active++
		case domain.StatusMaintenance:
			stats.Maintenance++
		case domain.StatusRetired:
			stats.Retired++
		}
	}

	cutoff := domain.RecentCutoff(now)
	for _, c := range changes {
		stats.ChangesByType[c.Type]++

		date, ok := domain.ParseDate(c.Date)
		if ok && !date.Before(cutoff) {
			stats.RecentChanges++
		}
	}

	return stats
}

// MonthCount is the number of changes dated within one calendar month
type MonthCount struct {
	Month time.Time
	Count int
}

// ChangesPerMonth buckets change dates into the trailing months ending with now's month,
// oldest first. Malformed or out-of-range dates are ignored.
func ChangesPerMonth(changes []domain.ChangeRecord, now time.Time, months int) []MonthCount {
	if months <= 0 {
		return nil
	}

	now = now.UTC()
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(months - 1), 0)

	buckets := make([]MonthCount, months)
	for i := range buckets {
		buckets[i].Month = first.AddDate(0, i, 0)
	}

	for _, c := range changes {
		date, ok := domain.ParseDate(c.Date)
		if !ok {
			continue
		}
		date = date.UTC()
		idx := (date.Year()-first.Year())*12 + int(date.Month()) - int(first.Month())
		if idx >= 0 && idx < months {
			buckets[idx].Count++
		}
	}

	return buckets
}
