package advisor

import (
	"math"
	"time"

	"larder/internal/models"
)

// Urgency thresholds. Boundary values are not urgent.
const (
	urgentRemainingBelow = 40
	urgentShelfLifeBelow = 5
)

// expiryDateLayout is the calendar date format stored on pantry rows
const expiryDateLayout = "2006-01-02"

// Refresh recomputes shelf life from the expiry date for every item that
// carries one. The result never drops below one day. Items without a
// parseable expiry keep their stored shelf life. The input is not mutated.
func Refresh(items []models.InventoryItem, now time.Time) []models.InventoryItem {
	out := make([]models.InventoryItem, len(items))
	copy(out, items)

	for i := range out {
		if out[i].Expiry == "" {
			continue
		}
		expiry, err := time.Parse(expiryDateLayout, out[i].Expiry)
		if err != nil {
			continue
		}
		days := math.Round(expiry.Sub(now).Hours() / 24)
		if days < 1 {
			days = 1
		}
		out[i].ShelfLife = days
	}

	return out
}

// ComputeMetrics derives the advisory aggregates from an inventory
// snapshot. The freshness override runs before the urgency filter, and the
// urgent subset preserves input order. Deterministic for the same items
// and the same now timestamp.
func ComputeMetrics(items []models.InventoryItem, now time.Time) models.Metrics {
	fresh := Refresh(items, now)

	urgent := make([]models.InventoryItem, 0)
	var totalDays, totalValue float64

	for _, item := range fresh {
		if item.Remaining < urgentRemainingBelow || item.ShelfLife < urgentShelfLifeBelow {
			urgent = append(urgent, item)
		}
		totalDays += item.AverageDays
		totalValue += item.Price
	}

	// Divide by one on an empty snapshot instead of erroring out
	count := len(fresh)
	if count == 0 {
		count = 1
	}

	return models.Metrics{
		Urgent:     urgent,
		AvgDays:    int(math.Round(totalDays / float64(count))),
		TotalValue: totalValue,
	}
}
