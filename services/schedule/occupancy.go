package schedule

import (
	"math"

	"gebedsrooster/models"
)

// ComputeOccupancy counts the distinct registered hours against the length of
// the campaign. Co-registrants of one hour count once.
func ComputeOccupancy(rng models.CampaignRange, registrations []models.Registration, rounding RoundingMode) models.Occupancy {
	total := int(math.Abs(rng.End.Sub(rng.Start).Hours()))

	seen := make(map[int64]struct{}, len(registrations))
	for _, r := range registrations {
		seen[r.Date.UnixMilli()] = struct{}{}
	}
	busy := len(seen)

	return models.Occupancy{
		HoursBusy:  busy,
		HoursTotal: total,
		Percentage: percentage(busy, total, rounding),
	}
}

func percentage(busy, total int, rounding RoundingMode) int {
	if total <= 0 || busy <= 0 {
		return 0
	}
	var p int
	if rounding == RoundFloor {
		p = busy * 100 / total
	} else {
		p = (busy*100 + total - 1) / total
	}
	return min(p, 100)
}
