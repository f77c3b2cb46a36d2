package core

// Summary aggregates the whole logbook.
type Summary struct {
	Count             int
	TotalCost         float64
	TotalLitres       float64
	TotalDistance     float64
	AvgKmPerLitre     float64
	AvgLitresPer100Km float64
	AvgCostPerKm      float64
}

// Summarize computes totals and aggregate ratios over entries.
//
// The averages are ratios of sums (total distance over total litres and so
// on), not means of the per-entry ratios. When there is no distance or no
// fuel recorded all three averages are 0.
func Summarize(entries []FuelEntry) Summary {
	s := Summary{Count: len(entries)}
	for _, e := range entries {
		s.TotalCost += e.TotalCost
		s.TotalLitres += e.Metrics.Litres
		s.TotalDistance += e.DistanceKm
	}

	if s.TotalDistance == 0 || s.TotalLitres == 0 {
		return s
	}

	s.AvgKmPerLitre = s.TotalDistance / s.TotalLitres
	s.AvgLitresPer100Km = (s.TotalLitres / s.TotalDistance) * 100
	s.AvgCostPerKm = s.TotalCost / s.TotalDistance
	return s
}
