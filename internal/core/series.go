package core

// MinSeriesPoints is the smallest number of entries a chart can be drawn from.
const MinSeriesPoints = 2

// SeriesPoint is one sample of the efficiency and cost charts.
type SeriesPoint struct {
	Date       Date
	KmPerLitre float64
	CostPerKm  float64
}

// Series feeds the "efficiency over time" and "cost per km over time" charts.
type Series struct {
	Points []SeriesPoint
}

// BuildSeries turns entries into chart points ordered by date ascending,
// keeping insertion order between entries of the same day. Entries without
// a date are skipped. Fewer than MinSeriesPoints points is ErrNotEnoughData.
func BuildSeries(entries []FuelEntry) (Series, error) {
	ordered := make([]FuelEntry, len(entries))
	copy(ordered, entries)
	SortEntries(ordered, TimeSeriesOrder)

	points := make([]SeriesPoint, 0, len(ordered))
	for _, e := range ordered {
		if e.Date.IsZero() {
			continue
		}
		points = append(points, SeriesPoint{
			Date:       e.Date,
			KmPerLitre: e.Metrics.KmPerLitre,
			CostPerKm:  e.Metrics.CostPerKm,
		})
	}

	if len(points) < MinSeriesPoints {
		return Series{Points: points}, ErrNotEnoughData
	}
	return Series{Points: points}, nil
}
