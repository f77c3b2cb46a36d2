package core

// Metrics are the values derived from a refuel's raw inputs. They are
// always computed together and never edited on their own.
type Metrics struct {
	Litres         float64
	KmPerLitre     float64
	LitresPer100Km float64
	CostPerKm      float64
}

// ComputeMetrics derives litres bought, efficiency, consumption and cost per
// kilometre. All inputs must be strictly positive; otherwise an
// InvalidInput error is returned before any division happens.
func ComputeMetrics(totalCost, pricePerLitre, distanceKm float64) (Metrics, error) {
	if err := validateAmounts(totalCost, pricePerLitre, distanceKm); err != nil {
		return Metrics{}, err
	}

	litres := totalCost / pricePerLitre
	return Metrics{
		Litres:         litres,
		KmPerLitre:     distanceKm / litres,
		LitresPer100Km: (litres / distanceKm) * 100,
		CostPerKm:      totalCost / distanceKm,
	}, nil
}
