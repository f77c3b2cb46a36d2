package storage

// FuelEntry mirrors one row of the fuel_entries table.
type FuelEntry struct {
	ID             int64
	Date           string
	TotalCost      float64
	PricePerLitre  float64
	DistanceKm     float64
	Litres         float64
	KmPerLitre     float64
	LitresPer100km float64
	CostPerKm      float64
}
