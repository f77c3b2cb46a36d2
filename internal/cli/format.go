package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"fueltracker/internal/core"
)

func writeMetrics(w io.Writer, m core.Metrics) {
	fmt.Fprintf(w, "  Litres:      %.2f L\n", m.Litres)
	fmt.Fprintf(w, "  Efficiency:  %.2f km/L\n", m.KmPerLitre)
	fmt.Fprintf(w, "  Consumption: %.2f L/100km\n", m.LitresPer100Km)
	fmt.Fprintf(w, "  Cost:        %.3f per km\n", m.CostPerKm)
}

func writeEntries(w io.Writer, entries []core.FuelEntry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No entries yet.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "ID\tDate\tCost\tPrice/L\tDist(km)\tLitres\tkm/L\tL/100km\tCost/km\t")
	for _, e := range entries {
		fmt.Fprintf(tw, "%d\t%s\t%.2f\t%.2f\t%.1f\t%.2f\t%.2f\t%.2f\t%.3f\t\n",
			e.ID, e.Date, e.TotalCost, e.PricePerLitre, e.DistanceKm,
			e.Metrics.Litres, e.Metrics.KmPerLitre, e.Metrics.LitresPer100Km, e.Metrics.CostPerKm)
	}
	_ = tw.Flush()
}

func writeSummary(w io.Writer, s core.Summary) {
	fmt.Fprintf(w, "Total entries: %d | Total distance: %.2f km | Total spent: %.2f\n",
		s.Count, s.TotalDistance, s.TotalCost)
	fmt.Fprintf(w, "Avg. efficiency: %.2f km/L | Avg. consumption: %.2f L/100km | Avg. cost: %.3f/km\n",
		s.AvgKmPerLitre, s.AvgLitresPer100Km, s.AvgCostPerKm)
}

func writeSeries(w io.Writer, s core.Series) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Date\tkm/L\tCost/km\t")
	for _, p := range s.Points {
		fmt.Fprintf(tw, "%s\t%.2f\t%.3f\t\n", p.Date, p.KmPerLitre, p.CostPerKm)
	}
	_ = tw.Flush()
}
