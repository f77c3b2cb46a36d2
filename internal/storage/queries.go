package storage

import (
	"context"
	"fmt"
)

const fuelEntryColumns = `id, date, total_cost, price_per_litre, distance_km, litres, km_per_litre, litres_per_100km, cost_per_km`

const createFuelEntry = `
INSERT INTO fuel_entries (
    date, total_cost, price_per_litre, distance_km,
    litres, km_per_litre, litres_per_100km, cost_per_km
) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
RETURNING ` + fuelEntryColumns

type CreateFuelEntryParams struct {
	Date           string
	TotalCost      float64
	PricePerLitre  float64
	DistanceKm     float64
	Litres         float64
	KmPerLitre     float64
	LitresPer100km float64
	CostPerKm      float64
}

func (q *Queries) CreateFuelEntry(ctx context.Context, arg CreateFuelEntryParams) (FuelEntry, error) {
	row := q.db.QueryRowContext(ctx, createFuelEntry,
		arg.Date,
		arg.TotalCost,
		arg.PricePerLitre,
		arg.DistanceKm,
		arg.Litres,
		arg.KmPerLitre,
		arg.LitresPer100km,
		arg.CostPerKm,
	)
	var i FuelEntry
	err := scanFuelEntry(row, &i)
	return i, err
}

const updateFuelEntry = `
UPDATE fuel_entries
SET date = ?, total_cost = ?, price_per_litre = ?, distance_km = ?,
    litres = ?, km_per_litre = ?, litres_per_100km = ?, cost_per_km = ?
WHERE id = ?
RETURNING ` + fuelEntryColumns

type UpdateFuelEntryParams struct {
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

// UpdateFuelEntry returns sql.ErrNoRows when no row has the given id.
func (q *Queries) UpdateFuelEntry(ctx context.Context, arg UpdateFuelEntryParams) (FuelEntry, error) {
	row := q.db.QueryRowContext(ctx, updateFuelEntry,
		arg.Date,
		arg.TotalCost,
		arg.PricePerLitre,
		arg.DistanceKm,
		arg.Litres,
		arg.KmPerLitre,
		arg.LitresPer100km,
		arg.CostPerKm,
		arg.ID,
	)
	var i FuelEntry
	err := scanFuelEntry(row, &i)
	return i, err
}

const deleteFuelEntry = `DELETE FROM fuel_entries WHERE id = ?`

// DeleteFuelEntry returns the number of rows removed.
func (q *Queries) DeleteFuelEntry(ctx context.Context, id int64) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteFuelEntry, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const getFuelEntry = `SELECT ` + fuelEntryColumns + ` FROM fuel_entries WHERE id = ?`

func (q *Queries) GetFuelEntry(ctx context.Context, id int64) (FuelEntry, error) {
	row := q.db.QueryRowContext(ctx, getFuelEntry, id)
	var i FuelEntry
	err := scanFuelEntry(row, &i)
	return i, err
}

const countFuelEntries = `SELECT COUNT(*) FROM fuel_entries`

func (q *Queries) CountFuelEntries(ctx context.Context) (int64, error) {
	row := q.db.QueryRowContext(ctx, countFuelEntries)
	var count int64
	err := row.Scan(&count)
	return count, err
}

// listOrderColumns maps sort keys to trusted column names; user input never
// reaches the ORDER BY clause directly.
var listOrderColumns = map[string]string{
	"date":         "date",
	"id":           "id",
	"total_cost":   "total_cost",
	"distance_km":  "distance_km",
	"km_per_litre": "km_per_litre",
	"cost_per_km":  "cost_per_km",
}

type ListFuelEntriesParams struct {
	OrderBy    string
	Descending bool
}

// ListFuelEntries returns every row. Equal sort keys fall back to id
// ascending, which is insertion order.
func (q *Queries) ListFuelEntries(ctx context.Context, arg ListFuelEntriesParams) ([]FuelEntry, error) {
	column, ok := listOrderColumns[arg.OrderBy]
	if !ok {
		return nil, fmt.Errorf("unsupported order column %q", arg.OrderBy)
	}
	direction := "ASC"
	if arg.Descending {
		direction = "DESC"
	}

	query := `SELECT ` + fuelEntryColumns + ` FROM fuel_entries ORDER BY ` + column + ` ` + direction
	if column != "id" {
		query += `, id ASC`
	}

	rows, err := q.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []FuelEntry
	for rows.Next() {
		var i FuelEntry
		if err := scanFuelEntry(rows, &i); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanFuelEntry(row rowScanner, i *FuelEntry) error {
	return row.Scan(
		&i.ID,
		&i.Date,
		&i.TotalCost,
		&i.PricePerLitre,
		&i.DistanceKm,
		&i.Litres,
		&i.KmPerLitre,
		&i.LitresPer100km,
		&i.CostPerKm,
	)
}
