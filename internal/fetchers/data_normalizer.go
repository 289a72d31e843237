package fetchers

import (
	"fmt"
	"time"

	"pulseboard/internal/models"
)

// DataNormalizer flattens raw API responses into result tables
type DataNormalizer struct{}

// NewDataNormalizer creates a new data normalizer instance
func NewDataNormalizer() *DataNormalizer {
	return &DataNormalizer{}
}

// NormalizePrices emits one row per (asset, currency) in response key order.
// Null prices are kept as rows with a nil Price.
func (n *DataNormalizer) NormalizePrices(raw models.RawPrices) models.PriceTable {
	table := make(models.PriceTable, 0, len(raw))
	for _, asset := range raw {
		for _, p := range asset.Prices {
			table = append(table, models.PriceRow{
				Asset:    asset.Asset,
				Currency: p.Currency,
				Price:    p.Price,
			})
		}
	}
	return table
}

// NormalizeQuakes emits one row per feature in input order. A feature with fewer
// than three coordinates fails the whole collection.
func (n *DataNormalizer) NormalizeQuakes(collection *models.QuakeCollection) (models.QuakeTable, error) {
	if collection == nil {
		return models.QuakeTable{}, nil
	}

	table := make(models.QuakeTable, 0, len(collection.Features))
	for i, feature := range collection.Features {
		coords := feature.Geometry.Coordinates
		if len(coords) < 3 {
			return nil, fmt.Errorf("feature %d (%s): expected 3 coordinates, got %d", i, feature.ID, len(coords))
		}

		row := models.QuakeRow{
			Magnitude: feature.Properties.Mag,
			Place:     feature.Properties.Place,
			Longitude: coords[0],
			Latitude:  coords[1],
			DepthKm:   coords[2],
		}
		if feature.Properties.Time != nil {
			row.Time = EpochMillis(*feature.Properties.Time)
		}
		table = append(table, row)
	}
	return table, nil
}

// EpochMillis converts epoch milliseconds to a UTC time
func EpochMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}
