package charts

import (
	"fmt"
	"math"

	"pulseboard/internal/models"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

const unknownPlace = "Unknown location"

// SymbolSize maps a magnitude to a marker diameter in pixels.
// Events without a magnitude get the smallest marker.
func SymbolSize(mag *float64) int {
	if mag == nil || *mag <= 0 {
		return 4
	}
	return 4 + int(math.Round(*mag**mag*0.6))
}

// QuakeLabel is the hover text for one event
func QuakeLabel(r models.QuakeRow) string {
	mag := "n/a"
	if r.Magnitude != nil {
		mag = fmt.Sprintf("%.1f", *r.Magnitude)
	}
	return fmt.Sprintf("M %s, %s, %s, depth %.1f km",
		mag, r.PlaceOr(unknownPlace), r.Time.Format("2006-01-02 15:04 UTC"), r.DepthKm)
}

// EpicentreMap plots events on a world map coloured by magnitude
func (cg *ChartGenerator) EpicentreMap(table models.QuakeTable) (ChartSnippet, error) {
	if len(table) == 0 {
		return ChartSnippet{}, ErrNoData
	}

	geo := charts.NewGeo()
	geo.SetGlobalOptions(
		cg.init(SeismicMapID),
		charts.WithTitleOpts(opts.Title{Title: "Earthquake map"}),
		charts.WithGeoComponentOpts(opts.GeoComponent{
			Map:       "world",
			ItemStyle: &opts.ItemStyle{Color: "#dfe6ee", BorderColor: "#9aa5b1"},
		}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Calculable: true,
			Min:        models.MinMagnitudeFloor,
			Max:        models.MinMagnitudeCeiling,
			InRange: &opts.VisualMapInRange{
				Color: []string{"#fee090", "#fdae61", "#f46d43", "#d73027", "#a50026"},
			},
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true}),
	)

	data := make([]opts.GeoData, len(table))
	for i, r := range table {
		data[i] = opts.GeoData{
			Name:  QuakeLabel(r),
			Value: []float64{r.Longitude, r.Latitude, r.MagnitudeOr(0)},
		}
	}
	geo.AddSeries("Earthquakes", types.ChartScatter, data)

	return renderSnippet(SeismicMapID, "Earthquake map", geo)
}

// EpicentreScatter plots longitude against latitude with marker size by magnitude
func (cg *ChartGenerator) EpicentreScatter(table models.QuakeTable) (ChartSnippet, error) {
	if len(table) == 0 {
		return ChartSnippet{}, ErrNoData
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		cg.init(SeismicScatterID),
		charts.WithTitleOpts(opts.Title{Title: "Epicentres by magnitude"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Longitude", Type: "value", Min: -180, Max: 180}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Latitude", Type: "value", Min: -90, Max: 90}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true}),
	)

	data := make([]opts.ScatterData, len(table))
	for i, r := range table {
		data[i] = opts.ScatterData{
			Name:       QuakeLabel(r),
			Value:      []float64{r.Longitude, r.Latitude},
			Symbol:     "circle",
			SymbolSize: SymbolSize(r.Magnitude),
		}
	}
	scatter.AddSeries("Earthquakes", data, charts.WithItemStyleOpts(opts.ItemStyle{Color: "#d73027", Opacity: 0.7}))

	return renderSnippet(SeismicScatterID, "Epicentres by magnitude", scatter)
}
