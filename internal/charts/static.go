package charts

import (
	"fmt"
	"io"
	"math"

	"pulseboard/internal/models"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Static PNG file names used by exports and HTTP routes
const (
	MeanPricePNG  = "crypto_mean_price.png"
	EpicentresPNG = "seismic_epicentres.png"
)

var (
	axisFontColor = drawing.Color{R: 52, G: 58, B: 64, A: 255}
	background    = drawing.Color{R: 248, G: 249, B: 250, A: 255}
)

// magnitudeBand groups events for the static scatter legend
type magnitudeBand struct {
	name  string
	lower float64
	color drawing.Color
	dot   float64
}

var magnitudeBands = []magnitudeBand{
	{"M < 4", math.Inf(-1), drawing.Color{R: 254, G: 224, B: 144, A: 255}, 3},
	{"M 4-5", 4, drawing.Color{R: 253, G: 174, B: 97, A: 255}, 4},
	{"M 5-6", 5, drawing.Color{R: 244, G: 109, B: 67, A: 255}, 6},
	{"M 6-7", 6, drawing.Color{R: 215, G: 48, B: 39, A: 255}, 9},
	{"M 7+", 7, drawing.Color{R: 165, G: 0, B: 38, A: 255}, 13},
}

// RenderMeanPricePNG writes a bar chart of mean price per asset
func (cg *ChartGenerator) RenderMeanPricePNG(w io.Writer, table models.PriceTable) error {
	if len(table) == 0 {
		return ErrNoData
	}
	assets, means := MeanPrices(table)

	top := 0.0
	var bars []chart.Value
	for i, a := range assets {
		if math.IsNaN(means[i]) {
			continue
		}
		top = math.Max(top, means[i])
		bars = append(bars, chart.Value{
			Value: means[i],
			Label: a,
			Style: chart.Style{
				FillColor:   drawing.Color{R: 214, G: 39, B: 40, A: 255},
				StrokeColor: axisFontColor,
				StrokeWidth: 1,
			},
		})
	}
	if len(bars) == 0 {
		return ErrNoData
	}
	if top <= 0 {
		top = 1
	}

	graph := chart.BarChart{
		Title:      "Average price per cryptocurrency",
		TitleStyle: chart.Style{FontSize: 16, FontColor: drawing.ColorBlack},
		Background: chart.Style{
			Padding:   chart.Box{Top: 50, Left: 40, Right: 40, Bottom: 40},
			FillColor: background,
		},
		Width:    900,
		Height:   420,
		BarWidth: 60,
		XAxis:    chart.Style{FontSize: 11, FontColor: axisFontColor},
		YAxis: chart.YAxis{
			Name:      "Price",
			NameStyle: chart.Style{FontSize: 12, FontColor: axisFontColor},
			Style:     chart.Style{FontSize: 10, FontColor: axisFontColor},
			Range:     &chart.ContinuousRange{Min: 0, Max: top * 1.1},
		},
		Bars: bars,
	}

	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("failed to render mean price chart: %w", err)
	}
	return nil
}

// RenderEpicentresPNG writes a longitude/latitude scatter banded by magnitude
func (cg *ChartGenerator) RenderEpicentresPNG(w io.Writer, table models.QuakeTable) error {
	if len(table) == 0 {
		return ErrNoData
	}

	xs := make([][]float64, len(magnitudeBands))
	ys := make([][]float64, len(magnitudeBands))
	for _, r := range table {
		b := bandFor(r.MagnitudeOr(0))
		xs[b] = append(xs[b], r.Longitude)
		ys[b] = append(ys[b], r.Latitude)
	}

	var series []chart.Series
	for i, band := range magnitudeBands {
		if len(xs[i]) == 0 {
			continue
		}
		series = append(series, chart.ContinuousSeries{
			Name: band.name,
			Style: chart.Style{
				StrokeWidth: chart.Disabled,
				DotColor:    band.color,
				DotWidth:    band.dot,
			},
			XValues: xs[i],
			YValues: ys[i],
		})
	}

	graph := chart.Chart{
		Title:      "Earthquake epicentres",
		TitleStyle: chart.Style{FontSize: 16, FontColor: drawing.ColorBlack},
		Background: chart.Style{
			Padding:   chart.Box{Top: 50, Left: 20, Right: 20, Bottom: 20},
			FillColor: background,
		},
		Width:  1000,
		Height: 520,
		XAxis: chart.XAxis{
			Name:  "Longitude",
			Style: chart.Style{FontSize: 10, FontColor: axisFontColor},
			Range: &chart.ContinuousRange{Min: -180, Max: 180},
		},
		YAxis: chart.YAxis{
			Name:  "Latitude",
			Style: chart.Style{FontSize: 10, FontColor: axisFontColor},
			Range: &chart.ContinuousRange{Min: -90, Max: 90},
		},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("failed to render epicentre chart: %w", err)
	}
	return nil
}

func bandFor(mag float64) int {
	idx := 0
	for i, b := range magnitudeBands {
		if mag >= b.lower {
			idx = i
		}
	}
	return idx
}
