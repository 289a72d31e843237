package charts

import (
	"pulseboard/internal/models"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

// Chart ids, stable across renders
const (
	CryptoMeanID       = "crypto-mean"
	CryptoBoxID        = "crypto-distribution"
	CryptoComparisonID = "crypto-comparison"
	SeismicMapID       = "seismic-map"
	SeismicScatterID   = "seismic-scatter"
)

// ChartGenerator renders interactive dashboard charts
type ChartGenerator struct {
	theme  string
	width  string
	height string
}

// NewChartGenerator creates a new chart generator
func NewChartGenerator() *ChartGenerator {
	return &ChartGenerator{
		theme:  types.ThemeWesteros,
		width:  "900px",
		height: "420px",
	}
}

func (cg *ChartGenerator) init(id string) charts.GlobalOpts {
	return charts.WithInitializationOpts(opts.Initialization{
		ChartID: id,
		Theme:   cg.theme,
		Width:   cg.width,
		Height:  cg.height,
	})
}

// CryptoCharts renders the mean, distribution and comparison charts.
// An empty table yields no charts.
func (cg *ChartGenerator) CryptoCharts(table models.PriceTable) ([]ChartSnippet, error) {
	if len(table) == 0 {
		return nil, nil
	}
	var out []ChartSnippet
	for _, build := range []func(models.PriceTable) (ChartSnippet, error){
		cg.MeanPriceBar,
		cg.PriceBoxPlot,
		cg.PriceComparison,
	} {
		s, err := build(table)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// SeismicCharts renders the world map and the sized epicentre scatter
func (cg *ChartGenerator) SeismicCharts(table models.QuakeTable) ([]ChartSnippet, error) {
	if len(table) == 0 {
		return nil, nil
	}
	m, err := cg.EpicentreMap(table)
	if err != nil {
		return nil, err
	}
	s, err := cg.EpicentreScatter(table)
	if err != nil {
		return nil, err
	}
	return []ChartSnippet{m, s}, nil
}
