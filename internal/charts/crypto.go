package charts

import (
	"math"

	"pulseboard/internal/models"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

const priceColor = "#d62728"

// MeanPrices returns the mean price per asset in first-seen asset order.
// Null prices are skipped; an asset with no prices has a NaN mean.
func MeanPrices(table models.PriceTable) ([]string, []float64) {
	assets := table.Assets()
	means := make([]float64, len(assets))
	for i, a := range assets {
		means[i] = Mean(table.PricesFor(a))
	}
	return assets, means
}

// MeanPriceBar plots the mean price of each asset across currencies
func (cg *ChartGenerator) MeanPriceBar(table models.PriceTable) (ChartSnippet, error) {
	if len(table) == 0 {
		return ChartSnippet{}, ErrNoData
	}
	assets, means := MeanPrices(table)

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		cg.init(CryptoMeanID),
		charts.WithTitleOpts(opts.Title{Title: "Average price per cryptocurrency"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Crypto"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Price"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true}),
	)

	data := make([]opts.BarData, len(means))
	for i, m := range means {
		if math.IsNaN(m) {
			data[i] = opts.BarData{Name: assets[i], Value: "-"}
			continue
		}
		data[i] = opts.BarData{Name: assets[i], Value: m}
	}
	bar.SetXAxis(assets).
		AddSeries("Mean price", data, charts.WithItemStyleOpts(opts.ItemStyle{Color: priceColor}))

	return renderSnippet(CryptoMeanID, "Average price per cryptocurrency", bar)
}

// PriceBoxPlot plots the price distribution of each asset across currencies
func (cg *ChartGenerator) PriceBoxPlot(table models.PriceTable) (ChartSnippet, error) {
	if len(table) == 0 {
		return ChartSnippet{}, ErrNoData
	}
	var assets []string
	var data []opts.BoxPlotData
	for _, a := range table.Assets() {
		stats, ok := Summarize(table.PricesFor(a))
		if !ok {
			continue
		}
		assets = append(assets, a)
		data = append(data, opts.BoxPlotData{Name: a, Value: stats.Values()})
	}

	box := charts.NewBoxPlot()
	box.SetGlobalOptions(
		cg.init(CryptoBoxID),
		charts.WithTitleOpts(opts.Title{Title: "Price distribution per cryptocurrency"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Crypto"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Price"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true}),
	)

	box.SetXAxis(assets).
		AddSeries("Price", data, charts.WithItemStyleOpts(opts.ItemStyle{BorderColor: priceColor}))

	return renderSnippet(CryptoBoxID, "Price distribution per cryptocurrency", box)
}

// PriceComparison plots each asset's price grouped by currency
func (cg *ChartGenerator) PriceComparison(table models.PriceTable) (ChartSnippet, error) {
	if len(table) == 0 {
		return ChartSnippet{}, ErrNoData
	}
	assets := table.Assets()

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		cg.init(CryptoComparisonID),
		charts.WithTitleOpts(opts.Title{Title: "Price by currency"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Crypto"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Price"}),
		charts.WithLegendOpts(opts.Legend{Show: true}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true}),
	)

	bar.SetXAxis(assets)
	for _, cur := range table.Currencies() {
		data := make([]opts.BarData, len(assets))
		for i, a := range assets {
			if p, ok := table.Lookup(a, cur); ok {
				data[i] = opts.BarData{Value: p}
			} else {
				// echarts renders "-" as a gap
				data[i] = opts.BarData{Value: "-"}
			}
		}
		bar.AddSeries(cur, data)
	}

	return renderSnippet(CryptoComparisonID, "Price by currency", bar)
}
