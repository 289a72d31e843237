package charts

import (
	"bytes"
	"math"
	"testing"
	"time"

	"pulseboard/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fp(v float64) *float64 { return &v }

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func samplePrices() models.PriceTable {
	return models.PriceTable{
		{Asset: "bitcoin", Currency: "usd", Price: fp(50000)},
		{Asset: "bitcoin", Currency: "eur", Price: fp(46000)},
		{Asset: "ethereum", Currency: "usd", Price: fp(3000)},
		{Asset: "ethereum", Currency: "eur", Price: fp(2800)},
		{Asset: "cardano", Currency: "usd", Price: fp(0.5)},
	}
}

func sampleQuakes() models.QuakeTable {
	big, small := 7.8, 4.1
	place := "Pazarcik, Turkey"
	return models.QuakeTable{
		{Magnitude: &big, Place: &place, Time: time.Date(2023, 2, 6, 1, 17, 34, 0, time.UTC), Longitude: 37.01, Latitude: 37.22, DepthKm: 10},
		{Magnitude: &small, Time: time.Date(2023, 3, 1, 0, 0, 0, 0, time.UTC), Longitude: -70.5, Latitude: -33.1, DepthKm: 104.3},
		{Longitude: 140.1, Latitude: 35.6, DepthKm: 30},
	}
}

func TestMean(t *testing.T) {
	assert.Equal(t, 2.0, Mean([]float64{1, 2, 3}))
	assert.True(t, math.IsNaN(Mean(nil)))
}

func TestSummarize(t *testing.T) {
	tests := []struct {
		name string
		in   []float64
		want BoxStats
	}{
		{"single", []float64{5}, BoxStats{5, 5, 5, 5, 5}},
		{"two", []float64{10, 0}, BoxStats{0, 2.5, 5, 7.5, 10}},
		{"odd", []float64{7, 1, 3, 5, 9}, BoxStats{1, 3, 5, 7, 9}},
		{"even", []float64{1, 2, 3, 4}, BoxStats{1, 1.75, 2.5, 3.25, 4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Summarize(tt.in)
			require.True(t, ok)
			assert.InDeltaSlice(t, tt.want.Values(), got.Values(), 1e-9)
		})
	}

	_, ok := Summarize(nil)
	assert.False(t, ok)
}

func TestSummarizeDoesNotReorderInput(t *testing.T) {
	in := []float64{3, 1, 2}
	_, _ = Summarize(in)
	assert.Equal(t, []float64{3, 1, 2}, in)
}

func TestMeanPrices(t *testing.T) {
	assets, means := MeanPrices(samplePrices())
	assert.Equal(t, []string{"bitcoin", "ethereum", "cardano"}, assets)
	assert.Equal(t, []float64{48000, 2900, 0.5}, means)
}

func TestMeanPricesSkipsNullPrices(t *testing.T) {
	table := models.PriceTable{
		{Asset: "bitcoin", Currency: "usd", Price: fp(50000)},
		{Asset: "bitcoin", Currency: "eur", Price: nil},
		{Asset: "newcoin", Currency: "usd", Price: nil},
	}

	assets, means := MeanPrices(table)
	assert.Equal(t, []string{"bitcoin", "newcoin"}, assets)
	assert.Equal(t, 50000.0, means[0])
	assert.True(t, math.IsNaN(means[1]))

	snippets, err := NewChartGenerator().CryptoCharts(table)
	require.NoError(t, err)
	require.Len(t, snippets, 3)
	assert.Contains(t, snippets[0].HTML, "newcoin")

	var buf bytes.Buffer
	require.NoError(t, NewChartGenerator().RenderMeanPricePNG(&buf, table))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic))
}

func TestRenderMeanPricePNGAllNull(t *testing.T) {
	table := models.PriceTable{{Asset: "newcoin", Currency: "usd", Price: nil}}

	var buf bytes.Buffer
	assert.ErrorIs(t, NewChartGenerator().RenderMeanPricePNG(&buf, table), ErrNoData)
	assert.Zero(t, buf.Len())
}

func TestCryptoCharts(t *testing.T) {
	cg := NewChartGenerator()

	snippets, err := cg.CryptoCharts(samplePrices())
	require.NoError(t, err)
	require.Len(t, snippets, 3)

	ids := []string{CryptoMeanID, CryptoBoxID, CryptoComparisonID}
	for i, s := range snippets {
		assert.Equal(t, ids[i], s.ID)
		assert.NotEmpty(t, s.Title)
		assert.Contains(t, s.HTML, ids[i])
		assert.Contains(t, s.HTML, "echarts")
	}
	assert.Contains(t, snippets[0].HTML, "bitcoin")
	assert.Contains(t, snippets[2].HTML, "eur")
}

func TestCryptoChartsEmpty(t *testing.T) {
	cg := NewChartGenerator()

	snippets, err := cg.CryptoCharts(nil)
	require.NoError(t, err)
	assert.Empty(t, snippets)

	_, err = cg.MeanPriceBar(nil)
	assert.ErrorIs(t, err, ErrNoData)
}

func TestSeismicCharts(t *testing.T) {
	cg := NewChartGenerator()

	snippets, err := cg.SeismicCharts(sampleQuakes())
	require.NoError(t, err)
	require.Len(t, snippets, 2)
	assert.Equal(t, SeismicMapID, snippets[0].ID)
	assert.Contains(t, snippets[0].HTML, "world")
	assert.Contains(t, snippets[1].HTML, "Pazarcik")

	empty, err := cg.SeismicCharts(models.QuakeTable{})
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestSymbolSize(t *testing.T) {
	m1, m5, m8 := 1.0, 5.0, 8.0
	assert.Equal(t, 4, SymbolSize(nil))
	assert.Less(t, SymbolSize(&m1), SymbolSize(&m5))
	assert.Less(t, SymbolSize(&m5), SymbolSize(&m8))
}

func TestQuakeLabel(t *testing.T) {
	rows := sampleQuakes()
	assert.Equal(t, "M 7.8, Pazarcik, Turkey, 2023-02-06 01:17 UTC, depth 10.0 km", QuakeLabel(rows[0]))
	assert.Contains(t, QuakeLabel(rows[2]), "M n/a, Unknown location")
}

func TestRenderMeanPricePNG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewChartGenerator().RenderMeanPricePNG(&buf, samplePrices()))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic))

	assert.ErrorIs(t, NewChartGenerator().RenderMeanPricePNG(&buf, nil), ErrNoData)
}

func TestRenderEpicentresPNG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewChartGenerator().RenderEpicentresPNG(&buf, sampleQuakes()))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic))

	assert.ErrorIs(t, NewChartGenerator().RenderEpicentresPNG(&buf, nil), ErrNoData)
}

func TestBandFor(t *testing.T) {
	assert.Equal(t, 0, bandFor(2.5))
	assert.Equal(t, 1, bandFor(4.0))
	assert.Equal(t, 3, bandFor(6.9))
	assert.Equal(t, 4, bandFor(9.1))
}
