package reports

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"pulseboard/internal/charts"
	"pulseboard/internal/models"
	"pulseboard/internal/presets"
	"pulseboard/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fp(v float64) *float64 { return &v }

type fakeNarrator struct {
	text string
	err  error
}

func (f fakeNarrator) SummarizePrices(ctx context.Context, table models.PriceTable) (string, error) {
	return f.text, f.err
}

func (f fakeNarrator) SummarizeQuakes(ctx context.Context, table models.QuakeTable) (string, error) {
	return f.text, f.err
}

type exportCounter struct {
	backend string
	errs    []error
}

func (c *exportCounter) RecordExport(backend string, err error) {
	c.backend = backend
	c.errs = append(c.errs, err)
}

func newGenerator(t *testing.T, narrator Narrator) *Generator {
	t.Helper()
	b, err := NewHTMLBuilder("1.2.3")
	require.NoError(t, err)
	b.now = func() time.Time { return time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC) }
	return NewGenerator(b, presets.Default(), narrator)
}

func priceResult() models.PriceResult {
	return models.PriceResult{
		ID:    "fetch-1",
		Query: models.NewCryptoQuery("bitcoin,ethereum", "usd,eur"),
		Table: models.PriceTable{
			{Asset: "bitcoin", Currency: "usd", Price: fp(50000)},
			{Asset: "bitcoin", Currency: "eur", Price: fp(46000)},
			{Asset: "ethereum", Currency: "usd", Price: fp(3000)},
			{Asset: "ethereum", Currency: "eur", Price: fp(2800.5)},
		},
	}
}

func quakeResult(t *testing.T) models.QuakeResult {
	t.Helper()
	q, err := models.NewSeismicQuery("2023-02-01", "2023-02-28", 6)
	require.NoError(t, err)
	mag := 7.8
	place := "Pazarcik earthquake, Kahramanmaras earthquake sequence"
	return models.QuakeResult{
		ID:    "fetch-2",
		Query: q,
		Table: models.QuakeTable{
			{Magnitude: &mag, Place: &place, Time: time.Date(2023, 2, 6, 1, 17, 34, 0, time.UTC), Longitude: 37.0143, Latitude: 37.2256, DepthKm: 10},
			{Time: time.Date(2023, 2, 20, 17, 4, 0, 0, time.UTC), Longitude: 36.0, Latitude: 36.1, DepthKm: 16.7},
		},
	}
}

func TestCryptoBanner(t *testing.T) {
	assert.Equal(t, Banner{}, CryptoBanner(priceResult()))

	for _, kind := range []models.FetchErrorKind{models.KindTransport, models.KindStatus, models.KindDecode, models.KindEmpty} {
		res := models.PriceResult{Err: models.NewFetchError(kind, "boom", nil)}
		assert.Equal(t, Banner{Level: BannerError, Text: "Error fetching data from the API"}, CryptoBanner(res), kind)
	}
}

func TestSeismicBanner(t *testing.T) {
	ok := quakeResult(t)
	assert.Equal(t, Banner{Level: BannerSuccess, Text: "Found 2 earthquakes."}, SeismicBanner(ok))

	empty := models.QuakeResult{Err: models.NewFetchError(models.KindEmpty, "no rows", nil)}
	assert.Equal(t, Banner{Level: BannerWarning, Text: "No earthquakes found in the selected range."}, SeismicBanner(empty))

	failed := models.QuakeResult{Err: &models.FetchError{Kind: models.KindStatus, Message: "400 Bad Request for url: http://x", StatusCode: 400}}
	assert.Equal(t, Banner{Level: BannerError, Text: "Error fetching data: 400 Bad Request for url: http://x"}, SeismicBanner(failed))
}

func TestConvertMarkdownDropsRawHTML(t *testing.T) {
	b, err := NewHTMLBuilder("test")
	require.NoError(t, err)

	out, err := b.ConvertMarkdownToHTML("## Title\n\n- one\n\n<script>alert(1)</script>\n")
	require.NoError(t, err)
	assert.Contains(t, string(out), `<h2 id="title">Title</h2>`)
	assert.Contains(t, string(out), "<li>one</li>")
	assert.NotContains(t, string(out), "<script>")
}

func TestCryptoDashboard(t *testing.T) {
	g := newGenerator(t, fakeNarrator{text: "- Bitcoin leads the table."})

	d, err := g.CryptoDashboard(context.Background(), priceResult())
	require.NoError(t, err)

	html := string(d.HTML)
	assert.Equal(t, KindCrypto, d.Kind)
	assert.Equal(t, "fetch-1", d.FetchID)
	assert.Equal(t, 4, d.Rows)
	assert.Contains(t, html, "Cryptocurrency Dashboard")
	assert.Contains(t, html, "Number of data points:</strong> 4")
	assert.Contains(t, html, "<td>ethereum</td>")
	assert.Contains(t, html, `<td class="num">2800.5</td>`)
	assert.Contains(t, html, "Bitcoin leads the table.")
	assert.Contains(t, html, `value="bitcoin,ethereum"`)
	assert.Contains(t, html, `srcdoc="&lt;`)
	assert.Contains(t, html, "data:image/png;base64,")
	assert.Contains(t, html, "Pulseboard 1.2.3")
	assert.NotContains(t, html, CryptoErrorMessage)

	assert.Contains(t, d.Images, charts.MeanPricePNG)

	var decoded models.PriceResult
	require.NoError(t, json.Unmarshal(d.TableJSON, &decoded))
	assert.Equal(t, priceResult().Table, decoded.Table)
}

func TestCryptoDashboardNullPrices(t *testing.T) {
	g := newGenerator(t, nil)
	res := priceResult()
	res.Table = append(res.Table, models.PriceRow{Asset: "newcoin", Currency: "usd"})

	d, err := g.CryptoDashboard(context.Background(), res)
	require.NoError(t, err)
	assert.Equal(t, 5, d.Rows)
	assert.Contains(t, string(d.HTML), "Number of data points:</strong> 5")
	assert.Contains(t, string(d.HTML), `<td>newcoin</td><td>usd</td><td class="num"></td>`)
	assert.Contains(t, d.Images, charts.MeanPricePNG)

	res.Table = models.PriceTable{{Asset: "newcoin", Currency: "usd"}}
	d, err = g.CryptoDashboard(context.Background(), res)
	require.NoError(t, err)
	assert.Equal(t, 1, d.Rows)
	assert.NotContains(t, string(d.HTML), CryptoErrorMessage)
	assert.Contains(t, string(d.HTML), "<td>newcoin</td>")
	assert.Empty(t, d.Images)
	assert.NotContains(t, string(d.HTML), "data:image/png;base64,")
}

func TestCryptoDashboardFailure(t *testing.T) {
	g := newGenerator(t, nil)
	res := models.PriceResult{
		Query: models.NewCryptoQuery("notacoin", "usd"),
		Err:   models.NewFetchError(models.KindEmpty, "no prices returned", nil),
	}

	d, err := g.CryptoDashboard(context.Background(), res)
	require.NoError(t, err)

	html := string(d.HTML)
	assert.Contains(t, html, `<div class="banner error">Error fetching data from the API</div>`)
	assert.NotContains(t, html, "<iframe")
	assert.NotContains(t, html, "<table")
	assert.Empty(t, d.Images)
	assert.Contains(t, string(d.TableJSON), `"kind": "empty"`)
}

func TestSeismicDashboard(t *testing.T) {
	g := newGenerator(t, fakeNarrator{err: errors.New("quota exceeded")})
	feed := []models.FeedEvent{{Title: "M 7.8 - Pazarcik, Turkey", Link: "https://earthquake.usgs.gov/x", Published: time.Date(2023, 2, 6, 1, 17, 34, 0, time.UTC)}}

	d, err := g.SeismicDashboard(context.Background(), quakeResult(t), feed)
	require.NoError(t, err)

	html := string(d.HTML)
	assert.Contains(t, html, `<div class="banner success">Found 2 earthquakes.</div>`)
	assert.Contains(t, html, "Strongest:</strong> M 7.8, Pazarcik earthquake")
	assert.Contains(t, html, "Deepest:</strong> M n/a")
	assert.NotContains(t, html, "Narrative")
	assert.Contains(t, html, `value="2023-02-01"`)
	assert.Contains(t, html, `step="0.1"`)
	assert.Contains(t, html, "Significant earthquakes this month")
	assert.Contains(t, html, "2023-02-06 01:17 UTC")
	assert.Contains(t, d.Images, charts.EpicentresPNG)

	assert.Less(t, strings.Index(html, "2023-02-06 01:17:34"), strings.Index(html, "2023-02-20 17:04:00"))
}

func TestSeismicDashboardKeepsTableOrder(t *testing.T) {
	g := newGenerator(t, nil)
	res := quakeResult(t)
	res.Table[0], res.Table[1] = res.Table[1], res.Table[0]

	d, err := g.SeismicDashboard(context.Background(), res, nil)
	require.NoError(t, err)

	html := string(d.HTML)
	assert.Less(t, strings.Index(html, "2023-02-20 17:04:00"), strings.Index(html, "2023-02-06 01:17:34"))
}

func TestSeismicDashboardEmptyAndFailed(t *testing.T) {
	g := newGenerator(t, nil)
	q, err := models.NewSeismicQuery("2023-01-01", "2023-01-02", 9.5)
	require.NoError(t, err)

	d, err := g.SeismicDashboard(context.Background(), models.QuakeResult{Query: q, Err: models.NewFetchError(models.KindEmpty, "no events", nil)}, nil)
	require.NoError(t, err)
	assert.Contains(t, string(d.HTML), "No earthquakes found in the selected range.")
	assert.NotContains(t, string(d.HTML), "<iframe")
	assert.NotContains(t, string(d.HTML), "Significant earthquakes")

	d, err = g.SeismicDashboard(context.Background(), models.QuakeResult{Query: q, Err: models.NewFetchError(models.KindTransport, "connection refused", nil)}, nil)
	require.NoError(t, err)
	assert.Contains(t, string(d.HTML), "Error fetching data: connection refused")
}

func TestIndexAndExportsPages(t *testing.T) {
	g := newGenerator(t, nil)

	index, err := g.IndexPage()
	require.NoError(t, err)
	assert.Contains(t, string(index), `value="bitcoin,ethereum"`)
	assert.Contains(t, string(index), `value="usd,eur"`)
	assert.Contains(t, string(index), `value="2023-12-31"`)
	assert.Contains(t, string(index), `name="preset" value="common-assets"`)
	assert.Contains(t, string(index), `name="preset" value="common-currencies"`)
	assert.Contains(t, string(index), `name="preset" value="common"`)

	exports, err := g.ExportsPage([]string{"2024/05/01/CryptoDashboard-2024-05-01-12-30-00-abcd1234/index.html"})
	require.NoError(t, err)
	assert.Contains(t, string(exports), `href="/files/2024/05/01/CryptoDashboard-2024-05-01-12-30-00-abcd1234/index.html"`)

	none, err := g.ExportsPage(nil)
	require.NoError(t, err)
	assert.Contains(t, string(none), "No exports yet")
}

func TestExporter(t *testing.T) {
	dir := t.TempDir()
	client, err := storage.NewLocalStorageClient(dir)
	require.NoError(t, err)
	counter := &exportCounter{}
	exporter := NewExporter(client, counter)

	d, err := newGenerator(t, nil).CryptoDashboard(context.Background(), priceResult())
	require.NoError(t, err)

	index, err := exporter.Export(context.Background(), d)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(index, "2024/05/01/CryptoDashboard-2024-05-01-12-30-00-"), index)
	assert.True(t, strings.HasSuffix(index, "/index.html"))

	folder := filepath.Join(dir, filepath.FromSlash(strings.TrimSuffix(index, "/index.html")))
	for _, name := range []string{"index.html", TableFile, charts.MeanPricePNG} {
		_, err := os.Stat(filepath.Join(folder, name))
		assert.NoError(t, err, name)
	}

	listed, err := exporter.List(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, []string{index}, listed)

	body, err := exporter.Open(context.Background(), index)
	require.NoError(t, err)
	assert.Equal(t, d.HTML, body)

	assert.Equal(t, "local", counter.backend)
	assert.Equal(t, []error{nil}, counter.errs)
}
