package reports

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"pulseboard/internal/charts"
	"pulseboard/internal/logger"
	"pulseboard/internal/models"
	"pulseboard/internal/presets"
)

// Dashboard kinds, used as export folder prefixes
const (
	KindCrypto  = "CryptoDashboard"
	KindSeismic = "SeismicDashboard"
)

// TableFile holds the serialized pipeline result inside an export
const TableFile = "table.json"

// Narrator writes a short Markdown narrative for a result table
type Narrator interface {
	SummarizePrices(ctx context.Context, table models.PriceTable) (string, error)
	SummarizeQuakes(ctx context.Context, table models.QuakeTable) (string, error)
}

// Dashboard is a rendered page plus the artifacts exported alongside it
type Dashboard struct {
	Kind      string
	FetchID   string
	Banner    Banner
	Rows      int
	HTML      []byte
	TableJSON []byte
	Images    map[string][]byte
	CreatedAt time.Time
}

// Generator turns pipeline results into dashboards
type Generator struct {
	html     *HTMLBuilder
	charts   *charts.ChartGenerator
	presets  presets.Presets
	narrator Narrator
	log      *logger.Logger
}

// NewGenerator creates a dashboard generator. narrator may be nil.
func NewGenerator(html *HTMLBuilder, p presets.Presets, narrator Narrator) *Generator {
	return &Generator{
		html:     html,
		charts:   charts.NewChartGenerator(),
		presets:  p,
		narrator: narrator,
		log:      logger.GetGlobalLogger().WithComponent("reports"),
	}
}

// Charts exposes the chart generator for standalone PNG rendering
func (g *Generator) Charts() *charts.ChartGenerator {
	return g.charts
}

// IndexPage renders the landing page prefilled with the default presets
func (g *Generator) IndexPage() ([]byte, error) {
	return g.html.BuildIndex(IndexPage{
		Layout:      g.html.NewLayout("Home", ""),
		CryptoForm:  cryptoForm(g.presets.Crypto.Default.Query()),
		SeismicForm: g.seismicForm(g.presets.Seismic.Start, g.presets.Seismic.End, g.presets.Seismic.MinMagnitude),
	})
}

// ExportsPage renders the export listing
func (g *Generator) ExportsPage(exports []string) ([]byte, error) {
	return g.html.BuildExports(ExportsPage{
		Layout:  g.html.NewLayout("Exports", ""),
		Exports: exports,
	})
}

// CryptoDashboard renders a crypto price dashboard. Fetch failures still render.
func (g *Generator) CryptoDashboard(ctx context.Context, res models.PriceResult) (*Dashboard, error) {
	form := cryptoForm(res.Query)
	page := DashboardPage{
		Layout:     g.html.NewLayout("Cryptocurrency Dashboard", "crypto"),
		Banner:     CryptoBanner(res),
		CryptoForm: &form,
	}
	d := g.newDashboard(KindCrypto, res.ID, page.Banner, len(res.Table))

	if res.OK() {
		summary, err := g.html.ConvertMarkdownToHTML(g.cryptoSummary(ctx, res.Table))
		if err != nil {
			return nil, err
		}
		page.Summary = summary

		snippets, err := g.charts.CryptoCharts(res.Table)
		if err != nil {
			return nil, err
		}
		page.Charts = chartViews(snippets)

		// every price null leaves nothing to draw
		var png bytes.Buffer
		switch err := g.charts.RenderMeanPricePNG(&png, res.Table); {
		case err == nil:
			d.Images[charts.MeanPricePNG] = png.Bytes()
			page.Images = []ImageView{{Name: charts.MeanPricePNG, Title: "Average price (static)", Src: PNGDataURI(png.Bytes())}}
		case !errors.Is(err, charts.ErrNoData):
			return nil, err
		}
		page.Table = priceTableView(res.Table)
	}

	return g.finish(d, page, res)
}

// SeismicDashboard renders an earthquake dashboard with an optional feed panel
func (g *Generator) SeismicDashboard(ctx context.Context, res models.QuakeResult, feed []models.FeedEvent) (*Dashboard, error) {
	form := g.seismicForm(res.Query.Start.Format(models.DateLayout), res.Query.End.Format(models.DateLayout), res.Query.MinMagnitude)
	page := DashboardPage{
		Layout:      g.html.NewLayout("Global Seismic Activity", "seismic"),
		Banner:      SeismicBanner(res),
		SeismicForm: &form,
		Feed:        feed,
	}
	d := g.newDashboard(KindSeismic, res.ID, page.Banner, len(res.Table))

	if res.OK() {
		summary, err := g.html.ConvertMarkdownToHTML(g.seismicSummary(ctx, res))
		if err != nil {
			return nil, err
		}
		page.Summary = summary

		snippets, err := g.charts.SeismicCharts(res.Table)
		if err != nil {
			return nil, err
		}
		page.Charts = chartViews(snippets)

		var png bytes.Buffer
		if err := g.charts.RenderEpicentresPNG(&png, res.Table); err != nil {
			return nil, err
		}
		d.Images[charts.EpicentresPNG] = png.Bytes()
		page.Images = []ImageView{{Name: charts.EpicentresPNG, Title: "Epicentres (static)", Src: PNGDataURI(png.Bytes())}}
		page.Table = quakeTableView(res.Table)
	}

	return g.finish(d, page, res)
}

func (g *Generator) newDashboard(kind, id string, banner Banner, rows int) *Dashboard {
	return &Dashboard{
		Kind:      kind,
		FetchID:   id,
		Banner:    banner,
		Rows:      rows,
		Images:    map[string][]byte{},
		CreatedAt: g.html.now().UTC(),
	}
}

func (g *Generator) finish(d *Dashboard, page DashboardPage, result interface{}) (*Dashboard, error) {
	html, err := g.html.BuildDashboard(page)
	if err != nil {
		return nil, err
	}
	table, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}
	d.HTML = html
	d.TableJSON = table

	g.log.Info("Dashboard rendered", map[string]interface{}{
		"kind":     d.Kind,
		"fetch_id": d.FetchID,
		"rows":     d.Rows,
		"bytes":    len(html),
	})
	return d, nil
}

func (g *Generator) cryptoSummary(ctx context.Context, table models.PriceTable) string {
	var sb strings.Builder
	sb.WriteString("## Descriptive statistics\n\n")
	fmt.Fprintf(&sb, "**Number of data points:** %d\n\n", len(table))
	sb.WriteString("| Crypto | Count | Mean | Min | Median | Max |\n")
	sb.WriteString("|---|---:|---:|---:|---:|---:|\n")
	for _, asset := range table.Assets() {
		prices := table.PricesFor(asset)
		box, ok := charts.Summarize(prices)
		if !ok {
			continue
		}
		fmt.Fprintf(&sb, "| %s | %d | %s | %s | %s | %s |\n", asset, len(prices),
			formatPrice(charts.Mean(prices)), formatPrice(box.Min), formatPrice(box.Median), formatPrice(box.Max))
	}

	if g.narrator != nil {
		if text, err := g.narrator.SummarizePrices(ctx, table); err != nil {
			g.log.Warn("Narrative unavailable", map[string]interface{}{"kind": KindCrypto, "error": err.Error()})
		} else if text != "" {
			sb.WriteString("\n## Narrative\n\n" + text + "\n")
		}
	}
	return sb.String()
}

func (g *Generator) seismicSummary(ctx context.Context, res models.QuakeResult) string {
	table := res.Table
	var sb strings.Builder
	sb.WriteString("## Summary\n\n")
	fmt.Fprintf(&sb, "- **Window:** %s to %s\n", res.Query.Start.Format(models.DateLayout), res.Query.End.Format(models.DateLayout))
	fmt.Fprintf(&sb, "- **Minimum magnitude:** %s\n", strconv.FormatFloat(res.Query.MinMagnitude, 'f', -1, 64))
	fmt.Fprintf(&sb, "- **Events:** %d\n", len(table))

	strongest, deepest := -1, 0
	for i, r := range table {
		if r.Magnitude != nil && (strongest < 0 || *r.Magnitude > *table[strongest].Magnitude) {
			strongest = i
		}
		if r.DepthKm > table[deepest].DepthKm {
			deepest = i
		}
	}
	if strongest >= 0 {
		fmt.Fprintf(&sb, "- **Strongest:** %s\n", charts.QuakeLabel(table[strongest]))
	}
	fmt.Fprintf(&sb, "- **Deepest:** %s\n", charts.QuakeLabel(table[deepest]))

	if g.narrator != nil {
		if text, err := g.narrator.SummarizeQuakes(ctx, table); err != nil {
			g.log.Warn("Narrative unavailable", map[string]interface{}{"kind": KindSeismic, "error": err.Error()})
		} else if text != "" {
			sb.WriteString("\n## Narrative\n\n" + text + "\n")
		}
	}
	return sb.String()
}

func (g *Generator) seismicForm(start, end string, minMag float64) SeismicForm {
	s := g.presets.Seismic
	return SeismicForm{
		Start:         start,
		End:           end,
		MinMagnitude:  strconv.FormatFloat(minMag, 'f', -1, 64),
		MagnitudeMin:  s.MagnitudeMin,
		MagnitudeMax:  s.MagnitudeMax,
		MagnitudeStep: s.MagnitudeStep,
	}
}

func cryptoForm(q models.CryptoQuery) CryptoForm {
	return CryptoForm{
		Assets:     strings.Join(q.Assets, ","),
		Currencies: strings.Join(q.Currencies, ","),
	}
}

func chartViews(snippets []charts.ChartSnippet) []ChartView {
	views := make([]ChartView, len(snippets))
	for i, s := range snippets {
		views[i] = ChartView{ID: s.ID, Title: s.Title, SrcDoc: s.HTML}
	}
	return views
}

func priceTableView(table models.PriceTable) TableView {
	rows := make([][]string, len(table))
	for i, r := range table {
		price := ""
		if r.Price != nil {
			price = formatPrice(*r.Price)
		}
		rows[i] = []string{r.Asset, r.Currency, price}
	}
	return TableView{
		Caption: "Processed data",
		Headers: []string{"Crypto", "Currency", "Price"},
		Numeric: []bool{false, false, true},
		Rows:    rows,
	}
}

func quakeTableView(table models.QuakeTable) TableView {
	rows := make([][]string, len(table))
	for i, r := range table {
		mag := ""
		if r.Magnitude != nil {
			mag = strconv.FormatFloat(*r.Magnitude, 'f', -1, 64)
		}
		rows[i] = []string{
			mag,
			r.PlaceOr(""),
			r.Time.UTC().Format("2006-01-02 15:04:05"),
			strconv.FormatFloat(r.Longitude, 'f', -1, 64),
			strconv.FormatFloat(r.Latitude, 'f', -1, 64),
			strconv.FormatFloat(r.DepthKm, 'f', -1, 64),
		}
	}
	return TableView{
		Caption: "Earthquakes",
		Headers: []string{"Magnitude", "Place", "Time (UTC)", "Longitude", "Latitude", "Depth (km)"},
		Numeric: []bool{true, false, false, true, true, true},
		Rows:    rows,
	}
}

func formatPrice(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 64)
}
