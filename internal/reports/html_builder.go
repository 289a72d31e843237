package reports

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"html/template"
	"time"

	"pulseboard/internal/models"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// Banner levels map to CSS classes in the page templates
const (
	BannerSuccess = "success"
	BannerWarning = "warning"
	BannerError   = "error"
)

// Banner is the single status line shown above a dashboard
type Banner struct {
	Level string
	Text  string
}

// Layout carries the fields shared by every page
type Layout struct {
	Title       string
	Active      string
	Version     string
	GeneratedAt string
	Styles      template.CSS
}

// ChartView is an interactive chart embedded through an iframe srcdoc
type ChartView struct {
	ID     string
	Title  string
	SrcDoc string
}

// ImageView is a static PNG chart inlined as a data URI
type ImageView struct {
	Name  string
	Title string
	Src   template.URL
}

// TableView is a pre-formatted table; Numeric marks right-aligned columns
type TableView struct {
	Caption string
	Headers []string
	Numeric []bool
	Rows    [][]string
}

// CryptoForm holds the current crypto query inputs
type CryptoForm struct {
	Assets     string
	Currencies string
}

// SeismicForm holds the current seismic query inputs and slider bounds
type SeismicForm struct {
	Start         string
	End           string
	MinMagnitude  string
	MagnitudeMin  float64
	MagnitudeMax  float64
	MagnitudeStep float64
}

// DashboardPage is the data for one rendered dashboard
type DashboardPage struct {
	Layout
	Banner      Banner
	Summary     template.HTML
	Charts      []ChartView
	Images      []ImageView
	Table       TableView
	Feed        []models.FeedEvent
	CryptoForm  *CryptoForm
	SeismicForm *SeismicForm
}

// IndexPage is the landing page with both query forms
type IndexPage struct {
	Layout
	CryptoForm  CryptoForm
	SeismicForm SeismicForm
}

// ExportsPage lists exported dashboards
type ExportsPage struct {
	Layout
	Exports []string
}

// HTMLBuilder handles HTML generation with html/template and goldmark
type HTMLBuilder struct {
	templates *template.Template
	styles    template.CSS
	goldmark  goldmark.Markdown
	version   string
	now       func() time.Time
}

// NewHTMLBuilder creates an HTML builder stamping pages with version
func NewHTMLBuilder(version string) (*HTMLBuilder, error) {
	loader := NewTemplateLoader()
	tmpl, err := loader.LoadTemplates()
	if err != nil {
		return nil, err
	}
	css, err := loader.LoadCSSStyles()
	if err != nil {
		return nil, err
	}

	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
		),
	)

	return &HTMLBuilder{
		templates: tmpl,
		styles:    template.CSS(css),
		goldmark:  md,
		version:   version,
		now:       time.Now,
	}, nil
}

// ConvertMarkdownToHTML converts markdown to HTML using goldmark.
// Raw HTML in the source is dropped since narratives come from a remote model.
func (h *HTMLBuilder) ConvertMarkdownToHTML(markdownContent string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := h.goldmark.Convert([]byte(markdownContent), &buf); err != nil {
		return "", fmt.Errorf("failed to convert markdown: %w", err)
	}
	return template.HTML(buf.String()), nil
}

// NewLayout fills the shared page fields
func (h *HTMLBuilder) NewLayout(title, active string) Layout {
	return Layout{
		Title:       title,
		Active:      active,
		Version:     h.version,
		GeneratedAt: h.now().UTC().Format("2006-01-02 15:04:05 UTC"),
		Styles:      h.styles,
	}
}

// BuildDashboard renders a dashboard page
func (h *HTMLBuilder) BuildDashboard(page DashboardPage) ([]byte, error) {
	return h.execute(dashboardTemplate, page)
}

// BuildIndex renders the landing page
func (h *HTMLBuilder) BuildIndex(page IndexPage) ([]byte, error) {
	return h.execute(indexTemplate, page)
}

// BuildExports renders the export listing
func (h *HTMLBuilder) BuildExports(page ExportsPage) ([]byte, error) {
	return h.execute(exportsTemplate, page)
}

func (h *HTMLBuilder) execute(name string, data interface{}) ([]byte, error) {
	var buf bytes.Buffer
	if err := h.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, fmt.Errorf("failed to execute template %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

// PNGDataURI inlines PNG bytes for an img src
func PNGDataURI(png []byte) template.URL {
	return template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(png))
}
