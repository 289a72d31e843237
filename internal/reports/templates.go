package reports

import (
	"embed"
	"fmt"
	"html/template"
)

//go:embed templates/*.html templates/styles.css
var templateFS embed.FS

// Page template names
const (
	dashboardTemplate = "dashboard.html"
	indexTemplate     = "index.html"
	exportsTemplate   = "exports.html"
)

// TemplateLoader parses the embedded page templates and stylesheet
type TemplateLoader struct{}

// NewTemplateLoader creates a new template loader
func NewTemplateLoader() *TemplateLoader {
	return &TemplateLoader{}
}

// LoadTemplates parses every page template with the shared layout
func (t *TemplateLoader) LoadTemplates() (*template.Template, error) {
	tmpl, err := template.New("pages").ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return tmpl, nil
}

// LoadCSSStyles returns the stylesheet inlined into every page
func (t *TemplateLoader) LoadCSSStyles() (string, error) {
	content, err := templateFS.ReadFile("templates/styles.css")
	if err != nil {
		return "", fmt.Errorf("failed to read styles: %w", err)
	}
	return string(content), nil
}
