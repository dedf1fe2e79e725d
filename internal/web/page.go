package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/randytsao24/experienceintel/internal/models"
	"github.com/randytsao24/experienceintel/internal/widgets"
)

//go:embed templates/*.html
var templateFS embed.FS

// StyleSource supplies the stylesheet inlined into every page
type StyleSource interface {
	Load() (string, error)
}

// Page renders a dashboard and its controls to HTML
type Page struct {
	tmpl   *template.Template
	styles StyleSource
}

type view struct {
	*models.Dashboard
	Style      template.CSS
	Taxi       []widgets.Control
	Churn      []widgets.Control
	Engagement []widgets.Control
	Query      string
}

var funcs = template.FuncMap{
	"deltaClass": func(delta string) string {
		if strings.HasPrefix(delta, "-") {
			return "down"
		}
		return "up"
	},
	"isSlider":   func(c widgets.Control) bool { return c.Kind == widgets.Slider },
	"isSelect":   func(c widgets.Control) bool { return c.Kind == widgets.Select },
	"isCheckbox": func(c widgets.Control) bool { return c.Kind == widgets.Checkbox },
}

// NewPage parses the embedded dashboard template
func NewPage(styles StyleSource) (*Page, error) {
	tmpl, err := template.New("dashboard.html").Funcs(funcs).ParseFS(templateFS, "templates/dashboard.html")
	if err != nil {
		return nil, fmt.Errorf("parsing dashboard template: %w", err)
	}
	return &Page{tmpl: tmpl, styles: styles}, nil
}

// Render writes the page for d, rendered from state s. Nothing is written to w
// unless the stylesheet loads and the template executes cleanly.
func (p *Page) Render(w io.Writer, d *models.Dashboard, s widgets.State) error {
	css, err := p.styles.Load()
	if err != nil {
		return err
	}

	controls := widgets.Controls(s)
	v := view{
		Dashboard:  d,
		Style:      template.CSS(css),
		Taxi:       widgets.BySection(controls, widgets.SectionTaxi),
		Churn:      widgets.BySection(controls, widgets.SectionChurn),
		Engagement: widgets.BySection(controls, widgets.SectionEngagement),
		Query:      s.Query().Encode(),
	}

	var buf bytes.Buffer
	if err := p.tmpl.Execute(&buf, v); err != nil {
		return fmt.Errorf("rendering dashboard: %w", err)
	}
	_, err = buf.WriteTo(w)
	return err
}
