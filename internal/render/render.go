// Package render turns sessions and recipes into HTML. Templates are embedded
// and handed to gin as its HTML renderer.
package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"time"
)

// Template names
const (
	PageTemplate    = "page"
	RecipeTemplate  = "recipe"
	SummaryFragment = "summary_fragment"
	ResultsFragment = "results_fragment"
	ToastsFragment  = "toasts_fragment"
	DetailFragment  = "detail_fragment"
)

//go:embed templates/*.html
var templateFS embed.FS

var funcs = template.FuncMap{
	"inc": func(i int) int { return i + 1 },
	"untilMs": func(t time.Time) int64 {
		ms := time.Until(t).Milliseconds()
		if ms < 0 {
			return 0
		}
		return ms
	},
}

// Templates parses the embedded templates
func Templates() (*template.Template, error) {
	tmpl, err := template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return tmpl, nil
}

// MustTemplates is Templates for program start
func MustTemplates() *template.Template {
	tmpl, err := Templates()
	if err != nil {
		panic(err)
	}
	return tmpl
}

// Execute renders one named template to w
func Execute(w io.Writer, tmpl *template.Template, name string, data any) error {
	if err := tmpl.ExecuteTemplate(w, name, data); err != nil {
		return fmt.Errorf("failed to render %s: %w", name, err)
	}
	return nil
}
