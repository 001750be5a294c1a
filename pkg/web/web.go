// Package web renders the browser pages: the patient index page and the
// per-test entry forms. All pages are generated from embedded templates
// driven by the reference template catalog; there is one generic form
// for every test type.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/premiummedi/labreport/pkg/models/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

type Renderer struct {
	index *template.Template
	form  *template.Template
}

func NewRenderer() (*Renderer, error) {
	index, err := template.ParseFS(templateFS, "templates/index.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse index template: %w", err)
	}
	form, err := template.ParseFS(templateFS, "templates/form.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse form template: %w", err)
	}
	return &Renderer{index: index, form: form}, nil
}

// TestLink is one entry of the index page's test menu.
type TestLink struct {
	Slug  string
	Code  string
	Title string
}

type IndexData struct {
	Clinic domain.Clinic
	Tests  []TestLink
}

type FormData struct {
	Clinic   domain.Clinic
	Slug     string
	Template domain.ReferenceTemplate
}

func (r *Renderer) Index(w io.Writer, data IndexData) error {
	return r.index.Execute(w, data)
}

func (r *Renderer) Form(w io.Writer, data FormData) error {
	return r.form.Execute(w, data)
}
