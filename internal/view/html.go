package view

import (
	"embed"
	"html/template"
	"io"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Renderer writes the widget page. html/template escapes every value by
// context, so catalog and assistant text can never inject markup.
type Renderer struct {
	page *template.Template
}

func NewRenderer() (*Renderer, error) {
	t, err := template.ParseFS(templateFS, "templates/page.html.tmpl")
	if err != nil {
		return nil, err
	}
	return &Renderer{page: t}, nil
}

func (r *Renderer) RenderPage(w io.Writer, page Page) error {
	return r.page.Execute(w, page)
}
