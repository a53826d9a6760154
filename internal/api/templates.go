package api

import (
	"embed"
	"html/template"
	"log/slog"
	"net/http"

	"formrehberim.com/form-guide/internal/i18n"
	"formrehberim.com/form-guide/internal/logger"
	"formrehberim.com/form-guide/internal/store"
)

//go:embed templates/*.html
var templateFS embed.FS

type pageData struct {
	Lang      i18n.Pack
	History   []store.Turn
	Question  string
	Exercises []string
}

type pageTemplates struct {
	t *template.Template
}

func parseTemplates() *pageTemplates {
	funcs := template.FuncMap{
		// Turn answers are sanitized before they reach the store.
		"safeHTML": func(s string) template.HTML { return template.HTML(s) },
	}
	return &pageTemplates{
		t: template.Must(template.New("pages").Funcs(funcs).ParseFS(templateFS, "templates/*.html")),
	}
}

func (p *pageTemplates) render(w http.ResponseWriter, name string, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := p.t.ExecuteTemplate(w, name, data); err != nil {
		slog.Error("failed to render template", "template", name, logger.Err(err))
	}
}
