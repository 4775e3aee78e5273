package httpx

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"

	corefuncs "github.com/DimpleKundu/incubyte-sweet-shop/internal/http/templates/core"
)

// Entry templates executed by the renderer.
const (
	tmplLayout  = "layout"
	tmplContent = "content"
	tmplError   = "error-layout"
)

//nolint:gochecknoglobals // parse order is fixed
var templatePatterns = []string{"*.tmpl", "pages/*.tmpl", "partials/*.tmpl"}

// TemplateRenderer executes the storefront templates. Output is buffered so a
// failing template never leaves a half-written page behind.
type TemplateRenderer struct {
	t      *template.Template
	logger *slog.Logger
}

// TemplateRendererConfig holds configuration for creating a TemplateRenderer.
type TemplateRendererConfig struct {
	TemplateFS fs.FS        // required
	Logger     *slog.Logger // optional
}

// NewTemplateRenderer parses every template under cfg.TemplateFS.
func NewTemplateRenderer(cfg TemplateRendererConfig) (*TemplateRenderer, error) {
	if cfg.TemplateFS == nil {
		return nil, errors.New("template filesystem is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	sections := &corefuncs.Sections{Name: ContentTemplateFor}
	t, err := template.New("root").Funcs(corefuncs.Funcs(sections)).ParseFS(cfg.TemplateFS, templatePatterns...)
	if err != nil {
		logger.Error("parse templates", slog.Any("error", err))
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	sections.Set = t

	return &TemplateRenderer{t: t, logger: logger}, nil
}

// RenderFull renders the layout with the page content inside it.
func (r *TemplateRenderer) RenderFull(w http.ResponseWriter, _ *http.Request, data any) error {
	return r.RenderNamed(w, tmplLayout, data)
}

// RenderPartial renders only the main content area, for htmx navigation.
func (r *TemplateRenderer) RenderPartial(w http.ResponseWriter, _ *http.Request, data any) error {
	return r.RenderNamed(w, tmplContent, data)
}

// RenderError renders the standalone error page.
func (r *TemplateRenderer) RenderError(w http.ResponseWriter, _ *http.Request, data any) error {
	return r.RenderNamed(w, tmplError, data)
}

// RenderNamed renders one named template, e.g. the sweet grid partial.
func (r *TemplateRenderer) RenderNamed(w http.ResponseWriter, name string, data any) error {
	var buf bytes.Buffer
	if err := r.t.ExecuteTemplate(&buf, name, data); err != nil {
		r.logger.Error("execute template", slog.String("template", name), slog.Any("error", err))
		return err
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := buf.WriteTo(w); err != nil {
		r.logger.Warn("write rendered template", slog.String("template", name), slog.Any("error", err))
		return err
	}
	return nil
}
