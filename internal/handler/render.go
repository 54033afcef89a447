package handler

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/gorilla/csrf"

	"github.com/eventdash/eventdash-go/internal/service"
	"github.com/eventdash/eventdash-go/internal/session"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = []string{"login.html", "register.html", "events.html", "confirm_delete.html"}

// Renderer executes page templates inside the shared layout.
type Renderer struct {
	pages map[string]*template.Template
}

// NewRenderer parses the embedded templates.
func NewRenderer() (*Renderer, error) {
	r := &Renderer{pages: make(map[string]*template.Template, len(pages))}
	for _, name := range pages {
		tmpl, err := template.ParseFS(templateFS, "templates/layout.html", "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		r.pages[name] = tmpl
	}
	return r, nil
}

// pageData is what every page template receives.
type pageData struct {
	Title     string
	Identity  *session.Identity
	Notice    *session.Notice
	CSRFField template.HTML
	Data      any
}

// render writes page with status. A notice passed in replaces any pending
// flash notice, which is consumed either way.
func (v *Renderer) render(w http.ResponseWriter, r *http.Request, status int, page, title string, data any, notice *session.Notice) {
	tmpl, ok := v.pages[page]
	if !ok {
		slog.Error("unknown template", "page", page)
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}

	pd := pageData{
		Title:     title,
		CSRFField: csrf.TemplateField(r),
		Data:      data,
	}
	if id, ok := session.FromContext(r.Context()); ok {
		pd.Identity = &id
	}
	if flash, ok := session.PopFlash(w, r); ok {
		pd.Notice = &flash
	}
	if notice != nil {
		pd.Notice = notice
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", pd); err != nil {
		slog.Error("template error", "page", page, "error", err)
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

func errorNotice(title, text string) *session.Notice {
	return &session.Notice{Kind: session.KindError, Title: title, Text: text}
}

// fieldErrors returns the per-field messages of a validation error.
func fieldErrors(err error) (map[string]string, bool) {
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		return verr.Fields, true
	}
	return nil, false
}
