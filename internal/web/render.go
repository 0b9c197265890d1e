package web

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"html/template"
	"io/fs"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/yuin/goldmark"

	"chalk/internal/errors"
	"chalk/internal/lesson"
	"chalk/internal/ops"
	"chalk/internal/render"
)

// PageData carries the fields every page template expects.
type PageData struct {
	Title   string
	Version string
	Nav     string // active nav item: "plans"
}

// ListPageData feeds the plan list page.
type ListPageData struct {
	PageData
	Items      []lesson.PlanSummary
	Pagination ops.Pagination
	Unit       string
}

// TagChip is one inferred tag rendered as a labeled chip.
type TagChip struct {
	Family string // materials, methods, assessment, curriculum, other
	Label  string
}

// DayView is one lesson day prepared for the detail template.
type DayView struct {
	Day   int
	Topic string
	Chips []TagChip
}

// DetailPageData feeds the plan detail page.
type DetailPageData struct {
	PageData
	Plan         *ops.FetchOutput
	Days         []DayView
	Theme        render.Theme
	RenderedHTML template.HTML
}

// ErrorPageData feeds the error page.
type ErrorPageData struct {
	PageData
	StatusCode int
	Message    string
}

// Renderer holds the parsed page templates. Each page is a clone of the
// layout with its own content block, so pages cannot shadow each other's
// definitions.
type Renderer struct {
	templates map[string]*template.Template
	version   string
}

var pageFiles = map[string]string{
	"list":   "list.html",
	"detail": "detail.html",
	"error":  "error.html",
}

// NewRenderer parses all page templates from templateFS. Parsing failures
// panic; the templates are embedded, so they are a build problem.
func NewRenderer(templateFS fs.FS, version string) *Renderer {
	funcMap := template.FuncMap{
		"add":        func(a, b int) int { return a + b },
		"sub":        func(a, b int) int { return a - b },
		"formatTime": formatTime,
		"safeHTML":   func(s string) template.HTML { return template.HTML(s) },
	}

	layout := template.Must(template.New("layout").Funcs(funcMap).ParseFS(templateFS, "layout.html"))

	templates := make(map[string]*template.Template, len(pageFiles))
	for name, file := range pageFiles {
		page := template.Must(layout.Clone())
		templates[name] = template.Must(page.ParseFS(templateFS, file))
	}

	return &Renderer{templates: templates, version: version}
}

func (r *Renderer) renderPage(w http.ResponseWriter, req *http.Request, name string, data any) {
	r.renderPageStatus(w, req, http.StatusOK, name, data)
}

// renderPageStatus writes a full page, or just the content block when the
// request came from HTMX and the layout is already on screen.
func (r *Renderer) renderPageStatus(w http.ResponseWriter, req *http.Request, status int, name string, data any) {
	body, err := r.execPage(name, blockFor(req), data)
	if err != nil {
		log.Printf("render %s: %v", name, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	writeHTML(w, status, body)
}

func blockFor(req *http.Request) string {
	if isHTMX(req) {
		return "content"
	}
	return "layout"
}

func isHTMX(req *http.Request) bool {
	return req != nil && req.Header.Get("HX-Request") == "true"
}

// execPage renders into a buffer so a mid-render failure does not leave a
// half page behind a 200 status.
func (r *Renderer) execPage(name, block string, data any) ([]byte, error) {
	t := r.templates[name]
	if t == nil {
		return nil, fmt.Errorf("template %q not found", name)
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, block, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeHTML(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// renderError picks the error representation the client can use: an HTMX
// fragment, a JSON body, or the full error page.
func (r *Renderer) renderError(w http.ResponseWriter, req *http.Request, err error) {
	var cErr *errors.ChalkError
	if !stderrors.As(err, &cErr) {
		cErr = errors.NewInternal(err)
	}

	switch {
	case isHTMX(req):
		fragment := fmt.Sprintf(`<div class="error-message">%s</div>`, template.HTMLEscapeString(cErr.Message))
		writeHTML(w, cErr.Status, []byte(fragment))
	case strings.Contains(req.Header.Get("Accept"), "application/json"):
		renderJSON(w, cErr.Status, map[string]any{
			"error": map[string]any{
				"code":    string(cErr.Code),
				"message": cErr.Message,
				"status":  cErr.Status,
			},
		})
	default:
		r.renderPageStatus(w, req, cErr.Status, "error", ErrorPageData{
			PageData: PageData{
				Title:   fmt.Sprintf("Error %d", cErr.Status),
				Version: r.version,
			},
			StatusCode: cErr.Status,
			Message:    cErr.Message,
		})
	}
}

func renderJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// renderMarkdown converts markdown to HTML. On a conversion error the raw
// text is shown escaped rather than dropped.
func renderMarkdown(md string) template.HTML {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(md), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(md))
	}
	return template.HTML(buf.String())
}

func formatTime(unix int64) string {
	return time.Unix(unix, 0).UTC().Format("2006-01-02 15:04")
}
