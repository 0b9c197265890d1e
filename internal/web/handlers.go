package web

import (
	"database/sql"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"chalk/internal/config"
	"chalk/internal/errors"
	"chalk/internal/lesson"
	"chalk/internal/ops"
	"chalk/internal/render"
)

// Handlers holds dependencies for HTTP handlers.
type Handlers struct {
	db       *sql.DB
	cfg      *config.Config
	renderer *Renderer
}

// HandleList renders the plan list page.
func (h *Handlers) HandleList(w http.ResponseWriter, r *http.Request) {
	unit := strings.TrimSpace(r.URL.Query().Get("unit"))
	limit := parseIntParam(r, "limit", ops.DefaultListLimit)
	offset := parseIntParam(r, "offset", 0)

	output, err := ops.List(h.db, ops.ListInput{
		Unit:   unit,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	h.renderer.renderPage(w, r, "list", ListPageData{
		PageData: PageData{
			Title:   "Lesson Plans",
			Version: h.renderer.version,
			Nav:     "plans",
		},
		Items:      output.Items,
		Pagination: output.Pagination,
		Unit:       unit,
	})
}

// HandleDetail renders a single plan with inferred tags and the teacher
// handout preview.
func (h *Handlers) HandleDetail(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	output, err := ops.Fetch(h.db, ops.FetchInput{ID: id})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	var days []DayView
	var inferences []*lesson.Inference
	if output.Plan != nil {
		for i := range output.Plan.Days {
			day := &output.Plan.Days[i]
			inf := lesson.Infer(day)
			inferences = append(inferences, inf)
			days = append(days, DayView{
				Day:   i + 1,
				Topic: day.Topic,
				Chips: buildChips(inf),
			})
		}
	}

	var rendered string
	if output.Plan != nil {
		rendered = render.TeacherHandout(render.HandoutContext{
			Week:        output.Plan,
			CourseTitle: h.cfg.CourseTitle,
			Inferences:  inferences,
		})
	}

	h.renderer.renderPage(w, r, "detail", DetailPageData{
		PageData: PageData{
			Title:   fmt.Sprintf("Week %d: %s", output.WeekNum, output.Unit),
			Version: h.renderer.version,
			Nav:     "plans",
		},
		Plan:         output,
		Days:         days,
		Theme:        render.UnitTheme(output.Unit),
		RenderedHTML: renderMarkdown(rendered),
	})
}

// HandleDelete soft-deletes a plan.
func (h *Handlers) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	output, err := ops.Delete(h.db, ops.DeleteInput{ID: id})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	// HTMX request: redirect the client to the list
	if r.Header.Get("HX-Request") == "true" {
		w.Header().Set("HX-Redirect", "/plans")
		w.WriteHeader(http.StatusOK)
		return
	}

	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		renderJSON(w, http.StatusOK, output)
		return
	}

	http.Redirect(w, r, "/plans", http.StatusSeeOther)
}

// HandlePurge permanently removes soft-deleted plans. Requires confirm=true.
func (h *Handlers) HandlePurge(w http.ResponseWriter, r *http.Request) {
	if r.FormValue("confirm") != "true" {
		h.renderer.renderError(w, r, errors.NewInvalidRequest("purge requires confirm=true"))
		return
	}

	input := ops.PurgeInput{}
	if v := r.FormValue("older_than_days"); v != "" {
		days, err := strconv.Atoi(v)
		if err != nil {
			h.renderer.renderError(w, r, errors.NewInvalidRequest("older_than_days must be a number"))
			return
		}
		input.OlderThanDays = &days
	}

	output, err := ops.Purge(h.db, input)
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	if r.Header.Get("HX-Request") == "true" {
		w.Header().Set("HX-Redirect", "/plans")
		w.WriteHeader(http.StatusOK)
		return
	}

	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		renderJSON(w, http.StatusOK, output)
		return
	}

	http.Redirect(w, r, "/plans", http.StatusSeeOther)
}

// buildChips flattens an inference into labeled chips, one per inferred
// category, using the checkbox label text.
func buildChips(inf *lesson.Inference) []TagChip {
	var chips []TagChip
	chips = appendChips(chips, "materials", lesson.MaterialLabels, inf.Materials)
	chips = appendChips(chips, "methods", lesson.MethodLabels, inf.Methods)
	chips = appendChips(chips, "assessment", lesson.AssessmentLabels, inf.Assessment)
	chips = appendChips(chips, "curriculum", lesson.CurriculumLabels, inf.Curriculum)
	chips = appendChips(chips, "other", lesson.OtherAreaLabels, inf.OtherAreas)
	return chips
}

func appendChips(chips []TagChip, family string, labels []lesson.Label, keys []string) []TagChip {
	text := make(map[string]string, len(labels))
	for _, l := range labels {
		text[l.Key] = l.Text
	}
	for _, k := range keys {
		label := text[k]
		if label == "" {
			label = k
		}
		chips = append(chips, TagChip{Family: family, Label: label})
	}
	return chips
}

// parseIntParam parses an integer query parameter with a default.
func parseIntParam(r *http.Request, name string, def int) int {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
