// Package reports serves the per-test entry forms and the three output
// encodings generated from a form submission.
package reports

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/premiummedi/labreport/pkg/export/officedoc"
	"github.com/premiummedi/labreport/pkg/export/pdfrender"
	"github.com/premiummedi/labreport/pkg/models/domain"
	"github.com/premiummedi/labreport/pkg/services/report"
	"github.com/premiummedi/labreport/pkg/web"
)

type Handler struct {
	service  *report.Service
	renderer *web.Renderer
	clinic   domain.Clinic
}

func NewHandler(service *report.Service, renderer *web.Renderer, clinic domain.Clinic) *Handler {
	return &Handler{
		service:  service,
		renderer: renderer,
		clinic:   clinic,
	}
}

// Form serves the entry form of one test type.
func (h *Handler) Form(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	slug := chi.URLParam(r, "test")
	t, err := domain.ParseTestTypeSlug(slug)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	tpl, err := h.service.Template(t)
	if err != nil {
		logger.Error().Err(err).Str("test", slug).Msg("failed to load reference template")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err = h.renderer.Form(w, web.FormData{
		Clinic:   h.clinic,
		Slug:     slug,
		Template: tpl,
	})
	if err != nil {
		logger.Error().Err(err).Str("test", slug).Msg("failed to render entry form")
	}
}

// Print saves the submitted report and answers with the self-printing
// HTML page.
func (h *Handler) Print(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	t, req, ok := h.submission(w, r)
	if !ok {
		return
	}

	page, err := h.service.PrintPage(ctx, t, req)
	if err != nil {
		logger.Error().Err(err).Str("test", t.Slug()).Msg("failed to render print page")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := fmt.Fprint(w, page); err != nil {
		logger.Error().Err(err).Str("test", t.Slug()).Msg("failed to write print page")
	}
}

// Document saves the submitted report and answers with the Word file.
func (h *Handler) Document(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	t, req, ok := h.submission(w, r)
	if !ok {
		return
	}

	filename, data, err := h.service.Document(ctx, t, req)
	if err != nil {
		logger.Error().Err(err).Str("test", t.Slug()).Msg("failed to render document")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	writeAttachment(w, filename, officedoc.ContentType, data)
}

// PDF answers with the PDF variant; no record is saved.
func (h *Handler) PDF(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	t, req, ok := h.submission(w, r)
	if !ok {
		return
	}

	filename, data, err := h.service.PDF(ctx, t, req)
	if err != nil {
		logger.Error().Err(err).Str("test", t.Slug()).Msg("failed to render pdf")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	writeAttachment(w, filename, pdfrender.ContentType, data)
}

func (h *Handler) submission(w http.ResponseWriter, r *http.Request) (domain.TestType, domain.ReportRequest, bool) {
	t, err := domain.ParseTestTypeSlug(chi.URLParam(r, "test"))
	if err != nil {
		http.NotFound(w, r)
		return "", domain.ReportRequest{}, false
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return "", domain.ReportRequest{}, false
	}
	return t, domain.ReportRequestFromForm(r.PostForm), true
}

func writeAttachment(w http.ResponseWriter, filename, contentType string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition",
		fmt.Sprintf(`attachment; filename*=UTF-8''%s`, url.PathEscape(filename)))
	_, _ = w.Write(data)
}
