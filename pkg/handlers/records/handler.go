// Package records serves the patient index page and the record
// operations behind it: search, document download and delete.
package records

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/premiummedi/labreport/pkg/adapters"
	"github.com/premiummedi/labreport/pkg/models/api"
	"github.com/premiummedi/labreport/pkg/models/domain"
	"github.com/premiummedi/labreport/pkg/services/catalog"
	"github.com/premiummedi/labreport/pkg/store/patientdb"
	"github.com/premiummedi/labreport/pkg/web"
)

type Handler struct {
	store    *patientdb.Store
	catalog  catalog.Catalog
	renderer *web.Renderer
	clinic   domain.Clinic
}

func NewHandler(store *patientdb.Store, cat catalog.Catalog, renderer *web.Renderer, clinic domain.Clinic) *Handler {
	return &Handler{
		store:    store,
		catalog:  cat,
		renderer: renderer,
		clinic:   clinic,
	}
}

// Index serves the landing page: the test menu plus the search UI.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	var tests []web.TestLink
	for _, t := range h.catalog.TestTypes() {
		tpl, err := h.catalog.Get(t)
		if err != nil {
			logger.Error().Err(err).Str("test", t.Slug()).Msg("failed to load reference template")
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		tests = append(tests, web.TestLink{Slug: t.Slug(), Code: tpl.Code, Title: tpl.Title})
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err := h.renderer.Index(w, web.IndexData{Clinic: h.clinic, Tests: tests})
	if err != nil {
		logger.Error().Err(err).Msg("failed to render index page")
	}
}

// Search answers the live patient search of the index page.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)
	query := r.URL.Query().Get("q")

	matches, err := h.store.Search(query)
	if err != nil {
		logger.Error().Err(err).Str("query", query).Msg("failed to search patient records")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	response := api.SearchResponse{Results: adapters.MapDomainRecordsToApi(matches)}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		logger.Error().Err(err).Str("query", query).Msg("failed to encode search results")
	}
}

// Download serves a previously generated report file as an attachment.
func (h *Handler) Download(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "filename")
	if decoded, err := url.PathUnescape(filename); err == nil {
		filename = decoded
	}

	path, err := h.store.DocumentPath(filename)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Disposition",
		fmt.Sprintf(`attachment; filename*=UTF-8''%s`, url.PathEscape(filename)))
	http.ServeFile(w, r, path)
}

// Delete removes a patient record and its document file.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	success := false
	if id, err := strconv.Atoi(chi.URLParam(r, "id")); err == nil {
		success, err = h.store.Delete(id)
		if err != nil {
			logger.Error().Err(err).Int("id", id).Msg("failed to delete patient record")
			success = false
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(api.DeleteResponse{Success: success}); err != nil {
		logger.Error().Err(err).Msg("failed to encode delete response")
	}
}
