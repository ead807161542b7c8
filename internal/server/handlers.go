package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/snowdex/snowdex/pkg/catalog"
	errs "github.com/snowdex/snowdex/pkg/errors"
	"github.com/snowdex/snowdex/pkg/observability"
	"github.com/snowdex/snowdex/pkg/sanitize"
)

// packagesResponse is the payload for GET /api/packages.
type packagesResponse struct {
	Packages     []catalog.Record `json:"packages"`
	TotalMatches int              `json:"total_matches"`
	TotalPages   int              `json:"total_pages"`
	Page         int              `json:"page"`
	PageSize     int              `json:"page_size"`
	Start        int              `json:"start"`
	End          int              `json:"end"`
}

// licensesResponse is the payload for GET /api/licenses.
type licensesResponse struct {
	Licenses []string `json:"licenses"`
	Count    int      `json:"count"`
}

// handlePackages serves one page of the catalog filtered by the q,
// license, and page query parameters.
func (s *Server) handlePackages(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, err := parsePage(q.Get("page"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	// The search term goes through the same sanitizer as stored text,
	// so raw input matches the escaped form it was indexed under.
	state := catalog.QueryState{
		SearchTerm:    sanitize.Text(q.Get("q")),
		LicenseFilter: q.Get("license"),
		Page:          page,
	}

	cat, err := s.store.GetOrRefresh(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	key := s.responses.key(cat.FetchedAt(), state)
	if body, ok := s.responses.get(key); ok {
		s.respondRaw(w, http.StatusOK, body)
		return
	}

	start := time.Now()
	result := catalog.Query(cat, state, s.cfg.ItemsPerPage)
	observability.Query().OnQuery(r.Context(), result.TotalMatches, time.Since(start))

	resp := packagesResponse{
		Packages:     result.Records,
		TotalMatches: result.TotalMatches,
		TotalPages:   result.TotalPages,
		Page:         result.Page,
		PageSize:     result.PageSize,
		Start:        result.Start,
		End:          result.End,
	}
	if body, err := s.responses.put(key, resp); err == nil {
		s.respondRaw(w, http.StatusOK, body)
		return
	}
	s.respondJSON(w, http.StatusOK, resp)
}

// handlePackage serves a single record by name.
func (s *Server) handlePackage(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if err := errs.ValidateCondaPackageName(name); err != nil {
		s.respondError(w, r, err)
		return
	}

	cat, err := s.store.GetOrRefresh(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	rec, ok := cat.Find(name)
	if !ok {
		s.respondError(w, r, errs.New(errs.ErrCodePackageNotFound, "package %q not found", name))
		return
	}
	s.respondJSON(w, http.StatusOK, rec)
}

// handleLicenses serves the distinct license values in the catalog.
// The "All" filter sentinel is a UI concern and is not part of the API.
func (s *Server) handleLicenses(w http.ResponseWriter, r *http.Request) {
	cat, err := s.store.GetOrRefresh(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	licenses := cat.Licenses()[1:]
	s.respondJSON(w, http.StatusOK, licensesResponse{
		Licenses: licenses,
		Count:    len(licenses),
	})
}

// handleStats serves catalog summary statistics.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	cat, err := s.store.GetOrRefresh(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, cat.Stats())
}

// handleHealthz reports process liveness. It does not touch the store;
// a failing upstream must not flip liveness.
func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
