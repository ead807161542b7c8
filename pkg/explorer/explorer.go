// Package explorer provides the read API that presenters drive.
//
// A Session pairs the cache.Store with the query state of one user
// interface: search term, license filter, current page. Presenters
// mutate the state through Search, FilterByLicense, and GoToPage, then
// render whatever CurrentPage returns. Changing the search term or the
// license filter resets pagination to the first page; out-of-range
// page numbers are clamped when the page is computed.
//
// A Session is not safe for concurrent use. Create one per presenter;
// the underlying Store is shared and handles its own coordination.
package explorer

import (
	"context"

	"github.com/snowdex/snowdex/pkg/cache"
	"github.com/snowdex/snowdex/pkg/catalog"
	"github.com/snowdex/snowdex/pkg/config"
	"github.com/snowdex/snowdex/pkg/sanitize"
)

// Session holds the query state for one presenter.
type Session struct {
	store    *cache.Store
	pageSize int
	state    catalog.QueryState
}

// NewSession creates a session over the given store with the page size
// from cfg.
func NewSession(store *cache.Store, cfg config.Config) *Session {
	pageSize := cfg.ItemsPerPage
	if pageSize < 1 {
		pageSize = catalog.DefaultPageSize
	}
	return &Session{
		store:    store,
		pageSize: pageSize,
		state: catalog.QueryState{
			LicenseFilter: catalog.AllLicenses,
			Page:          1,
		},
	}
}

// Search sets the search term and returns to the first page. The term
// passes through the same text sanitizer as the catalog, so it matches
// against stored text rather than raw upstream text.
func (s *Session) Search(term string) {
	s.state.SearchTerm = sanitize.Text(term)
	s.state.Page = 1
}

// FilterByLicense sets the license filter and returns to the first
// page. An empty value means no filter.
func (s *Session) FilterByLicense(license string) {
	s.state.LicenseFilter = license
	s.state.Page = 1
}

// GoToPage sets the requested page. The value is clamped to the
// available range when the page is computed, so callers may pass
// page+1 or page-1 without bounds checking.
func (s *Session) GoToPage(page int) {
	s.state.Page = page
}

// State returns the current query state.
func (s *Session) State() catalog.QueryState {
	return s.state.Normalize()
}

// CurrentPage resolves the catalog through the store and applies the
// session's query state. The clamped page number is written back so
// subsequent GoToPage calls step from the effective page.
func (s *Session) CurrentPage(ctx context.Context) (catalog.Page, error) {
	cat, err := s.store.GetOrRefresh(ctx)
	if err != nil {
		return catalog.Page{}, err
	}
	page := catalog.Query(cat, s.state, s.pageSize)
	s.state.Page = page.Page
	return page, nil
}

// Refresh forces a catalog fetch regardless of TTL. The query state is
// kept, so the presenter re-renders the same view over fresh data.
func (s *Session) Refresh(ctx context.Context) error {
	_, err := s.store.Refresh(ctx)
	return err
}

// Licenses returns the license filter options for the current catalog.
func (s *Session) Licenses(ctx context.Context) ([]string, error) {
	cat, err := s.store.GetOrRefresh(ctx)
	if err != nil {
		return nil, err
	}
	return cat.Licenses(), nil
}

// LicenseCounts returns per-license package counts for the current
// catalog.
func (s *Session) LicenseCounts(ctx context.Context) ([]catalog.LicenseCount, error) {
	cat, err := s.store.GetOrRefresh(ctx)
	if err != nil {
		return nil, err
	}
	return cat.LicenseCounts(), nil
}

// Stats returns the catalog statistics for the current catalog.
func (s *Session) Stats(ctx context.Context) (catalog.Stats, error) {
	cat, err := s.store.GetOrRefresh(ctx)
	if err != nil {
		return catalog.Stats{}, err
	}
	return cat.Stats(), nil
}

// Find resolves a single package by name through the store.
func (s *Session) Find(ctx context.Context, name string) (catalog.Record, bool, error) {
	cat, err := s.store.GetOrRefresh(ctx)
	if err != nil {
		return catalog.Record{}, false, err
	}
	rec, ok := cat.Find(name)
	return rec, ok, nil
}
