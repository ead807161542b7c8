package catalog

import "strings"

// DefaultPageSize is the fallback page size when the caller passes a
// non-positive one.
const DefaultPageSize = 15

// QueryState captures one browsing position: a search term, a license
// filter, and a 1-based page number. The zero value means "everything,
// page one".
type QueryState struct {
	SearchTerm    string `json:"search_term"`
	LicenseFilter string `json:"license_filter"`
	Page          int    `json:"page"`
}

// Normalize fills zero values: an empty license filter becomes
// AllLicenses and a page below 1 becomes 1.
func (s QueryState) Normalize() QueryState {
	if s.LicenseFilter == "" {
		s.LicenseFilter = AllLicenses
	}
	if s.Page < 1 {
		s.Page = 1
	}
	return s
}

// Page is one page of query results plus the totals a presenter needs
// to render pagination. Start and End are 1-based display bounds
// ("showing Start to End of TotalMatches"); both are 0 when nothing
// matched.
type Page struct {
	Records      []Record `json:"records"`
	TotalMatches int      `json:"total_matches"`
	TotalPages   int      `json:"total_pages"`
	Page         int      `json:"page"`
	PageSize     int      `json:"page_size"`
	Start        int      `json:"start"`
	End          int      `json:"end"`
}

// Query runs a search over the snapshot and returns the requested page.
//
// A record matches when the search term appears case-insensitively in
// its name or summary (an empty term matches everything) and, unless
// the filter is AllLicenses, its license equals the filter exactly.
// Matches keep listing order. The page number is clamped into
// [1, TotalPages]; when nothing matches TotalPages is 0 and the
// effective page is 1.
func Query(c *Catalog, state QueryState, pageSize int) Page {
	state = state.Normalize()
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	term := strings.ToLower(strings.TrimSpace(state.SearchTerm))
	var matches []Record
	for _, r := range c.records {
		if term != "" &&
			!strings.Contains(strings.ToLower(r.Name), term) &&
			!strings.Contains(strings.ToLower(r.Summary), term) {
			continue
		}
		if state.LicenseFilter != AllLicenses && r.License != state.LicenseFilter {
			continue
		}
		matches = append(matches, r)
	}

	total := len(matches)
	totalPages := (total + pageSize - 1) / pageSize

	page := state.Page
	if totalPages == 0 {
		page = 1
	} else if page > totalPages {
		page = totalPages
	}

	result := Page{
		TotalMatches: total,
		TotalPages:   totalPages,
		Page:         page,
		PageSize:     pageSize,
	}
	if total == 0 {
		return result
	}

	low := (page - 1) * pageSize
	high := low + pageSize
	if high > total {
		high = total
	}
	result.Records = make([]Record, high-low)
	copy(result.Records, matches[low:high])
	result.Start = low + 1
	result.End = high
	return result
}
