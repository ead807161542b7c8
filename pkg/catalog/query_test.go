package catalog

import (
	"fmt"
	"reflect"
	"testing"
)

func recordNames(records []Record) []string {
	if len(records) == 0 {
		return nil
	}
	names := make([]string, len(records))
	for i, r := range records {
		names[i] = r.Name
	}
	return names
}

func TestQueryLicenseAndTermCombined(t *testing.T) {
	c := newTestCatalog(
		Record{Name: "pandas", License: "BSD", Summary: "data analysis"},
		Record{Name: "numpy", License: "BSD", Summary: "numerical arrays"},
		Record{Name: "requests", License: "Apache-2.0", Summary: "http for humans"},
	)

	got := Query(c, QueryState{SearchTerm: "", LicenseFilter: "BSD", Page: 1}, 2)

	if got.TotalMatches != 2 {
		t.Errorf("TotalMatches = %d, want 2", got.TotalMatches)
	}
	if got.TotalPages != 1 {
		t.Errorf("TotalPages = %d, want 1", got.TotalPages)
	}
	if names := recordNames(got.Records); !reflect.DeepEqual(names, []string{"pandas", "numpy"}) {
		t.Errorf("records = %v, want [pandas numpy]", names)
	}
}

func TestQueryMatchesNameOrSummary(t *testing.T) {
	c := newTestCatalog(
		Record{Name: "pandas", Summary: "data analysis toolkit", License: "BSD"},
		Record{Name: "numpy", Summary: "numerical arrays", License: "BSD"},
		Record{Name: "pyarrow", Summary: "columnar data format", License: "Apache-2.0"},
	)

	tests := []struct {
		name  string
		state QueryState
		want  []string
	}{
		{"empty term matches all", QueryState{}, []string{"pandas", "numpy", "pyarrow"}},
		{"term in name", QueryState{SearchTerm: "numpy"}, []string{"numpy"}},
		{"term in summary", QueryState{SearchTerm: "data"}, []string{"pandas", "pyarrow"}},
		{"term and license", QueryState{SearchTerm: "data", LicenseFilter: "BSD"}, []string{"pandas"}},
		{"no match", QueryState{SearchTerm: "tensorflow"}, nil},
		{"whitespace term matches all", QueryState{SearchTerm: "   "}, []string{"pandas", "numpy", "pyarrow"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Query(c, tt.state, 10)
			if names := recordNames(got.Records); !reflect.DeepEqual(names, tt.want) {
				t.Errorf("records = %v, want %v", names, tt.want)
			}
			if got.TotalMatches != len(tt.want) {
				t.Errorf("TotalMatches = %d, want %d", got.TotalMatches, len(tt.want))
			}
		})
	}
}

func TestQueryCaseInsensitive(t *testing.T) {
	c := newTestCatalog(
		Record{Name: "NumPy", Summary: "Numerical arrays", License: "BSD"},
		Record{Name: "pandas", Summary: "built on numpy", License: "BSD"},
	)

	lower := Query(c, QueryState{SearchTerm: "numpy"}, 10)
	mixed := Query(c, QueryState{SearchTerm: "NumPy"}, 10)

	if !reflect.DeepEqual(lower, mixed) {
		t.Errorf("query(numpy) = %+v, query(NumPy) = %+v, want identical", lower, mixed)
	}
	if lower.TotalMatches != 2 {
		t.Errorf("TotalMatches = %d, want 2", lower.TotalMatches)
	}
}

func TestQueryLicenseExactMatch(t *testing.T) {
	c := newTestCatalog(
		Record{Name: "a", License: "BSD"},
		Record{Name: "b", License: "BSD-3-Clause"},
		Record{Name: "c", License: "bsd"},
	)

	got := Query(c, QueryState{LicenseFilter: "BSD"}, 10)

	if got.TotalMatches != 1 {
		t.Fatalf("TotalMatches = %d, want 1", got.TotalMatches)
	}
	for _, r := range got.Records {
		if r.License != "BSD" {
			t.Errorf("record %q license = %q, want exactly BSD", r.Name, r.License)
		}
	}
}

func TestQueryPreservesInsertionOrder(t *testing.T) {
	c := newTestCatalog(
		Record{Name: "zlib", License: "zlib"},
		Record{Name: "arrow", License: "Apache-2.0"},
		Record{Name: "numpy", License: "BSD"},
	)

	got := Query(c, QueryState{}, 10)

	want := []string{"zlib", "arrow", "numpy"}
	if names := recordNames(got.Records); !reflect.DeepEqual(names, want) {
		t.Errorf("records = %v, want %v (listing order)", names, want)
	}
}

func TestQueryPaginationClamp(t *testing.T) {
	records := make([]Record, 25)
	for i := range records {
		records[i] = Record{Name: fmt.Sprintf("pkg-%02d", i+1), License: "BSD"}
	}
	c := newTestCatalog(records...)

	got := Query(c, QueryState{Page: 99}, 10)

	if got.Page != 3 {
		t.Errorf("Page = %d, want 3 (clamped to last page)", got.Page)
	}
	if got.TotalPages != 3 {
		t.Errorf("TotalPages = %d, want 3", got.TotalPages)
	}
	if got.TotalMatches != 25 {
		t.Errorf("TotalMatches = %d, want 25", got.TotalMatches)
	}
	want := []string{"pkg-21", "pkg-22", "pkg-23", "pkg-24", "pkg-25"}
	if names := recordNames(got.Records); !reflect.DeepEqual(names, want) {
		t.Errorf("records = %v, want %v", names, want)
	}
	if got.Start != 21 || got.End != 25 {
		t.Errorf("Start, End = %d, %d, want 21, 25", got.Start, got.End)
	}
}

func TestQueryPageSlicing(t *testing.T) {
	records := make([]Record, 25)
	for i := range records {
		records[i] = Record{Name: fmt.Sprintf("pkg-%02d", i+1), License: "BSD"}
	}
	c := newTestCatalog(records...)

	tests := []struct {
		name      string
		page      int
		wantFirst string
		wantLast  string
		wantLen   int
		wantStart int
		wantEnd   int
	}{
		{"first page", 1, "pkg-01", "pkg-10", 10, 1, 10},
		{"middle page", 2, "pkg-11", "pkg-20", 10, 11, 20},
		{"short last page", 3, "pkg-21", "pkg-25", 5, 21, 25},
		{"zero page clamps to first", 0, "pkg-01", "pkg-10", 10, 1, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Query(c, QueryState{Page: tt.page}, 10)
			if len(got.Records) != tt.wantLen {
				t.Fatalf("len(Records) = %d, want %d", len(got.Records), tt.wantLen)
			}
			if got.Records[0].Name != tt.wantFirst {
				t.Errorf("first record = %q, want %q", got.Records[0].Name, tt.wantFirst)
			}
			if got.Records[tt.wantLen-1].Name != tt.wantLast {
				t.Errorf("last record = %q, want %q", got.Records[tt.wantLen-1].Name, tt.wantLast)
			}
			if got.Start != tt.wantStart || got.End != tt.wantEnd {
				t.Errorf("Start, End = %d, %d, want %d, %d", got.Start, got.End, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestQueryZeroMatches(t *testing.T) {
	c := newTestCatalog(
		Record{Name: "pandas", License: "BSD"},
	)

	got := Query(c, QueryState{SearchTerm: "tensorflow", Page: 99}, 10)

	if got.TotalMatches != 0 {
		t.Errorf("TotalMatches = %d, want 0", got.TotalMatches)
	}
	if got.TotalPages != 0 {
		t.Errorf("TotalPages = %d, want 0", got.TotalPages)
	}
	if got.Page != 1 {
		t.Errorf("Page = %d, want 1", got.Page)
	}
	if len(got.Records) != 0 {
		t.Errorf("len(Records) = %d, want 0", len(got.Records))
	}
	if got.Start != 0 || got.End != 0 {
		t.Errorf("Start, End = %d, %d, want 0, 0", got.Start, got.End)
	}
}

func TestQueryPageSizeFallback(t *testing.T) {
	records := make([]Record, 20)
	for i := range records {
		records[i] = Record{Name: fmt.Sprintf("pkg-%02d", i+1)}
	}
	c := newTestCatalog(records...)

	got := Query(c, QueryState{}, 0)

	if got.PageSize != DefaultPageSize {
		t.Errorf("PageSize = %d, want %d", got.PageSize, DefaultPageSize)
	}
	if len(got.Records) != DefaultPageSize {
		t.Errorf("len(Records) = %d, want %d", len(got.Records), DefaultPageSize)
	}
}

func TestQueryStateNormalize(t *testing.T) {
	tests := []struct {
		name  string
		state QueryState
		want  QueryState
	}{
		{"zero value", QueryState{}, QueryState{LicenseFilter: AllLicenses, Page: 1}},
		{"negative page", QueryState{Page: -5}, QueryState{LicenseFilter: AllLicenses, Page: 1}},
		{
			"already normalized",
			QueryState{SearchTerm: "numpy", LicenseFilter: "BSD", Page: 3},
			QueryState{SearchTerm: "numpy", LicenseFilter: "BSD", Page: 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.state.Normalize(); got != tt.want {
				t.Errorf("Normalize() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
