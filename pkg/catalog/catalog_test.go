package catalog

import (
	"reflect"
	"testing"
	"time"
)

func newTestCatalog(records ...Record) *Catalog {
	return New(records, "https://repo.anaconda.com/pkgs/snowflake/", time.Unix(1700000000, 0), 0)
}

func TestNewCopiesRecords(t *testing.T) {
	records := []Record{
		{Name: "pandas", License: "BSD"},
		{Name: "numpy", License: "BSD"},
	}
	c := newTestCatalog(records...)

	records[0].Name = "mutated"

	got, ok := c.Find("pandas")
	if !ok {
		t.Fatal("Find(pandas) not found after caller mutated input slice")
	}
	if got.Name != "pandas" {
		t.Errorf("Name = %q, want %q", got.Name, "pandas")
	}
}

func TestRecordsReturnsCopy(t *testing.T) {
	c := newTestCatalog(Record{Name: "pandas"})

	rs := c.Records()
	rs[0].Name = "mutated"

	if got := c.Records()[0].Name; got != "pandas" {
		t.Errorf("Records()[0].Name = %q, want %q", got, "pandas")
	}
}

func TestFind(t *testing.T) {
	c := newTestCatalog(
		Record{Name: "pandas", Version: "2.1.4"},
		Record{Name: "numpy", Version: "1.26.3"},
	)

	tests := []struct {
		name      string
		lookup    string
		wantFound bool
		wantName  string
	}{
		{"exact match", "pandas", true, "pandas"},
		{"case-insensitive", "NumPy", true, "numpy"},
		{"missing", "requests", false, ""},
		{"empty", "", false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := c.Find(tt.lookup)
			if ok != tt.wantFound {
				t.Fatalf("Find(%q) found = %v, want %v", tt.lookup, ok, tt.wantFound)
			}
			if ok && got.Name != tt.wantName {
				t.Errorf("Find(%q).Name = %q, want %q", tt.lookup, got.Name, tt.wantName)
			}
		})
	}
}

func TestLicenses(t *testing.T) {
	c := newTestCatalog(
		Record{Name: "pandas", License: "BSD"},
		Record{Name: "numpy", License: "BSD"},
		Record{Name: "requests", License: "Apache-2.0"},
		Record{Name: "mystery", License: LicenseUnspecified},
	)

	got := c.Licenses()
	want := []string{AllLicenses, "Apache-2.0", "BSD", LicenseUnspecified}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Licenses() = %v, want %v", got, want)
	}
}

func TestLicensesEmptyCatalog(t *testing.T) {
	c := newTestCatalog()

	got := c.Licenses()
	want := []string{AllLicenses}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Licenses() = %v, want %v", got, want)
	}
}

func TestLicenseCounts(t *testing.T) {
	c := newTestCatalog(
		Record{Name: "pandas", License: "BSD"},
		Record{Name: "numpy", License: "BSD"},
		Record{Name: "requests", License: "Apache-2.0"},
		Record{Name: "mystery", License: LicenseUnspecified},
	)

	got := c.LicenseCounts()
	want := []LicenseCount{
		{License: "Apache-2.0", Count: 1},
		{License: "BSD", Count: 2},
		{License: LicenseUnspecified, Count: 1},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("LicenseCounts() = %v, want %v", got, want)
	}
}

func TestLicenseCountsEmptyCatalog(t *testing.T) {
	if got := newTestCatalog().LicenseCounts(); len(got) != 0 {
		t.Errorf("LicenseCounts() = %v, want empty", got)
	}
}

func TestStats(t *testing.T) {
	fetchedAt := time.Unix(1700000000, 0)
	c := New([]Record{
		{Name: "pandas", License: "BSD"},
		{Name: "numpy", License: "BSD"},
		{Name: "requests", License: "Apache-2.0"},
	}, "https://repo.anaconda.com/pkgs/snowflake/", fetchedAt, 2)

	got := c.Stats()
	if got.TotalPackages != 3 {
		t.Errorf("TotalPackages = %d, want 3", got.TotalPackages)
	}
	if got.UniqueLicenses != 2 {
		t.Errorf("UniqueLicenses = %d, want 2", got.UniqueLicenses)
	}
	if got.Skipped != 2 {
		t.Errorf("Skipped = %d, want 2", got.Skipped)
	}
	if !got.FetchedAt.Equal(fetchedAt) {
		t.Errorf("FetchedAt = %v, want %v", got.FetchedAt, fetchedAt)
	}
	if got.Source != "https://repo.anaconda.com/pkgs/snowflake/" {
		t.Errorf("Source = %q, want the repo URL", got.Source)
	}
}

func TestHasLinks(t *testing.T) {
	tests := []struct {
		name     string
		record   Record
		expected bool
	}{
		{"both links", Record{DocURL: "https://docs.example.com", SourceURL: "https://github.com/x/y"}, true},
		{"doc only", Record{DocURL: "https://docs.example.com"}, true},
		{"source only", Record{SourceURL: "https://github.com/x/y"}, true},
		{"no links", Record{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.record.HasLinks(); got != tt.expected {
				t.Errorf("HasLinks() = %v, want %v", got, tt.expected)
			}
		})
	}
}
