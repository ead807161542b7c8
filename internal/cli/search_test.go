package cli

import (
	"strings"
	"testing"

	"github.com/snowdex/snowdex/pkg/catalog"
)

func TestFormatPageFooter(t *testing.T) {
	page := catalog.Page{
		TotalMatches: 134,
		TotalPages:   9,
		Page:         2,
		PageSize:     15,
		Start:        16,
		End:          30,
	}

	got := formatPageFooter(page)
	want := "Page 2 of 9 · showing 16-30 of 134 packages"
	if got != want {
		t.Errorf("formatPageFooter() = %q, want %q", got, want)
	}
}

func TestRenderResultsTable(t *testing.T) {
	page := catalog.Page{
		Records: []catalog.Record{
			{Name: "pandas", Version: "2.1.4", Summary: "Data analysis toolkit", License: "BSD-3-Clause"},
			{Name: "flask", Version: "3.0.0", Summary: "Q&amp;A demos", License: "BSD-3-Clause"},
		},
		TotalMatches: 2,
		TotalPages:   1,
		Page:         1,
	}

	got := renderResultsTable(page)
	for _, want := range []string{"Package", "pandas", "2.1.4", "BSD-3-Clause", "flask"} {
		if !strings.Contains(got, want) {
			t.Errorf("table should contain %q, got:\n%s", want, got)
		}
	}

	// Stored text is escaped; terminals get the plain runes.
	if !strings.Contains(got, "Q&A demos") {
		t.Errorf("table should contain unescaped summary, got:\n%s", got)
	}
	if strings.Contains(got, "&amp;") {
		t.Errorf("table should not leak entity escapes, got:\n%s", got)
	}
}

func TestRenderPackageCard(t *testing.T) {
	rec := catalog.Record{
		Name:      "pandas",
		Version:   "2.1.4",
		Summary:   "Data analysis toolkit",
		License:   "BSD-3-Clause",
		DocURL:    "https://pandas.pydata.org/docs/",
		SourceURL: "https://github.com/pandas-dev/pandas",
		Install: catalog.Install{
			Pip:         "pip install pandas",
			PipPinned:   "pip install pandas==2.1.4",
			Conda:       "conda install -c snowflake pandas",
			CondaPinned: "conda install -c snowflake pandas=2.1.4",
		},
	}

	got := renderPackageCard(rec)
	for _, want := range []string{
		"pandas",
		"Data analysis toolkit",
		"BSD-3-Clause",
		"pip install pandas",
		"pip install pandas==2.1.4",
		"conda install -c snowflake pandas",
		"https://pandas.pydata.org/docs/",
		"https://github.com/pandas-dev/pandas",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("card should contain %q, got:\n%s", want, got)
		}
	}
}

func TestRenderPackageCardWithoutLinks(t *testing.T) {
	rec := catalog.Record{
		Name:    "mystery",
		Version: catalog.VersionUnknown,
		License: catalog.LicenseUnspecified,
		Install: catalog.Install{
			Pip:   "pip install mystery",
			Conda: "conda install -c snowflake mystery",
		},
	}

	got := renderPackageCard(rec)
	if strings.Contains(got, "Links") {
		t.Errorf("card without links should omit the Links section, got:\n%s", got)
	}
	if strings.Contains(got, "==") {
		t.Errorf("card without a known version should omit pinned installs, got:\n%s", got)
	}
}
