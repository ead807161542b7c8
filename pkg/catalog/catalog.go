// Package catalog defines the package catalog data model and the query
// engine that searches, filters, and pages through it.
//
// A Catalog is an immutable snapshot of the upstream channel listing:
// once built it is never mutated, so concurrent readers need no locking
// and a refresh replaces the whole snapshot at once. Records keep the
// order in which the listing published them.
package catalog

import (
	"sort"
	"strings"
	"time"
)

// AllLicenses is the license filter value that matches every record.
const AllLicenses = "All"

// Catalog is an immutable snapshot of the channel listing.
type Catalog struct {
	records   []Record
	source    string
	fetchedAt time.Time
	skipped   int
}

// New builds a catalog snapshot. The records slice is copied so later
// mutations by the caller cannot leak into the snapshot. skipped counts
// malformed listing rows the normalizer dropped.
func New(records []Record, source string, fetchedAt time.Time, skipped int) *Catalog {
	rs := make([]Record, len(records))
	copy(rs, records)
	return &Catalog{
		records:   rs,
		source:    source,
		fetchedAt: fetchedAt,
		skipped:   skipped,
	}
}

// Len returns the number of records in the snapshot.
func (c *Catalog) Len() int {
	return len(c.records)
}

// Records returns a copy of the records in listing order.
func (c *Catalog) Records() []Record {
	rs := make([]Record, len(c.records))
	copy(rs, c.records)
	return rs
}

// Source returns the URL the snapshot was fetched from.
func (c *Catalog) Source() string {
	return c.source
}

// FetchedAt returns the time the snapshot was fetched.
func (c *Catalog) FetchedAt() time.Time {
	return c.fetchedAt
}

// Skipped returns the number of malformed listing rows dropped while
// building the snapshot.
func (c *Catalog) Skipped() int {
	return c.skipped
}

// Find returns the first record whose name matches case-insensitively.
func (c *Catalog) Find(name string) (Record, bool) {
	for _, r := range c.records {
		if strings.EqualFold(r.Name, name) {
			return r, true
		}
	}
	return Record{}, false
}

// Licenses returns the license filter options: AllLicenses followed by
// the distinct license values in the snapshot, sorted.
func (c *Catalog) Licenses() []string {
	seen := make(map[string]struct{}, len(c.records))
	for _, r := range c.records {
		seen[r.License] = struct{}{}
	}
	licenses := make([]string, 0, len(seen)+1)
	for l := range seen {
		licenses = append(licenses, l)
	}
	sort.Strings(licenses)
	return append([]string{AllLicenses}, licenses...)
}

// LicenseCount pairs a license value with the number of packages
// carrying it.
type LicenseCount struct {
	License string `json:"license"`
	Count   int    `json:"count"`
}

// LicenseCounts returns per-license package counts sorted by license.
func (c *Catalog) LicenseCounts() []LicenseCount {
	counts := make(map[string]int, len(c.records))
	for _, r := range c.records {
		counts[r.License]++
	}
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)
	out := make([]LicenseCount, len(names))
	for i, name := range names {
		out[i] = LicenseCount{License: name, Count: counts[name]}
	}
	return out
}

// Stats summarizes a catalog snapshot.
type Stats struct {
	TotalPackages  int       `json:"total_packages"`
	UniqueLicenses int       `json:"unique_licenses"`
	Skipped        int       `json:"skipped"`
	FetchedAt      time.Time `json:"fetched_at"`
	Source         string    `json:"source"`
}

// Stats returns summary statistics for the snapshot.
func (c *Catalog) Stats() Stats {
	seen := make(map[string]struct{}, len(c.records))
	for _, r := range c.records {
		seen[r.License] = struct{}{}
	}
	return Stats{
		TotalPackages:  len(c.records),
		UniqueLicenses: len(seen),
		Skipped:        c.skipped,
		FetchedAt:      c.fetchedAt,
		Source:         c.source,
	}
}
