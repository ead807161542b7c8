package index

import (
	"encoding/json"
	"strings"

	errs "github.com/snowdex/snowdex/pkg/errors"
	"github.com/snowdex/snowdex/pkg/sanitize"
)

// jsonEntry tolerates the field aliases seen in package index dumps.
type jsonEntry struct {
	Name          string `json:"name"`
	Version       string `json:"version"`
	LatestVersion string `json:"latest_version"`
	Summary       string `json:"summary"`
	Description   string `json:"description"`
	License       string `json:"license"`
	DocURL        string `json:"doc_url"`
	Docs          string `json:"docs"`
	Documentation string `json:"documentation"`
	SourceURL     string `json:"source_url"`
	DevURL        string `json:"dev_url"`
	Repository    string `json:"repository"`
	Development   string `json:"development"`
}

func (j jsonEntry) entry() sanitize.Entry {
	return sanitize.Entry{
		Name:      j.Name,
		Version:   firstNonEmpty(j.Version, j.LatestVersion),
		Summary:   firstNonEmpty(j.Summary, j.Description),
		License:   j.License,
		DocURL:    firstNonEmpty(j.DocURL, j.Docs, j.Documentation),
		SourceURL: firstNonEmpty(j.SourceURL, j.DevURL, j.Repository, j.Development),
	}
}

// parseJSON accepts either a bare array of package objects or a
// {"packages": [...]} wrapper. Rows that fail to decode or carry no
// name are skipped and counted.
func parseJSON(raw []byte) ([]sanitize.Entry, int, error) {
	var rows []json.RawMessage
	if err := json.Unmarshal(raw, &rows); err != nil {
		var wrapper struct {
			Packages []json.RawMessage `json:"packages"`
		}
		if err2 := json.Unmarshal(raw, &wrapper); err2 != nil || wrapper.Packages == nil {
			return nil, 0, errs.Wrap(errs.ErrCodeParseFailed, err, "decoding JSON listing")
		}
		rows = wrapper.Packages
	}

	var entries []sanitize.Entry
	skipped := 0
	for _, rawRow := range rows {
		var row jsonEntry
		if err := json.Unmarshal(rawRow, &row); err != nil {
			skipped++
			continue
		}
		e := row.entry()
		if strings.TrimSpace(e.Name) == "" {
			skipped++
			continue
		}
		entries = append(entries, e)
	}
	return entries, skipped, nil
}
