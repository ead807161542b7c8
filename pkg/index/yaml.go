package index

import (
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	errs "github.com/snowdex/snowdex/pkg/errors"
	"github.com/snowdex/snowdex/pkg/sanitize"
)

// yamlIndex is the helm-repository index shape: a map from package
// name to its version entries, newest first.
type yamlIndex struct {
	Entries map[string][]yamlEntry `yaml:"entries"`
}

type yamlEntry struct {
	Version     string   `yaml:"version"`
	Description string   `yaml:"description"`
	License     string   `yaml:"license"`
	Home        string   `yaml:"home"`
	Sources     []string `yaml:"sources"`
}

// parseYAML reads a helm-style index. The newest (first) entry per
// name wins; names are sorted so the listing order is deterministic.
// Names without any version entry are skipped and counted.
func parseYAML(raw []byte) ([]sanitize.Entry, int, error) {
	var idx yamlIndex
	if err := yaml.Unmarshal(raw, &idx); err != nil {
		return nil, 0, errs.Wrap(errs.ErrCodeParseFailed, err, "decoding YAML index")
	}
	if len(idx.Entries) == 0 {
		return nil, 0, errs.New(errs.ErrCodeParseFailed, "YAML index has no entries")
	}

	names := make([]string, 0, len(idx.Entries))
	for name := range idx.Entries {
		names = append(names, name)
	}
	sort.Strings(names)

	var entries []sanitize.Entry
	skipped := 0
	for _, name := range names {
		versions := idx.Entries[name]
		if strings.TrimSpace(name) == "" || len(versions) == 0 {
			skipped++
			continue
		}
		latest := versions[0]
		e := sanitize.Entry{
			Name:    name,
			Version: latest.Version,
			Summary: latest.Description,
			License: latest.License,
			DocURL:  latest.Home,
		}
		if len(latest.Sources) > 0 {
			e.SourceURL = latest.Sources[0]
		}
		entries = append(entries, e)
	}
	return entries, skipped, nil
}
