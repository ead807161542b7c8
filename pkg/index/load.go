package index

import (
	"context"
	"time"

	"github.com/snowdex/snowdex/pkg/catalog"
	"github.com/snowdex/snowdex/pkg/config"
	"github.com/snowdex/snowdex/pkg/observability"
	"github.com/snowdex/snowdex/pkg/sanitize"
)

// Load runs one full refresh cycle: fetch the raw listing, parse it
// into raw entries, sanitize each entry exactly once, and assemble an
// immutable catalog snapshot.
func Load(ctx context.Context, client *Client, cfg config.Config) (*catalog.Catalog, error) {
	raw, err := client.Fetch(ctx)
	if err != nil {
		return nil, err
	}

	entries, skipped, err := Parse(raw)
	observability.Fetch().OnParseComplete(ctx, len(entries), skipped, err)
	if err != nil {
		return nil, err
	}

	pol := sanitize.Policy{
		AllowedDomains: cfg.AllowedDomains,
		AllowHTTP:      cfg.AllowHTTP,
		Channel:        cfg.CondaChannel,
	}
	records := make([]catalog.Record, 0, len(entries))
	for _, e := range entries {
		records = append(records, sanitize.Record(e, pol))
	}
	return catalog.New(records, client.URL(), time.Now(), skipped), nil
}
