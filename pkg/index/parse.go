package index

import (
	"bytes"

	errs "github.com/snowdex/snowdex/pkg/errors"
	"github.com/snowdex/snowdex/pkg/sanitize"
)

// Parse converts a raw listing payload into ordered raw entries plus a
// count of rows skipped for being malformed (most commonly a missing
// name). The format is sniffed: JSON when the payload leads with '{'
// or '[', a YAML package index when it leads with a document header,
// otherwise HTML.
//
// Individual bad rows are skipped and counted, never fatal; a
// PARSE_FAILED error means the payload as a whole was unreadable.
func Parse(raw []byte) ([]sanitize.Entry, int, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, 0, errs.New(errs.ErrCodeParseFailed, "empty listing payload")
	}

	switch {
	case trimmed[0] == '{' || trimmed[0] == '[':
		return parseJSON(trimmed)
	case looksLikeYAML(trimmed):
		return parseYAML(trimmed)
	default:
		return parseHTML(trimmed)
	}
}

// looksLikeYAML recognizes the helm-style package index, which opens
// with either its entries map or an apiVersion header.
func looksLikeYAML(raw []byte) bool {
	return bytes.HasPrefix(raw, []byte("entries:")) || bytes.HasPrefix(raw, []byte("apiVersion:"))
}

// firstNonEmpty returns the first non-empty value, for collapsing
// field aliases.
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
