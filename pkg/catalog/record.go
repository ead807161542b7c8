package catalog

// Sentinel values substituted by the normalizer when a listing row
// omits a field.
const (
	// VersionUnknown marks records whose version could not be determined.
	VersionUnknown = "unknown"

	// LicenseUnspecified marks records whose license could not be determined.
	LicenseUnspecified = "Unspecified"
)

// Record is one package in the catalog. All text fields are sanitized
// (entity-escaped) and URL fields are either allowlisted or empty, so a
// Record is safe to render as-is.
type Record struct {
	Name      string  `json:"name"`
	Version   string  `json:"version"`
	Summary   string  `json:"summary"`
	License   string  `json:"license"`
	DocURL    string  `json:"doc_url,omitempty"`
	SourceURL string  `json:"source_url,omitempty"`
	Install   Install `json:"install"`
}

// Install holds the ready-to-copy install commands for a record.
// Commands are derived from command-safe tokens of the raw name and
// version, never from display text. Pinned variants are empty when the
// version is unknown.
type Install struct {
	Pip         string `json:"pip"`
	Conda       string `json:"conda"`
	PipPinned   string `json:"pip_pinned,omitempty"`
	CondaPinned string `json:"conda_pinned,omitempty"`
}

// HasLinks reports whether the record carries at least one usable link.
func (r Record) HasLinks() bool {
	return r.DocURL != "" || r.SourceURL != ""
}
