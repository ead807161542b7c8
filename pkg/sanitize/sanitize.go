// Package sanitize cleans untrusted listing data before it reaches any
// presenter.
//
// Text fields are entity-escaped so they cannot inject markup into
// rendered output, URL fields must pass a host allowlist or degrade to
// the empty string, and install commands are derived from restricted
// character tokens rather than raw remote text. Every function is pure
// and idempotent: sanitizing already-sanitized output changes nothing.
package sanitize

import (
	"fmt"
	"html"
	"net/url"
	"strings"
	"unicode"

	"github.com/snowdex/snowdex/pkg/catalog"
)

// defaultChannel is used for conda install commands when the policy
// does not name one.
const defaultChannel = "snowflake"

// Policy configures URL validation and install-command derivation.
type Policy struct {
	// AllowedDomains lists the hosts a sanitized URL may point at.
	// Matching is exact (port included) and case-insensitive.
	AllowedDomains []string

	// AllowHTTP permits the http scheme in addition to https.
	AllowHTTP bool

	// Channel is the conda channel named in install commands.
	Channel string
}

// Entry is one raw listing row as extracted by a parser, before
// sanitization.
type Entry struct {
	Name      string
	Version   string
	Summary   string
	License   string
	DocURL    string
	SourceURL string
}

// Text sanitizes a free-text field. Entities are decoded, control
// characters and whitespace runs collapse to single spaces, and the
// result is entity-escaped. Decoding before escaping makes Text a
// projection: Text(Text(s)) == Text(s).
func Text(s string) string {
	if s == "" {
		return ""
	}
	decoded := html.UnescapeString(s)
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return ' '
		}
		return r
	}, decoded)
	return html.EscapeString(strings.Join(strings.Fields(cleaned), " "))
}

// URL validates a URL field against the policy. The scheme must be
// https (or http when the policy allows it), the URL must carry no
// userinfo, and the host must match an allowlisted domain exactly.
// Anything that fails validation becomes the empty string.
func URL(raw string, pol Policy) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}

	switch strings.ToLower(u.Scheme) {
	case "https":
	case "http":
		if !pol.AllowHTTP {
			return ""
		}
	default:
		return ""
	}

	if u.User != nil {
		return ""
	}

	for _, domain := range pol.AllowedDomains {
		if strings.EqualFold(u.Host, domain) {
			return raw
		}
	}
	return ""
}

// CommandToken reduces a string to the characters safe to interpolate
// into an install command: ASCII letters, digits, and . _ + -
// (the PEP 503 name alphabet). Everything else is dropped.
func CommandToken(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z',
			r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9',
			r == '.', r == '_', r == '+', r == '-':
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Record sanitizes one raw entry into a catalog.Record, substituting
// sentinels for missing version and license values.
func Record(e Entry, pol Policy) catalog.Record {
	version := Text(e.Version)
	if version == "" {
		version = catalog.VersionUnknown
	}
	license := Text(e.License)
	if license == "" {
		license = catalog.LicenseUnspecified
	}
	return catalog.Record{
		Name:      Text(e.Name),
		Version:   version,
		Summary:   Text(e.Summary),
		License:   license,
		DocURL:    URL(e.DocURL, pol),
		SourceURL: URL(e.SourceURL, pol),
		Install:   installCommands(e, version, pol),
	}
}

// installCommands derives the install command set from command-safe
// tokens of the raw name and version.
func installCommands(e Entry, version string, pol Policy) catalog.Install {
	name := CommandToken(e.Name)
	if name == "" {
		return catalog.Install{}
	}

	channel := pol.Channel
	if channel == "" {
		channel = defaultChannel
	}

	inst := catalog.Install{
		Pip:   "pip install " + name,
		Conda: fmt.Sprintf("conda install -c %s %s", channel, name),
	}
	if ver := CommandToken(e.Version); ver != "" && version != catalog.VersionUnknown {
		inst.PipPinned = fmt.Sprintf("pip install %s==%s", name, ver)
		inst.CondaPinned = fmt.Sprintf("conda install -c %s %s=%s", channel, name, ver)
	}
	return inst
}
