// Package pkg provides the core libraries for the snowdex channel explorer.
//
// # Overview
//
// Snowdex fetches the package listing of the Snowflake Anaconda channel,
// cleans it into an immutable in-memory catalog, and lets presenters
// (CLI, TUI, HTTP API) search, filter, and page through it. The pkg
// directory is organized along that pipeline:
//
//  1. [index] - Fetching and normalizing the upstream listing
//  2. [sanitize] - Escaping text, allowlisting URLs, command tokens
//  3. [catalog] - The immutable catalog snapshot and the query engine
//  4. [cache] - TTL snapshot store with coordinated refresh
//  5. [explorer] - The session API presenters drive
//
// # Architecture
//
// The typical data flow through snowdex:
//
//	Channel listing (HTML/JSON/YAML)
//	         ↓
//	    [index] package (fetch + parse into raw entries)
//	         ↓
//	    [sanitize] package (escape, allowlist, substitute sentinels)
//	         ↓
//	    [catalog] package (immutable snapshot + query engine)
//	         ↓
//	    [cache] package (TTL store, singleflight refresh, stale serve)
//	         ↓
//	    [explorer] package (per-presenter search/filter/page session)
//	         ↓
//	    CLI commands, bubbletea browser, chi JSON API
//
// # Main Packages
//
// [catalog] - Record, Catalog, and the query engine. A Catalog is an
// immutable snapshot, so readers never lock; Query applies
// case-insensitive AND matching, license filtering, and clamped
// 1-based pagination in listing order.
//
// [index] - The HTTP client for the channel listing plus format
// sniffing parsers (HTML table, JSON, helm-style YAML). Rows missing a
// package name are skipped and counted, never fatal.
//
// [sanitize] - Idempotent text escaping, strict URL allowlisting, and
// the command-safe tokens install commands are derived from.
//
// [cache] - The snapshot store: TTL expiry, at most one in-flight
// refresh, atomic wholesale swap, stale data served with a warning
// when a refresh fails.
//
// [explorer] - Session state for one user interface: search term,
// license filter, current page, and the operations that mutate them.
//
// [config] - The immutable Config struct, viper loading with
// SNOWDEX_* environment overrides, validation, and the security
// header values the serving layer enforces.
//
// [errors] - Structured error codes with wrapping, user-facing
// messages, and the HTTP status mapping.
//
// [observability] - Hook interfaces for fetch, cache, and query
// events with no-op defaults; the prometheus backend registers them
// in the server.
//
// [buildinfo] - Version metadata injected at build time via ldflags.
//
// [catalog]: https://pkg.go.dev/github.com/snowdex/snowdex/pkg/catalog
// [index]: https://pkg.go.dev/github.com/snowdex/snowdex/pkg/index
// [sanitize]: https://pkg.go.dev/github.com/snowdex/snowdex/pkg/sanitize
// [cache]: https://pkg.go.dev/github.com/snowdex/snowdex/pkg/cache
// [explorer]: https://pkg.go.dev/github.com/snowdex/snowdex/pkg/explorer
// [config]: https://pkg.go.dev/github.com/snowdex/snowdex/pkg/config
// [errors]: https://pkg.go.dev/github.com/snowdex/snowdex/pkg/errors
// [observability]: https://pkg.go.dev/github.com/snowdex/snowdex/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/snowdex/snowdex/pkg/buildinfo
package pkg
