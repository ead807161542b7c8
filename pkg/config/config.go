// Package config holds the immutable runtime configuration for snowdex.
//
// Configuration is resolved once at startup from three layers, later
// layers overriding earlier ones: built-in defaults, an optional
// config.yaml, and SNOWDEX_* environment variables. The resulting
// Config value is handed to components at construction and never
// mutated afterwards.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"

	errs "github.com/snowdex/snowdex/pkg/errors"
)

// Built-in defaults, matching the Snowflake Anaconda channel.
const (
	DefaultRepoURL       = "https://repo.anaconda.com/pkgs/snowflake/"
	DefaultCacheDuration = time.Hour
	DefaultItemsPerPage  = 15
	DefaultFetchTimeout  = 10 * time.Second
	DefaultCondaChannel  = "snowflake"
	DefaultListenAddr    = "127.0.0.1:8357"
)

// DefaultAllowedDomains lists the hosts package links may point at.
var DefaultAllowedDomains = []string{
	"repo.anaconda.com",
	"github.com",
	"docs.snowflake.com",
}

// Config is the resolved runtime configuration. Durations are parsed
// from Go duration strings ("90m") or bare numbers read as seconds.
type Config struct {
	RepoURL        string        `mapstructure:"repo_url"`
	CacheDuration  time.Duration `mapstructure:"-"`
	ItemsPerPage   int           `mapstructure:"items_per_page"`
	AllowedDomains []string      `mapstructure:"allowed_domains"`
	FetchTimeout   time.Duration `mapstructure:"-"`
	CondaChannel   string        `mapstructure:"conda_channel"`
	AllowHTTP      bool          `mapstructure:"allow_http"`
	ListenAddr     string        `mapstructure:"listen_addr"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		RepoURL:        DefaultRepoURL,
		CacheDuration:  DefaultCacheDuration,
		ItemsPerPage:   DefaultItemsPerPage,
		AllowedDomains: append([]string(nil), DefaultAllowedDomains...),
		FetchTimeout:   DefaultFetchTimeout,
		CondaChannel:   DefaultCondaChannel,
		ListenAddr:     DefaultListenAddr,
	}
}

// Load resolves the configuration. path names an explicit config file;
// when empty, config.yaml is searched for under the user config
// directory (~/.config/snowdex on Linux). A missing file is fine unless
// it was named explicitly.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
	} else if dir, err := os.UserConfigDir(); err == nil {
		v.AddConfigPath(filepath.Join(dir, "snowdex"))
	}

	v.SetDefault("repo_url", DefaultRepoURL)
	v.SetDefault("cache_duration", DefaultCacheDuration.String())
	v.SetDefault("items_per_page", DefaultItemsPerPage)
	v.SetDefault("allowed_domains", DefaultAllowedDomains)
	v.SetDefault("fetch_timeout", DefaultFetchTimeout.String())
	v.SetDefault("conda_channel", DefaultCondaChannel)
	v.SetDefault("allow_http", false)
	v.SetDefault("listen_addr", DefaultListenAddr)

	v.SetEnvPrefix("SNOWDEX")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, errs.Wrap(errs.ErrCodeInvalidConfig, err, "reading config file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, errs.Wrap(errs.ErrCodeInvalidConfig, err, "unmarshalling config")
	}

	var err error
	if cfg.CacheDuration, err = parseDuration(v.GetString("cache_duration")); err != nil {
		return Config{}, errs.Wrap(errs.ErrCodeInvalidConfig, err, "invalid cache_duration")
	}
	if cfg.FetchTimeout, err = parseDuration(v.GetString("fetch_timeout")); err != nil {
		return Config{}, errs.Wrap(errs.ErrCodeInvalidConfig, err, "invalid fetch_timeout")
	}
	cfg.AllowedDomains = cleanDomains(cfg.AllowedDomains)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// parseDuration accepts Go duration strings and bare numbers, which
// are read as seconds.
func parseDuration(raw string) (time.Duration, error) {
	raw = strings.TrimSpace(raw)
	if secs, err := strconv.Atoi(raw); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	return time.ParseDuration(raw)
}

// cleanDomains trims whitespace around each entry and drops empties,
// so comma-separated environment values round-trip cleanly.
func cleanDomains(domains []string) []string {
	cleaned := make([]string, 0, len(domains))
	for _, d := range domains {
		if d = strings.TrimSpace(d); d != "" {
			cleaned = append(cleaned, d)
		}
	}
	return cleaned
}

// Validate checks the configuration for values no component can work
// with. All failures carry the INVALID_CONFIG code.
func (c Config) Validate() error {
	if err := errs.ValidateURL(c.RepoURL); err != nil {
		return errs.Wrap(errs.ErrCodeInvalidConfig, err, "repo_url %q", c.RepoURL)
	}
	if c.CacheDuration <= 0 {
		return errs.New(errs.ErrCodeInvalidConfig, "cache_duration must be positive, got %s", c.CacheDuration)
	}
	if c.ItemsPerPage <= 0 {
		return errs.New(errs.ErrCodeInvalidConfig, "items_per_page must be positive, got %d", c.ItemsPerPage)
	}
	if c.FetchTimeout <= 0 {
		return errs.New(errs.ErrCodeInvalidConfig, "fetch_timeout must be positive, got %s", c.FetchTimeout)
	}
	if len(c.AllowedDomains) == 0 {
		return errs.New(errs.ErrCodeInvalidConfig, "allowed_domains must not be empty")
	}
	if c.CondaChannel == "" {
		return errs.New(errs.ErrCodeInvalidConfig, "conda_channel must not be empty")
	}
	if c.ListenAddr == "" {
		return errs.New(errs.ErrCodeInvalidConfig, "listen_addr must not be empty")
	}
	return nil
}

// cspDirectives is the content-security-policy in a fixed order so the
// rendered header is deterministic.
var cspDirectives = [][2]string{
	{"default-src", "'self'"},
	{"script-src", "'self'"},
	{"style-src", "'self' 'unsafe-inline'"},
	{"img-src", "'self' data:"},
	{"connect-src", "'self'"},
	{"font-src", "'self'"},
	{"frame-ancestors", "'none'"},
	{"form-action", "'self'"},
}

// CSPDirectives returns the Content-Security-Policy header value the
// hosting layer must enforce.
func (c Config) CSPDirectives() string {
	parts := make([]string, len(cspDirectives))
	for i, d := range cspDirectives {
		parts[i] = d[0] + " " + d[1]
	}
	return strings.Join(parts, "; ")
}

// CacheControl returns the cache-control header value for API-like
// responses, matching the catalog TTL.
func (c Config) CacheControl() string {
	return fmt.Sprintf("public, max-age=%d", int(c.CacheDuration.Seconds()))
}
