package cli

import (
	"strings"
	"testing"
	"time"
)

func TestDisplayText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain text unchanged", in: "Data analysis toolkit", want: "Data analysis toolkit"},
		{name: "escaped ampersand", in: "Q&amp;A demos", want: "Q&A demos"},
		{name: "escaped angle brackets", in: "&lt;b&gt;bold&lt;/b&gt;", want: "<b>bold</b>"},
		{name: "empty", in: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := displayText(tt.in); got != tt.want {
				t.Errorf("displayText(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{name: "shorter than max", in: "pandas", max: 10, want: "pandas"},
		{name: "exactly max", in: "pandas", max: 6, want: "pandas"},
		{name: "longer than max", in: "a very long package summary", max: 10, want: "a very lo…"},
		{name: "multibyte runes", in: "héllo wörld", max: 7, want: "héllo …"},
		{name: "zero max means no limit", in: "pandas", max: 0, want: "pandas"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncate(tt.in, tt.max)
			if got != tt.want {
				t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
			}
			if tt.max > 0 && len([]rune(got)) > tt.max {
				t.Errorf("truncate(%q, %d) returned %d runes", tt.in, tt.max, len([]rune(got)))
			}
		})
	}
}

func TestFormatRelativeTime(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name string
		t    time.Time
		want string
	}{
		{name: "seconds ago", t: now.Add(-30 * time.Second), want: "just now"},
		{name: "minutes ago", t: now.Add(-5 * time.Minute), want: "5m ago"},
		{name: "hours ago", t: now.Add(-3 * time.Hour), want: "3h ago"},
		{name: "days ago", t: now.Add(-2 * 24 * time.Hour), want: "2d ago"},
		{name: "older than a week", t: time.Date(2021, 3, 14, 0, 0, 0, 0, time.UTC), want: "Mar 14, 2021"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatRelativeTime(tt.t); got != tt.want {
				t.Errorf("formatRelativeTime() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatFetchedAt(t *testing.T) {
	if got := formatFetchedAt(time.Time{}); got != "never" {
		t.Errorf("formatFetchedAt(zero) = %q, want %q", got, "never")
	}

	fetched := time.Now().Add(-10 * time.Minute)
	got := formatFetchedAt(fetched)
	if !strings.Contains(got, fetched.Format("2006-01-02")) {
		t.Errorf("formatFetchedAt() = %q, want the date included", got)
	}
	if !strings.Contains(got, "10m ago") {
		t.Errorf("formatFetchedAt() = %q, want relative age included", got)
	}
}
