package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/snowdex/snowdex/pkg/cache"
	"github.com/snowdex/snowdex/pkg/catalog"
	"github.com/snowdex/snowdex/pkg/config"
	errs "github.com/snowdex/snowdex/pkg/errors"
	"github.com/snowdex/snowdex/pkg/sanitize"
)

// searchDebounce is how long typing may pause before the search runs.
const searchDebounce = 300 * time.Millisecond

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// browseModel - Interactive catalog browser
// =============================================================================

// browseModel is the bubbletea model for the catalog browser. It owns
// its query state and talks to the store directly: loads run as
// commands off the update loop, and the clamped page number comes back
// with the loaded page.
type browseModel struct {
	ctx      context.Context
	store    *cache.Store
	pageSize int

	state      catalog.QueryState
	input      string
	seq        int
	licenses   []string
	licenseIdx int

	page    catalog.Page
	stats   catalog.Stats
	fresh   bool
	cursor  int
	loading bool
	err     error

	showCard bool
	card     catalog.Record

	width  int
	height int
}

// newBrowseModel creates a browser over the given store.
func newBrowseModel(ctx context.Context, store *cache.Store, cfg config.Config) browseModel {
	pageSize := cfg.ItemsPerPage
	if pageSize < 1 {
		pageSize = catalog.DefaultPageSize
	}
	return browseModel{
		ctx:      ctx,
		store:    store,
		pageSize: pageSize,
		state: catalog.QueryState{
			LicenseFilter: catalog.AllLicenses,
			Page:          1,
		},
		loading: true,
	}
}

// =============================================================================
// Messages and commands
// =============================================================================

// pageLoadedMsg carries a freshly computed result page.
type pageLoadedMsg struct {
	page     catalog.Page
	stats    catalog.Stats
	licenses []string
	fresh    bool
}

// loadFailedMsg carries a failed catalog load.
type loadFailedMsg struct {
	err error
}

// searchDebounceMsg fires when the typing pause elapses. The sequence
// number drops ticks that were superseded by further keystrokes.
type searchDebounceMsg struct {
	seq int
}

// loadPage resolves the catalog and computes the page for state. With
// force set the cache TTL is bypassed.
func loadPage(ctx context.Context, store *cache.Store, state catalog.QueryState, pageSize int, force bool) tea.Cmd {
	return func() tea.Msg {
		var (
			cat *catalog.Catalog
			err error
		)
		if force {
			cat, err = store.Refresh(ctx)
		} else {
			cat, err = store.GetOrRefresh(ctx)
		}
		if err != nil {
			return loadFailedMsg{err: err}
		}
		return pageLoadedMsg{
			page:     catalog.Query(cat, state, pageSize),
			stats:    cat.Stats(),
			licenses: cat.Licenses(),
			fresh:    store.Valid(),
		}
	}
}

// =============================================================================
// Update loop
// =============================================================================

func (m browseModel) Init() tea.Cmd {
	return loadPage(m.ctx, m.store, m.state, m.pageSize, false)
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.showCard {
			return m.updateCard(msg)
		}
		return m.updateList(msg)

	case searchDebounceMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		return m.commitSearch()

	case pageLoadedMsg:
		m.loading = false
		m.err = nil
		m.page = msg.page
		m.stats = msg.stats
		m.licenses = msg.licenses
		m.fresh = msg.fresh
		m.state.Page = msg.page.Page
		if m.cursor >= len(msg.page.Records) {
			m.cursor = 0
		}
		if idx := licenseIndex(msg.licenses, m.state.LicenseFilter); idx >= 0 {
			m.licenseIdx = idx
			return m, nil
		}
		// The filtered license vanished from the catalog, fall back
		// to no filter and recompute.
		m.state.LicenseFilter = catalog.AllLicenses
		m.licenseIdx = 0
		m.state.Page = 1
		m.loading = true
		return m, loadPage(m.ctx, m.store, m.state, m.pageSize, false)

	case loadFailedMsg:
		m.loading = false
		m.err = msg.err
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}
	return m, nil
}

// updateCard handles keys while the detail card is open.
func (m browseModel) updateCard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc", "enter", "q":
		m.showCard = false
	}
	return m, nil
}

// updateList handles keys in the list view. Printable characters feed
// the search input; navigation stays on control keys so every rune
// remains searchable.
func (m browseModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "esc":
		if m.input != "" {
			m.input = ""
			return m.commitSearch()
		}
		return m, tea.Quit

	case "up":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case "down":
		if m.cursor < len(m.page.Records)-1 {
			m.cursor++
		}
		return m, nil

	case "left":
		if !m.loading && m.state.Page > 1 {
			m.state.Page--
			m.cursor = 0
			m.loading = true
			return m, loadPage(m.ctx, m.store, m.state, m.pageSize, false)
		}
		return m, nil

	case "right":
		if !m.loading && m.state.Page < m.page.TotalPages {
			m.state.Page++
			m.cursor = 0
			m.loading = true
			return m, loadPage(m.ctx, m.store, m.state, m.pageSize, false)
		}
		return m, nil

	case "tab", "shift+tab":
		if len(m.licenses) == 0 {
			return m, nil
		}
		if msg.String() == "tab" {
			m.licenseIdx = (m.licenseIdx + 1) % len(m.licenses)
		} else {
			m.licenseIdx = (m.licenseIdx - 1 + len(m.licenses)) % len(m.licenses)
		}
		m.state.LicenseFilter = m.licenses[m.licenseIdx]
		m.state.Page = 1
		m.cursor = 0
		m.loading = true
		return m, loadPage(m.ctx, m.store, m.state, m.pageSize, false)

	case "enter":
		if !m.loading && m.cursor < len(m.page.Records) {
			m.card = m.page.Records[m.cursor]
			m.showCard = true
		}
		return m, nil

	case "backspace":
		if m.input != "" {
			runes := []rune(m.input)
			m.input = string(runes[:len(runes)-1])
			return m.debounce()
		}
		return m, nil

	case "ctrl+r":
		m.loading = true
		return m, loadPage(m.ctx, m.store, m.state, m.pageSize, true)

	default:
		if msg.Alt {
			return m, nil
		}
		if msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace {
			m.input += msg.String()
			return m.debounce()
		}
		return m, nil
	}
}

// debounce restarts the typing pause timer.
func (m browseModel) debounce() (tea.Model, tea.Cmd) {
	m.seq++
	seq := m.seq
	return m, tea.Tick(searchDebounce, func(time.Time) tea.Msg {
		return searchDebounceMsg{seq: seq}
	})
}

// commitSearch applies the current input as the search term and loads
// the first page of results.
func (m browseModel) commitSearch() (tea.Model, tea.Cmd) {
	m.seq++
	m.state.SearchTerm = sanitize.Text(m.input)
	m.state.Page = 1
	m.cursor = 0
	m.loading = true
	return m, loadPage(m.ctx, m.store, m.state, m.pageSize, false)
}

// licenseIndex returns the position of v in licenses, or -1.
func licenseIndex(licenses []string, v string) int {
	for i, l := range licenses {
		if l == v {
			return i
		}
	}
	return -1
}

// =============================================================================
// Views
// =============================================================================

func (m browseModel) View() string {
	if m.showCard {
		return m.cardView()
	}
	return m.listView()
}

func (m browseModel) cardView() string {
	var b strings.Builder
	b.WriteString(renderPackageCard(m.card))
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render("esc back  ctrl+c quit"))
	return b.String()
}

func (m browseModel) listView() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Snowflake Channel Browser"))
	if m.stats.TotalPackages > 0 {
		b.WriteString("  ")
		b.WriteString(listDimStyle.Render(fmt.Sprintf("%d packages · fetched %s",
			m.stats.TotalPackages, formatRelativeTime(m.stats.FetchedAt))))
	}
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("type to search  tab license  ←/→ page  ↑/↓ move  ⏎ details  ctrl+r refresh  esc quit"))
	b.WriteString("\n\n")

	b.WriteString(listDimStyle.Render("Search: "))
	b.WriteString(listNormalStyle.Render(m.input))
	b.WriteString(listDimStyle.Render("▌"))
	b.WriteString("   ")
	b.WriteString(listDimStyle.Render("License: "))
	b.WriteString(listNormalStyle.Render(displayText(m.licenseLabel())))
	b.WriteString("\n\n")

	if len(m.page.Records) > 0 {
		b.WriteString(m.renderTable())
		b.WriteString("\n")
	}
	b.WriteString(m.statusLine())

	return b.String()
}

// licenseLabel returns the license filter to display.
func (m browseModel) licenseLabel() string {
	if len(m.licenses) == 0 {
		return m.state.LicenseFilter
	}
	return m.licenses[m.licenseIdx]
}

// renderTable renders the current page with a cursor column.
func (m browseModel) renderTable() string {
	summaryWidth := m.summaryWidth()

	rows := make([][]string, len(m.page.Records))
	for i, rec := range m.page.Records {
		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}
		rows[i] = []string{
			cursor,
			rec.Name,
			displayText(rec.Version),
			displayText(rec.License),
			truncate(displayText(rec.Summary), summaryWidth),
		}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Package", "Version", "License", "Summary").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if row == m.cursor {
				return listSelectedStyle
			}
			if col == 1 {
				return lipgloss.NewStyle().Foreground(colorCyan)
			}
			return listNormalStyle
		})

	return t.Render()
}

// summaryWidth sizes the summary column to the terminal.
func (m browseModel) summaryWidth() int {
	w := 50
	if m.width > 0 {
		w = m.width - 46
	}
	if w < 20 {
		w = 20
	}
	if w > 70 {
		w = 70
	}
	return w
}

// statusLine renders the load state, match count, and cache freshness.
func (m browseModel) statusLine() string {
	if m.loading {
		return listDimStyle.Render("Loading...")
	}
	if m.err != nil {
		return styleIconError.Render(iconError) + " " + StyleWarning.Render(errs.UserMessage(m.err))
	}
	if m.page.TotalMatches == 0 {
		return StyleWarning.Render("No packages match the current filters")
	}

	state := styleFresh.Render(iconFresh)
	if !m.fresh {
		state = styleStale.Render(iconStale)
	}
	return listDimStyle.Render(formatPageFooter(m.page)) + "  " + state
}
