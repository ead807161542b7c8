package index

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"

	errs "github.com/snowdex/snowdex/pkg/errors"
	"github.com/snowdex/snowdex/pkg/sanitize"
)

// Column layout of the channel listing table.
const (
	colName    = 0
	colVersion = 1
	colDocs    = 2
	colDev     = 3
	colLicense = 4
	colSummary = 11
)

// htmlCell is one <td>: its flattened text plus the first link inside.
type htmlCell struct {
	text string
	href string
}

// parseHTML extracts entries from the channel's HTML listing table.
// Rows without <td> cells (headers) are ignored; rows with cells but
// no name are skipped and counted. A payload with no table rows at all
// is unreadable.
func parseHTML(raw []byte) ([]sanitize.Entry, int, error) {
	doc, err := html.Parse(bytes.NewReader(raw))
	if err != nil {
		return nil, 0, errs.Wrap(errs.ErrCodeParseFailed, err, "parsing HTML listing")
	}

	rowSeen := false
	var rows [][]htmlCell
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "tr" {
			rowSeen = true
			if cells := rowCells(n); len(cells) > 0 {
				rows = append(rows, cells)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	if !rowSeen {
		return nil, 0, errs.New(errs.ErrCodeParseFailed, "no table rows in HTML listing")
	}

	var entries []sanitize.Entry
	skipped := 0
	for _, cells := range rows {
		name := cellText(cells, colName)
		if name == "" {
			skipped++
			continue
		}
		entries = append(entries, sanitize.Entry{
			Name:      name,
			Version:   cellText(cells, colVersion),
			Summary:   cellText(cells, colSummary),
			License:   cellText(cells, colLicense),
			DocURL:    cellHref(cells, colDocs),
			SourceURL: cellHref(cells, colDev),
		})
	}
	return entries, skipped, nil
}

// rowCells collects the <td> children of a table row.
func rowCells(tr *html.Node) []htmlCell {
	var cells []htmlCell
	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == "td" {
			cells = append(cells, htmlCell{
				text: strings.TrimSpace(nodeText(c)),
				href: firstHref(c),
			})
		}
	}
	return cells
}

func cellText(cells []htmlCell, i int) string {
	if i >= len(cells) {
		return ""
	}
	return cells[i].text
}

func cellHref(cells []htmlCell, i int) string {
	if i >= len(cells) {
		return ""
	}
	return cells[i].href
}

// nodeText flattens all text nodes beneath n.
func nodeText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

// firstHref returns the href of the first anchor beneath n.
func firstHref(n *html.Node) string {
	if n.Type == html.ElementNode && n.Data == "a" {
		for _, attr := range n.Attr {
			if attr.Key == "href" {
				return attr.Val
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if href := firstHref(c); href != "" {
			return href
		}
	}
	return ""
}
