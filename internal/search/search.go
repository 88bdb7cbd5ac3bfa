// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search queries the arXiv abstract-search listing and turns result
// pages into paper records.
package search

import (
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/pdiddy/paper-agent/pkg/types"
)

// PageURL builds the listing URL for keyword starting at offset start.
// Results are abstract matches, newest announcements first.
func PageURL(base, keyword string, pageSize, start int) string {
	if pageSize <= 0 {
		pageSize = types.DefaultPageSize
	}
	v := url.Values{}
	v.Set("query", keyword)
	v.Set("searchtype", "abstract")
	v.Set("abstracts", "show")
	v.Set("order", "-announced_date_first")
	v.Set("size", strconv.Itoa(pageSize))
	v.Set("start", strconv.Itoa(start))
	return base + "?" + v.Encode()
}

// PageCount returns the number of listing pages needed to cover requested
// papers: ceil(requested / pageSize).
func PageCount(requested, pageSize int) int {
	if requested <= 0 {
		return 0
	}
	if pageSize <= 0 {
		pageSize = types.DefaultPageSize
	}
	return (requested + pageSize - 1) / pageSize
}

// FormatTable writes records as a human-readable table to w.
func FormatTable(total int, papers []types.Paper, w io.Writer) {
	fmt.Fprintf(w, "%d results\n\n", total)
	if len(papers) == 0 {
		fmt.Fprintln(w, "No results found.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-60s  %-20s  %-10s  %s\n",
		"Rank", "Title", "Authors", "Submitted", "PDF")
	fmt.Fprintln(w, strings.Repeat("-", 130))

	for i, p := range papers {
		submitted := ""
		if !p.Submitted.IsZero() {
			submitted = p.Submitted.Format("2006-01-02")
		}
		fmt.Fprintf(w, "%-4d  %-60s  %-20s  %-10s  %s\n",
			i+1, truncate(p.Title, 60), formatAuthors(p.Authors), submitted, p.PDFURL)
	}
}

// FormatJSON writes records as indented JSON to w.
func FormatJSON(papers []types.Paper, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(papers)
}

func formatAuthors(authors []string) string {
	switch len(authors) {
	case 0:
		return ""
	case 1:
		return truncate(authors[0], 20)
	default:
		return truncate(authors[0], 14) + " et al."
	}
}

// truncate shortens s to at most max runes, marking the cut with "...".
func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max-3]) + "..."
}
