// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"

	"github.com/pdiddy/paper-agent/pkg/types"
)

// totalPattern matches the results heading, e.g.
// "Showing 1–50 of 12,345 results for abstract: object detection".
var totalPattern = regexp.MustCompile(`of ([\d,]+) results`)

// Client fetches and parses arXiv search listing pages.
type Client struct {
	HTTP   *http.Client
	Config types.SearchConfig
	Log    zerolog.Logger
}

// NewClient returns a Client. A nil httpClient gets one with cfg.Timeout.
func NewClient(httpClient *http.Client, cfg types.SearchConfig, log zerolog.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	return &Client{HTTP: httpClient, Config: cfg, Log: log}
}

// PageURL returns the listing URL for keyword at offset start.
func (c *Client) PageURL(keyword string, start int) string {
	return PageURL(c.Config.BaseURL, keyword, c.Config.PageSize, start)
}

// Page is one parsed listing page.
type Page struct {
	// URL is the address the page was fetched from.
	URL string

	// Offset is the page's start parameter.
	Offset int

	doc  *goquery.Document
	base *url.URL
	log  zerolog.Logger
}

// FetchPage downloads and parses one listing page.
func (c *Client) FetchPage(ctx context.Context, pageURL string) (*Page, error) {
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("%w: parsing page URL %q: %v", types.ErrParse, pageURL, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if c.Config.UserAgent != "" {
		req.Header.Set("User-Agent", c.Config.UserAgent)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: search request: %v", types.ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: search returned HTTP %d", types.ErrNetwork, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: parsing listing HTML: %v", types.ErrParse, err)
	}

	offset, _ := strconv.Atoi(base.Query().Get("start"))
	return &Page{URL: pageURL, Offset: offset, doc: doc, base: base, log: c.Log}, nil
}

// CountResults fetches pageURL and returns the total number of results the
// listing reports. A page without a results heading yields 0.
func (c *Client) CountResults(ctx context.Context, pageURL string) (int, error) {
	page, err := c.FetchPage(ctx, pageURL)
	if err != nil {
		return 0, err
	}
	return page.Total(), nil
}

// ListPage fetches pageURL and returns up to max records with a PDF link.
// max <= 0 means no limit.
func (c *Client) ListPage(ctx context.Context, pageURL string, max int) ([]types.Paper, error) {
	page, err := c.FetchPage(ctx, pageURL)
	if err != nil {
		return nil, err
	}
	return page.Records(max), nil
}

// Total returns the result count from the page heading. It logs a warning
// and returns 0 when the heading is missing or unparseable.
func (p *Page) Total() int {
	var heading string
	p.doc.Find("#main-container h1").EachWithBreak(func(_ int, h *goquery.Selection) bool {
		text := strings.TrimSpace(h.Text())
		if totalPattern.MatchString(text) {
			heading = text
			return false
		}
		return true
	})

	m := totalPattern.FindStringSubmatch(heading)
	if m == nil {
		p.log.Warn().Str("url", p.URL).Msg("no result count found on listing page")
		return 0
	}
	n, err := strconv.Atoi(strings.ReplaceAll(m[1], ",", ""))
	if err != nil {
		p.log.Warn().Str("count", m[1]).Msg("unparseable result count")
		return 0
	}
	return n
}

// Len returns the number of listing entries on the page, with or without
// PDF links.
func (p *Page) Len() int {
	return p.doc.Find("li.arxiv-result").Length()
}

// Records returns the page's entries that have a title and a PDF link, in
// listing order, stopping once max records are collected (max <= 0 means
// no limit). Skipped entries are logged with the reason.
func (p *Page) Records(max int) []types.Paper {
	var papers []types.Paper
	p.doc.Find("li.arxiv-result").EachWithBreak(func(_ int, entry *goquery.Selection) bool {
		if max > 0 && len(papers) >= max {
			return false
		}

		title := collapse(entry.Find("p.title").First().Text())
		if title == "" {
			p.log.Warn().Int("offset", p.Offset).Msg("skipping listing entry without title")
			return true
		}

		pdfURL := p.resolve(pdfHref(entry))
		if pdfURL == "" {
			p.log.Warn().Str("title", title).Msg("no PDF link found, skipping")
			return true
		}

		paper := types.Paper{
			Title:     title,
			PDFURL:    pdfURL,
			AbsURL:    p.resolve(attr(entry.Find("p.list-title a").First(), "href")),
			Authors:   authors(entry),
			Abstract:  abstract(entry),
			Submitted: submitted(entry),
		}
		papers = append(papers, paper)
		return true
	})
	return papers
}

// resolve turns href into an absolute URL relative to the page URL.
func (p *Page) resolve(href string) string {
	if href == "" {
		return ""
	}
	u, err := p.base.Parse(href)
	if err != nil {
		return ""
	}
	return u.String()
}

// pdfHref returns the href of the anchor whose text is "pdf".
func pdfHref(entry *goquery.Selection) string {
	link := entry.Find("a").FilterFunction(func(_ int, a *goquery.Selection) bool {
		return strings.EqualFold(strings.TrimSpace(a.Text()), "pdf")
	}).First()
	return attr(link, "href")
}

func attr(sel *goquery.Selection, name string) string {
	v, ok := sel.Attr(name)
	if !ok {
		return ""
	}
	return strings.TrimSpace(v)
}

func authors(entry *goquery.Selection) []string {
	var names []string
	entry.Find("p.authors a").Each(func(_ int, a *goquery.Selection) {
		if name := collapse(a.Text()); name != "" {
			names = append(names, name)
		}
	})
	return names
}

// abstract returns the full abstract without its "Less" toggle link.
func abstract(entry *goquery.Selection) string {
	full := entry.Find("span.abstract-full").First()
	if full.Length() == 0 {
		return ""
	}
	full = full.Clone()
	full.Find("a").Remove()
	return collapse(full.Text())
}

// submitted parses "Submitted 17 October, 2024; originally announced ...".
func submitted(entry *goquery.Selection) time.Time {
	text := collapse(entry.Find("p.is-size-7").First().Text())
	if !strings.HasPrefix(text, "Submitted") {
		return time.Time{}
	}
	text, _, _ = strings.Cut(text, ";")
	text = strings.TrimSpace(strings.TrimPrefix(text, "Submitted"))
	t, err := time.Parse("2 January, 2006", text)
	if err != nil {
		return time.Time{}
	}
	return t
}

// collapse trims s and joins internal whitespace runs with single spaces.
func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
