// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"fmt"
	"strings"
)

// listingEntry describes one li.arxiv-result in a generated listing page.
type listingEntry struct {
	title   string
	pdfHref string // empty means no pdf anchor
	authors []string
}

// listingHTML renders an arXiv-style search listing page.
func listingHTML(heading string, entries []listingEntry) string {
	var b strings.Builder
	b.WriteString(`<html><body><main><div id="main-container" class="container">`)
	b.WriteString(`<div class="level is-marginless"><div class="level-left">`)
	fmt.Fprintf(&b, `<h1 class="title is-clearfix">%s</h1>`, heading)
	b.WriteString(`</div></div><ol class="breathe-horizontal" start="1">`)
	for i, e := range entries {
		b.WriteString(`<li class="arxiv-result"><div class="is-marginless">`)
		fmt.Fprintf(&b, `<p class="list-title is-inline-block"><a href="https://arxiv.org/abs/2410.%05d">arXiv:2410.%05d</a>`, i, i)
		b.WriteString(`<span>&nbsp;[`)
		if e.pdfHref != "" {
			fmt.Fprintf(&b, `<a href="%s">pdf</a>, `, e.pdfHref)
		}
		b.WriteString(`<a href="/format/x">other</a>]</span></p></div>`)
		fmt.Fprintf(&b, `<p class="title is-5 mathjax">
        %s
      </p>`, e.title)
		b.WriteString(`<p class="authors"><span class="has-text-black-bis">Authors:</span>`)
		for _, a := range e.authors {
			fmt.Fprintf(&b, `<a href="/a/%s">%s</a>, `, a, a)
		}
		b.WriteString(`</p>`)
		b.WriteString(`<p class="abstract mathjax"><span class="abstract-full has-text-grey-dark mathjax">
        We study things.
        <a class="is-size-7">&#9651; Less</a></span></p>`)
		b.WriteString(`<p class="is-size-7"><span>Submitted</span> 17 October, 2024; <span>originally announced</span> October 2024.</p>`)
		b.WriteString(`</li>`)
	}
	b.WriteString(`</ol></div></main></body></html>`)
	return b.String()
}
