// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the paper-agent pipeline:
// listing records, extracted document text, model answers, configuration,
// and the error kinds stages wrap their failures in.
package types

import "time"

// Paper is one entry discovered on a search listing page. PDFPath stays
// empty until the PDF has been downloaded.
type Paper struct {
	// Title is the paper title with whitespace collapsed.
	Title string `json:"title" yaml:"title"`

	// PDFURL is the absolute URL of the PDF.
	PDFURL string `json:"pdf_url" yaml:"pdf_url"`

	// PDFPath is the local filesystem path to the downloaded PDF.
	PDFPath string `json:"pdf_path,omitempty" yaml:"pdf_path,omitempty"`

	// AbsURL is the abstract page URL, when the listing carries one.
	AbsURL string `json:"abs_url,omitempty" yaml:"abs_url,omitempty"`

	// Authors lists the paper authors in listing order.
	Authors []string `json:"authors,omitempty" yaml:"authors,omitempty"`

	// Abstract is the full abstract shown on the listing.
	Abstract string `json:"abstract,omitempty" yaml:"abstract,omitempty"`

	// Submitted is the submission date shown on the listing.
	Submitted time.Time `json:"submitted,omitempty" yaml:"submitted,omitempty"`
}

// Downloaded reports whether the paper has a local PDF.
func (p Paper) Downloaded() bool {
	return p.PDFPath != ""
}

// DocumentText holds the text of a PDF, one element per page in page order.
type DocumentText []string

// FirstPage returns the first page's text, or "" for an empty document.
func (d DocumentText) FirstPage() string {
	if len(d) == 0 {
		return ""
	}
	return d[0]
}

// Answer is the cleaned model answer for one paper.
type Answer struct {
	Title string `json:"title" yaml:"title"`
	Text  string `json:"text" yaml:"text"`
}
