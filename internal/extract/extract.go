// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract reads the text of downloaded PDFs page by page.
package extract

import (
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/pdiddy/paper-agent/pkg/types"
)

// Extractor returns the text of the PDF at path, one element per page.
// Unreadable or invalid PDFs produce an error wrapping types.ErrParse.
type Extractor interface {
	Extract(ctx context.Context, path string) (types.DocumentText, error)
}

// PDFExtractor reads PDFs in-process with the ledongthuc/pdf reader.
type PDFExtractor struct{}

// Extract opens the PDF at path and returns each page's plain text.
func (PDFExtractor) Extract(ctx context.Context, path string) (doc types.DocumentText, err error) {
	// The reader panics on some malformed inputs.
	defer func() {
		if r := recover(); r != nil {
			doc = nil
			err = fmt.Errorf("%w: reading %s: %v", types.ErrParse, path, r)
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %v", types.ErrParse, path, err)
	}
	defer f.Close()

	n := r.NumPage()
	if n == 0 {
		return nil, fmt.Errorf("%w: %s has no pages", types.ErrParse, path)
	}

	doc = make(types.DocumentText, 0, n)
	for i := 1; i <= n; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		page := r.Page(i)
		if page.V.IsNull() {
			doc = append(doc, "")
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return nil, fmt.Errorf("%w: page %d of %s: %v", types.ErrParse, i, path, err)
		}
		doc = append(doc, strings.TrimSpace(text))
	}
	return doc, nil
}
