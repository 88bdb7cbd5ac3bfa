// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/pdiddy/paper-agent/internal/container"
	"github.com/pdiddy/paper-agent/pkg/types"
)

// ImagePdftotext is the container image providing poppler's pdftotext.
const ImagePdftotext = "pdftotext:latest"

// pdftotextArgs reads the PDF from stdin and writes text to stdout.
var pdftotextArgs = []string{"pdftotext", "-layout", "-enc", "UTF-8", "-", "-"}

// PdftotextExtractor pipes PDFs through pdftotext inside a container.
// pdftotext separates pages with form feeds.
type PdftotextExtractor struct {
	runtime container.Runtime
}

// NewPdftotextExtractor verifies the pdftotext image exists in rt.
func NewPdftotextExtractor(rt container.Runtime) (*PdftotextExtractor, error) {
	if err := rt.ImageExists(ImagePdftotext); err != nil {
		return nil, fmt.Errorf("pdftotext image not available in %s: %w", rt.Name(), err)
	}
	return &PdftotextExtractor{runtime: rt}, nil
}

// Extract runs pdftotext on the PDF at path and splits the output into pages.
func (p *PdftotextExtractor) Extract(ctx context.Context, path string) (types.DocumentText, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %v", types.ErrParse, path, err)
	}
	defer f.Close()

	var out bytes.Buffer
	if err := p.runtime.Run(ctx, ImagePdftotext, pdftotextArgs, f, &out); err != nil {
		return nil, fmt.Errorf("%w: converting %s with pdftotext: %v", types.ErrParse, path, err)
	}

	doc := splitPages(out.String())
	if len(doc) == 0 {
		return nil, fmt.Errorf("%w: pdftotext produced empty output for %s", types.ErrParse, path)
	}
	return doc, nil
}

// splitPages splits pdftotext output on form feeds. The trailing form feed
// after the last page does not start a new page.
func splitPages(text string) types.DocumentText {
	text = strings.TrimSuffix(text, "\f")
	if strings.TrimSpace(text) == "" {
		return nil
	}
	parts := strings.Split(text, "\f")
	doc := make(types.DocumentText, len(parts))
	for i, part := range parts {
		doc[i] = strings.TrimSpace(part)
	}
	return doc
}

// New returns the extractor for backend. The pdftotext backend needs a
// working docker or podman installation.
func New(backend types.ExtractorBackend) (Extractor, error) {
	switch backend {
	case types.ExtractorNative, "":
		return PDFExtractor{}, nil
	case types.ExtractorPdftotext:
		rt, err := container.DetectRuntime()
		if err != nil {
			return nil, err
		}
		return NewPdftotextExtractor(rt)
	default:
		return nil, fmt.Errorf("unknown extractor backend %q: use native or pdftotext", backend)
	}
}
