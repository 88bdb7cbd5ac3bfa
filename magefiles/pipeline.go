//go:build mage

package main

import (
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Pipeline groups targets that run the built CLI against live services.
type Pipeline mg.Namespace

func binary() string {
	return filepath.Join(binDir, binName)
}

// Search prints the arXiv listing for keyword.
func (Pipeline) Search(keyword string) error {
	mg.Deps(Build)
	return sh.RunV(binary(), "search", keyword)
}

// Acquire downloads papers for keyword into papers/.
func (Pipeline) Acquire(keyword string) error {
	mg.Deps(Init, Build)
	return sh.RunV(binary(), "acquire", keyword)
}

// Review runs the full review for keyword and writes the report into
// reports/. Set OLLAMA_URL to use a non-default Ollama server.
func (Pipeline) Review(keyword string) error {
	mg.Deps(Init, Build)
	args := []string{"review", keyword, "--report-dir", "reports"}
	if url := os.Getenv("OLLAMA_URL"); url != "" {
		args = append(args, "--ollama-url", url)
	}
	return sh.RunV(binary(), args...)
}
