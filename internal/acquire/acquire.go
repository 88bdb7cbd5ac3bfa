// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package acquire downloads paper PDFs into a local directory.
package acquire

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/pdiddy/paper-agent/pkg/types"
)

// Downloader fetches PDFs over HTTP. Existing files are never re-fetched
// or overwritten.
type Downloader struct {
	HTTP   *http.Client
	Config types.AcquisitionConfig
	Log    zerolog.Logger
}

// NewDownloader returns a Downloader. A nil httpClient gets one with cfg.Timeout.
func NewDownloader(httpClient *http.Client, cfg types.AcquisitionConfig, log zerolog.Logger) *Downloader {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	return &Downloader{HTTP: httpClient, Config: cfg, Log: log}
}

// Fetch downloads url to destDir/filename and returns the local path.
// When the file already exists it returns the path without a request.
// Network and filesystem failures are logged and reported as ok == false.
// destDir must already exist.
func (d *Downloader) Fetch(ctx context.Context, url, destDir, filename string) (path string, ok bool) {
	path = filepath.Join(destDir, filename)
	log := d.Log.With().Str("file", filename).Logger()

	if _, err := os.Stat(path); err == nil {
		log.Info().Msg("already exists, skipping download")
		return path, true
	}

	log.Info().Str("url", url).Msg("downloading")
	if err := d.download(ctx, url, path); err != nil {
		log.Error().Err(err).Str("url", url).Msg("download failed")
		return "", false
	}
	log.Info().Msg("downloaded")
	return path, true
}

// download fetches url to destPath through a temporary file in the same
// directory, renaming it into place on success.
func (d *Downloader) download(ctx context.Context, url, destPath string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: creating request: %v", types.ErrNetwork, err)
	}
	if d.Config.UserAgent != "" {
		req.Header.Set("User-Agent", d.Config.UserAgent)
	}
	req.Header.Set("Accept", "application/pdf")

	resp, err := d.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("%w: HTTP request: %v", types.ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: HTTP %d from %s", types.ErrNetwork, resp.StatusCode, url)
	}

	tmpFile, err := os.CreateTemp(filepath.Dir(destPath), ".acquire-*.tmp")
	if err != nil {
		return fmt.Errorf("%w: creating temp file: %v", types.ErrFilesystem, err)
	}
	tmpPath := tmpFile.Name()

	_, copyErr := io.Copy(tmpFile, resp.Body)
	closeErr := tmpFile.Close()
	if copyErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("%w: writing download: %v", types.ErrNetwork, copyErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("%w: closing temp file: %v", types.ErrFilesystem, closeErr)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("%w: renaming temp file: %v", types.ErrFilesystem, err)
	}
	return nil
}
