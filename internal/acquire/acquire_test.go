// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package acquire

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/paper-agent/pkg/types"
)

func newTestDownloader(ts *httptest.Server, log zerolog.Logger) *Downloader {
	cfg := types.DefaultRunConfig().Acquisition
	cfg.DownloadDelay = 0
	return NewDownloader(ts.Client(), cfg, log)
}

func TestFetch_Downloads(t *testing.T) {
	var gotAccept, gotUA string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAccept = r.Header.Get("Accept")
		gotUA = r.Header.Get("User-Agent")
		w.Write([]byte("%PDF-1.4 fake"))
	}))
	defer ts.Close()

	dir := t.TempDir()
	d := newTestDownloader(ts, zerolog.Nop())

	path, ok := d.Fetch(context.Background(), ts.URL+"/pdf/1", dir, "paper.pdf")
	require.True(t, ok)
	assert.Equal(t, filepath.Join(dir, "paper.pdf"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 fake", string(data))
	assert.Equal(t, "application/pdf", gotAccept)
	assert.Equal(t, types.DefaultUserAgent, gotUA)

	// No temp files left behind.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestFetch_Idempotent(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Write([]byte("%PDF"))
	}))
	defer ts.Close()

	dir := t.TempDir()
	var logBuf bytes.Buffer
	d := newTestDownloader(ts, zerolog.New(&logBuf))

	first, ok := d.Fetch(context.Background(), ts.URL, dir, "same.pdf")
	require.True(t, ok)
	second, ok := d.Fetch(context.Background(), ts.URL, dir, "same.pdf")
	require.True(t, ok)

	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	assert.Contains(t, logBuf.String(), "already exists")
}

func TestFetch_ExistingFileNotOverwritten(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Write([]byte("new"))
	}))
	defer ts.Close()

	dir := t.TempDir()
	path := filepath.Join(dir, "old.pdf")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0o644))

	got, ok := newTestDownloader(ts, zerolog.Nop()).Fetch(context.Background(), ts.URL, dir, "old.pdf")
	require.True(t, ok)
	assert.Equal(t, path, got)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "old", string(data))
	assert.Zero(t, atomic.LoadInt32(&calls))
}

func TestFetch_Failures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		destDir func(t *testing.T) string
	}{
		{
			name: "http error status",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusNotFound)
			},
			destDir: func(t *testing.T) string { return t.TempDir() },
		},
		{
			name: "missing destination directory",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.Write([]byte("%PDF"))
			},
			destDir: func(t *testing.T) string { return filepath.Join(t.TempDir(), "missing") },
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(tt.handler)
			defer ts.Close()

			dir := tt.destDir(t)
			var logBuf bytes.Buffer
			path, ok := newTestDownloader(ts, zerolog.New(&logBuf)).Fetch(context.Background(), ts.URL, dir, "x.pdf")

			assert.False(t, ok)
			assert.Empty(t, path)
			assert.Contains(t, logBuf.String(), "download failed")
			_, err := os.Stat(filepath.Join(dir, "x.pdf"))
			assert.True(t, os.IsNotExist(err))
		})
	}
}

func TestFetch_NetworkError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := ts.URL
	ts.Close()

	path, ok := newTestDownloader(ts, zerolog.Nop()).Fetch(context.Background(), url, t.TempDir(), "x.pdf")
	assert.False(t, ok)
	assert.Empty(t, path)
}

func TestFilename(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Plain Title", "Plain Title.pdf"},
		{"DEAL-YOLO: Drone-based Efficient Animal Localization", "DEAL-YOLO_ Drone-based Efficient Animal Localization.pdf"},
		{`a/b:c*d?e"f<g>h|i`, "a_b_c_d_e_f_g_h_i.pdf"},
		{"", ".pdf"},
	}
	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			assert.Equal(t, tt.want, Filename(tt.title))
		})
	}
}

func TestFilename_NoUnsafeCharacters(t *testing.T) {
	titles := []string{
		`What/is:this*?`,
		`"Quoted" <tag> | pipe`,
		`::::////`,
		`Mixed \ backslash / slash`,
	}
	for _, title := range titles {
		got := Filename(title)
		assert.False(t, strings.ContainsAny(got, `/:*?"<>|`), "Filename(%q) = %q", title, got)
		assert.True(t, strings.HasSuffix(got, ".pdf"))
	}
}
