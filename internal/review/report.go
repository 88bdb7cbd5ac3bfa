// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package review

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/pdiddy/paper-agent/pkg/types"
)

// Separator ends every report block.
var Separator = strings.Repeat("-", 50)

// ReportPath returns <Dir>/<Prefix>YYYYMMDD.md for now. Runs on the same day
// share a path.
func ReportPath(cfg types.ReportConfig, now time.Time) string {
	dir := cfg.Dir
	if dir == "" {
		dir = types.DefaultReportDir
	}
	return filepath.Join(dir, cfg.Prefix+now.Format("20060102")+".md")
}

// FormatBlock renders one answer as a report block.
func FormatBlock(a types.Answer) string {
	return fmt.Sprintf("Title: %s\nAnswer:\n%s\n%s\n", a.Title, a.Text, Separator)
}

func writeBlock(w io.Writer, a types.Answer) error {
	_, err := io.WriteString(w, FormatBlock(a))
	return err
}

// createReport truncates or creates the report file. An existing report
// from an earlier run today is overwritten with a warning.
func createReport(path string, log zerolog.Logger) (*os.File, error) {
	if _, err := os.Stat(path); err == nil {
		log.Warn().Str("report", path).Msg("report already exists and will be overwritten")
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("%w: creating report: %v", types.ErrFilesystem, err)
	}
	return f, nil
}
