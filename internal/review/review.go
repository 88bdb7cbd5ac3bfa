// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package review runs the paper review pipeline: search the listing,
// download PDFs, read each paper's first page, ask the model, and append
// the answers to a dated report.
package review

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/pdiddy/paper-agent/internal/acquire"
	"github.com/pdiddy/paper-agent/internal/answer"
	"github.com/pdiddy/paper-agent/internal/extract"
	"github.com/pdiddy/paper-agent/internal/search"
	"github.com/pdiddy/paper-agent/pkg/types"
)

// Stage names the per-paper step an Outcome failed at.
type Stage string

const (
	StageExtract Stage = "extract"
	StageAnswer  Stage = "answer"
	StageReport  Stage = "report"
)

// Outcome is the result of processing one downloaded paper. Err is nil on
// success, in which case Answer holds the cleaned model answer.
type Outcome struct {
	Paper  types.Paper
	Answer types.Answer
	Stage  Stage
	Err    error
}

// OK reports whether the paper was answered.
func (o Outcome) OK() bool { return o.Err == nil }

// Summary holds the outcome of a review run.
type Summary struct {
	Downloaded int
	Answered   int
	Failed     int
	ReportPath string
	Outcomes   []Outcome
}

// HasFailures reports whether any downloaded paper failed processing.
func (s Summary) HasFailures() bool { return s.Failed > 0 }

// Print writes a one-line summary to w.
func (s Summary) Print(w io.Writer) {
	fmt.Fprintf(w, "\nReview summary: %d downloaded, %d answered, %d failed\n",
		s.Downloaded, s.Answered, s.Failed)
	if s.ReportPath != "" {
		fmt.Fprintf(w, "Report: %s\n", s.ReportPath)
	}
}

// Pipeline wires the stages together. It is constructed once per run.
type Pipeline struct {
	Search    *search.Client
	Download  *acquire.Downloader
	Extractor extract.Extractor
	Answerer  *answer.Answerer
	Config    types.RunConfig
	Log       zerolog.Logger

	// Now returns the time used to name the report. Defaults to time.Now.
	Now func() time.Time
}

// Run executes the full pipeline. It returns an error only when the papers
// directory or the report file cannot be created; per-paper failures are
// recorded in the Summary. A run that downloads nothing writes no report.
func (p *Pipeline) Run(ctx context.Context) (Summary, error) {
	papers, err := p.Acquire(ctx)
	if err != nil {
		return Summary{Downloaded: len(papers)}, err
	}
	if len(papers) == 0 {
		p.Log.Warn().Str("keyword", p.Config.Keyword).Msg("no papers downloaded")
		return Summary{}, nil
	}

	return p.Process(ctx, papers)
}

// Acquire creates the papers directory and collects papers into it.
func (p *Pipeline) Acquire(ctx context.Context) ([]types.Paper, error) {
	if err := os.MkdirAll(p.Config.Acquisition.PapersDir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: creating papers directory: %v", types.ErrFilesystem, err)
	}
	return p.Collect(ctx)
}

// Collect walks the listing pages and downloads PDFs until Config.Count
// papers are on disk or the listing runs out. Entries without a PDF link
// and failed downloads do not count. The only error returned is context
// cancellation.
func (p *Pipeline) Collect(ctx context.Context) ([]types.Paper, error) {
	cfg := p.Config
	pageSize := cfg.Search.PageSize
	if pageSize <= 0 {
		pageSize = types.DefaultPageSize
	}
	pages := search.PageCount(cfg.Count, pageSize)
	total, totalKnown, totalRead := 0, false, false

	var papers []types.Paper
	for page := 0; page < pages && len(papers) < cfg.Count; page++ {
		start := page * pageSize
		if totalKnown && start >= total {
			p.Log.Debug().Int("start", start).Int("total", total).Msg("listing exhausted")
			break
		}

		pageURL := p.Search.PageURL(cfg.Keyword, start)
		p.Log.Info().Int("page", page+1).Int("pages", pages).Str("url", pageURL).Msg("searching")

		listing, err := p.Search.FetchPage(ctx, pageURL)
		if err != nil {
			if ctx.Err() != nil {
				return papers, ctx.Err()
			}
			p.Log.Error().Err(err).Int("page", page+1).Msg("search page failed")
			if err := sleep(ctx, cfg.Search.PageDelay); err != nil {
				return papers, err
			}
			continue
		}
		if !totalRead {
			// A missing count is warned about once; empty pages then end the walk.
			totalRead = true
			total = listing.Total()
			totalKnown = total > 0
			p.Log.Info().Int("total", total).Msg("search results")
		}
		if listing.Len() == 0 {
			break
		}

		for _, rec := range listing.Records(cfg.Count - len(papers)) {
			path, ok := p.Download.Fetch(ctx, rec.PDFURL, cfg.Acquisition.PapersDir, acquire.Filename(rec.Title))
			if ok {
				rec.PDFPath = path
				papers = append(papers, rec)
			}
			if err := ctx.Err(); err != nil {
				return papers, err
			}
			if err := sleep(ctx, cfg.Acquisition.DownloadDelay); err != nil {
				return papers, err
			}
		}
		if err := sleep(ctx, cfg.Search.PageDelay); err != nil {
			return papers, err
		}
	}

	p.Log.Info().Int("downloaded", len(papers)).Int("requested", cfg.Count).Msg("collection finished")
	return papers, nil
}

// Process answers each paper in order and appends successful answers to
// the report. Failures are logged and recorded without stopping the run.
func (p *Pipeline) Process(ctx context.Context, papers []types.Paper) (Summary, error) {
	summary := Summary{Downloaded: len(papers)}

	now := time.Now
	if p.Now != nil {
		now = p.Now
	}
	reportPath := ReportPath(p.Config.Report, now())
	report, err := createReport(reportPath, p.Log)
	if err != nil {
		return summary, err
	}
	defer report.Close()
	summary.ReportPath = reportPath

	for _, paper := range papers {
		log := p.Log.With().Str("title", paper.Title).Logger()
		log.Info().Msg("processing paper")

		outcome := p.ProcessPaper(ctx, paper, "")
		if outcome.OK() {
			if err := writeBlock(report, outcome.Answer); err != nil {
				outcome.Stage = StageReport
				outcome.Err = fmt.Errorf("%w: writing report block: %v", types.ErrFilesystem, err)
			}
		}
		summary.Outcomes = append(summary.Outcomes, outcome)

		if !outcome.OK() {
			log.Error().Err(outcome.Err).Str("stage", string(outcome.Stage)).Msg("paper failed")
			summary.Failed++
			if ctx.Err() != nil {
				return summary, ctx.Err()
			}
			continue
		}
		log.Info().Msg("paper done")
		summary.Answered++
	}

	p.Log.Info().Str("report", reportPath).Int("answered", summary.Answered).Msg("all papers processed")
	return summary, nil
}

// ProcessPaper extracts the paper's first page and asks question about it.
// An empty question uses the configured one.
func (p *Pipeline) ProcessPaper(ctx context.Context, paper types.Paper, question string) Outcome {
	outcome := Outcome{Paper: paper}

	doc, err := p.Extractor.Extract(ctx, paper.PDFPath)
	if err != nil {
		outcome.Stage, outcome.Err = StageExtract, err
		return outcome
	}

	text, err := p.Answerer.Answer(ctx, question, doc.FirstPage())
	if err != nil {
		outcome.Stage, outcome.Err = StageAnswer, err
		return outcome
	}

	outcome.Answer = types.Answer{Title: paper.Title, Text: text}
	return outcome
}

// sleep waits for d or until ctx is done, returning ctx.Err in the latter case.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
