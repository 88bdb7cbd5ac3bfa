// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package answer asks a local language model a question about a document
// and cleans up the response.
package answer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"text/template"

	"github.com/pdiddy/paper-agent/pkg/types"
)

// promptTmpl embeds the document text ahead of the question.
var promptTmpl = template.Must(template.New("answer").Parse(
	"以下是文档内容的一部分:\n\n{{.Context}}\n\n基于此内容，请回答：{{.Question}}"))

// Generator runs one synchronous, non-streaming completion.
type Generator interface {
	Generate(ctx context.Context, model, prompt string) (string, error)
}

// Answerer builds prompts, calls the Generator, and strips reasoning blocks.
// It is built once per run and only read afterwards.
type Answerer struct {
	gen       Generator
	cfg       types.AIConfig
	reasoning *regexp.Regexp
}

// NewAnswerer returns an Answerer. Empty config fields take the package defaults.
func NewAnswerer(gen Generator, cfg types.AIConfig) *Answerer {
	if cfg.Model == "" {
		cfg.Model = types.DefaultModel
	}
	if cfg.Question == "" {
		cfg.Question = types.DefaultQuestion
	}
	if cfg.ReasoningOpen == "" && cfg.ReasoningClose == "" {
		cfg.ReasoningOpen = types.DefaultReasoningOpen
		cfg.ReasoningClose = types.DefaultReasoningClose
	}
	return &Answerer{
		gen:       gen,
		cfg:       cfg,
		reasoning: reasoningPattern(cfg.ReasoningOpen, cfg.ReasoningClose),
	}
}

// Question returns the question asked when none is supplied.
func (a *Answerer) Question() string { return a.cfg.Question }

// Answer asks question about docText. An empty question uses the configured
// one. Generator failures are returned wrapped in types.ErrModel; there is
// no retry.
func (a *Answerer) Answer(ctx context.Context, question, docText string) (string, error) {
	if question == "" {
		question = a.cfg.Question
	}
	prompt, err := RenderPrompt(question, docText)
	if err != nil {
		return "", fmt.Errorf("rendering prompt: %w", err)
	}

	raw, err := a.gen.Generate(ctx, a.cfg.Model, prompt)
	if err != nil {
		if !errors.Is(err, types.ErrModel) {
			err = fmt.Errorf("%w: %v", types.ErrModel, err)
		}
		return "", err
	}
	return stripReasoning(a.reasoning, raw), nil
}

// RenderPrompt executes the prompt template.
func RenderPrompt(question, docText string) (string, error) {
	var buf bytes.Buffer
	data := struct{ Context, Question string }{Context: docText, Question: question}
	if err := promptTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// StripReasoning removes every span from open to the nearest following close
// (newlines included) and trims surrounding whitespace. An unterminated open
// marker is left in place.
func StripReasoning(response, open, close string) string {
	return stripReasoning(reasoningPattern(open, close), response)
}

// reasoningPattern matches one delimited reasoning span, or is nil when
// either marker is empty.
func reasoningPattern(open, close string) *regexp.Regexp {
	if open == "" || close == "" {
		return nil
	}
	return regexp.MustCompile("(?s)" + regexp.QuoteMeta(open) + ".*?" + regexp.QuoteMeta(close))
}

func stripReasoning(re *regexp.Regexp, response string) string {
	if re != nil {
		response = re.ReplaceAllString(response, "")
	}
	return strings.TrimSpace(response)
}
