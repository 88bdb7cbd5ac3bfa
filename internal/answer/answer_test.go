// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package answer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/paper-agent/pkg/types"
)

// fakeGenerator records the last call and returns canned output.
type fakeGenerator struct {
	response string
	err      error

	gotModel  string
	gotPrompt string
}

func (f *fakeGenerator) Generate(_ context.Context, model, prompt string) (string, error) {
	f.gotModel = model
	f.gotPrompt = prompt
	return f.response, f.err
}

func TestStripReasoning(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		open  string
		close string
		want  string
	}{
		{
			name:  "single block",
			in:    "<think>\nlet me consider\nthe paper\n</think>\n\n摘要：好论文。评分：8",
			open:  "<think>",
			close: "</think>",
			want:  "摘要：好论文。评分：8",
		},
		{
			name:  "no block",
			in:    "  plain answer \n",
			open:  "<think>",
			close: "</think>",
			want:  "plain answer",
		},
		{
			name:  "two blocks non-greedy",
			in:    "<think>a</think>keep<think>b</think> this",
			open:  "<think>",
			close: "</think>",
			want:  "keep this",
		},
		{
			name:  "unterminated open marker kept",
			in:    "<think>never closed",
			open:  "<think>",
			close: "</think>",
			want:  "<think>never closed",
		},
		{
			name:  "regex metacharacters in markers",
			in:    "[[why?]]reasons[[/why?]] answer",
			open:  "[[why?]]",
			close: "[[/why?]]",
			want:  "answer",
		},
		{
			name:  "empty markers only trim",
			in:    " <think>x</think> ",
			open:  "",
			close: "",
			want:  "<think>x</think>",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripReasoning(tt.in, tt.open, tt.close))
		})
	}
}

func TestRenderPrompt(t *testing.T) {
	got, err := RenderPrompt("这篇论文的主要结论是什么？", "Page one text.")
	require.NoError(t, err)
	assert.Equal(t, "以下是文档内容的一部分:\n\nPage one text.\n\n基于此内容，请回答：这篇论文的主要结论是什么？", got)
	assert.Less(t, strings.Index(got, "Page one text."), strings.Index(got, "这篇论文"))
}

func TestAnswer(t *testing.T) {
	gen := &fakeGenerator{response: "<think>hmm</think>\n  Summary and score: 7/10  \n"}
	a := NewAnswerer(gen, types.AIConfig{Model: "qwen3:4b"})

	got, err := a.Answer(context.Background(), "", "Document context")
	require.NoError(t, err)

	assert.Equal(t, "Summary and score: 7/10", got)
	assert.Equal(t, "qwen3:4b", gen.gotModel)
	assert.Contains(t, gen.gotPrompt, "Document context")
	assert.Contains(t, gen.gotPrompt, types.DefaultQuestion)
}

func TestAnswer_CustomQuestionAndMarkers(t *testing.T) {
	gen := &fakeGenerator{response: "<reasoning>x</reasoning>Yes."}
	a := NewAnswerer(gen, types.AIConfig{ReasoningOpen: "<reasoning>", ReasoningClose: "</reasoning>"})

	got, err := a.Answer(context.Background(), "Is it novel?", "ctx")
	require.NoError(t, err)

	assert.Equal(t, "Yes.", got)
	assert.Equal(t, types.DefaultModel, gen.gotModel)
	assert.True(t, strings.HasSuffix(gen.gotPrompt, "Is it novel?"))
}

func TestAnswer_GeneratorError(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("connection refused")}
	a := NewAnswerer(gen, types.AIConfig{})

	_, err := a.Answer(context.Background(), "q", "ctx")
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrModel))
	assert.Contains(t, err.Error(), "connection refused")
}

func TestAnswerer_Question(t *testing.T) {
	assert.Equal(t, types.DefaultQuestion, NewAnswerer(&fakeGenerator{}, types.AIConfig{}).Question())
	assert.Equal(t, "Is it novel?", NewAnswerer(&fakeGenerator{}, types.AIConfig{Question: "Is it novel?"}).Question())
}

func TestAnswer_ReusesReasoningPattern(t *testing.T) {
	gen := &fakeGenerator{}
	a := NewAnswerer(gen, types.AIConfig{})
	require.NotNil(t, a.reasoning)

	for _, resp := range []string{"<think>a</think>one", "two<think>\nb\n</think>"} {
		gen.response = resp
		got, err := a.Answer(context.Background(), "", "ctx")
		require.NoError(t, err)
		assert.Equal(t, StripReasoning(resp, types.DefaultReasoningOpen, types.DefaultReasoningClose), got)
	}
	assert.Nil(t, reasoningPattern("", "</think>"))
}
