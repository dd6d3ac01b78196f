package llm

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpetrov/code-critic/internal/config"
	"github.com/mpetrov/code-critic/internal/core"
)

// fakeCompleter replays a canned model reply or error and records the last
// request for inspection.
type fakeCompleter struct {
	reply   string
	err     error
	lastReq openai.ChatCompletionRequest
	calls   int
}

func (f *fakeCompleter) CreateChatCompletion(_ context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	f.calls++
	f.lastReq = req
	if f.err != nil {
		return openai.ChatCompletionResponse{}, f.err
	}
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Content: f.reply}},
		},
	}, nil
}

func newTestAnalyzer(t *testing.T, completer ChatCompleter) core.Analyzer {
	t.Helper()

	promptMgr, err := NewPromptManager()
	require.NoError(t, err)

	cfg := &config.Config{ModelName: "test-model", RequestTimeout: time.Second}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewAnalyzer(cfg, completer, promptMgr, logger)
}

func TestAnalyzerAnalyze(t *testing.T) {
	completer := &fakeCompleter{reply: "Quality: fine\nSecurity: no issues"}
	analyzer := newTestAnalyzer(t, completer)

	feedback, err := analyzer.Analyze(context.Background(), "def f(): pass", "python")
	require.NoError(t, err)

	assert.Equal(t, "fine", feedback.Quality)
	assert.Equal(t, "no issues", feedback.Security)

	require.Equal(t, 1, completer.calls)
	assert.Equal(t, "test-model", completer.lastReq.Model)
	require.Len(t, completer.lastReq.Messages, 2)
	assert.Contains(t, completer.lastReq.Messages[1].Content, "def f(): pass")
	assert.Contains(t, completer.lastReq.Messages[1].Content, "python")
}

func TestAnalyzerAnalyzeModelFailure(t *testing.T) {
	completer := &fakeCompleter{err: errors.New("request timed out")}
	analyzer := newTestAnalyzer(t, completer)

	_, err := analyzer.Analyze(context.Background(), "def f(): pass", "")
	require.Error(t, err)

	var analysisErr *core.AnalysisError
	assert.ErrorAs(t, err, &analysisErr)
	// No retries: exactly one call.
	assert.Equal(t, 1, completer.calls)
}

func TestAnalyzerAnalyzeEmptyChoices(t *testing.T) {
	completer := &emptyChoicesCompleter{}
	analyzer := newTestAnalyzer(t, completer)

	_, err := analyzer.Analyze(context.Background(), "code", "")

	var analysisErr *core.AnalysisError
	assert.ErrorAs(t, err, &analysisErr)
}

type emptyChoicesCompleter struct{}

func (emptyChoicesCompleter) CreateChatCompletion(context.Context, openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	return openai.ChatCompletionResponse{}, nil
}

func TestAnalyzerRespond(t *testing.T) {
	completer := &fakeCompleter{reply: "Use parameterized queries.\n"}
	analyzer := newTestAnalyzer(t, completer)

	answer, err := analyzer.Respond(context.Background(), "How do I avoid SQL injection?")
	require.NoError(t, err)

	assert.Equal(t, "Use parameterized queries.", answer)
	assert.Contains(t, completer.lastReq.Messages[1].Content, "How do I avoid SQL injection?")
}
