package llm

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/mpetrov/code-critic/internal/config"
	"github.com/mpetrov/code-critic/internal/core"
)

const (
	reviewSystemPrompt = "You are an expert code reviewer. You evaluate code " +
		"quality and security separately and report findings in the exact " +
		"section format the user asks for."

	assistantSystemPrompt = "You are an expert code reviewer and programming " +
		"assistant. Provide clear, concise, and helpful responses to " +
		"code-related questions. Focus on best practices, security, and code " +
		"quality."

	reviewTemperature    = 0.1
	assistantTemperature = 0.7
	reviewMaxTokens      = 2048
	assistantMaxTokens   = 2000
)

type analyzer struct {
	cfg       *config.Config
	client    ChatCompleter
	promptMgr *PromptManager
	logger    *slog.Logger
}

// NewAnalyzer creates the analyzer backed by the given chat-completion
// client. It is stateless between calls and performs no retries.
func NewAnalyzer(cfg *config.Config, client ChatCompleter, promptMgr *PromptManager, logger *slog.Logger) core.Analyzer {
	return &analyzer{
		cfg:       cfg,
		client:    client,
		promptMgr: promptMgr,
		logger:    logger,
	}
}

// Analyze renders the review prompt, makes one completion call, and splits
// the reply into quality and security feedback.
func (a *analyzer) Analyze(ctx context.Context, source, languageHint string) (core.Feedback, error) {
	prompt, err := a.promptMgr.Render(CodeReviewPrompt, ReviewPromptData{
		SourceCode: source,
		Language:   strings.TrimSpace(languageHint),
	})
	if err != nil {
		return core.Feedback{}, &core.AnalysisError{Op: "render review prompt", Err: err}
	}

	reply, err := a.complete(ctx, reviewSystemPrompt, prompt, reviewTemperature, reviewMaxTokens)
	if err != nil {
		return core.Feedback{}, &core.AnalysisError{Op: "model call", Err: err}
	}

	feedback := SplitFeedback(reply)
	a.logger.Debug("analysis completed",
		"quality_len", len(feedback.Quality),
		"security_len", len(feedback.Security),
	)
	return feedback, nil
}

// Respond answers a free-form follow-up question from the chat view.
func (a *analyzer) Respond(ctx context.Context, question string) (string, error) {
	prompt, err := a.promptMgr.Render(AssistantPrompt, AssistantPromptData{Question: question})
	if err != nil {
		return "", &core.AnalysisError{Op: "render assistant prompt", Err: err}
	}

	reply, err := a.complete(ctx, assistantSystemPrompt, prompt, assistantTemperature, assistantMaxTokens)
	if err != nil {
		return "", &core.AnalysisError{Op: "model call", Err: err}
	}
	return strings.TrimSpace(reply), nil
}

// complete makes a single chat-completion request and returns the first
// choice's content.
func (a *analyzer) complete(ctx context.Context, system, user string, temperature float32, maxTokens int) (string, error) {
	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       a.cfg.ModelName,
		Temperature: temperature,
		MaxTokens:   maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("model returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
