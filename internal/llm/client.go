// Package llm provides the analyzer that turns submitted source code into
// review feedback by calling a hosted language model, plus the prompt
// rendering and response parsing around that call.
package llm

import (
	"context"
	"net/http"

	openai "github.com/sashabaranov/go-openai"

	"github.com/mpetrov/code-critic/internal/config"
)

// ChatCompleter is the subset of the OpenAI-compatible client the analyzer
// needs. Tests substitute a fake; production wiring passes the Groq client.
type ChatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// NewGroqClient builds an OpenAI-compatible client pointed at the Groq API.
// The request timeout is the only knob; there is no retry or rate-limit
// handling beyond what the client does internally.
func NewGroqClient(cfg *config.Config) ChatCompleter {
	clientCfg := openai.DefaultConfig(cfg.GroqAPIKey)
	clientCfg.BaseURL = cfg.GroqAPIBase
	clientCfg.HTTPClient = &http.Client{Timeout: cfg.RequestTimeout}
	return openai.NewClientWithConfig(clientCfg)
}
