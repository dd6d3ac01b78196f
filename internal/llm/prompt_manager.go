package llm

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"text/template"
)

//go:embed prompts/*.prompt
var promptFiles embed.FS

// PromptKey identifies one of the embedded prompt templates.
type PromptKey string

const (
	CodeReviewPrompt PromptKey = "code_review"
	AssistantPrompt  PromptKey = "assistant"
)

// ReviewPromptData is a type-safe struct for rendering the code review prompt.
type ReviewPromptData struct {
	SourceCode string
	Language   string
}

// AssistantPromptData is a type-safe struct for rendering the assistant prompt.
type AssistantPromptData struct {
	Question string
}

// PromptManager loads and renders the prompt templates embedded in the
// binary. Templates live in prompts/<key>.prompt.
type PromptManager struct {
	prompts map[PromptKey]*template.Template
}

// NewPromptManager parses all embedded prompt files.
func NewPromptManager() (*PromptManager, error) {
	pm := &PromptManager{
		prompts: make(map[PromptKey]*template.Template),
	}

	files, err := promptFiles.ReadDir("prompts")
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded prompts directory: %w", err)
	}

	for _, file := range files {
		if file.IsDir() || !strings.HasSuffix(file.Name(), ".prompt") {
			continue
		}

		key := PromptKey(strings.TrimSuffix(file.Name(), ".prompt"))

		content, err := promptFiles.ReadFile("prompts/" + file.Name())
		if err != nil {
			return nil, fmt.Errorf("failed to read embedded prompt file %s: %w", file.Name(), err)
		}

		tmpl, err := template.New(string(key)).Parse(string(content))
		if err != nil {
			return nil, fmt.Errorf("could not parse prompt template %s: %w", file.Name(), err)
		}
		pm.prompts[key] = tmpl
	}

	return pm, nil
}

// Render executes the template for the given key with data.
func (pm *PromptManager) Render(key PromptKey, data any) (string, error) {
	tmpl, ok := pm.prompts[key]
	if !ok {
		return "", fmt.Errorf("no prompt found for key %q", key)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render prompt %q: %w", key, err)
	}
	return buf.String(), nil
}
