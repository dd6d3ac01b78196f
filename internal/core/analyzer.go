package core

import "context"

// Analyzer turns source code into review feedback by calling a hosted
// language model. Implementations are stateless between calls and perform no
// retries; a failed call is reported to the caller as an *AnalysisError.
type Analyzer interface {
	// Analyze sends the given source code to the model and returns the
	// parsed quality and security feedback. languageHint is optional and
	// only steers the prompt.
	Analyze(ctx context.Context, source, languageHint string) (Feedback, error)

	// Respond answers a free-form follow-up question from the chat view.
	Respond(ctx context.Context, question string) (string, error)
}
