package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mpetrov/code-critic/internal/core"
	"github.com/mpetrov/code-critic/internal/util"
	"github.com/mpetrov/code-critic/internal/wire"
)

var reviewLanguage string

// Color definitions
var (
	titleColor = color.New(color.FgCyan, color.Bold)
	warnColor  = color.New(color.FgYellow)
	dimColor   = color.New(color.FgHiBlack)
)

var reviewCmd = &cobra.Command{
	Use:   "review [file]",
	Short: "Send a source file to the model for a quality and security review",
	Long: `Send a source file to the model for a quality and security review.

The review is stored in the local history, exactly like a web submission.

Examples:
  critic review main.go
  critic review --language python script.py`,
	Args: cobra.ExactArgs(1),
	RunE: runReview,
}

func init() { //nolint:gochecknoinits // Cobra command registration
	reviewCmd.Flags().StringVarP(&reviewLanguage, "language", "l", "", "Language hint passed to the model")
	rootCmd.AddCommand(reviewCmd)
}

func runReview(_ *cobra.Command, args []string) error {
	ctx := context.Background()

	source, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}
	if strings.TrimSpace(string(source)) == "" {
		return fmt.Errorf("file %s is empty, nothing to review", args[0])
	}

	app, cleanup, err := wire.InitializeApp(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize app: %w", err)
	}
	defer cleanup()

	fileName := util.SanitizeFilename(filepath.Base(args[0]))
	dimColor.Printf("Reviewing %s (%d lines) with %s...\n",
		fileName, util.CountLines(string(source)), app.Cfg.ModelName)

	feedback, err := app.Analyzer.Analyze(ctx, string(source), reviewLanguage)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	review := &core.Review{
		FileName:         fileName,
		Language:         reviewLanguage,
		SourceCode:       string(source),
		QualityFeedback:  feedback.Quality,
		SecurityFeedback: feedback.Security,
	}
	if err := app.Store.SaveReview(ctx, review); err != nil {
		warnColor.Printf("Warning: review could not be saved to history: %v\n", err)
	} else {
		dimColor.Printf("Saved as review #%d\n", review.ID)
	}

	printSection("Quality", feedback.Quality)
	printSection("Security", feedback.Security)
	printSnippets(feedback)
	return nil
}

func printSection(title, body string) {
	titleColor.Printf("\n%s\n", title)
	if body == "" {
		dimColor.Println("(the model returned no feedback for this section)")
		return
	}
	fmt.Println(body)
}

// printSnippets pulls fenced code examples out of the feedback so they stand
// out from the prose.
func printSnippets(feedback core.Feedback) {
	blocks := util.ExtractCodeBlocks(feedback.Quality + "\n" + feedback.Security)
	if len(blocks) == 0 {
		return
	}

	titleColor.Printf("\nSuggested snippets\n")
	for i, block := range blocks {
		dimColor.Printf("--- snippet %d (%s) ---\n", i+1, block.Language)
		fmt.Println(block.Code)
	}
}
