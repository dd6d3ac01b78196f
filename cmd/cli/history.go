package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/mpetrov/code-critic/internal/wire"
)

var (
	historyLimit int
	historyJSON  bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Shows the most recent code reviews",
	RunE: func(_ *cobra.Command, _ []string) error {
		ctx := context.Background()

		app, cleanup, err := wire.InitializeApp(ctx)
		if err != nil {
			return fmt.Errorf("failed to initialize app services: %w", err)
		}
		defer cleanup()

		reviews, err := app.Store.ListRecentReviews(ctx, historyLimit)
		if err != nil {
			return fmt.Errorf("failed to retrieve reviews: %w", err)
		}

		if historyJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			return encoder.Encode(reviews)
		}

		if len(reviews) == 0 {
			fmt.Println("No reviews yet.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "ID\tFILE\tLANGUAGE\tCREATED")
		for _, review := range reviews {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\n",
				review.ID,
				review.FileName,
				review.Language,
				review.CreatedAt.Format(time.RFC822),
			)
		}
		return w.Flush()
	},
}

func init() { //nolint:gochecknoinits // Cobra's init function for command registration
	historyCmd.Flags().IntVar(&historyLimit, "limit", 10, "Maximum number of reviews to show")
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "Output history as JSON")
	rootCmd.AddCommand(historyCmd)
}
