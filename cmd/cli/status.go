package main

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/mpetrov/code-critic/internal/config"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Checks whether the Code Critic server is up",
	RunE: func(_ *cobra.Command, _ []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		client := &http.Client{Timeout: 5 * time.Second}
		url := fmt.Sprintf("http://localhost:%s/health", cfg.ServerPort)

		resp, err := client.Get(url)
		if err != nil {
			return fmt.Errorf("server is not reachable at %s: %w", url, err)
		}
		defer resp.Body.Close()

		body, _ := io.ReadAll(resp.Body)
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("server responded with %s: %s", resp.Status, string(body))
		}

		fmt.Printf("Server is up at %s: %s\n", url, string(body))
		return nil
	},
}

func init() { //nolint:gochecknoinits // Cobra's init function for command registration
	rootCmd.AddCommand(statusCmd)
}
