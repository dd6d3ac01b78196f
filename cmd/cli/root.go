package main

import (
	"github.com/spf13/cobra"
)

// The CLI reads the same environment variables and .env file as the server;
// configuration is loaded inside wire.InitializeApp, not here.
var rootCmd = &cobra.Command{
	Use:   "critic",
	Short: "critic is the command-line interface for Code Critic.",
	Long:  `A CLI for the Code Critic service, allowing code reviews and history inspection without the web UI.`,
}

func Execute() error {
	return rootCmd.Execute()
}
