package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "0.3.1"

var rootCmd = &cobra.Command{
	Use:   "upsync",
	Short: "Keep upstream-managed template files up to date",
	Long:  "upsync tracks files installed from a template repository, pulls in new releases, and merges upstream changes into locally customized copies without losing either side.",
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default behavior: show status
		return statusCmd.RunE(cmd, args)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("upsync %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(diffCmd)
	rootCmd.AddCommand(detectCmd)
	rootCmd.AddCommand(resolveCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
