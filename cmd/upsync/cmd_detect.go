package main

import (
	"fmt"

	"github.com/ruminaider/upsync/internal/commands"
	"github.com/spf13/cobra"
)

var detectFullFlag bool

var detectCmd = &cobra.Command{
	Use:   "detect",
	Short: "Identify which release the project's files came from",
	RunE: func(cmd *cobra.Command, args []string) error {
		match, err := commands.Detect(".", detectFullFlag)
		if err != nil {
			return err
		}
		if match == nil {
			fmt.Println("No known release matches the current files.")
			return nil
		}
		fmt.Printf("%s (%s confidence, %s scan, %d/%d files, %.0f%%)\n",
			match.VersionID, match.Confidence, match.Method,
			match.MatchedFiles, match.TotalFiles, match.MatchPercentage)
		return nil
	},
}

func init() {
	detectCmd.Flags().BoolVar(&detectFullFlag, "full", false, "Skip the signature fast path and score every release")
}
