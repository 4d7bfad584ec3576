package main

import (
	"fmt"

	"github.com/ruminaider/upsync/internal/commands"
	"github.com/spf13/cobra"
)

var (
	initRefFlag        string
	initCustomizedFlag bool
)

var initCmd = &cobra.Command{
	Use:   "init <upstream-url>",
	Short: "Start tracking an upstream template repository",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := commands.Init(".", commands.InitOptions{
			Upstream:         args[0],
			Ref:              initRefFlag,
			AssumeCustomized: initCustomizedFlag,
		})
		if err != nil {
			return err
		}

		if result.Baseline == "" {
			fmt.Println("No known release matched the existing files; starting from an empty baseline.")
			fmt.Println("Run 'upsync update' to install the latest release.")
		} else {
			fmt.Printf("Detected release %s (%s confidence, %s match, %d/%d files)\n",
				result.Baseline, result.Match.Confidence, result.Match.Method,
				result.Match.MatchedFiles, result.Match.TotalFiles)
			fmt.Printf("Tracking %d file(s) against baseline %s\n", len(result.Tracked), result.Baseline)
		}

		if len(result.Customized) > 0 {
			fmt.Println("\nLocally customized:")
			for _, p := range result.Customized {
				fmt.Printf("  * %s\n", p)
			}
		}
		for _, n := range result.Notes {
			fmt.Printf("note: %s\n", n)
		}
		return nil
	},
}

func init() {
	initCmd.Flags().StringVar(&initRefFlag, "ref", "", "Branch to follow for releases")
	initCmd.Flags().BoolVar(&initCustomizedFlag, "assume-customized", false, "Treat every existing file as customized")
}
