package main

import (
	"fmt"

	"github.com/ruminaider/upsync/internal/commands"
	"github.com/spf13/cobra"
)

var statusVersionFlag string

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show tracked files against the newest release",
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := commands.Status(".", statusVersionFlag)
		if err != nil {
			return err
		}

		fmt.Printf("Comparing against %s\n\n", result.Version)

		if len(result.UpdateAvail) > 0 {
			fmt.Println("UPDATE AVAILABLE (pristine, will be overwritten)")
			for _, p := range result.UpdateAvail {
				fmt.Printf("  ↑ %s\n", p)
			}
			fmt.Println()
		}

		if len(result.MergeNeeded) > 0 {
			fmt.Println("MERGE NEEDED (customized, upstream also changed)")
			for _, p := range result.MergeNeeded {
				fmt.Printf("  ⇄ %s\n", p)
			}
			fmt.Println()
		}

		if len(result.NewUpstream) > 0 {
			fmt.Println("NEW UPSTREAM FILES")
			for _, p := range result.NewUpstream {
				fmt.Printf("  + %s\n", p)
			}
			fmt.Println()
		}

		if len(result.RemovedUpstream) > 0 {
			fmt.Println("REMOVED UPSTREAM")
			for _, p := range result.RemovedUpstream {
				fmt.Printf("  - %s\n", p)
			}
			fmt.Println()
		}

		if len(result.Customized) > 0 {
			fmt.Println("CUSTOMIZED (preserved as-is)")
			for _, p := range result.Customized {
				fmt.Printf("  * %s\n", p)
			}
			fmt.Println()
		}

		if !result.HasPendingWork() {
			fmt.Println("Everything is up to date.")
		} else {
			fmt.Println("Run 'upsync update' to apply.")
		}
		return nil
	},
}

func init() {
	statusCmd.Flags().StringVar(&statusVersionFlag, "version", "", "Compare against a specific release instead of the newest")
}
