package main

import (
	"fmt"

	"github.com/ruminaider/upsync/internal/commands"
	"github.com/spf13/cobra"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "List or settle pending merge conflicts",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, p, err := commands.PendingConflicts(".")
		if err != nil {
			return err
		}
		if p.IsEmpty() {
			fmt.Println("No pending conflicts.")
			return nil
		}

		fmt.Printf("Pending conflicts from %s (since %s):\n", p.UpstreamVersion, p.PendingSince)
		for _, f := range p.Files {
			fmt.Printf("  ! %s (%d region(s))\n", f.Path, f.Conflicts)
		}
		fmt.Println("\nEdit the markers, then 'upsync resolve accept' to keep your edits")
		fmt.Println("or 'upsync resolve reject' to restore the pre-update copies.")
		return nil
	},
}

var resolveAcceptCmd = &cobra.Command{
	Use:   "accept",
	Short: "Keep the edited files and clear the conflicts",
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := commands.Accept(".")
		if err != nil {
			return err
		}
		fmt.Printf("Accepted %d file(s):\n", len(result.Accepted))
		for _, p := range result.Accepted {
			fmt.Printf("  %s\n", p)
		}
		return nil
	},
}

var resolveRejectCmd = &cobra.Command{
	Use:   "reject",
	Short: "Restore the pre-update copies and clear the conflicts",
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := commands.Reject(".")
		if err != nil {
			return err
		}
		fmt.Printf("Restored %d file(s) from backup:\n", len(result.Restored))
		for _, p := range result.Restored {
			fmt.Printf("  %s\n", p)
		}
		return nil
	},
}

func init() {
	resolveCmd.AddCommand(resolveAcceptCmd)
	resolveCmd.AddCommand(resolveRejectCmd)
}
