package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/x/term"
	"github.com/ruminaider/upsync/internal/commands"
	"github.com/spf13/cobra"
)

var (
	updateYesFlag        bool
	updateVersionFlag    string
	updateCustomizedFlag bool
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Apply the newest release to tracked files",
	RunE: func(cmd *cobra.Command, args []string) error {
		w, plan, err := commands.PlanUpdate(".", updateVersionFlag, updateCustomizedFlag)
		if err != nil {
			return err
		}

		pendingStates := plan.Pending()
		if len(pendingStates) == 0 {
			fmt.Printf("Already up to date with %s.\n", plan.Version)
			return nil
		}

		fmt.Printf("Updating to %s:\n", plan.Version)
		for _, st := range pendingStates {
			fmt.Printf("  %-8s %s\n", st.Action, st.Path)
		}
		fmt.Println()

		if !updateYesFlag {
			// Prompt only when attached to a terminal; scripted runs need --yes.
			if !term.IsTerminal(os.Stdin.Fd()) {
				return fmt.Errorf("refusing to modify files non-interactively; re-run with --yes")
			}
			var proceed bool
			confirm := huh.NewConfirm().
				Title(fmt.Sprintf("Apply %d change(s)?", len(pendingStates))).
				Value(&proceed)
			if err := huh.NewForm(huh.NewGroup(confirm)).Run(); err != nil {
				return fmt.Errorf("prompt cancelled: %w", err)
			}
			if !proceed {
				fmt.Println("Update cancelled.")
				return nil
			}
		}

		result, err := commands.ApplyUpdate(w, plan)
		if err != nil {
			return err
		}

		printUpdateResult(result)
		return nil
	},
}

func printUpdateResult(result *commands.ApplyResult) {
	if !result.Changed() {
		fmt.Println("Nothing to apply.")
		return
	}

	report := func(title string, paths []string) {
		if len(paths) == 0 {
			return
		}
		fmt.Println(title)
		for _, p := range paths {
			fmt.Printf("  %s\n", p)
		}
	}
	report("Added:", result.Added)
	report("Updated:", result.Updated)
	report("Merged cleanly:", result.Merged)
	report("Removed:", result.Removed)
	report("Preserved customizations:", result.Preserved)

	for _, n := range result.Notes {
		fmt.Printf("note: %s\n", n)
	}

	if len(result.Conflicted) > 0 {
		fmt.Println("\nConflicts need your attention:")
		for _, f := range result.Conflicted {
			fmt.Printf("  ! %s (%d region(s))\n", f.Path, f.Conflicts)
		}
		fmt.Println("\nEdit the conflict markers, then run 'upsync resolve accept'.")
		fmt.Println("To discard the update for these files, run 'upsync resolve reject'.")
	}

	if len(result.Updated)+len(result.Removed)+len(result.Conflicted) > 0 {
		fmt.Printf("\nBackups saved under .upsync/backups/%s/\n", result.Stamp)
	}
}

func init() {
	updateCmd.Flags().BoolVarP(&updateYesFlag, "yes", "y", false, "Apply without prompting")
	updateCmd.Flags().StringVar(&updateVersionFlag, "version", "", "Update to a specific release instead of the newest")
	updateCmd.Flags().BoolVar(&updateCustomizedFlag, "assume-customized", false, "Treat every tracked file as customized for this run")
}
