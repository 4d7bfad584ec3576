package main

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ruminaider/upsync/cmd/upsync/tui"
	"github.com/ruminaider/upsync/internal/commands"
	"github.com/ruminaider/upsync/internal/diffreport"
	"github.com/spf13/cobra"
)

var (
	diffVersionFlag string
	diffPagerFlag   bool
	diffFullFlag    bool
)

var diffCmd = &cobra.Command{
	Use:   "diff <file>",
	Short: "Show how a tracked file differs from upstream",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := commands.DiffFile(".", args[0], diffVersionFlag)
		if err != nil {
			return err
		}

		if !d.Report.HasChanges() {
			fmt.Printf("%s matches upstream %s.\n", d.Path, d.Version)
			return nil
		}

		output := renderDiff(d)
		if diffPagerFlag {
			model := tui.NewPager(fmt.Sprintf("%s @ %s", d.Path, d.Version), output)
			_, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
			return err
		}
		fmt.Println(output)
		return nil
	},
}

// renderDiff picks the presentation: short documents read better as one
// two-sided block, long ones as a sectioned report.
func renderDiff(d *commands.FileDiff) string {
	lines := len(strings.Split(d.Current, "\n"))
	if in := len(strings.Split(d.Incoming, "\n")); in > lines {
		lines = in
	}
	if !diffFullFlag && lines > diffreport.FullDiffThreshold {
		return diffreport.Render(*d.Report, d.Path)
	}
	return diffreport.FormatConflictBlock(d.Current, d.Incoming, d.Path)
}

func init() {
	diffCmd.Flags().StringVar(&diffVersionFlag, "version", "", "Compare against a specific release")
	diffCmd.Flags().BoolVar(&diffPagerFlag, "pager", false, "View in a scrollable pager")
	diffCmd.Flags().BoolVar(&diffFullFlag, "full", false, "Always show the whole file, not a sectioned report")
}
