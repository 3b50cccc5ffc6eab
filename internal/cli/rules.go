package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/flowlint/flowlint/pkg/rules"
)

// newRulesCmd creates the rules command for inspecting the registry.
func newRulesCmd() *cobra.Command {
	var interactive bool

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List registered rules and their defaults",
		Long: `List every registered rule with its default severity and thresholds.

With --interactive, opens a browsable list showing each rule's description,
default configuration, and research citation.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if interactive {
				return runRuleBrowser()
			}
			printRuleTable()
			return nil
		},
	}

	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "browse rules interactively")
	return cmd
}

// printRuleTable prints one line per registered rule, in evaluation order.
func printRuleTable() {
	for _, r := range rules.Registry() {
		state := "on"
		if !r.Defaults.Enabled {
			state = "off"
		}
		threshold := ""
		if r.Defaults.Threshold > 0 {
			threshold = fmt.Sprintf("threshold %v", r.Defaults.Threshold)
		}
		fmt.Printf("%-30s %-8s %-4s %s\n",
			styleRuleID.Render(r.ID),
			severityStyle(r.Defaults.Severity).Render(string(r.Defaults.Severity)),
			StyleDim.Render(state),
			StyleDim.Render(threshold))
	}
}

// runRuleBrowser starts the interactive bubbletea rule browser.
func runRuleBrowser() error {
	model := newRuleListModel(rules.Registry())
	_, err := tea.NewProgram(model).Run()
	return err
}
