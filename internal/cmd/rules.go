package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pthm/promptly/internal/rules"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the rule catalog",
	RunE:  runRules,
}

func init() {
	RootCmd.AddCommand(rulesCmd)
}

func runRules(cmd *cobra.Command, args []string) error {
	u := GetUI()
	defs := rules.Definitions()

	if u.IsStructured() {
		return writeStructured(defs)
	}

	for _, d := range defs {
		style, _ := u.Styles.Severity(d.Severity)
		fixable := ""
		if d.Autofixable {
			fixable = u.Styles.Success.Render(" fixable")
		}
		fmt.Fprintf(u.Writer, "%s  %s  %-32s %s%s\n",
			u.Styles.Rule.Render(d.ID),
			style.Render(fmt.Sprintf("%-4s", d.Severity)),
			d.Name,
			u.Styles.Subheader.Render(string(d.Category)),
			fixable,
		)
		if verbose {
			if rule, ok := rules.Lookup(d.ID); ok {
				fmt.Fprintf(u.Writer, "      %s\n      Fix: %s\n", rule.Description, rule.Fix)
			}
		}
	}
	return nil
}
