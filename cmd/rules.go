// =============================================================================
// C Struct to Rust Converter - Rules Command
// =============================================================================
//
// This file defines the 'rules' command, which lists the rewrite rules in the
// order they are applied, with each search pattern and replacement template.
//
// COMMAND USAGE:
//   structconv rules
//
// =============================================================================

package cmd

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/c-struct-to-rust/internal/rewriter"
)

// rulesCmd prints the substitution rules in the order they are applied.
var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the substitution rules in application order",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return printRules(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(rulesCmd)
}

func printRules(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tNAME\tPATTERN\tTEMPLATE")
	for i, rule := range rewriter.Rules() {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", i+1, rule.Name, rule.Pattern, strconv.Quote(rule.Template))
	}
	return tw.Flush()
}
