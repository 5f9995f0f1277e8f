package cmd

import (
	"fmt"
	"io"

	"github.com/jsphweid/chordsmith/strum"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(patternsCmd)
}

var patternsCmd = &cobra.Command{
	Use:   "patterns",
	Short: "Lists harmonic and strumming patterns",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		printPatterns(cmd.OutOrStdout())
	},
}

func printPatterns(w io.Writer) {
	fmt.Fprintln(w, "Harmonic patterns:")
	for _, name := range generator.Patterns() {
		fmt.Fprintf(w, "  %v\n", name)
	}
	fmt.Fprintln(w, "Strumming patterns (D down, U up, x rest):")
	for _, name := range strum.Names() {
		p, _ := strum.Lookup(name)
		fmt.Fprintf(w, "  %-10v %v\n", name, p)
	}
}
