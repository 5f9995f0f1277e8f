package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/jsphweid/chordsmith/sample"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var samplesDir string

func init() {
	rootCmd.AddCommand(samplesCmd)
	samplesCmd.Flags().StringVar(&samplesDir, "dir", "", "sample directory, defaults to the configured samplesPath")
}

var samplesCmd = &cobra.Command{
	Use:   "samples <chord>...",
	Short: "Checks that every chord has an audio sample",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return checkSamples(cmd.OutOrStdout(), orDefault(samplesDir, cfg.SamplesPath), args)
	},
}

func checkSamples(w io.Writer, dir string, chords []string) error {
	lib := sample.Open(dir)
	for _, c := range chords {
		if p, ok := lib.Resolve(c); ok {
			fmt.Fprintf(w, "%-8v %v\n", c, p)
		}
	}
	if missing := lib.Missing(chords); len(missing) > 0 {
		return errors.Errorf("missing samples in %v: %v", dir, strings.Join(missing, ", "))
	}
	return nil
}
