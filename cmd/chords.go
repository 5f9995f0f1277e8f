package cmd

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var (
	chordsRandom int
	chordsSeed   uint64
)

func init() {
	rootCmd.AddCommand(chordsCmd)
	chordsCmd.Flags().IntVarP(&chordsRandom, "random", "r", 0, "print this many random chords instead of the list")
	chordsCmd.Flags().Uint64Var(&chordsSeed, "seed", 0, "seed for --random")
}

var chordsCmd = &cobra.Command{
	Use:   "chords",
	Short: "Lists the available chords",
	Long:  `Lists the chords loaded from the chord list file, or draws random ones from it.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var seed *uint64
		if cmd.Flags().Changed("seed") {
			seed = &chordsSeed
		}
		return runChords(cmd.OutOrStdout(), chordsRandom, seed)
	},
}

func runChords(w io.Writer, n int, seed *uint64) error {
	if n < 0 {
		return errors.Errorf("--random must not be negative, got %d", n)
	}
	if n > 0 {
		rng, _ := newRand(seed)
		for i := 0; i < n; i++ {
			fmt.Fprintln(w, generator.RandomChord(rng))
		}
		return nil
	}

	list := generator.ChordList()
	if len(list) == 0 {
		fmt.Fprintf(w, "No chords loaded from %v\n", cfg.ChordsPath)
		return nil
	}
	for _, c := range list {
		fmt.Fprintln(w, c)
	}
	return nil
}
