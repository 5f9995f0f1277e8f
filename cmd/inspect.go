package cmd

import (
	"fmt"
	"io"

	"github.com/jsphweid/chordsmith/midi"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <file.mid>",
	Short: "Inspects a MIDI file",
	Long:  `Prints the track, note and stroke counts of a MIDI file, e.g. one written by export.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return inspect(cmd.OutOrStdout(), args[0])
	},
}

func inspect(w io.Writer, path string) error {
	s, err := midi.ReadFile(path)
	if err != nil {
		return err
	}
	info := midi.Inspect(s)
	fmt.Fprintf(w, "tracks:  %v\n", info.Tracks)
	fmt.Fprintf(w, "notes:   %v\n", info.Notes)
	fmt.Fprintf(w, "strokes: %v\n", info.Strokes)
	fmt.Fprintf(w, "bpm:     %v\n", info.BPM)
	fmt.Fprintf(w, "length:  %v\n", info.Length)
	return nil
}
