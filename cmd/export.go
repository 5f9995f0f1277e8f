package cmd

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jsphweid/chordsmith/midi"
	"github.com/jsphweid/chordsmith/sample"
	"github.com/jsphweid/chordsmith/strum"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type exportOptions struct {
	chords []string
	strum  string
	tempo  int
	octave int
	gap    time.Duration
	out    string
}

var (
	exportFlags  progressionFlags
	exportOpts   exportOptions
	exportChords string
)

func init() {
	rootCmd.AddCommand(exportCmd)
	addProgressionFlags(exportCmd, &exportFlags)
	f := exportCmd.Flags()
	f.StringVar(&exportChords, "chords", "", "comma separated chords to render instead of generating them")
	f.StringVar(&exportOpts.strum, "strum", "", "strumming pattern, defaults to the configured one")
	f.IntVar(&exportOpts.tempo, "bpm", 0, "tempo in beats per minute")
	f.IntVar(&exportOpts.octave, "octave", 0, "octave of the chord roots, 4 holds middle C")
	f.DurationVar(&exportOpts.gap, "gap", 0, "silence after each chord, must not be negative")
	f.StringVarP(&exportOpts.out, "out", "o", "", "output file, defaults to a random name")
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Renders a strummed progression to a MIDI file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := exportOpts
		if exportChords != "" {
			opts.chords = splitChords(exportChords)
		} else {
			res, err := generate(generator, exportFlags.collect(cmd), cfg.Defaults)
			if err != nil {
				return err
			}
			opts.chords = res.chords
		}
		if !cmd.Flags().Changed("octave") {
			opts.octave = cfg.Defaults.Octave
		}
		return runExport(cmd.OutOrStdout(), opts)
	},
}

func splitChords(s string) []string {
	var res []string
	for _, c := range strings.Split(s, ",") {
		if c = strings.TrimSpace(c); c != "" {
			res = append(res, c)
		}
	}
	return res
}

func runExport(w io.Writer, opts exportOptions) error {
	if len(opts.chords) == 0 {
		return errors.New("nothing to export")
	}
	opts.strum = orDefault(opts.strum, cfg.Defaults.Strum)
	if opts.tempo == 0 {
		opts.tempo = cfg.Defaults.Tempo
	}
	if opts.out == "" {
		opts.out = uuid.New().String() + ".mid"
	}

	hits, err := strum.Schedule(opts.chords, opts.strum, opts.tempo, opts.gap)
	if err != nil {
		return err
	}
	s, err := midi.Render(hits, opts.tempo, opts.octave)
	if err != nil {
		return err
	}
	if err := midi.WriteFile(opts.out, s); err != nil {
		return err
	}

	if missing := sample.Open(cfg.SamplesPath).Missing(opts.chords); len(missing) > 0 {
		zlog.Debug("chords without audio samples", zap.Strings("chords", missing))
	}
	zlog.Info("exported progression",
		zap.String("path", opts.out),
		zap.Strings("chords", opts.chords),
		zap.String("strum", opts.strum),
		zap.Int("bpm", opts.tempo))
	fmt.Fprintf(w, "%v\n%v\n", strings.Join(opts.chords, "  -  "), opts.out)
	return nil
}
