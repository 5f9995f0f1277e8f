package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/jsphweid/chordsmith/strum"
	"github.com/jsphweid/chordsmith/summary"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const randomStrum = "random"

var (
	generateFlags progressionFlags
	generateStrum string
	generateTempo int
	generateOut   string
)

func init() {
	rootCmd.AddCommand(generateCmd)
	addProgressionFlags(generateCmd, &generateFlags)
	generateCmd.Flags().StringVar(&generateStrum, "strum", "", `strumming pattern to pair with the progression, or "random"`)
	generateCmd.Flags().IntVar(&generateTempo, "bpm", 0, "tempo written to the summary")
	generateCmd.Flags().StringVarP(&generateOut, "out", "o", "", "save a text summary to this file")
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generates a chord progression",
	Long: `Generates a chord progression. Modes:
  rules        Markov chain over the diatonic triads, starting on the tonic
  pattern      a named roman numeral pattern mapped onto the key
  circle_walk  a random walk around the circle of fifths (or fourths)
  diatonic     the seven triads of the key
  random       chords drawn from the chord list`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGenerate(cmd.OutOrStdout(), generateFlags.collect(cmd))
	},
}

func runGenerate(w io.Writer, a progressionArgs) error {
	res, err := generate(generator, a, cfg.Defaults)
	if err != nil {
		return err
	}
	zlog.Debug("generated progression",
		zap.String("mode", string(res.mode)),
		zap.String("key", res.opts.Key),
		zap.Uint64("seed", res.seed),
		zap.Strings("chords", res.chords))

	fmt.Fprintln(w, strings.Join(res.chords, "  -  "))

	strumName, err := pickStrum(generateStrum, res.seed)
	if err != nil {
		return err
	}
	if strumName != "" {
		p, _ := strum.Lookup(strumName)
		fmt.Fprintf(w, "Strum: %v (%v)\n", strumName, p)
	}

	if generateOut == "" {
		return nil
	}
	tempo := generateTempo
	if tempo == 0 {
		tempo = cfg.Defaults.Tempo
	}
	if err := strum.ValidateTempo(tempo); err != nil {
		return err
	}
	s := summary.Summary{
		Key:          res.opts.Key,
		Mode:         string(res.mode),
		Progression:  res.chords,
		StrumPattern: strumName,
		Tempo:        tempo,
	}
	if err := summary.Save(generateOut, s); err != nil {
		return err
	}
	zlog.Info("saved summary", zap.String("path", generateOut))
	return nil
}

// pickStrum resolves the --strum flag. "random" draws from the pattern table
// with the progression's seed.
func pickStrum(name string, seed uint64) (string, error) {
	switch name {
	case "":
		return "", nil
	case randomStrum:
		rng, _ := newRand(&seed)
		return strum.Random(rng), nil
	}
	if _, ok := strum.Lookup(name); !ok {
		return "", errors.Errorf("unknown strumming pattern %q, see the patterns command", name)
	}
	return name, nil
}
