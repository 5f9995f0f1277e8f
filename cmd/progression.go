package cmd

import (
	"math/rand/v2"

	"github.com/jsphweid/chordsmith/chord"
	"github.com/jsphweid/chordsmith/config"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// maxLength bounds the number of chords a single request may ask for.
const maxLength = 256

// progressionArgs are the user facing knobs shared by the CLI and the HTTP
// API. Empty values fall back to the configured defaults.
type progressionArgs struct {
	mode      string
	key       string
	scale     string
	length    int
	pattern   string
	start     string
	direction string
	jump      *float64
	seed      *uint64
}

type progressionFlags struct {
	args progressionArgs
	jump float64
	seed uint64
}

func addProgressionFlags(cmd *cobra.Command, f *progressionFlags) {
	flags := cmd.Flags()
	flags.StringVarP(&f.args.mode, "mode", "m", "", "one of rules, pattern, circle_walk, diatonic, random")
	flags.StringVarP(&f.args.key, "key", "k", "", "key, e.g. C, F# or Bb")
	flags.StringVarP(&f.args.scale, "scale", "s", "", "major or minor")
	flags.IntVarP(&f.args.length, "length", "n", 0, "number of chords")
	flags.StringVarP(&f.args.pattern, "pattern", "p", "", "harmonic pattern for pattern mode, e.g. I-vi-IV-V")
	flags.StringVar(&f.args.start, "start", "", "starting note for circle_walk")
	flags.StringVar(&f.args.direction, "direction", "", "fifths or fourths for circle_walk")
	flags.Float64Var(&f.jump, "jump", chord.DefaultJumpProbability, "chance to jump anywhere on the circle per step")
	flags.Uint64Var(&f.seed, "seed", 0, "seed for reproducible output")
}

// collect copies the optional flags into args only when they were given.
func (f *progressionFlags) collect(cmd *cobra.Command) progressionArgs {
	a := f.args
	if cmd.Flags().Changed("jump") {
		jump := f.jump
		a.jump = &jump
	}
	if cmd.Flags().Changed("seed") {
		seed := f.seed
		a.seed = &seed
	}
	return a
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

func (a progressionArgs) resolve(d config.Defaults) (chord.Mode, chord.ProgressionOptions, error) {
	var opts chord.ProgressionOptions

	mode, err := chord.ParseMode(orDefault(a.mode, d.Mode))
	if err != nil {
		return "", opts, err
	}
	scale, err := chord.ParseScale(orDefault(a.scale, d.Scale))
	if err != nil {
		return "", opts, err
	}
	dir, err := chord.ParseDirection(a.direction)
	if err != nil {
		return "", opts, err
	}

	opts = chord.ProgressionOptions{
		Key:             orDefault(a.key, d.Key),
		Scale:           scale,
		Length:          a.length,
		PatternKey:      orDefault(a.pattern, d.Pattern),
		Start:           a.start,
		Direction:       dir,
		JumpProbability: a.jump,
	}
	if opts.Length == 0 {
		opts.Length = d.Length
	}
	if opts.Length > maxLength {
		return "", opts, errors.Wrapf(chord.ErrInvalidLength, "%d is more than %d", opts.Length, maxLength)
	}
	return mode, opts, nil
}

// newRand seeds a PCG source from seed, or randomly when seed is nil. The
// seed used is returned so results can be reproduced.
func newRand(seed *uint64) (*rand.Rand, uint64) {
	s := rand.Uint64()
	if seed != nil {
		s = *seed
	}
	return rand.New(rand.NewPCG(s, s)), s
}

type progressionResult struct {
	mode   chord.Mode
	opts   chord.ProgressionOptions
	seed   uint64
	chords []string
}

func generate(g *chord.Generator, a progressionArgs, d config.Defaults) (progressionResult, error) {
	mode, opts, err := a.resolve(d)
	if err != nil {
		return progressionResult{}, err
	}
	rng, seed := newRand(a.seed)
	chords, err := g.Progression(rng, mode, opts)
	if err != nil {
		return progressionResult{}, err
	}
	return progressionResult{mode: mode, opts: opts, seed: seed, chords: chords}, nil
}
