package cmd

import (
	"github.com/jsphweid/chordsmith/chord"
	"github.com/jsphweid/chordsmith/config"
	"github.com/jsphweid/chordsmith/constants"
	"github.com/jsphweid/chordsmith/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	cfgPath   string
	debugFlag bool

	cfg       *config.Config
	zlog      = zap.NewNop()
	generator *chord.Generator
)

var rootCmd = &cobra.Command{
	Use:   "chordsmith",
	Short: "Guitar chord progression generator",
	Long: `Generates guitar chord progressions from scales, roman numeral patterns,
walks around the circle of fifths and simple harmonic rules. Progressions can
be paired with a strumming pattern, saved as a text summary, checked against a
sample library or rendered to MIDI.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", constants.GetConfigPath(), "path to a YAML config file")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "enable debug logging")
}

func setup(cmd *cobra.Command, args []string) error {
	c, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	if debugFlag {
		c.Debug = true
	}
	cfg = c

	l, err := logger.New(cfg.Debug)
	if err != nil {
		return err
	}
	zlog = l

	generator = loadGenerator(cfg.ChordsPath)
	return nil
}

// loadGenerator builds a generator around the chord list at path. A missing
// or broken list only costs the random mode its vocabulary.
func loadGenerator(path string) *chord.Generator {
	g := chord.NewGenerator(chord.WithChordFile(path))
	if err := g.LoadError(); err != nil {
		zlog.Debug("chord list unavailable, using circle of fifths",
			zap.String("path", path), zap.Error(err))
	} else {
		zlog.Debug("loaded chord list",
			zap.String("path", path), zap.Int("chords", len(g.ChordList())))
	}
	return g
}

func Execute() {
	defer func() { _ = zlog.Sync() }()
	cobra.CheckErr(rootCmd.Execute())
}
