package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jsphweid/chordsmith/chord"
	"github.com/jsphweid/chordsmith/config"
	"github.com/stretchr/testify/require"
)

// setupTest points the package state at a temp dir with a small chord list.
func setupTest(t *testing.T) string {
	dir := t.TempDir()
	chordsPath := filepath.Join(dir, "chords.json")
	require.NoError(t, os.WriteFile(chordsPath, []byte(`["Em7", "Cadd9", "D"]`), 0644))
	samplesPath := filepath.Join(dir, "samples")
	require.NoError(t, os.Mkdir(samplesPath, 0755))

	cfg = config.Default()
	cfg.ChordsPath = chordsPath
	cfg.SamplesPath = samplesPath
	generator = chord.NewGenerator(chord.WithChordFile(chordsPath))
	return dir
}
