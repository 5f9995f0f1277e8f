package summary

import (
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
)

const DefaultFilename = "progression.txt"

var ErrEmptyProgression = errors.New("no chords to save, generate a progression first")

type Summary struct {
	Key          string
	Mode         string
	Progression  []string
	StrumPattern string
	Tempo        int
}

func Render(s Summary) string {
	pattern := s.StrumPattern
	if pattern == "" {
		pattern = "not generated"
	}

	lines := []string{
		fmt.Sprintf("Key: %v", s.Key),
		fmt.Sprintf("Mode: %v", s.Mode),
		"",
		"Chord progression:",
		"  " + strings.Join(s.Progression, " - "),
		"",
		"Strumming pattern:",
		"  " + pattern,
		"",
		fmt.Sprintf("Tempo: %v BPM", s.Tempo),
		"",
		"------------------------------------",
	}
	return strings.Join(lines, "\n")
}

func Save(path string, s Summary) error {
	if len(s.Progression) == 0 {
		return ErrEmptyProgression
	}
	if err := os.WriteFile(path, []byte(Render(s)), 0644); err != nil {
		return errors.Wrapf(err, "could not save summary to %v", path)
	}
	return nil
}
