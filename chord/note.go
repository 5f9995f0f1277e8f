package chord

import (
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"
	"golang.org/x/text/unicode/norm"
)

// PitchClass is a note irrespective of octave, 0 (C) through 11 (B).
type PitchClass uint8

var sharpNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

var noteToPitch = func() map[string]PitchClass {
	m := make(map[string]PitchClass, len(sharpNames))
	for i, name := range sharpNames {
		m[name] = PitchClass(i)
	}
	return m
}()

func (p PitchClass) String() string {
	return sharpNames[p%12]
}

// Add moves p by the given number of semitones, wrapping in both directions.
func (p PitchClass) Add(semitones int) PitchClass {
	return PitchClass(((int(p)+semitones)%12 + 12) % 12)
}

// Interval is the ascending distance in semitones from p to q.
func (p PitchClass) Interval(q PitchClass) int {
	return ((int(q)-int(p))%12 + 12) % 12
}

// NoteNames returns the twelve sharp-spelled note names starting at C.
func NoteNames() []string {
	names := make([]string, len(sharpNames))
	copy(names, sharpNames[:])
	return names
}

// LookupNote resolves an exact sharp-spelled name such as "F#".
func LookupNote(name string) (PitchClass, bool) {
	p, ok := noteToPitch[name]
	return p, ok
}

// ParseKey resolves a key name to its pitch class. The letter is matched
// case-insensitively and may carry one sharp (#, ♯) or flat (b, ♭) marker.
// Sharps are only accepted where the result is one of the twelve sharp
// names, so E# and B# are invalid. Flats resolve to the enharmonic sharp
// below, so "Db" and "C#" are the same key.
func ParseKey(key string) (PitchClass, error) {
	root, rest, err := splitRoot(key)
	if err != nil {
		return 0, err
	}
	if rest != "" {
		return 0, errors.Wrapf(ErrInvalidKey, "%q", key)
	}
	return root, nil
}

// splitRoot reads a note letter plus an optional accidental from the start
// of name and returns the remainder untouched.
func splitRoot(name string) (PitchClass, string, error) {
	s := strings.TrimSpace(norm.NFKC.String(name))
	if s == "" {
		return 0, "", errors.Wrapf(ErrInvalidKey, "%q", name)
	}
	letter := strings.ToUpper(s[:1])
	root, ok := noteToPitch[letter]
	if !ok {
		return 0, "", errors.Wrapf(ErrInvalidKey, "%q", name)
	}
	rest := s[1:]
	switch {
	case strings.HasPrefix(rest, "#"), strings.HasPrefix(rest, "♯"):
		// E# and B# have no sharp spelling
		sharp, ok := noteToPitch[letter+"#"]
		if !ok {
			return 0, "", errors.Wrapf(ErrInvalidKey, "%q", name)
		}
		_, size := utf8.DecodeRuneInString(rest)
		return sharp, rest[size:], nil
	case strings.HasPrefix(rest, "♭"):
		return root.Add(-1), rest[len("♭"):], nil
	case strings.HasPrefix(rest, "b"), rest == "B":
		return root.Add(-1), rest[1:], nil
	}
	return root, rest, nil
}
