package chord

import (
	"strings"

	"github.com/pkg/errors"
)

type Direction string

const (
	Fifths  Direction = "fifths"
	Fourths Direction = "fourths"
)

// ParseDirection accepts "fifths" or "fourths" in any case. Empty means
// fifths.
func ParseDirection(s string) (Direction, error) {
	switch Direction(strings.ToLower(strings.TrimSpace(s))) {
	case "", Fifths:
		return Fifths, nil
	case Fourths:
		return Fourths, nil
	}
	return "", errors.Wrapf(ErrInvalidDirection, "%q", s)
}

// buildCircleOfFifths walks up by fifths from C until a pitch class repeats.
func buildCircleOfFifths() []string {
	var circle []string
	seen := make(map[PitchClass]bool)
	for cur := PitchClass(0); !seen[cur]; cur = cur.Add(7) {
		seen[cur] = true
		circle = append(circle, cur.String())
	}
	return circle
}

// orient returns the circle read in the given direction. Fourths is the
// circle of fifths reversed.
func orient(circle []string, dir Direction) ([]string, error) {
	out := make([]string, len(circle))
	switch dir {
	case "", Fifths:
		copy(out, circle)
	case Fourths:
		for i, name := range circle {
			out[len(circle)-1-i] = name
		}
	default:
		return nil, errors.Wrapf(ErrInvalidDirection, "%q", string(dir))
	}
	return out, nil
}
