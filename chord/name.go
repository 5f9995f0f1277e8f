package chord

import (
	"strings"

	"github.com/pkg/errors"
)

var qualitySuffixes = []struct {
	suffix  string
	quality Quality
}{
	{"dim", QualityDiminished},
	{"°", QualityDiminished},
	{"maj", QualityMajor},
	{"min", QualityMinor},
	{"m", QualityMinor},
	{"M", QualityMajor},
}

const digits = "0123456789"

// ParseChord reads a chord label such as "C#m", "Bbdim" or "G7" into a
// triad. Numeric extensions and add/sus suffixes ("Cmaj7", "Cadd9",
// "Dsus4") are ignored, leaving the underlying triad.
func ParseChord(name string) (Triad, error) {
	root, rest, err := splitRoot(strings.Join(strings.Fields(name), ""))
	if err != nil {
		return Triad{}, errors.Wrapf(ErrInvalidChord, "%q", name)
	}

	q := QualityMajor
	for _, s := range qualitySuffixes {
		if strings.HasPrefix(rest, s.suffix) {
			q = s.quality
			rest = rest[len(s.suffix):]
			break
		}
	}
	rest = strings.TrimLeft(rest, digits)
	if after, ok := strings.CutPrefix(rest, "sus"); ok {
		rest = strings.TrimLeft(after, digits)
	}
	if after, ok := strings.CutPrefix(rest, "add"); ok && after != strings.TrimLeft(after, digits) {
		rest = strings.TrimLeft(after, digits)
	}
	if rest != "" {
		return Triad{}, errors.Wrapf(ErrInvalidChord, "%q", name)
	}
	return NewTriad(root, q), nil
}
