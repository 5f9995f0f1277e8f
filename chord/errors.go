package chord

import "github.com/pkg/errors"

var (
	ErrInvalidKey         = errors.New("invalid key")
	ErrInvalidScale       = errors.New("invalid scale")
	ErrInvalidRoman       = errors.New("invalid roman numeral")
	ErrUnknownPattern     = errors.New("unknown pattern")
	ErrInvalidDirection   = errors.New("invalid direction")
	ErrInvalidLength      = errors.New("invalid length")
	ErrInvalidProbability = errors.New("jump probability must be within [0, 1]")
	ErrUnknownMode        = errors.New("unknown mode")
	ErrInvalidChord       = errors.New("invalid chord name")
)

// IsInvalidInput reports whether err was caused by bad caller input rather
// than an internal failure.
func IsInvalidInput(err error) bool {
	for _, target := range []error{
		ErrInvalidKey,
		ErrInvalidScale,
		ErrInvalidRoman,
		ErrUnknownPattern,
		ErrInvalidDirection,
		ErrInvalidLength,
		ErrInvalidProbability,
		ErrUnknownMode,
		ErrInvalidChord,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
