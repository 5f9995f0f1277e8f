package chord

import (
	"strings"

	"github.com/pkg/errors"
)

type Scale string

const (
	Major Scale = "major"
	Minor Scale = "minor"
)

var (
	majorSteps = [7]int{0, 2, 4, 5, 7, 9, 11}
	minorSteps = [7]int{0, 2, 3, 5, 7, 8, 10}
)

// ParseScale accepts "major" or "minor" in any case. Empty means major.
func ParseScale(s string) (Scale, error) {
	switch Scale(strings.ToLower(strings.TrimSpace(s))) {
	case "", Major:
		return Major, nil
	case Minor:
		return Minor, nil
	}
	return "", errors.Wrapf(ErrInvalidScale, "%q", s)
}

func (s Scale) steps() ([7]int, error) {
	switch s {
	case "", Major:
		return majorSteps, nil
	case Minor:
		return minorSteps, nil
	}
	return [7]int{}, errors.Wrapf(ErrInvalidScale, "%q", string(s))
}

// Degrees returns the seven pitch classes of the scale built on root.
func (s Scale) Degrees(root PitchClass) ([7]PitchClass, error) {
	var degrees [7]PitchClass
	steps, err := s.steps()
	if err != nil {
		return degrees, err
	}
	for i, step := range steps {
		degrees[i] = root.Add(step)
	}
	return degrees, nil
}
