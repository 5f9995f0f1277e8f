// Package strum describes guitar strumming patterns and turns a chord
// progression into timed strokes.
package strum

import (
	"time"

	"github.com/jsphweid/chordsmith/util"
	"github.com/pkg/errors"
)

type Step byte

const (
	Down Step = 'D'
	Up   Step = 'U'
	Rest Step = 'x'
)

// Pattern is one bar of eighth-note steps.
type Pattern []Step

const (
	DefaultPattern = "Down-Up"
	PalmMute       = "Palm Mute"

	MinTempo     = 40
	MaxTempo     = 220
	DefaultTempo = 100

	downVolume = 1.0
	upVolume   = 0.6
	muteFactor = 0.4
)

var (
	ErrInvalidTempo = errors.New("tempo out of range")
	ErrInvalidGap   = errors.New("gap must not be negative")
)

var patterns = map[string]Pattern{
	"Down-Up": {Down, Up, Down, Up, Down, Up, Down, Up},
	"Rock":    {Down, Rest, Down, Up, Down, Rest, Down, Up},
	"Ballad":  {Down, Rest, Rest, Up, Down, Rest, Rest, Up},
	"Gallop":  {Down, Down, Up, Down, Down, Up, Down, Up},
	"Shuffle": {Down, Rest, Up, Down, Rest, Up, Down, Rest},
	PalmMute:  {Down, Rest, Down, Rest, Down, Rest, Down, Rest},
}

func Names() []string {
	return util.SortedKeys(patterns)
}

func Lookup(name string) (Pattern, bool) {
	p, ok := patterns[name]
	if !ok {
		return nil, false
	}
	res := make(Pattern, len(p))
	copy(res, p)
	return res, true
}

// Random picks a pattern name uniformly.
func Random(rng interface{ IntN(int) int }) string {
	names := Names()
	return names[rng.IntN(len(names))]
}

func (p Pattern) String() string {
	b := make([]byte, len(p))
	for i, s := range p {
		b[i] = byte(s)
	}
	return string(b)
}

func ValidateTempo(bpm int) error {
	if bpm < MinTempo || bpm > MaxTempo {
		return errors.Wrapf(ErrInvalidTempo, "%d not within [%d, %d]", bpm, MinTempo, MaxTempo)
	}
	return nil
}

// StepDuration spreads steps over one 4/4 bar, so eight steps are eighth
// notes.
func StepDuration(bpm, steps int) time.Duration {
	beat := time.Minute / time.Duration(bpm)
	return beat * 4 / time.Duration(steps)
}

// Hit is a single stroke of a chord.
type Hit struct {
	Chord    string
	Stroke   Step
	Offset   time.Duration
	Duration time.Duration
	Volume   float64
}

// Schedule lays out every chord of progression as one bar of the named
// pattern, with gap of silence after each bar. Unknown pattern names fall
// back to DefaultPattern.
func Schedule(progression []string, name string, bpm int, gap time.Duration) ([]Hit, error) {
	if err := ValidateTempo(bpm); err != nil {
		return nil, err
	}
	if gap < 0 {
		return nil, errors.Wrapf(ErrInvalidGap, "%v", gap)
	}
	pattern, ok := patterns[name]
	if !ok {
		name = DefaultPattern
		pattern = patterns[DefaultPattern]
	}
	muted := name == PalmMute
	step := StepDuration(bpm, len(pattern))

	var hits []Hit
	var offset time.Duration
	for _, c := range progression {
		for _, s := range pattern {
			if s != Rest {
				hits = append(hits, Hit{
					Chord:    c,
					Stroke:   s,
					Offset:   offset,
					Duration: step,
					Volume:   volume(s, muted),
				})
			}
			offset += step
		}
		offset += gap
	}
	return hits, nil
}

func volume(s Step, muted bool) float64 {
	v := downVolume
	if s == Up {
		v = upVolume
	}
	if muted {
		v *= muteFactor
	}
	return util.Clamp(v, 0, 1)
}
