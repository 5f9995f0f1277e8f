package chord

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/jsphweid/chordsmith/util"
	"github.com/pkg/errors"
)

const (
	DefaultKey             = "C"
	DefaultLength          = 4
	DefaultJumpProbability = 0.2
)

// Rand is the source of uniform randomness used by the randomized
// generators. *math/rand/v2.Rand satisfies it.
type Rand interface {
	IntN(n int) int
	Float64() float64
}

type Mode string

const (
	ModeRules      Mode = "rules"
	ModePattern    Mode = "pattern"
	ModeCircleWalk Mode = "circle_walk"
	ModeDiatonic   Mode = "diatonic"
	ModeRandom     Mode = "random"
)

var Modes = []Mode{ModeRules, ModePattern, ModeCircleWalk, ModeDiatonic, ModeRandom}

// ParseMode accepts one of Modes. Empty means rules.
func ParseMode(s string) (Mode, error) {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	if m == "" {
		return ModeRules, nil
	}
	for _, known := range Modes {
		if m == known {
			return m, nil
		}
	}
	return "", errors.Wrapf(ErrUnknownMode, "%q", s)
}

// transitions lists the degrees allowed to follow each degree in
// GenerateByRules.
var transitions = [7][]int{
	0: {0, 1, 3, 4, 5},
	1: {4, 0, 2},
	2: {5, 0},
	3: {0, 4, 1},
	4: {0, 5, 3},
	5: {0, 3, 4},
	6: {0, 1},
}

var walkSteps = [3]int{1, 1, -1}

// Generator produces triads and progressions. It is immutable after
// construction and safe for concurrent use as long as each caller supplies
// its own Rand.
type Generator struct {
	chords   []string
	loadErr  error
	circle   []string
	patterns map[string][]string
}

type Option func(*Generator)

// WithChordFile loads the external chord list from a JSON array of strings.
// Failures leave the list empty; the cause is available from LoadError.
func WithChordFile(path string) Option {
	return func(g *Generator) {
		g.chords, g.loadErr = LoadChordList(path)
	}
}

func WithChordList(chords []string) Option {
	return func(g *Generator) {
		g.chords = trimAll(chords)
		g.loadErr = nil
	}
}

func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		circle:   buildCircleOfFifths(),
		patterns: commonPatterns,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// LoadChordList reads a JSON array of strings. Any other shape is an error.
func LoadChordList(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "could not read chord list")
	}
	var chords []string
	if err := json.Unmarshal(data, &chords); err != nil {
		return nil, errors.Wrapf(err, "could not decode chord list %v", path)
	}
	return trimAll(chords), nil
}

func trimAll(chords []string) []string {
	res := make([]string, 0, len(chords))
	for _, c := range chords {
		res = append(res, strings.TrimSpace(c))
	}
	return res
}

// LoadError is the reason the chord file could not be used, if any.
func (g *Generator) LoadError() error {
	return g.loadErr
}

func (g *Generator) ChordList() []string {
	res := make([]string, len(g.chords))
	copy(res, g.chords)
	return res
}

func (g *Generator) Patterns() []string {
	return util.SortedKeys(g.patterns)
}

func (g *Generator) CircleOfFifths(dir Direction) ([]string, error) {
	return orient(g.circle, dir)
}

func (g *Generator) DiatonicTriads(key string, scale Scale) ([]string, error) {
	root, err := ParseKey(key)
	if err != nil {
		return nil, err
	}
	triads, err := DiatonicTriads(root, scale)
	if err != nil {
		return nil, err
	}
	res := make([]string, len(triads))
	for i, t := range triads {
		res[i] = t.String()
	}
	return res, nil
}

func (g *Generator) RomanToChord(roman, key string, scale Scale) (string, error) {
	triads, err := g.DiatonicTriads(key, scale)
	if err != nil {
		return "", err
	}
	degree, err := ParseRoman(roman)
	if err != nil {
		return "", err
	}
	return triads[degree], nil
}

// ProgressionFromPattern maps each numeral of a named pattern onto the key.
// Unknown pattern names fail with ErrUnknownPattern.
func (g *Generator) ProgressionFromPattern(patternKey, key string, scale Scale) ([]string, error) {
	pattern, ok := g.patterns[normalizePatternKey(patternKey)]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownPattern, "%q", patternKey)
	}
	triads, err := g.DiatonicTriads(key, scale)
	if err != nil {
		return nil, err
	}
	res := make([]string, 0, len(pattern))
	for _, roman := range pattern {
		degree, err := ParseRoman(roman)
		if err != nil {
			return nil, err
		}
		res = append(res, triads[degree])
	}
	return res, nil
}

// RandomWalkOnCircle emits length notes walking the circle in dir. Each step
// may first teleport with jumpProbability; after emitting, the walk moves one
// position, forward twice as often as backward. An empty or unknown start
// begins at a random position.
func (g *Generator) RandomWalkOnCircle(rng Rand, length int, start string, dir Direction, jumpProbability float64) ([]string, error) {
	if length < 0 {
		return nil, errors.Wrapf(ErrInvalidLength, "%d", length)
	}
	if jumpProbability < 0 || jumpProbability > 1 {
		return nil, errors.Wrapf(ErrInvalidProbability, "%v", jumpProbability)
	}
	circle, err := orient(g.circle, dir)
	if err != nil {
		return nil, err
	}

	n := len(circle)
	cur := indexOf(circle, start)
	if cur < 0 {
		cur = rng.IntN(n)
	}

	res := make([]string, 0, length)
	for i := 0; i < length; i++ {
		if rng.Float64() < jumpProbability {
			cur = rng.IntN(n)
		}
		res = append(res, circle[cur])
		cur = (cur + walkSteps[rng.IntN(len(walkSteps))] + n) % n
	}
	return res, nil
}

func indexOf(circle []string, start string) int {
	if start == "" {
		return -1
	}
	for i, name := range circle {
		if name == start {
			return i
		}
	}
	// accept flat spellings and lower case
	if p, err := ParseKey(start); err == nil {
		for i, name := range circle {
			if name == p.String() {
				return i
			}
		}
	}
	return -1
}

// GenerateByRules runs a first-order Markov chain over the diatonic triads,
// always starting on the tonic.
func (g *Generator) GenerateByRules(rng Rand, key string, scale Scale, length int) ([]string, error) {
	if length < 0 {
		return nil, errors.Wrapf(ErrInvalidLength, "%d", length)
	}
	triads, err := g.DiatonicTriads(key, scale)
	if err != nil {
		return nil, err
	}

	res := make([]string, 0, length)
	current := 0
	for i := 0; i < length; i++ {
		res = append(res, triads[current])
		choices := transitions[current]
		current = choices[rng.IntN(len(choices))]
	}
	return res, nil
}

// RandomChord picks from the external chord list, or from the circle of
// fifths when the list is empty.
func (g *Generator) RandomChord(rng Rand) string {
	if len(g.chords) > 0 {
		return g.chords[rng.IntN(len(g.chords))]
	}
	return g.circle[rng.IntN(len(g.circle))]
}

// ProgressionOptions are the arguments forwarded by Progression. Zero values
// take the package defaults.
type ProgressionOptions struct {
	Key        string
	Scale      Scale
	Length     int
	PatternKey string
	Start      string
	Direction  Direction

	// nil means DefaultJumpProbability
	JumpProbability *float64
}

func (o ProgressionOptions) withDefaults() ProgressionOptions {
	if o.Key == "" {
		o.Key = DefaultKey
	}
	if o.Scale == "" {
		o.Scale = Major
	}
	if o.Length == 0 {
		o.Length = DefaultLength
	}
	if o.PatternKey == "" {
		o.PatternKey = DefaultPattern
	}
	if o.Direction == "" {
		o.Direction = Fifths
	}
	if o.JumpProbability == nil {
		p := DefaultJumpProbability
		o.JumpProbability = &p
	}
	return o
}

// Progression dispatches to the generator for mode.
func (g *Generator) Progression(rng Rand, mode Mode, opts ProgressionOptions) ([]string, error) {
	opts = opts.withDefaults()
	switch mode {
	case ModePattern:
		return g.ProgressionFromPattern(opts.PatternKey, opts.Key, opts.Scale)
	case ModeCircleWalk:
		return g.RandomWalkOnCircle(rng, opts.Length, opts.Start, opts.Direction, *opts.JumpProbability)
	case ModeDiatonic:
		return g.DiatonicTriads(opts.Key, opts.Scale)
	case ModeRandom:
		if opts.Length < 0 {
			return nil, errors.Wrapf(ErrInvalidLength, "%d", opts.Length)
		}
		res := make([]string, opts.Length)
		for i := range res {
			res[i] = g.RandomChord(rng)
		}
		return res, nil
	case "", ModeRules:
		return g.GenerateByRules(rng, opts.Key, opts.Scale, opts.Length)
	}
	return nil, errors.Wrapf(ErrUnknownMode, "%q", string(mode))
}
