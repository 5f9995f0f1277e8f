package chord

import (
	"fmt"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestPitchClassRoundTrip(t *testing.T) {
	assert := assert.New(t)
	for i, name := range NoteNames() {
		p, ok := LookupNote(name)
		assert.True(ok)
		assert.Equal(PitchClass(i), p)
		assert.Equal(name, p.String())
	}
}

func TestPitchClassAddWraps(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(PitchClass(11), PitchClass(0).Add(-1))
	assert.Equal(PitchClass(2), PitchClass(7).Add(7))
	assert.Equal(PitchClass(0), PitchClass(5).Add(-29))
	assert.Equal(10, PitchClass(2).Interval(0))
}

func TestParseKey(t *testing.T) {
	cases := []struct {
		key  string
		want string
	}{
		{"C", "C"},
		{"c", "C"},
		{" g ", "G"},
		{"F#", "F#"},
		{"f♯", "F#"},
		{"Db", "C#"},
		{"db", "C#"},
		{"DB", "C#"},
		{"E♭", "D#"},
		{"Bb", "A#"},
		{"Cb", "B"},
		{"Fb", "E"},
		{"b", "B"},
		{"Ｇ", "G"},
	}

	for _, c := range cases {
		t.Run(fmt.Sprintf("key %q", c.key), func(t *testing.T) {
			p, err := ParseKey(c.key)
			assert := assert.New(t)
			assert.NoError(err)
			assert.Equal(c.want, p.String())
		})
	}
}

func TestParseKeyRejectsGarbage(t *testing.T) {
	for _, key := range []string{"", "H", "C##", "Dbb", "Cm", "♭", "E#", "B#", "e#", "B♯"} {
		_, err := ParseKey(key)
		assert.True(t, errors.Is(err, ErrInvalidKey), "key %q", key)
	}
}
