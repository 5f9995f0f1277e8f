package strum

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNames(t *testing.T) {
	assert.Equal(t, []string{"Ballad", "Down-Up", "Gallop", "Palm Mute", "Rock", "Shuffle"}, Names())
}

func TestLookupReturnsCopy(t *testing.T) {
	p, ok := Lookup("Rock")
	require.True(t, ok)
	assert.Equal(t, "DxDUDxDU", p.String())

	p[0] = Rest
	again, _ := Lookup("Rock")
	assert.Equal(t, Down, again[0])

	_, ok = Lookup("Polka")
	assert.False(t, ok)
}

func TestStepDuration(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(300*time.Millisecond, StepDuration(100, 8))
	assert.Equal(250*time.Millisecond, StepDuration(120, 8))
	assert.Equal(500*time.Millisecond, StepDuration(120, 4))
}

func TestScheduleDownUp(t *testing.T) {
	hits, err := Schedule([]string{"C", "G"}, DefaultPattern, 120, 0)
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Len(hits, 16)
	assert.Equal("C", hits[0].Chord)
	assert.Equal(Down, hits[0].Stroke)
	assert.Equal(1.0, hits[0].Volume)
	assert.Equal(Up, hits[1].Stroke)
	assert.Equal(0.6, hits[1].Volume)
	assert.Equal(250*time.Millisecond, hits[1].Offset)
	assert.Equal("G", hits[8].Chord)
	assert.Equal(2*time.Second, hits[8].Offset)
}

func TestScheduleSkipsRestsAndAddsGap(t *testing.T) {
	hits, err := Schedule([]string{"Am", "F"}, "Ballad", 60, time.Second)
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Len(hits, 8)
	assert.Equal(1500*time.Millisecond, hits[1].Offset)
	// bar of 4s plus a 1s gap
	assert.Equal(5*time.Second, hits[4].Offset)
	assert.Equal("F", hits[4].Chord)
}

func TestSchedulePalmMute(t *testing.T) {
	hits, err := Schedule([]string{"E"}, PalmMute, 100, 0)
	require.NoError(t, err)

	assert.Len(t, hits, 4)
	for _, h := range hits {
		assert.InDelta(t, 0.4, h.Volume, 1e-9)
	}
}

func TestScheduleUnknownPatternFallsBack(t *testing.T) {
	hits, err := Schedule([]string{"D"}, "Polka", 100, 0)
	require.NoError(t, err)
	assert.Len(t, hits, 8)
}

func TestScheduleRejectsTempo(t *testing.T) {
	_, err := Schedule([]string{"D"}, "Rock", 10, 0)
	assert.True(t, errors.Is(err, ErrInvalidTempo))

	_, err = Schedule([]string{"D"}, "Rock", 300, 0)
	assert.True(t, errors.Is(err, ErrInvalidTempo))
}

func TestScheduleRejectsNegativeGap(t *testing.T) {
	hits, err := Schedule([]string{"C", "G"}, DefaultPattern, 100, -5*time.Second)
	assert.True(t, errors.Is(err, ErrInvalidGap))
	assert.Nil(t, hits)
}

func TestRandom(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 1))
	for i := 0; i < 10; i++ {
		_, ok := Lookup(Random(rng))
		assert.True(t, ok)
	}
}
