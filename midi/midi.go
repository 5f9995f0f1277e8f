package midi

import (
	"bytes"
	"io"
	"math"
	"os"
	"sort"
	"time"

	"github.com/jsphweid/chordsmith/chord"
	"github.com/jsphweid/chordsmith/strum"
	"github.com/pkg/errors"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

const (
	Resolution    = 960
	DefaultOctave = 3
	channel       = 0

	// assumed by readers when a file carries no tempo event
	defaultBPM = 120
)

var ErrInvalidHit = errors.New("hit has a negative offset or duration")

// ReadFile parses a standard MIDI file.
func ReadFile(path string) (s *smf.SMF, err error) {
	// smf panics on some malformed input
	// https://github.com/gomidi/midi/issues/20
	defer func() {
		if r := recover(); r != nil {
			s, err = nil, errors.Errorf("could not parse midi file %v: %v", path, r)
		}
	}()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "could not read midi file")
	}
	s, err = smf.ReadFrom(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrapf(err, "could not parse midi file %v", path)
	}
	return s, nil
}

// Info describes the notes of a file.
type Info struct {
	Tracks  int
	Notes   int
	Strokes int
	BPM     float64
	Length  time.Duration
}

// Inspect counts note ons across all tracks. Strokes counts the distinct
// ticks that start at least one note. Only the first tempo event is used to
// compute Length.
func Inspect(s *smf.SMF) Info {
	info := Info{Tracks: len(s.Tracks)}
	starts := make(map[uint64]struct{})
	var end uint64
	for _, track := range s.Tracks {
		var abs uint64
		for _, evt := range track {
			abs += uint64(evt.Delta)
			var bpm float64
			if info.BPM == 0 && evt.Message.GetMetaTempo(&bpm) {
				info.BPM = bpm
			}
			var ch, key, vel uint8
			if evt.Message.GetNoteOn(&ch, &key, &vel) && vel > 0 {
				info.Notes++
				starts[abs] = struct{}{}
			}
		}
		if abs > end {
			end = abs
		}
	}
	info.Strokes = len(starts)
	if info.BPM == 0 {
		info.BPM = defaultBPM
	}
	if mt, ok := s.TimeFormat.(smf.MetricTicks); ok {
		info.Length = mt.Duration(info.BPM, uint32(end))
	}
	return info
}

type event struct {
	tick uint32
	off  bool
	key  uint8
	vel  uint8
}

func ticks(d time.Duration, bpm int) uint32 {
	quarters := d.Seconds() * float64(bpm) / 60
	return uint32(math.Round(quarters * Resolution))
}

func velocity(volume float64) uint8 {
	v := math.Round(volume * 127)
	if v < 1 {
		return 1
	}
	if v > 127 {
		return 127
	}
	return uint8(v)
}

// keys voices the triad in close position starting at octave, where octave 4
// holds middle C.
func keys(t chord.Triad, octave int) ([3]uint8, error) {
	var res [3]uint8
	base := 12 * (octave + 1)
	prev := -1
	for i, pc := range t.Notes() {
		k := base + int(pc)
		for k <= prev {
			k += 12
		}
		if k < 0 || k > 127 {
			return res, errors.Errorf("octave %v puts %v outside the MIDI range", octave, t)
		}
		res[i] = uint8(k)
		prev = k
	}
	return res, nil
}

// Render builds a single track file from a strum schedule. Each hit sounds
// the chord's triad for the hit's duration.
func Render(hits []strum.Hit, bpm int, octave int) (*smf.SMF, error) {
	if err := strum.ValidateTempo(bpm); err != nil {
		return nil, err
	}

	voicings := make(map[string][3]uint8)
	var events []event
	for _, h := range hits {
		if h.Offset < 0 || h.Duration < 0 {
			return nil, errors.Wrapf(ErrInvalidHit, "%v at %v", h.Chord, h.Offset)
		}
		v, ok := voicings[h.Chord]
		if !ok {
			t, err := chord.ParseChord(h.Chord)
			if err != nil {
				return nil, err
			}
			if v, err = keys(t, octave); err != nil {
				return nil, err
			}
			voicings[h.Chord] = v
		}
		start := ticks(h.Offset, bpm)
		end := ticks(h.Offset+h.Duration, bpm)
		for _, k := range v {
			events = append(events,
				event{tick: start, key: k, vel: velocity(h.Volume)},
				event{tick: end, key: k, off: true},
			)
		}
	}

	// note offs before note ons on the same tick so repeated strokes retrigger
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].tick != events[j].tick {
			return events[i].tick < events[j].tick
		}
		return events[i].off && !events[j].off
	})

	var track smf.Track
	track.Add(0, smf.MetaTrackSequenceName("chordsmith"))
	track.Add(0, smf.MetaMeter(4, 4))
	track.Add(0, smf.MetaTempo(float64(bpm)))
	var last uint32
	for _, evt := range events {
		delta := evt.tick - last
		last = evt.tick
		if evt.off {
			track.Add(delta, gomidi.NoteOff(channel, evt.key))
		} else {
			track.Add(delta, gomidi.NoteOn(channel, evt.key, evt.vel))
		}
	}
	track.Close(0)

	s := smf.New()
	s.TimeFormat = smf.MetricTicks(Resolution)
	if err := s.Add(track); err != nil {
		return nil, errors.Wrap(err, "could not add track")
	}
	return s, nil
}

func Write(w io.Writer, s *smf.SMF) error {
	_, err := s.WriteTo(w)
	return errors.Wrap(err, "could not write midi")
}

func WriteFile(path string, s *smf.SMF) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "could not create %v", path)
	}
	defer f.Close()
	return Write(f, s)
}
