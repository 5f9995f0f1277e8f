package sample

import (
	"io/fs"
	"os"
	"strings"
)

var flatToSharp = map[string]string{
	"Db": "C#",
	"Eb": "D#",
	"Gb": "F#",
	"Ab": "G#",
	"Bb": "A#",
}

// Library finds per-chord sample files such as "C#m.wav" in a directory.
type Library struct {
	fsys fs.FS
}

func NewLibrary(fsys fs.FS) *Library {
	return &Library{fsys: fsys}
}

func Open(dir string) *Library {
	return NewLibrary(os.DirFS(dir))
}

// Normalize drops whitespace and respells a leading flat as its sharp.
func Normalize(chord string) string {
	name := strings.Join(strings.Fields(chord), "")
	if len(name) >= 2 {
		if sharp, ok := flatToSharp[name[:2]]; ok {
			return sharp + name[2:]
		}
	}
	return name
}

func candidates(name string) []string {
	return []string{
		name + ".wav",
		name + ".ogg",
		strings.ToLower(name) + ".wav",
		strings.ToUpper(name) + ".wav",
	}
}

// Resolve returns the first existing sample for chord.
func (l *Library) Resolve(chord string) (string, bool) {
	name := Normalize(chord)
	if name == "" {
		return "", false
	}
	for _, c := range candidates(name) {
		if info, err := fs.Stat(l.fsys, c); err == nil && !info.IsDir() {
			return c, true
		}
	}
	return "", false
}

func (l *Library) Has(chord string) bool {
	_, ok := l.Resolve(chord)
	return ok
}

// Missing lists the chords of progression that have no sample, in order.
func (l *Library) Missing(progression []string) []string {
	var res []string
	for _, c := range progression {
		if !l.Has(c) {
			res = append(res, c)
		}
	}
	return res
}
