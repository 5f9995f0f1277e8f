package cmd

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jsphweid/chordsmith/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestServer(t *testing.T) *server {
	setupTest(t)
	cfg.Server.ReloadDebounce = 10 * time.Millisecond
	return newServer(generator, cfg, zap.NewNop())
}

func do(t *testing.T, s *server, method, target string, body io.Reader) *http.Response {
	req := httptest.NewRequest(method, target, body)
	w := httptest.NewRecorder()
	s.routes().ServeHTTP(w, req)
	return w.Result()
}

func decode[A any](t *testing.T, resp *http.Response) A {
	var v A
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func TestProgressionPattern(t *testing.T) {
	s := newTestServer(t)
	resp := do(t, s, http.MethodGet, "/progression?mode=pattern&key=C&pattern=I-vi-IV-V", nil)

	assert := assert.New(t)
	assert.Equal(200, resp.StatusCode)
	body := decode[model.ProgressionResponse](t, resp)
	assert.Equal("pattern", body.Mode)
	assert.Equal("major", body.Scale)
	assert.Equal([]string{"C", "Am", "F", "G"}, body.Chords)
}

func TestProgressionSeedIsReproducible(t *testing.T) {
	s := newTestServer(t)
	first := decode[model.ProgressionResponse](t, do(t, s, http.MethodGet, "/progression?key=G&length=8&seed=5", nil))
	second := decode[model.ProgressionResponse](t, do(t, s, http.MethodGet, "/progression?key=G&length=8&seed=5", nil))

	assert := assert.New(t)
	assert.Equal(uint64(5), first.Seed)
	assert.Equal(first.Chords, second.Chords)
	assert.Len(first.Chords, 8)
	assert.Equal("G", first.Chords[0])
}

func TestProgressionUsesDefaults(t *testing.T) {
	s := newTestServer(t)
	body := decode[model.ProgressionResponse](t, do(t, s, http.MethodGet, "/progression", nil))

	assert := assert.New(t)
	assert.Equal("rules", body.Mode)
	assert.Equal("C", body.Key)
	assert.Len(body.Chords, 4)
	assert.Equal("C", body.Chords[0])
}

func TestProgressionBadRequests(t *testing.T) {
	s := newTestServer(t)
	targets := []string{
		"/progression?key=H",
		"/progression?mode=pattern&pattern=I-II-III",
		"/progression?mode=bebop",
		"/progression?scale=lydian",
		"/progression?length=abc",
		"/progression?length=-3",
		"/progression?length=100000",
		"/progression?mode=random&length=2000000000",
		"/progression?key=E%23",
		"/progression?mode=circle_walk&jump=2",
		"/progression?mode=circle_walk&direction=up",
		"/progression?seed=-1",
	}

	for _, target := range targets {
		t.Run(target, func(t *testing.T) {
			resp := do(t, s, http.MethodGet, target, nil)
			assert.Equal(t, 400, resp.StatusCode)
			body := decode[model.ErrorResponse](t, resp)
			assert.NotEmpty(t, body.Error)
		})
	}
}

func TestTriads(t *testing.T) {
	s := newTestServer(t)
	resp := do(t, s, http.MethodGet, "/triads?key=Db", nil)

	assert.Equal(t, 200, resp.StatusCode)
	body := decode[model.TriadsResponse](t, resp)
	assert.Equal(t, []string{"C#", "D#m", "Fm", "F#", "G#", "A#m", "Cdim"}, body.Triads)
}

func TestChords(t *testing.T) {
	s := newTestServer(t)
	body := decode[model.ChordsResponse](t, do(t, s, http.MethodGet, "/chords", nil))
	assert.Equal(t, []string{"Em7", "Cadd9", "D"}, body.Chords)
}

func TestRandomChords(t *testing.T) {
	s := newTestServer(t)
	body := decode[model.ChordsResponse](t, do(t, s, http.MethodGet, "/chords/random?n=5&seed=1", nil))

	assert.Len(t, body.Chords, 5)
	for _, c := range body.Chords {
		assert.Contains(t, []string{"Em7", "Cadd9", "D"}, c)
	}

	resp := do(t, s, http.MethodGet, "/chords/random?n=0", nil)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestPatterns(t *testing.T) {
	s := newTestServer(t)
	body := decode[model.PatternsResponse](t, do(t, s, http.MethodGet, "/patterns", nil))

	assert.Contains(t, body.Harmonic, "I-vi-IV-V")
	assert.Contains(t, body.Strum, "Palm Mute")
}

func TestExport(t *testing.T) {
	s := newTestServer(t)
	reqBody := `{"chords": ["C", "Am", "F", "G"], "strum": "Rock", "tempo": 90}`
	resp := do(t, s, http.MethodPost, "/export", bytes.NewBufferString(reqBody))

	assert := assert.New(t)
	assert.Equal(200, resp.StatusCode)
	assert.Equal("audio/midi", resp.Header.Get("Content-Type"))
	data, _ := io.ReadAll(resp.Body)
	assert.Equal("MThd", string(data[:4]))
}

func TestExportBadRequests(t *testing.T) {
	s := newTestServer(t)
	bodies := []string{
		`not json`,
		`{"chords": []}`,
		`{"chords": ["Hdim"]}`,
		`{"chords": ["C"], "tempo": 999}`,
		`{"chords": ["C"], "octave": 12}`,
		`{"chords": ["C", "G"], "gap_ms": -5000}`,
	}
	for _, b := range bodies {
		resp := do(t, s, http.MethodPost, "/export", bytes.NewBufferString(b))
		assert.Equal(t, 400, resp.StatusCode, b)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	s := newTestServer(t)
	resp := do(t, s, http.MethodPost, "/progression", nil)
	assert.Equal(t, 405, resp.StatusCode)
}

func TestReloadIsDebounced(t *testing.T) {
	s := newTestServer(t)
	path := filepath.Join(t.TempDir(), "chords.json")
	require.NoError(t, os.WriteFile(path, []byte(`["A", "E"]`), 0644))

	for i := 0; i < 3; i++ {
		s.requestReload(path)
	}

	assert.Eventually(t, func() bool {
		list := s.gen.Load().ChordList()
		return len(list) == 2 && list[0] == "A"
	}, time.Second, 5*time.Millisecond)
}
