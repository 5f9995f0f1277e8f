package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/bep/debounce"
	"github.com/gorilla/mux"
	"github.com/jsphweid/chordsmith/chord"
	"github.com/jsphweid/chordsmith/config"
	"github.com/jsphweid/chordsmith/midi"
	"github.com/jsphweid/chordsmith/model"
	"github.com/jsphweid/chordsmith/strum"
	"github.com/pkg/errors"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/net/netutil"
)

const maxRandomChords = 64

var serveAddr string

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address, defaults to the configured server.addr")
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the generator over HTTP",
	Long: `Serves the generator as a JSON API. Send SIGHUP to reload the chord list.

  GET  /progression   mode, key, scale, length, pattern, start, direction, jump, seed
  GET  /triads        key, scale
  GET  /chords
  GET  /chords/random n, seed
  GET  /patterns
  POST /export        {"chords": [...], "strum": "Rock", "tempo": 100}`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c := *cfg
		c.Server.Addr = orDefault(serveAddr, c.Server.Addr)
		return serve(cmd.Context(), &c)
	},
}

type server struct {
	gen       atomic.Pointer[chord.Generator]
	defaults  config.Defaults
	log       *zap.Logger
	debounced func(f func())
}

func newServer(g *chord.Generator, c *config.Config, l *zap.Logger) *server {
	s := &server{
		defaults:  c.Defaults,
		log:       l,
		debounced: debounce.New(c.Server.ReloadDebounce),
	}
	s.gen.Store(g)
	return s
}

func (s *server) routes() http.Handler {
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/progression", s.handleProgression).Methods("GET")
	router.HandleFunc("/triads", s.handleTriads).Methods("GET")
	router.HandleFunc("/chords", s.handleChords).Methods("GET")
	router.HandleFunc("/chords/random", s.handleRandomChords).Methods("GET")
	router.HandleFunc("/patterns", s.handlePatterns).Methods("GET")
	router.HandleFunc("/export", s.handleExport).Methods("POST")
	return router
}

func (s *server) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Warn("could not write response", zap.Error(err))
	}
}

func (s *server) writeError(w http.ResponseWriter, status int, err error) {
	if status >= 500 {
		s.log.Error("request failed", zap.Error(err))
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(model.ErrorResponse{Error: err.Error()})
}

func statusFor(err error) int {
	if chord.IsInvalidInput(err) ||
		errors.Is(err, strum.ErrInvalidTempo) ||
		errors.Is(err, strum.ErrInvalidGap) ||
		errors.Is(err, midi.ErrInvalidHit) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func parseSeed(v string) (*uint64, error) {
	if v == "" {
		return nil, nil
	}
	seed, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return nil, errors.New("seed must be an unsigned integer")
	}
	return &seed, nil
}

func progressionArgsFromQuery(r *http.Request) (progressionArgs, error) {
	q := r.URL.Query()
	a := progressionArgs{
		mode:      q.Get("mode"),
		key:       q.Get("key"),
		scale:     q.Get("scale"),
		pattern:   q.Get("pattern"),
		start:     q.Get("start"),
		direction: q.Get("direction"),
	}
	if v := q.Get("length"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return a, errors.New("length must be an integer")
		}
		a.length = n
	}
	if v := q.Get("jump"); v != "" {
		p, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return a, errors.New("jump must be a number")
		}
		a.jump = &p
	}
	seed, err := parseSeed(q.Get("seed"))
	if err != nil {
		return a, err
	}
	a.seed = seed
	return a, nil
}

func (s *server) handleProgression(w http.ResponseWriter, r *http.Request) {
	a, err := progressionArgsFromQuery(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	res, err := generate(s.gen.Load(), a, s.defaults)
	if err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}
	s.writeJSON(w, model.ProgressionResponse{
		Mode:   string(res.mode),
		Key:    res.opts.Key,
		Scale:  string(res.opts.Scale),
		Seed:   res.seed,
		Chords: res.chords,
	})
}

func (s *server) handleTriads(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	key := orDefault(q.Get("key"), s.defaults.Key)
	scale, err := chord.ParseScale(orDefault(q.Get("scale"), s.defaults.Scale))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	triads, err := s.gen.Load().DiatonicTriads(key, scale)
	if err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}
	s.writeJSON(w, model.TriadsResponse{Key: key, Scale: string(scale), Triads: triads})
}

func (s *server) handleChords(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, model.ChordsResponse{Chords: s.gen.Load().ChordList()})
}

func (s *server) handleRandomChords(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	n := 1
	if v := q.Get("n"); v != "" {
		var err error
		if n, err = strconv.Atoi(v); err != nil || n < 1 || n > maxRandomChords {
			s.writeError(w, http.StatusBadRequest, errors.Errorf("n must be between 1 and %d", maxRandomChords))
			return
		}
	}
	seed, err := parseSeed(q.Get("seed"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	g := s.gen.Load()
	rng, _ := newRand(seed)
	chords := make([]string, n)
	for i := range chords {
		chords[i] = g.RandomChord(rng)
	}
	s.writeJSON(w, model.ChordsResponse{Chords: chords})
}

func (s *server) handlePatterns(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, model.PatternsResponse{
		Harmonic: s.gen.Load().Patterns(),
		Strum:    strum.Names(),
	})
}

func (s *server) handleExport(w http.ResponseWriter, r *http.Request) {
	var body model.ExportRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeError(w, http.StatusBadRequest, errors.Wrap(err, "could not decode request body"))
		return
	}
	if len(body.Chords) == 0 {
		s.writeError(w, http.StatusBadRequest, errors.New("chords must not be empty"))
		return
	}

	tempo := body.Tempo
	if tempo == 0 {
		tempo = s.defaults.Tempo
	}
	octave := s.defaults.Octave
	if body.Octave != nil {
		octave = *body.Octave
	}
	gap := time.Duration(body.GapMs) * time.Millisecond

	hits, err := strum.Schedule(body.Chords, orDefault(body.Strum, s.defaults.Strum), tempo, gap)
	if err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}
	file, err := midi.Render(hits, tempo, octave)
	if err != nil {
		// unparseable chord names and out of range octaves
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	var buf bytes.Buffer
	if err := midi.Write(&buf, file); err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "audio/midi")
	w.Write(buf.Bytes())
}

func (s *server) reload(path string) {
	s.gen.Store(loadGenerator(path))
	s.log.Info("reloaded chord list",
		zap.String("path", path),
		zap.Int("chords", len(s.gen.Load().ChordList())))
}

// requestReload coalesces bursts of reload requests into one.
func (s *server) requestReload(path string) {
	s.debounced(func() { s.reload(path) })
}

func (s *server) watchReload(ctx context.Context, path string) {
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)
	for {
		select {
		case <-ctx.Done():
			return
		case <-hup:
			s.requestReload(path)
		}
	}
}

func serve(ctx context.Context, c *config.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	s := newServer(generator, c, zlog)
	handler := cors.New(cors.Options{
		AllowedOrigins: c.Server.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
	}).Handler(s.routes())

	ln, err := net.Listen("tcp", c.Server.Addr)
	if err != nil {
		return err
	}
	if c.Server.MaxConnections > 0 {
		ln = netutil.LimitListener(ln, c.Server.MaxConnections)
	}

	go s.watchReload(ctx, c.ChordsPath)

	srv := &http.Server{Handler: handler, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	zlog.Info("listening", zap.String("addr", ln.Addr().String()))
	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
