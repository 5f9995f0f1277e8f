package config

import (
	"io"
	"os"
	"time"

	"github.com/jsphweid/chordsmith/chord"
	"github.com/jsphweid/chordsmith/constants"
	"github.com/jsphweid/chordsmith/strum"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Defaults are used by commands and requests that leave a value unset.
type Defaults struct {
	Key     string `yaml:"key"`
	Scale   string `yaml:"scale"`
	Mode    string `yaml:"mode"`
	Length  int    `yaml:"length"`
	Pattern string `yaml:"pattern"`
	Strum   string `yaml:"strum"`
	Tempo   int    `yaml:"tempo"`
	Octave  int    `yaml:"octave"`
}

type Server struct {
	Addr           string        `yaml:"addr"`
	MaxConnections int           `yaml:"maxConnections"`
	ReloadDebounce time.Duration `yaml:"reloadDebounce"`
	AllowedOrigins []string      `yaml:"allowedOrigins"`
}

type Config struct {
	ChordsPath  string   `yaml:"chordsPath"`
	SamplesPath string   `yaml:"samplesPath"`
	Debug       bool     `yaml:"debug"`
	Defaults    Defaults `yaml:"defaults"`
	Server      Server   `yaml:"server"`
}

func Default() *Config {
	return &Config{
		ChordsPath:  constants.GetChordsPath(),
		SamplesPath: constants.GetSamplesPath(),
		Defaults: Defaults{
			Key:     chord.DefaultKey,
			Scale:   string(chord.Major),
			Mode:    string(chord.ModeRules),
			Length:  chord.DefaultLength,
			Pattern: chord.DefaultPattern,
			Strum:   strum.DefaultPattern,
			Tempo:   strum.DefaultTempo,
			Octave:  3,
		},
		Server: Server{
			Addr:           constants.DefaultAddr,
			MaxConnections: 64,
			ReloadDebounce: 500 * time.Millisecond,
			AllowedOrigins: []string{"*"},
		},
	}
}

// Load reads path on top of the defaults. A missing file yields the
// defaults. CHORDS_PATH and SAMPLES_PATH override the file.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, errors.Wrapf(err, "could not read config %v", path)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "could not parse config %v", path)
	}

	if v := os.Getenv(constants.ChordsPathEnv); v != "" {
		cfg.ChordsPath = v
	}
	if v := os.Getenv(constants.SamplesPathEnv); v != "" {
		cfg.SamplesPath = v
	}
	return cfg, cfg.Validate()
}

// Validate checks the defaults with the same parsers the commands use.
func (c *Config) Validate() error {
	if _, err := chord.ParseKey(c.Defaults.Key); err != nil {
		return errors.Wrap(err, "defaults.key")
	}
	if _, err := chord.ParseScale(c.Defaults.Scale); err != nil {
		return errors.Wrap(err, "defaults.scale")
	}
	if _, err := chord.ParseMode(c.Defaults.Mode); err != nil {
		return errors.Wrap(err, "defaults.mode")
	}
	if c.Defaults.Length < 0 {
		return errors.Wrapf(chord.ErrInvalidLength, "defaults.length %d", c.Defaults.Length)
	}
	if err := strum.ValidateTempo(c.Defaults.Tempo); err != nil {
		return errors.Wrap(err, "defaults.tempo")
	}
	if c.Server.MaxConnections < 0 {
		return errors.Errorf("server.maxConnections must not be negative, got %d", c.Server.MaxConnections)
	}
	return nil
}

// Write encodes c as YAML.
func (c *Config) Write(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return errors.Wrap(err, "could not encode config")
	}
	return enc.Close()
}

// Save writes c to path. An existing file is only replaced when overwrite
// is set.
func (c *Config) Save(path string, overwrite bool) error {
	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !overwrite {
		flags |= os.O_EXCL
	}
	f, err := os.OpenFile(path, flags, 0644)
	if err != nil {
		return errors.Wrapf(err, "could not create config %v", path)
	}
	defer f.Close()
	return c.Write(f)
}
