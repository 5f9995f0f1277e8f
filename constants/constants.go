package constants

import "os"

const (
	ChordsPathEnv  = "CHORDS_PATH"
	SamplesPathEnv = "SAMPLES_PATH"
	ConfigPathEnv  = "CHORDSMITH_CONFIG"
)

const (
	DefaultChordsPath  = "data/chords.json"
	DefaultSamplesPath = "data/samples"
	DefaultConfigPath  = "chordsmith.yaml"
	DefaultAddr        = ":8080"
)

func getEnvOr(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}

func GetChordsPath() string {
	return getEnvOr(ChordsPathEnv, DefaultChordsPath)
}

func GetSamplesPath() string {
	return getEnvOr(SamplesPathEnv, DefaultSamplesPath)
}

func GetConfigPath() string {
	return getEnvOr(ConfigPathEnv, DefaultConfigPath)
}
