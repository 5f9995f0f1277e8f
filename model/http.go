package model

type ProgressionResponse struct {
	Mode   string   `json:"mode"`
	Key    string   `json:"key"`
	Scale  string   `json:"scale"`
	Seed   uint64   `json:"seed"`
	Chords []string `json:"chords"`
}

type TriadsResponse struct {
	Key    string   `json:"key"`
	Scale  string   `json:"scale"`
	Triads []string `json:"triads"`
}

type ChordsResponse struct {
	Chords []string `json:"chords"`
}

type PatternsResponse struct {
	Harmonic []string `json:"harmonic"`
	Strum    []string `json:"strum"`
}

type ExportRequestBody struct {
	Chords []string `json:"chords"`
	Strum  string   `json:"strum"`
	Tempo  int      `json:"tempo"`
	Octave *int     `json:"octave"`

	// Gap between bars in milliseconds
	GapMs int `json:"gap_ms"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
}
