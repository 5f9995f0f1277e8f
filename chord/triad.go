package chord

type Quality string

const (
	QualityMajor      Quality = ""
	QualityMinor      Quality = "m"
	QualityDiminished Quality = "dim"
)

type Triad struct {
	Root  PitchClass
	Third PitchClass
	Fifth PitchClass
}

// NewTriad voices a triad of the given quality on root.
func NewTriad(root PitchClass, q Quality) Triad {
	switch q {
	case QualityMinor:
		return Triad{Root: root, Third: root.Add(3), Fifth: root.Add(7)}
	case QualityDiminished:
		return Triad{Root: root, Third: root.Add(3), Fifth: root.Add(6)}
	}
	return Triad{Root: root, Third: root.Add(4), Fifth: root.Add(7)}
}

// Quality classifies the triad by the distance of its third and fifth from
// the root. Shapes other than major, minor and diminished read as major.
func (t Triad) Quality() Quality {
	third := t.Root.Interval(t.Third)
	fifth := t.Root.Interval(t.Fifth)
	switch {
	case third == 4 && fifth == 7:
		return QualityMajor
	case third == 3 && fifth == 7:
		return QualityMinor
	case third == 3 && fifth == 6:
		return QualityDiminished
	}
	return QualityMajor
}

func (t Triad) Notes() [3]PitchClass {
	return [3]PitchClass{t.Root, t.Third, t.Fifth}
}

// String is the chord label, e.g. "C", "Am" or "Bdim".
func (t Triad) String() string {
	return t.Root.String() + string(t.Quality())
}

// DiatonicTriads stacks thirds on each degree of the scale.
func DiatonicTriads(root PitchClass, scale Scale) ([7]Triad, error) {
	var triads [7]Triad
	degrees, err := scale.Degrees(root)
	if err != nil {
		return triads, err
	}
	for i := range degrees {
		triads[i] = Triad{
			Root:  degrees[i],
			Third: degrees[(i+2)%7],
			Fifth: degrees[(i+4)%7],
		}
	}
	return triads, nil
}
