package chord

import (
	"strings"
	"unicode"

	"github.com/pkg/errors"
)

const DefaultPattern = "I-vi-IV-V"

var commonPatterns = map[string][]string{
	"I-IV-V":        {"I", "IV", "V"},
	"I-vi-IV-V":     {"I", "vi", "IV", "V"},
	"ii-V-I":        {"ii", "V", "I"},
	"I-IV-I-V-IV-I": {"I", "IV", "I", "V", "IV", "I"},
	"I-IV-V-I":      {"I", "IV", "V", "I"},
	"I-V-vi-IV":     {"I", "V", "vi", "IV"},
}

var romanDegrees = map[string]int{
	"I": 0, "II": 1, "III": 2, "IV": 3, "V": 4, "VI": 5, "VII": 6,
}

var dashReplacer = strings.NewReplacer("–", "-", "—", "-", " ", "")

func normalizePatternKey(key string) string {
	return dashReplacer.Replace(strings.TrimSpace(key))
}

// ParseRoman maps a roman numeral to a zero-based scale degree. Only the
// leading letters are read, so extensions such as "V7" resolve to "V".
func ParseRoman(roman string) (int, error) {
	base := roman
	for i, r := range roman {
		if !unicode.IsLetter(r) {
			base = roman[:i]
			break
		}
	}
	degree, ok := romanDegrees[strings.ToUpper(base)]
	if !ok {
		return 0, errors.Wrapf(ErrInvalidRoman, "%q", roman)
	}
	return degree, nil
}
