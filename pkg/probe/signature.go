package probe

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
)

// DefaultVersion marks a version that could not be determined.
const DefaultVersion = -1

// Signature is the self-reported identity string of an environment,
// typically its user agent. Substring tests are case-insensitive.
type Signature struct {
	raw    string
	folded string
}

// NewSignature wraps s. The input is never modified.
func NewSignature(s string) Signature {
	return Signature{raw: s, folded: cases.Fold().String(s)}
}

func (s Signature) String() string { return s.raw }

// Empty reports whether nothing was self-reported.
func (s Signature) Empty() bool { return strings.TrimSpace(s.raw) == "" }

// Contains reports whether any of the tokens occurs in the signature.
func (s Signature) Contains(tokens ...string) bool {
	for _, t := range tokens {
		if t != "" && strings.Contains(s.folded, cases.Fold().String(t)) {
			return true
		}
	}
	return false
}

// Matches reports whether re matches the signature.
// Patterns that need case-insensitivity carry the (?i) flag.
func (s Signature) Matches(re *regexp.Regexp) bool {
	return re != nil && re.MatchString(s.raw)
}

// Submatch returns the first capture group of re, if any.
func (s Signature) Submatch(re *regexp.Regexp) (string, bool) {
	if re == nil {
		return "", false
	}
	m := re.FindStringSubmatch(s.raw)
	if len(m) < 2 {
		return "", false
	}
	return m[1], true
}

// Int parses the first capture group of re as a decimal integer,
// falling back to DefaultVersion.
func (s Signature) Int(re *regexp.Regexp) float64 {
	m, ok := s.Submatch(re)
	if !ok {
		return DefaultVersion
	}
	n, err := strconv.Atoi(leadingDigits(m))
	if err != nil {
		return DefaultVersion
	}
	return float64(n)
}

// Float parses the first capture group of re as a decimal number,
// falling back to DefaultVersion. Underscore separators ("6_1") count as dots.
func (s Signature) Float(re *regexp.Regexp) float64 {
	m, ok := s.Submatch(re)
	if !ok {
		return DefaultVersion
	}
	return ParseVersion(m)
}

// ParseVersion reads the leading number of v, accepting "_" as the decimal
// separator. Unparseable input yields DefaultVersion.
func ParseVersion(v string) float64 {
	v = strings.Replace(strings.TrimSpace(v), "_", ".", 1)
	end := 0
	dot := false
	for end < len(v) {
		c := v[end]
		if c == '.' && !dot {
			dot = true
		} else if c < '0' || c > '9' {
			break
		}
		end++
	}
	f, err := strconv.ParseFloat(strings.TrimSuffix(v[:end], "."), 64)
	if err != nil {
		return DefaultVersion
	}
	return f
}

// FormatVersion renders a version the shortest way: 5 → "5", 5.1 → "5.1".
func FormatVersion(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func leadingDigits(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return s[:i]
		}
	}
	return s
}
