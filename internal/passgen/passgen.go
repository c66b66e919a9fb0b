// Package passgen generates password candidates and scores their
// strength.
package passgen

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math"
	"math/big"
	"sort"
)

// Character classes with visually similar characters (iI1loLO0)
// removed.
const (
	lowerChars  = "abcdefghjkmnpqrstuvwxyz"
	upperChars  = "ABCDEFGHJKMNPQRSTUVWXYZ"
	digitChars  = "23456789"
	symbolChars = "!@#$%^&*()-_=+[]{}:,.?"
)

// Params selects the length and character classes of a generated
// password. Lower and upper case letters are always included.
type Params struct {
	Length  int
	Digits  bool
	Symbols bool
}

// Generate produces a random password with at least one character from
// every selected class.
func Generate(p Params) (string, error) {
	classes := [][]byte{[]byte(lowerChars), []byte(upperChars)}
	if p.Digits {
		classes = append(classes, []byte(digitChars))
	}
	if p.Symbols {
		classes = append(classes, []byte(symbolChars))
	}
	if p.Length < len(classes) {
		return "", fmt.Errorf("length %d cannot fit %d character classes", p.Length, len(classes))
	}

	var pool []byte
	for _, class := range classes {
		pool = append(pool, class...)
	}

	// One character per class first, the rest from the full pool.
	password := make([]byte, 0, p.Length)
	for _, class := range classes {
		char, err := randomFrom(class)
		if err != nil {
			return "", err
		}
		password = append(password, char)
	}
	for len(password) < p.Length {
		char, err := randomFrom(pool)
		if err != nil {
			return "", err
		}
		password = append(password, char)
	}

	if err := shuffle(password); err != nil {
		return "", err
	}
	return string(password), nil
}

func randomFrom(set []byte) (byte, error) {
	index, err := randomInt(len(set))
	if err != nil {
		return 0, err
	}
	return set[index], nil
}

func shuffle(chars []byte) error {
	for i := len(chars) - 1; i > 0; i-- {
		j, err := randomInt(i + 1)
		if err != nil {
			return err
		}
		chars[i], chars[j] = chars[j], chars[i]
	}
	return nil
}

func randomInt(n int) (int, error) {
	if n <= 0 {
		return 0, errors.New("empty character set")
	}
	value, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0, fmt.Errorf("read random bytes: %w", err)
	}
	return int(value.Int64()), nil
}

// Score rates a password from 0 to 100 based on its length and the
// character classes it draws from.
func Score(password string) float64 {
	if password == "" {
		return 0
	}

	var hasLower, hasUpper, hasDigit, hasSymbol bool
	for _, char := range password {
		switch {
		case char >= 'a' && char <= 'z':
			hasLower = true
		case char >= 'A' && char <= 'Z':
			hasUpper = true
		case char >= '0' && char <= '9':
			hasDigit = true
		default:
			hasSymbol = true
		}
	}

	pool := 0.0
	if hasLower {
		pool += 26
	}
	if hasUpper {
		pool += 26
	}
	if hasDigit {
		pool += 10
	}
	if hasSymbol {
		pool += 22
	}

	bits := float64(len(password)) * math.Log2(pool)
	return math.Min(100, bits/1.1)
}

// Label maps a score to its human-readable strength.
func Label(score float64) string {
	switch {
	case score < 20:
		return "Very dangerous"
	case score < 40:
		return "Dangerous"
	case score < 60:
		return "Very weak"
	case score < 80:
		return "Weak"
	case score < 90:
		return "Good"
	case score < 95:
		return "Strong"
	case score < 99:
		return "Very strong"
	default:
		return "Heat death"
	}
}

// Suggestion is a generated password candidate with its strength.
type Suggestion struct {
	Password string
	Score    float64
}

// Label returns the strength label for the suggestion.
func (s Suggestion) Label() string {
	return Label(s.Score)
}

// presets are the parameter sets suggestions are drawn from, strongest
// variants first.
var presets = []Params{
	{Length: 25, Digits: true, Symbols: true},
	{Length: 25, Digits: true, Symbols: false},
	{Length: 20, Digits: true, Symbols: true},
	{Length: 16, Digits: true, Symbols: true},
	{Length: 16, Digits: true, Symbols: false},
	{Length: 10, Digits: true, Symbols: true},
	{Length: 8, Digits: true, Symbols: false},
	{Length: 8, Digits: false, Symbols: false},
}

// Suggestions generates one candidate per preset, strongest first.
func Suggestions() ([]Suggestion, error) {
	suggestions := make([]Suggestion, 0, len(presets))
	for _, preset := range presets {
		password, err := Generate(preset)
		if err != nil {
			return nil, err
		}
		suggestions = append(suggestions, Suggestion{Password: password, Score: Score(password)})
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Score > suggestions[j].Score
	})
	return suggestions, nil
}
