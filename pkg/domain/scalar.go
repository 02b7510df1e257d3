package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Scalar is an upstream JSON scalar kept in its received textual form.
// Upstream services send quantities as numbers or strings (and sometimes null),
// so records keep the text and parse it once at construction.
type Scalar struct {
	Text    string
	Present bool
}

// ScalarOf returns a present scalar holding text.
func ScalarOf(text string) Scalar {
	return Scalar{Text: text, Present: true}
}

// IntScalar returns a present scalar holding n.
func IntScalar(n int) Scalar {
	return Scalar{Text: strconv.Itoa(n), Present: true}
}

// UnmarshalJSON accepts strings, numbers and booleans; null leaves the scalar absent.
func (s *Scalar) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*s = Scalar{}
		return nil
	}
	switch data[0] {
	case '"':
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return err
		}
		*s = ScalarOf(text)
	case '{', '[':
		return fmt.Errorf("scalar value expected, got %s", data[:1])
	default:
		*s = ScalarOf(string(data))
	}
	return nil
}

// MarshalJSON writes integers as numbers, other present values as strings and
// absent values as null.
func (s Scalar) MarshalJSON() ([]byte, error) {
	if !s.Present {
		return []byte("null"), nil
	}
	if _, err := strconv.Atoi(s.Text); err == nil {
		return []byte(s.Text), nil
	}
	return json.Marshal(s.Text)
}

// Int parses the scalar as an integer. Integral decimals such as "3.0" are
// accepted; fractional values, values outside the int range and non-numeric
// text are errors.
func (s Scalar) Int() (int, error) {
	text := strings.TrimSpace(s.Text)
	if n, err := strconv.Atoi(text); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, fmt.Errorf("%q is not an integer", s.Text)
	}
	// -math.MinInt is exact as a float64; math.MaxInt is not.
	if f < math.MinInt || f >= -math.MinInt {
		return 0, fmt.Errorf("%q is out of integer range", s.Text)
	}
	return int(f), nil
}

// StrictIntOr accepts only integer text (surrounding blanks allowed) and
// returns fallback for anything else, including "3.0".
func (s Scalar) StrictIntOr(fallback int) int {
	if !s.Present {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(s.Text))
	if err != nil {
		return fallback
	}
	return n
}

// IntOr parses the scalar, returning fallback when it is absent or not an integer.
func (s Scalar) IntOr(fallback int) int {
	if !s.Present {
		return fallback
	}
	n, err := s.Int()
	if err != nil {
		return fallback
	}
	return n
}

// String returns the received text.
func (s Scalar) String() string {
	return s.Text
}
