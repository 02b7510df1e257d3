package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "sotcredit/pkg/domain-errors"
)

// TestParseAccountRef_Shapes validates the three accepted identifier shapes and
// the rejection of everything else.
func TestParseAccountRef_Shapes(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  AccountRef
		ok    bool
	}{
		{"hyphenated five digits", "ABC-12345", AccountRef{Opco: "ABC", Number: "12345"}, true},
		{"hyphenated six digits", "067-123456", AccountRef{Opco: "067", Number: "123456"}, true},
		{"hyphenated with whitespace", "  ABC-12345 ", AccountRef{Opco: "ABC", Number: "12345"}, true},
		{"concatenated", "ABC12345", AccountRef{Opco: "ABC", Number: "12345"}, true},
		{"concatenated six digits", "ABC123456", AccountRef{Opco: "ABC", Number: "123456"}, true},
		{"bare number", "12345", AccountRef{Number: "12345"}, true},
		{"bare six digit number", "123456", AccountRef{Number: "123456"}, true},
		{"hyphenated short number", "ABC-1234", AccountRef{}, false},
		{"hyphenated long opco", "ABCD-12345", AccountRef{}, false},
		{"hyphenated non-digit number", "ABC-12a45", AccountRef{}, false},
		{"concatenated numeric opco", "12312345", AccountRef{}, false},
		{"four digits", "1234", AccountRef{}, false},
		{"placeholder", Placeholder, AccountRef{}, false},
		{"empty", "", AccountRef{}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ParseAccountRef(tc.input)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestAccountID(t *testing.T) {
	t.Run("splits into opco and customer number", func(t *testing.T) {
		accountID, err := ParseAccountID("ABC-12345")
		require.NoError(t, err)
		assert.Equal(t, "ABC", accountID.Opco())
		assert.Equal(t, "12345", accountID.CustomerNumber())
	})

	t.Run("rejects missing half", func(t *testing.T) {
		_, err := ParseAccountID("ABC-")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects unhyphenated form", func(t *testing.T) {
		_, err := ParseAccountID("ABC12345")
		require.Error(t, err)
	})

	t.Run("complete ref builds canonical id", func(t *testing.T) {
		ref := AccountRef{Opco: "ABC", Number: "12345"}
		assert.True(t, ref.Complete())
		assert.Equal(t, AccountID("ABC-12345"), ref.AccountID())
	})
}

func TestNormalizeSplitCode(t *testing.T) {
	assert.Equal(t, SplitCodeSplit, NormalizeSplitCode("S"))
	assert.Equal(t, SplitCodeCase, NormalizeSplitCode("CS"))
	assert.Equal(t, SplitCodeCase, NormalizeSplitCode(""))
	assert.Equal(t, SplitCodeCase, NormalizeSplitCode("s"))
	assert.Equal(t, SplitCodeCase, NormalizeSplitCode("EA"))
}

func TestScalar(t *testing.T) {
	decode := func(t *testing.T, raw string) Scalar {
		t.Helper()
		var s Scalar
		require.NoError(t, json.Unmarshal([]byte(raw), &s))
		return s
	}

	t.Run("number", func(t *testing.T) {
		s := decode(t, `12`)
		n, err := s.Int()
		require.NoError(t, err)
		assert.Equal(t, 12, n)
	})

	t.Run("quoted number", func(t *testing.T) {
		n, err := decode(t, `"7"`).Int()
		require.NoError(t, err)
		assert.Equal(t, 7, n)
	})

	t.Run("integral decimal", func(t *testing.T) {
		n, err := decode(t, `3.0`).Int()
		require.NoError(t, err)
		assert.Equal(t, 3, n)
	})

	t.Run("null is absent", func(t *testing.T) {
		s := decode(t, `null`)
		assert.False(t, s.Present)
		assert.Equal(t, 5, s.IntOr(5))
	})

	t.Run("non-numeric text is an error", func(t *testing.T) {
		s := decode(t, `"three"`)
		assert.True(t, s.Present)
		_, err := s.Int()
		require.Error(t, err)
		assert.Equal(t, 0, s.IntOr(0))
	})

	t.Run("fractional value is an error", func(t *testing.T) {
		_, err := decode(t, `2.5`).Int()
		require.Error(t, err)
	})

	t.Run("whole numbers beyond int range are errors", func(t *testing.T) {
		for _, raw := range []string{`1e20`, `-1e20`, `"9223372036854775808"`, `9.223372036854775807e18`} {
			_, err := decode(t, raw).Int()
			assert.Error(t, err, raw)
		}
	})

	t.Run("strict parse takes only integer text", func(t *testing.T) {
		assert.Equal(t, 3, decode(t, `" 3 "`).StrictIntOr(0))
		assert.Equal(t, 4, decode(t, `4`).StrictIntOr(0))
		assert.Equal(t, 0, decode(t, `"3.0"`).StrictIntOr(0))
		assert.Equal(t, 0, decode(t, `3.0`).StrictIntOr(0))
		assert.Equal(t, 0, decode(t, `null`).StrictIntOr(0))
	})

	t.Run("objects are rejected", func(t *testing.T) {
		var s Scalar
		require.Error(t, json.Unmarshal([]byte(`{"a":1}`), &s))
	})

	t.Run("marshal keeps integers numeric", func(t *testing.T) {
		out, err := json.Marshal(struct {
			Q Scalar `json:"q"`
			R Scalar `json:"r"`
			S Scalar `json:"s"`
		}{IntScalar(4), ScalarOf("x"), Scalar{}})
		require.NoError(t, err)
		assert.JSONEq(t, `{"q":4,"r":"x","s":null}`, string(out))
	})
}
