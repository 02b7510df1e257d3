package domain

import (
	"strings"

	dErrors "sotcredit/pkg/domain-errors"
)

// Placeholder is the literal upstream agents emit when they could not extract a
// value. It is treated exactly like an absent value.
const Placeholder = "I'm not sure"

// IsBlank reports whether s carries no usable value (empty, whitespace or the
// extraction placeholder).
func IsBlank(s string) bool {
	s = strings.TrimSpace(s)
	return s == "" || s == Placeholder
}

// AccountRef is a parsed customer account identifier. Opco is empty when only a
// bare account number was supplied.
type AccountRef struct {
	Opco   string
	Number string
}

// Complete reports whether both halves of the identifier are known.
func (r AccountRef) Complete() bool {
	return r.Opco != "" && r.Number != ""
}

// AccountID builds the canonical "OPC-NUMBER" form. Only valid on complete refs.
func (r AccountRef) AccountID() AccountID {
	return AccountID(r.Opco + "-" + r.Number)
}

// ParseAccountRef accepts the three identifier shapes customers use:
//
//	"OPC-12345"  hyphenated, 3-char opco, 5-6 digit number
//	"OPC12345"   concatenated, alphabetic opco, 8-9 chars total
//	"12345"      bare 5-6 digit number (opco resolved elsewhere)
//
// ok is false when s matches none of them.
func ParseAccountRef(s string) (ref AccountRef, ok bool) {
	if IsBlank(s) {
		return AccountRef{}, false
	}
	s = strings.TrimSpace(s)

	if opco, number, found := strings.Cut(s, "-"); found {
		if len(opco) == 3 && isAccountNumber(number) {
			return AccountRef{Opco: opco, Number: number}, true
		}
		return AccountRef{}, false
	}

	switch len(s) {
	case 8, 9:
		if isAlpha(s[:3]) && isAccountNumber(s[3:]) {
			return AccountRef{Opco: s[:3], Number: s[3:]}, true
		}
	case 5, 6:
		if isDigits(s) {
			return AccountRef{Number: s}, true
		}
	}
	return AccountRef{}, false
}

// AccountID is the canonical "OPC-NUMBER" account identifier.
type AccountID string

// ParseAccountID validates a canonical account identifier.
//
// Errors: returns CodeInvalidInput when s is not in hyphenated form or is missing
// either half.
func ParseAccountID(s string) (AccountID, error) {
	s = strings.TrimSpace(s)
	opco, number, found := strings.Cut(s, "-")
	if !found || opco == "" || number == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "account id must be in OPCO-NUMBER form")
	}
	return AccountID(s), nil
}

// Opco returns the operating-company half of the identifier.
func (a AccountID) Opco() string {
	opco, _, _ := strings.Cut(string(a), "-")
	return opco
}

// CustomerNumber returns the account-number half of the identifier.
func (a AccountID) CustomerNumber() string {
	_, number, _ := strings.Cut(string(a), "-")
	return number
}

// String returns the string representation of the account id.
func (a AccountID) String() string {
	return string(a)
}

// IsNil returns true if the account id is empty.
func (a AccountID) IsNil() bool {
	return a == ""
}

func isAccountNumber(s string) bool {
	return (len(s) == 5 || len(s) == 6) && isDigits(s)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func isAlpha(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i] | 0x20
		if c < 'a' || c > 'z' {
			return false
		}
	}
	return true
}
