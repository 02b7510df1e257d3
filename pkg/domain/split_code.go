package domain

// SplitCode indicates whether an item ships as a split case or a full case.
// Invariant: the value is always exactly SplitCodeSplit or SplitCodeCase.
type SplitCode string

const (
	SplitCodeSplit SplitCode = "S"
	SplitCodeCase  SplitCode = "CS"
)

// NormalizeSplitCode maps any upstream value onto the two supported codes.
// Only the exact value "S" is a split; everything else, including absent, is a case.
func NormalizeSplitCode(raw string) SplitCode {
	if raw == string(SplitCodeSplit) {
		return SplitCodeSplit
	}
	return SplitCodeCase
}

// String returns the string representation of the split code.
func (c SplitCode) String() string {
	return string(c)
}
