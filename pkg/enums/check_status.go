package enums

// CheckStatus is the pass/fail outcome of one quality check dimension.
type CheckStatus string

const (
	CheckStatusPassed CheckStatus = "passed"
	CheckStatusFailed CheckStatus = "failed"
)

// CheckStatusFor returns passed when the violation count is zero.
func CheckStatusFor(violations int) CheckStatus {
	if violations == 0 {
		return CheckStatusPassed
	}
	return CheckStatusFailed
}

// IsValid reports whether the value is a known CheckStatus.
func (c CheckStatus) IsValid() bool {
	return c == CheckStatusPassed || c == CheckStatusFailed
}
