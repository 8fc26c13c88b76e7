package enums

// RunStatus is the terminal outcome of a phase or of the whole pipeline run.
type RunStatus string

const (
	RunStatusSuccess RunStatus = "success"
	RunStatusFailed  RunStatus = "failed"
	RunStatusSkipped RunStatus = "skipped"
)

// IsValid reports whether the value is a known RunStatus.
func (r RunStatus) IsValid() bool {
	return r == RunStatusSuccess || r == RunStatusFailed || r == RunStatusSkipped
}
