package verify

import "time"

// Status classifies one required key against the live configuration.
type Status string

const (
	// StatusPass means the key is present and satisfies the requirement.
	StatusPass Status = "pass"
	// StatusFail means the key is present but does not satisfy it.
	StatusFail Status = "fail"
	// StatusMissing means the key is absent from the live configuration.
	StatusMissing Status = "missing"
)

// Verdict is the judgment for one required key. Verdicts are value objects:
// created once, never mutated.
type Verdict struct {
	Key      string
	Required string
	Observed string
	Status   Status
}

// Summary aggregates the verdicts of one verification run. Verdict order
// matches the declaration order of the requirement spec.
type Summary struct {
	Spec     string
	Title    string
	Verdicts []Verdict
	Pass     int
	Fail     int
	Missing  int
	Duration time.Duration
}

// Passed reports whether every requirement was satisfied.
func (s *Summary) Passed() bool {
	return s.Fail == 0 && s.Missing == 0
}

// ExitCode maps the summary onto the process exit code.
func (s *Summary) ExitCode() int {
	if s.Passed() {
		return 0
	}
	return 1
}
