package routine

import (
	"errors"
	"fmt"
)

// Sentinel errors for routine construction and sheet loading.
var (
	// ErrLength indicates a routine without exactly Length skills.
	ErrLength = errors.New("routine must have exactly 10 skills")
	// ErrBrokenChain indicates a skill that does not take off from the previous landing.
	ErrBrokenChain = errors.New("skill does not take off where the previous skill landed")
	// ErrUnknownFormat indicates a sheet file extension that is neither TOML nor YAML.
	ErrUnknownFormat = errors.New("unknown sheet format")
)

// SkillError reports a problem with one skill of a routine.
type SkillError struct {
	Index    int // zero-based position in the routine
	Notation string
	Err      error
}

func (e *SkillError) Error() string {
	return fmt.Sprintf("skill %d (%q): %v", e.Index+1, e.Notation, e.Err)
}

func (e *SkillError) Unwrap() error {
	return e.Err
}
