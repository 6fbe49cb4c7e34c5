// Package judge scores a judged performance of a routine: execution marks
// from one or five judges, horizontal displacement (HD) deductions, and time
// of flight (TOF).
package judge

import (
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"slices"
	"strings"

	"github.com/papapumpkin/somersault/internal/routine"
)

// Panel sizes.
const (
	SingleJudge = 1
	FullPanel   = 5
)

// Mark limits.
const (
	MaxExecution = 0.5
	MaxHD        = 0.3
	MaxTOF       = 5.0 // seconds per skill
)

// Sentinel errors for sheet validation.
var (
	// ErrMarkRange indicates a mark outside its allowed range or step.
	ErrMarkRange = errors.New("mark out of range")
	// ErrPanelSize indicates a five-judge sheet without five rows of marks.
	ErrPanelSize = errors.New("five-judge panel needs 5 rows of marks")
	// ErrTooManyMarks indicates more marks than skills in a routine.
	ErrTooManyMarks = errors.New("more marks than skills")
)

// MarkError locates an invalid mark.
type MarkError struct {
	Kind  string  // "execution", "hd" or "tof"
	Judge int     // zero-based panel judge, -1 when not a panel mark
	Index int     // zero-based skill position
	Value float64 // offending mark
}

func (e *MarkError) Error() string {
	if e.Judge >= 0 {
		return fmt.Sprintf("%s mark %v for skill %d from judge %d: %v", e.Kind, e.Value, e.Index+1, e.Judge+1, ErrMarkRange)
	}
	return fmt.Sprintf("%s mark %v for skill %d: %v", e.Kind, e.Value, e.Index+1, ErrMarkRange)
}

func (e *MarkError) Unwrap() error {
	return ErrMarkRange
}

// Sheet holds the marks awarded to one performance. Missing trailing marks
// count as zero.
type Sheet struct {
	// Routine is the path of the routine sheet, relative to the judge sheet.
	Routine    string      `toml:"routine" yaml:"routine"`
	FiveJudges bool        `toml:"five_judges" yaml:"five_judges"`
	Execution  []float64   `toml:"execution" yaml:"execution"`
	Panel      [][]float64 `toml:"panel" yaml:"panel"`
	HD         []float64   `toml:"hd" yaml:"hd"`
	TOF        []float64   `toml:"tof" yaml:"tof"`
}

// IsSheetFile reports whether path names a judge sheet: a routine sheet
// file whose base name ends in ".judge" before the extension.
func IsSheetFile(path string) bool {
	if !routine.IsSheetFile(path) {
		return false
	}
	base := filepath.Base(path)
	return strings.HasSuffix(strings.TrimSuffix(base, filepath.Ext(base)), ".judge")
}

// LoadSheet reads a judge sheet in TOML or YAML.
func LoadSheet(path string) (*Sheet, error) {
	var sh Sheet
	if err := routine.DecodeFile(path, &sh); err != nil {
		return nil, err
	}
	return &sh, nil
}

// RoutinePath resolves the routine reference against the directory of the
// judge sheet at sheetPath.
func (s *Sheet) RoutinePath(sheetPath string) string {
	if filepath.IsAbs(s.Routine) {
		return s.Routine
	}
	return filepath.Join(filepath.Dir(sheetPath), s.Routine)
}

// Validate checks every mark against its range and step.
func (s *Sheet) Validate() error {
	if err := checkMarks("execution", -1, s.Execution, MaxExecution, true); err != nil {
		return err
	}
	if s.FiveJudges && len(s.Panel) != FullPanel {
		return fmt.Errorf("%w: got %d", ErrPanelSize, len(s.Panel))
	}
	for j, row := range s.Panel {
		if err := checkMarks("execution", j, row, MaxExecution, true); err != nil {
			return err
		}
	}
	if err := checkMarks("hd", -1, s.HD, MaxHD, true); err != nil {
		return err
	}
	return checkMarks("tof", -1, s.TOF, MaxTOF, false)
}

func checkMarks(kind string, judge int, marks []float64, limit float64, tenths bool) error {
	if len(marks) > routine.Length {
		return fmt.Errorf("%s: %w: got %d", kind, ErrTooManyMarks, len(marks))
	}
	for i, v := range marks {
		if v < 0 || v > limit+1e-9 || (tenths && !isTenth(v)) {
			return &MarkError{Kind: kind, Judge: judge, Index: i, Value: v}
		}
	}
	return nil
}

func isTenth(v float64) bool {
	return math.Abs(v*10-math.Round(v*10)) < 1e-9
}

// ExecutionDeduction totals the execution marks. With five judges the
// highest and lowest judge totals are dropped and the middle three summed.
func (s *Sheet) ExecutionDeduction() float64 {
	if !s.FiveJudges {
		return round2(sum(s.Execution))
	}
	totals := make([]float64, 0, len(s.Panel))
	for _, row := range s.Panel {
		totals = append(totals, sum(row))
	}
	if len(totals) < 3 {
		return round2(sum(totals))
	}
	slices.Sort(totals)
	return round2(sum(totals[1 : len(totals)-1]))
}

// HDDeduction totals the horizontal displacement marks.
func (s *Sheet) HDDeduction() float64 {
	return round2(sum(s.HD))
}

// TOFTotal is the total time of flight in seconds.
func (s *Sheet) TOFTotal() float64 {
	return round2(sum(s.TOF))
}

// Summary is the scored result of a judged routine.
type Summary struct {
	Routine    string  `json:"routine"`
	Judges     int     `json:"judges"`
	Difficulty float64 `json:"difficulty"`
	Execution  float64 `json:"execution_deduction"`
	HD         float64 `json:"hd_deduction"`
	TOF        float64 `json:"tof"`
	Total      float64 `json:"total"`
}

// Score combines the sheet with the routine it judges.
func (s *Sheet) Score(r *routine.Routine) Summary {
	out := Summary{
		Routine:    r.Name,
		Judges:     SingleJudge,
		Difficulty: r.Stats().TotalDifficulty,
		Execution:  s.ExecutionDeduction(),
		HD:         s.HDDeduction(),
		TOF:        s.TOFTotal(),
	}
	if s.FiveJudges {
		out.Judges = FullPanel
	}
	out.Total = round2(out.Difficulty + out.TOF - out.Execution - out.HD)
	return out
}

// Load reads and validates the judge sheet at path and the routine it
// references, then scores them.
func Load(path string) (Summary, error) {
	sh, err := LoadSheet(path)
	if err != nil {
		return Summary{}, err
	}
	if err := sh.Validate(); err != nil {
		return Summary{}, fmt.Errorf("%s: %w", path, err)
	}
	r, err := routine.Load(sh.RoutinePath(path))
	if err != nil {
		return Summary{}, err
	}
	if err := r.Validate(); err != nil {
		return Summary{}, fmt.Errorf("routine %q: %w", r.Name, err)
	}
	return sh.Score(r), nil
}

func sum(vs []float64) float64 {
	var t float64
	for _, v := range vs {
		t += v
	}
	return t
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
