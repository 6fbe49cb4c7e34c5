// Package ui renders skills, routines and judge summaries for the terminal.
package ui

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"

	"github.com/papapumpkin/somersault/internal/judge"
	"github.com/papapumpkin/somersault/internal/routine"
	"github.com/papapumpkin/somersault/internal/skill"
	"github.com/papapumpkin/somersault/internal/store"
)

// Printer writes human-readable output. Color is used only when w is a
// terminal.
type Printer struct {
	w     io.Writer
	names *skill.Table
	st    styles
}

// New returns a Printer writing to w that names skills from names.
func New(w io.Writer, names *skill.Table) *Printer {
	return &Printer{
		w:     w,
		names: names,
		st:    newStyles(lipgloss.NewRenderer(w)),
	}
}

// Error prints an error line.
func (p *Printer) Error(err error) {
	fmt.Fprintf(p.w, "%s %v\n", p.st.danger.Render("error:"), err)
}

// Info prints a de-emphasized line.
func (p *Printer) Info(msg string) {
	fmt.Fprintln(p.w, p.st.muted.Render(msg))
}

// Skill prints one skill: notation, name, difficulty and orientation.
func (p *Printer) Skill(s skill.Skill) {
	fmt.Fprintln(p.w, p.skillLine(s))
}

func (p *Printer) skillLine(s skill.Skill) string {
	return fmt.Sprintf("%s %s %s %s",
		p.st.value.Render(fmt.Sprintf("%-10s", skill.Encode(s))),
		fmt.Sprintf("%-44s", skill.Name(s, p.names)),
		p.st.value.Render(fmt.Sprintf("%.2f", skill.Difficulty(s))),
		p.st.muted.Render(fmt.Sprintf("%s → %s", s.From, s.To)),
	)
}

// Routine prints a routine's skills followed by its stats.
func (p *Printer) Routine(r *routine.Routine, st routine.Stats) {
	fmt.Fprintln(p.w, p.st.heading.Render("routine: "+r.Name))
	for i, s := range r.Skills {
		fmt.Fprintf(p.w, "%s %s\n", p.st.muted.Render(fmt.Sprintf("%2d.", i+1)), p.skillLine(s))
	}
	p.Stats(st)
}

// Stats prints a routine summary.
func (p *Printer) Stats(st routine.Stats) {
	p.field("total difficulty", fmt.Sprintf("%.2f", st.TotalDifficulty))
	p.field("largest rotation", fmt.Sprintf("%g (%g degrees)", st.LargestRotation, st.LargestRotationDegrees))
	p.field("largest twist", fmt.Sprintf("%g (%g degrees)", st.LargestTwist, st.LargestTwistDegrees))
}

// Summary prints a judged score.
func (p *Printer) Summary(s judge.Summary) {
	fmt.Fprintln(p.w, p.st.heading.Render("judged: "+s.Routine))
	p.field("judges", fmt.Sprintf("%d", s.Judges))
	p.field("difficulty", fmt.Sprintf("%.2f", s.Difficulty))
	p.field("time of flight", fmt.Sprintf("%.2f", s.TOF))
	p.field("execution", fmt.Sprintf("-%.2f", s.Execution))
	p.field("displacement", fmt.Sprintf("-%.2f", s.HD))
	p.field("total", fmt.Sprintf("%.2f", s.Total))
}

func (p *Printer) field(label, value string) {
	fmt.Fprintf(p.w, "  %s %s\n", p.st.label.Render(fmt.Sprintf("%-17s", label+":")), p.st.value.Render(value))
}

// Names prints the named-skill table.
func (p *Printer) Names(entries []skill.Entry) {
	for _, e := range entries {
		fmt.Fprintf(p.w, "%s %s\n", p.st.value.Render(fmt.Sprintf("%-10s", e.Notation)), e.Name)
	}
}

// Routines prints saved routines.
func (p *Printer) Routines(rs []store.SavedRoutine) {
	if len(rs) == 0 {
		p.Info("(no saved routines)")
		return
	}
	for _, r := range rs {
		fmt.Fprintf(p.w, "%s %-30s %s\n",
			p.st.value.Render(fmt.Sprintf("%6.2f", r.Stats.TotalDifficulty)),
			r.Name,
			p.st.muted.Render(r.Path))
	}
}

// Scores prints recorded judge scores.
func (p *Printer) Scores(scores []store.Score) {
	if len(scores) == 0 {
		p.Info("(no recorded scores)")
		return
	}
	for _, s := range scores {
		fmt.Fprintf(p.w, "%s %s %-30s %s\n",
			p.st.muted.Render(s.ScoredAt.Format("2006-01-02 15:04")),
			p.st.value.Render(fmt.Sprintf("%6.2f", s.Total)),
			s.Routine,
			p.st.muted.Render(fmt.Sprintf("D %.2f  T %.2f  E -%.2f  H -%.2f", s.Difficulty, s.TOF, s.Execution, s.HD)))
	}
}

// RoutineScored reports a routine sheet that loaded and validated.
func (p *Printer) RoutineScored(path string, r *routine.Routine, st routine.Stats) {
	fmt.Fprintf(p.w, "%s %s %s difficulty %s\n",
		p.st.ok.Render(iconOK), filepath.Base(path), p.st.muted.Render(r.Name),
		p.st.value.Render(fmt.Sprintf("%.2f", st.TotalDifficulty)))
}

// SheetJudged reports a scored judge sheet.
func (p *Printer) SheetJudged(path string, s judge.Summary) {
	fmt.Fprintf(p.w, "%s %s %s total %s\n",
		p.st.ok.Render(iconOK), filepath.Base(path), p.st.muted.Render(s.Routine),
		p.st.value.Render(fmt.Sprintf("%.2f", s.Total)))
}

// SheetFailed reports a sheet that could not be scored.
func (p *Printer) SheetFailed(path string, err error) {
	fmt.Fprintf(p.w, "%s %s %v\n", p.st.danger.Render(iconFailed), filepath.Base(path), err)
}

// SheetRemoved reports a deleted sheet.
func (p *Printer) SheetRemoved(path string) {
	fmt.Fprintf(p.w, "%s %s %s\n", p.st.muted.Render(iconRemoved), filepath.Base(path), p.st.muted.Render("removed"))
}
