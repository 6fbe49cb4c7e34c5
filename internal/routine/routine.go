// Package routine chains ten skills into a competition routine, checks that
// each skill takes off where the previous one landed, and summarises the
// routine's difficulty and rotation.
package routine

import (
	"fmt"
	"math"

	"github.com/papapumpkin/somersault/internal/skill"
)

// Length is the number of skills in a routine.
const Length = 10

// Routine is a named sequence of Length skills.
type Routine struct {
	Name   string              `json:"name"`
	Skills [Length]skill.Skill `json:"skills"`
}

// Blank returns a routine of ten tuck jumps.
func Blank(name string) *Routine {
	r := &Routine{Name: name}
	for i := range r.Skills {
		r.Skills[i] = skill.Skill{Shape: skill.Tuck}
		r.Skills[i].Notation = skill.Encode(r.Skills[i])
	}
	return r
}

// Build decodes notations into a routine. The first skill takes off from
// the feet and every later skill from the previous skill's landing.
func Build(name string, notations []string) (*Routine, error) {
	if len(notations) != Length {
		return nil, fmt.Errorf("%w: got %d", ErrLength, len(notations))
	}
	r := &Routine{Name: name}
	from := skill.Feet
	for i, n := range notations {
		s, err := skill.Decode(n, from)
		if err != nil {
			return nil, &SkillError{Index: i, Notation: n, Err: err}
		}
		r.Skills[i] = s
		from = s.To
	}
	return r, nil
}

// Rechain re-derives every takeoff from the previous landing after skills
// have been edited in place with the skill setters. Routines built from
// notations are already chained; Rechain is for callers that change skills
// directly and need landings recomputed before Validate.
func (r *Routine) Rechain() {
	from := skill.Feet
	for i := range r.Skills {
		r.Skills[i].SetFrom(from)
		from = r.Skills[i].To
	}
}

// Validate checks every skill and the takeoff chain.
func (r *Routine) Validate() error {
	from := skill.Feet
	for i, s := range r.Skills {
		if err := s.Validate(); err != nil {
			return &SkillError{Index: i, Notation: s.String(), Err: err}
		}
		if s.From != from {
			return &SkillError{
				Index:    i,
				Notation: s.String(),
				Err:      fmt.Errorf("%w: takes off from %s, previous landing %s", ErrBrokenChain, s.From, from),
			}
		}
		from = s.To
	}
	return nil
}

// Landing is where the final skill lands.
func (r *Routine) Landing() skill.BodyPart {
	return r.Skills[Length-1].To
}

// Stats summarises a routine.
type Stats struct {
	TotalDifficulty float64 `json:"total_difficulty"`
	// LargestRotation is the largest somersault in full turns.
	LargestRotation        float64 `json:"largest_rotation"`
	LargestRotationDegrees float64 `json:"largest_rotation_degrees"`
	// LargestTwist is the largest total twist of a single skill in full turns.
	LargestTwist        float64 `json:"largest_twist"`
	LargestTwistDegrees float64 `json:"largest_twist_degrees"`
}

// Stats computes the routine summary. The total difficulty is summed in
// whole hundredths so it matches the per-skill values shown to judges.
func (r *Routine) Stats() Stats {
	var cents, quarters, halves int
	for _, s := range r.Skills {
		cents += int(math.Round(skill.Difficulty(s) * 100))
		quarters = max(quarters, int(math.Round(s.Flip*4)))
		halves = max(halves, int(math.Round(s.TotalTwist()*2)))
	}
	rot := float64(quarters) / 4
	twist := float64(halves) / 2
	return Stats{
		TotalDifficulty:        float64(cents) / 100,
		LargestRotation:        rot,
		LargestRotationDegrees: rot * 360,
		LargestTwist:           twist,
		LargestTwistDegrees:    twist * 360,
	}
}
