// Package skill decodes and encodes trampoline skill notation, names skills,
// and scores their difficulty.
//
// A notation is a run of digits followed by a shape marker: the leading
// digits give the somersault in quarter turns and each remaining digit gives
// the twist, in half turns, of one flip segment. "41 o f" is one forward
// somersault (4 quarters) in tuck with a half twist. An "f" marks a forward
// somersault and "-1" a landing in a seat drop.
package skill

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
)

// Skill is a single jump, somersault or twisting element of a routine.
type Skill struct {
	// Flip is the somersault rotation in full turns, a multiple of 0.25.
	Flip float64 `json:"flip"`
	// From is the body part facing the bed at takeoff.
	From BodyPart `json:"from"`
	// To is the body part facing the bed at landing.
	To BodyPart `json:"to"`
	// Twist holds the twist of each flip segment in full turns, a multiple of 0.5.
	Twist     []float64 `json:"twist"`
	Shape     Shape     `json:"shape"`
	Direction Direction `json:"direction"`
	// Notation is the canonical text of the skill. It is refreshed by Decode
	// and by the Set* helpers; field literals leave it empty.
	Notation string `json:"notation"`
}

// Decode parses notation into a Skill taking off from from.
//
// Decoding is permissive: anything other than the digits and the markers is
// ignored, and the only failure is a notation with zero or several shape
// markers.
func Decode(notation string, from BodyPart) (Skill, error) {
	shape, err := shapeFromMarkers(notation)
	if err != nil {
		return Skill{}, err
	}

	dir := Backward
	if strings.Contains(notation, "f") {
		dir = Forward
	}
	seat := strings.Contains(notation, "-1")

	digits := digitRun(strings.ReplaceAll(notation, "-1", ""))
	n := flipPrefix(digits)
	quarters, err := strconv.Atoi(digits[:n])
	if err != nil {
		quarters = 0
	}

	var twist []float64
	if digits != "0" {
		for _, c := range digits[n:] {
			twist = append(twist, float64(c-'0')/2)
		}
	}

	s := Skill{
		Flip:      float64(quarters) / 4,
		From:      from,
		Twist:     twist,
		Shape:     shape,
		Direction: dir,
	}
	s.To = s.landing(seat)
	s.Notation = Encode(s)
	return s, nil
}

func digitRun(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

// flipPrefix returns how many leading digits encode the flip in quarter
// turns. The prefix grows while its value fits four quarters for each digit
// from its last position onward, and it always leaves at least one digit for
// the twists.
func flipPrefix(digits string) int {
	accepted := 0
	for p := 1; p <= len(digits); p++ {
		v, err := strconv.Atoi(digits[:p])
		if err != nil {
			v = 0
		}
		if v > (len(digits)-p+1)*4 {
			break
		}
		accepted = p
	}
	if accepted == len(digits) && accepted > 0 {
		accepted--
	}
	return accepted
}

// Encode renders s as canonical notation: the flip in quarter turns, one
// digit per twist in half turns, the shape marker, then " f" for forward
// somersaults and " -1" for seat landings.
//
// Encode panics if a twist does not fit a single digit; Validate reports
// that condition as an error.
func Encode(s Skill) string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(int(math.Round(s.Flip * 4))))
	for _, t := range s.Twist {
		d := int(math.Round(t * 2))
		if d < 0 || d > 9 {
			panic(fmt.Sprintf("skill: twist %v does not fit a notation digit", t))
		}
		b.WriteByte(byte('0' + d))
	}
	b.WriteString(" ")
	b.WriteString(s.Shape.Marker())
	if s.Direction == Forward {
		b.WriteString(" f")
	}
	if s.To == Seat {
		b.WriteString(" -1")
	}
	return b.String()
}

// String returns the canonical notation, or the cached Notation when a twist
// cannot be written as a notation digit.
func (s Skill) String() string {
	if !encodable(s) {
		return s.Notation
	}
	return Encode(s)
}

// encodable reports whether every twist of s fits a notation digit, the
// condition under which Encode does not panic.
func encodable(s Skill) bool {
	for _, t := range s.Twist {
		if d := math.Round(t * 2); d < 0 || d > 9 {
			return false
		}
	}
	return true
}

// TotalTwist is the sum of all twist segments.
func (s Skill) TotalTwist() float64 {
	var sum float64
	for _, t := range s.Twist {
		sum += t
	}
	return sum
}

// Equal reports whether two skills describe the same movement. The cached
// Notation is not compared, and nil and empty twist lists are equal.
func (s Skill) Equal(o Skill) bool {
	return s.Flip == o.Flip &&
		s.From == o.From &&
		s.To == o.To &&
		s.Shape == o.Shape &&
		s.Direction == o.Direction &&
		slices.Equal(s.Twist, o.Twist)
}

// Validate checks the preconditions of Encode and the structural invariants
// of a skill: twist per flip segment and a landing consistent with takeoff.
func (s Skill) Validate() error {
	q := s.Flip * 4
	if s.Flip < 0 || q != math.Trunc(q) {
		return fmt.Errorf("%w: got %v", ErrInvalidFlip, s.Flip)
	}
	for i, t := range s.Twist {
		h := t * 2
		if t < 0 || t > 4.5 || h != math.Trunc(h) {
			return fmt.Errorf("segment %d: %w: got %v", i+1, ErrTwistRange, t)
		}
	}
	if want := int(math.Ceil(s.Flip)); (s.Flip > 0 && len(s.Twist) != want) || (s.Flip == 0 && len(s.Twist) > 1) {
		return fmt.Errorf("%w: flip %v needs %d segments, got %d", ErrTwistCount, s.Flip, want, len(s.Twist))
	}
	if s.To != Seat {
		if want := s.landing(false); s.To != want {
			return fmt.Errorf("%w: %s from %s lands on %s, not %s", ErrLanding, Encode(s), s.From, want, s.To)
		}
	}
	return nil
}

// landing derives To. Only the fractional part of the flip moves the body
// part; whole somersaults return to the same facing.
func (s Skill) landing(seat bool) BodyPart {
	if seat {
		return Seat
	}
	_, frac := math.Modf(s.Flip)
	return s.From.Next(frac, s.Direction, s.TotalTwist())
}

// SetFlip changes the somersault amount and resizes the twist list to one
// entry per flip segment.
func (s *Skill) SetFlip(flip float64) {
	s.Flip = flip
	s.sync()
}

// SetTwist sets the twist of segment i (zero-based). Indexes outside the
// current segments are ignored.
func (s *Skill) SetTwist(i int, twist float64) {
	if i >= 0 && i < len(s.Twist) {
		s.Twist[i] = twist
	}
	s.sync()
}

// SetShape changes the body shape.
func (s *Skill) SetShape(shape Shape) {
	s.Shape = shape
	s.sync()
}

// SetDirection changes the somersault direction.
func (s *Skill) SetDirection(dir Direction) {
	s.Direction = dir
	s.sync()
}

// SetFrom changes the takeoff body part, as when the previous skill of a
// routine changes.
func (s *Skill) SetFrom(from BodyPart) {
	s.From = from
	s.sync()
}

// SetSeat toggles landing in a seat drop.
func (s *Skill) SetSeat(seat bool) {
	if seat {
		s.To = Seat
	} else if s.To == Seat {
		s.To = Feet
	}
	s.sync()
}

func (s *Skill) sync() {
	n := int(math.Ceil(s.Flip))
	if n < 0 {
		n = 0
	}
	// A twisting jump keeps its single twist.
	keep := n
	if n == 0 {
		keep = min(len(s.Twist), 1)
	}
	for len(s.Twist) > keep {
		s.Twist = s.Twist[:len(s.Twist)-1]
	}
	for len(s.Twist) < n {
		s.Twist = append(s.Twist, 0)
	}
	s.To = s.landing(s.To == Seat)
	s.Notation = Encode(*s)
}
