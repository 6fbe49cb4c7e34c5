package skill

import (
	"math"
	"strconv"
	"strings"
)

// Fraction spells a turn count the way skill names do: "half", "quarter",
// "full", otherwise the numeral with its fraction written out ("1 1/2",
// "0 3/4").
func Fraction(turns float64) string {
	switch turns {
	case 0.5:
		return "half"
	case 0.25:
		return "quarter"
	case 1:
		return "full"
	}
	s := strconv.FormatFloat(turns, 'f', -1, 64)
	return strings.NewReplacer(".5", " 1/2", ".25", " 1/4", ".75", " 3/4").Replace(s)
}

// Name returns the human-readable name of s. A well-known name from table
// wins; otherwise the name is built by appending the flip, direction, twist,
// orientation change and shape pieces as they are, so skipped pieces leave
// their separators behind ("Single, Backward,  (Tuck)"). A nil table
// disables the lookup, and so does a twist that has no notation digit.
func Name(s Skill, table *Table) string {
	if encodable(s) {
		if name, ok := table.Lookup(Encode(s)); ok {
			return name
		}
	}

	if s.Flip == 0 && s.TotalTwist() == 0 && s.To != Seat {
		return s.Shape.Title() + " Jump"
	}

	var b strings.Builder
	switch strconv.FormatFloat(s.Flip, 'f', -1, 64) {
	case "1":
		b.WriteString("Single, ")
	case "2":
		b.WriteString("Double, ")
	case "3":
		b.WriteString("Triple, ")
	case "4":
		b.WriteString("Quad, ")
	default:
		b.WriteString(Fraction(s.Flip) + " flip, ")
	}

	if s.Direction == Forward {
		b.WriteString("Forward, ")
	} else {
		b.WriteString("Backward, ")
	}

	switch {
	case len(s.Twist) > 1:
		b.WriteString(twistClause(s.Twist))
	case len(s.Twist) == 1 && s.Twist[0] != 0:
		b.WriteString(Fraction(s.Twist[0]) + " twist")
	}

	if _, frac := math.Modf(s.Flip); frac != 0 || s.From != Feet || s.To == Seat {
		b.WriteString(", from " + s.From.String() + " to " + s.To.String())
	}

	if s.Flip != 0 {
		b.WriteString(" (" + s.Shape.Title() + ")")
	}
	return b.String()
}

// twistClause describes a multi-segment twist as "<first> in, <rest> <out>":
// the in piece is empty when the first segment does not twist, later
// non-zero segments are joined by " twist,", and "out" is written when the
// last segment twists.
func twistClause(twist []float64) string {
	var in string
	if math.Ceil(twist[0]) != 0 {
		in = Fraction(twist[0]) + " in,"
	}
	var rest []string
	for _, t := range twist[1:] {
		if t != 0 {
			rest = append(rest, Fraction(t))
		}
	}
	var out string
	if math.Ceil(twist[len(twist)-1]) != 0 {
		out = "out"
	}
	return in + " " + strings.Join(rest, " twist,") + " " + out
}
