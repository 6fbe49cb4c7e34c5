package skill

import (
	"fmt"
	"math"
	"strings"
)

// BodyPart is the part of the body facing the bed at takeoff or landing.
type BodyPart int

const (
	Feet BodyPart = iota
	Front
	Back
	Head
	Seat
)

var bodyPartNames = [...]string{
	Feet:  "feet",
	Front: "front",
	Back:  "back",
	Head:  "head",
	Seat:  "seat",
}

func (b BodyPart) String() string {
	if b < 0 || int(b) >= len(bodyPartNames) {
		return fmt.Sprintf("BodyPart(%d)", int(b))
	}
	return bodyPartNames[b]
}

// ParseBodyPart accepts the lower-case names produced by String, ignoring
// case and surrounding whitespace.
func ParseBodyPart(s string) (BodyPart, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range bodyPartNames {
		if n == name {
			return BodyPart(i), nil
		}
	}
	return Feet, fmt.Errorf("%w: %q", ErrUnknownBodyPart, s)
}

// MarshalText lets body parts appear by name in JSON output.
func (b BodyPart) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

func (b *BodyPart) UnmarshalText(text []byte) error {
	v, err := ParseBodyPart(string(text))
	if err != nil {
		return err
	}
	*b = v
	return nil
}

// Direction is the rotation sense of a somersault.
type Direction int

const (
	Backward Direction = iota
	Forward
)

func (d Direction) String() string {
	if d == Forward {
		return "forward"
	}
	return "backward"
}

func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Direction) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "forward":
		*d = Forward
	case "backward":
		*d = Backward
	default:
		return fmt.Errorf("unknown direction %q", text)
	}
	return nil
}

func (d Direction) invert() Direction {
	if d == Forward {
		return Backward
	}
	return Forward
}

// Next returns the body part facing the bed after rotating by amount, the
// fractional part of a flip (0, 0.25, 0.5 or 0.75), in direction dir.
//
// A total twist ending in a half turn inverts the somersault sense as seen
// from the bed. Twist remainders other than whole or half turns fall back to
// Forward.
func (b BodyPart) Next(amount float64, dir Direction, totalTwist float64) BodyPart {
	_, frac := math.Modf(totalTwist)
	switch int(frac * 10) {
	case 0:
	case 5:
		dir = dir.invert()
	default:
		dir = Forward
	}

	switch amount {
	case 0:
		return b
	case 0.5:
		switch b {
		case Back:
			return Front
		case Front:
			return Back
		case Head:
			return Feet
		case Feet, Seat:
			return Head
		}
	case 0.25:
		switch b {
		case Back, Front:
			return Feet
		case Feet:
			return pick(dir, Front, Back)
		case Head, Seat:
			return pick(dir, Back, Front)
		}
	default:
		switch b {
		case Back, Front:
			return Feet
		case Feet, Seat:
			return pick(dir, Back, Front)
		case Head:
			return pick(dir, Front, Back)
		}
	}
	return Feet
}

func pick(dir Direction, forward, backward BodyPart) BodyPart {
	if dir == Forward {
		return forward
	}
	return backward
}
