package skill

import (
	"fmt"
	"strings"
)

// Shape is the body configuration held during a flip.
type Shape int

const (
	Straight Shape = iota
	Pike
	Tuck
)

// Marker returns the single-character notation for the shape.
func (s Shape) Marker() string {
	switch s {
	case Pike:
		return "<"
	case Tuck:
		return "o"
	default:
		return "/"
	}
}

// Title returns the capitalised shape word used in skill names.
func (s Shape) Title() string {
	switch s {
	case Pike:
		return "Pike"
	case Tuck:
		return "Tuck"
	default:
		return "Straight"
	}
}

func (s Shape) String() string {
	return strings.ToLower(s.Title())
}

func (s Shape) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Shape) UnmarshalText(text []byte) error {
	v, err := ParseShape(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// ParseShape accepts a shape name ("tuck", "pike", "straight") or its
// notation marker.
func ParseShape(s string) (Shape, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "straight", "/":
		return Straight, nil
	case "pike", "<":
		return Pike, nil
	case "tuck", "o":
		return Tuck, nil
	}
	return Straight, fmt.Errorf("%w: %q", ErrUnknownShape, s)
}

// shapeFromMarkers finds the single shape marker in notation.
func shapeFromMarkers(notation string) (Shape, error) {
	var found []Shape
	for _, s := range []Shape{Tuck, Pike, Straight} {
		if strings.Contains(notation, s.Marker()) {
			found = append(found, s)
		}
	}
	switch len(found) {
	case 0:
		return Straight, fmt.Errorf("%w: %q: %w", ErrInvalidNotation, notation, ErrNoShape)
	case 1:
		return found[0], nil
	default:
		return Straight, fmt.Errorf("%w: %q: %w", ErrInvalidNotation, notation, ErrAmbiguousShape)
	}
}
