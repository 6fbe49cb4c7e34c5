package skill

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDecode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		notation string
		from     BodyPart
		want     Skill
		canon    string
	}{
		{
			notation: "41 o f",
			from:     Feet,
			want:     Skill{Flip: 1, From: Feet, To: Feet, Twist: []float64{0.5}, Shape: Tuck, Direction: Forward},
			canon:    "41 o f",
		},
		{
			notation: "0 o",
			from:     Feet,
			want:     Skill{Flip: 0, From: Feet, To: Feet, Shape: Tuck, Direction: Backward},
			canon:    "0 o",
		},
		{
			notation: "44 /",
			from:     Feet,
			want:     Skill{Flip: 1, From: Feet, To: Feet, Twist: []float64{2}, Shape: Straight},
			canon:    "44 /",
		},
		{
			notation: "801 < f",
			from:     Feet,
			want:     Skill{Flip: 2, From: Feet, To: Feet, Twist: []float64{0, 0.5}, Shape: Pike, Direction: Forward},
			canon:    "801 < f",
		},
		{
			notation: "12111 /",
			from:     Feet,
			want:     Skill{Flip: 3, From: Feet, To: Feet, Twist: []float64{0.5, 0.5, 0.5}, Shape: Straight},
			canon:    "12111 /",
		},
		{
			notation: "10 o",
			from:     Feet,
			want:     Skill{Flip: 0.25, From: Feet, To: Back, Twist: []float64{0}, Shape: Tuck},
			canon:    "10 o",
		},
		{
			notation: "30 o",
			from:     Back,
			want:     Skill{Flip: 0.75, From: Back, To: Feet, Twist: []float64{0}, Shape: Tuck},
			canon:    "30 o",
		},
		{
			notation: "20 <",
			from:     Front,
			want:     Skill{Flip: 0.5, From: Front, To: Back, Twist: []float64{0}, Shape: Pike},
			canon:    "20 <",
		},
		{
			notation: "40 o -1",
			from:     Feet,
			want:     Skill{Flip: 1, From: Feet, To: Seat, Twist: []float64{0}, Shape: Tuck},
			canon:    "40 o -1",
		},
		{
			notation: " 4 1 o   f ",
			from:     Feet,
			want:     Skill{Flip: 1, From: Feet, To: Feet, Twist: []float64{0.5}, Shape: Tuck, Direction: Forward},
			canon:    "41 o f",
		},
		{
			notation: "o",
			from:     Head,
			want:     Skill{Flip: 0, From: Head, To: Head, Shape: Tuck},
			canon:    "0 o",
		},
		{
			notation: "2 /",
			from:     Feet,
			want:     Skill{Flip: 0, From: Feet, To: Feet, Twist: []float64{1}, Shape: Straight},
			canon:    "02 /",
		},
		{
			notation: "00 o",
			from:     Feet,
			want:     Skill{Flip: 0, From: Feet, To: Feet, Twist: []float64{0}, Shape: Tuck},
			canon:    "00 o",
		},
	}

	for _, tt := range tests {
		t.Run(tt.notation, func(t *testing.T) {
			t.Parallel()
			got, err := Decode(tt.notation, tt.from)
			if err != nil {
				t.Fatalf("Decode(%q): %v", tt.notation, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("Decode(%q):\nwant %+v\ngot  %+v", tt.notation, tt.want, got)
			}
			if got.Notation != tt.canon {
				t.Errorf("Decode(%q).Notation = %q, want %q", tt.notation, got.Notation, tt.canon)
			}
		})
	}
}

func TestDecode_ShapeMarkers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		notation string
		want     error
	}{
		{"12", ErrNoShape},
		{"", ErrNoShape},
		{"41 f", ErrNoShape},
		{"12 o<", ErrAmbiguousShape},
		{"41 / o f", ErrAmbiguousShape},
		{"< / o", ErrAmbiguousShape},
	}
	for _, tt := range tests {
		t.Run(tt.notation, func(t *testing.T) {
			t.Parallel()
			_, err := Decode(tt.notation, Feet)
			if !errors.Is(err, tt.want) {
				t.Errorf("Decode(%q) error = %v, want %v", tt.notation, err, tt.want)
			}
			if !errors.Is(err, ErrInvalidNotation) {
				t.Errorf("Decode(%q) error = %v, want it to wrap ErrInvalidNotation", tt.notation, err)
			}
		})
	}
}

func TestDecode_ForwardIsSubstring(t *testing.T) {
	t.Parallel()
	// Any "f" marks a forward somersault, wherever it appears.
	s, err := Decode("40 of", Feet)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if s.Direction != Forward {
		t.Errorf("Direction = %s, want forward", s.Direction)
	}
}

// validSkills enumerates structurally valid skills whose twists fit a digit.
func validSkills() []Skill {
	var out []Skill
	digits := []float64{0, 0.5, 1, 1.5, 2, 2.5, 3, 3.5, 4, 4.5}
	for quarters := 0; quarters <= 20; quarters++ {
		flip := float64(quarters) / 4
		segments := (quarters + 3) / 4
		var patterns [][]float64
		if segments == 0 {
			patterns = append(patterns, nil)
			for _, d := range digits {
				patterns = append(patterns, []float64{d})
			}
		} else {
			for k := range digits {
				p := make([]float64, segments)
				for i := range p {
					p[i] = digits[(k+i*3)%len(digits)]
				}
				patterns = append(patterns, p)
			}
			patterns = append(patterns, make([]float64, segments))
		}
		for _, twist := range patterns {
			for _, shape := range []Shape{Straight, Pike, Tuck} {
				for _, dir := range []Direction{Forward, Backward} {
					for _, from := range []BodyPart{Feet, Front, Back, Head, Seat} {
						s := Skill{Flip: flip, From: from, Twist: twist, Shape: shape, Direction: dir}
						s.To = s.landing(false)
						out = append(out, s)
						seat := s
						seat.To = Seat
						out = append(out, seat)
					}
				}
			}
		}
	}
	return out
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	t.Parallel()

	for _, s := range validSkills() {
		if err := s.Validate(); err != nil {
			t.Fatalf("fixture %+v is invalid: %v", s, err)
		}
		notation := Encode(s)
		got, err := Decode(notation, s.From)
		if err != nil {
			t.Fatalf("Decode(Encode(%+v)) = %q: %v", s, notation, err)
		}
		if !got.Equal(s) {
			t.Errorf("round trip of %q from %s:\nwant %+v\ngot  %+v", notation, s.From, s, got)
		}
		if got.Notation != notation {
			t.Errorf("Decode(%q).Notation = %q", notation, got.Notation)
		}
	}
}

func TestEncode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		skill Skill
		want  string
	}{
		{"tuck jump", Skill{Shape: Tuck}, "0 o"},
		{"barani", Skill{Flip: 1, Twist: []float64{0.5}, Shape: Tuck, Direction: Forward}, "41 o f"},
		{"seat drop", Skill{Flip: 0, To: Seat, Shape: Straight}, "0 / -1"},
		{"triple", Skill{Flip: 3, Twist: []float64{0, 1, 4.5}, Shape: Pike}, "12029 <"},
		{"forward seat", Skill{Flip: 1, Twist: []float64{0}, To: Seat, Shape: Pike, Direction: Forward}, "40 < f -1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Encode(tt.skill); got != tt.want {
				t.Errorf("Encode() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEncode_PanicsOnWideTwist(t *testing.T) {
	t.Parallel()
	defer func() {
		if recover() == nil {
			t.Error("expected Encode to panic for a twist of 5")
		}
	}()
	Encode(Skill{Flip: 1, Twist: []float64{5}, Shape: Tuck})
}

func TestString_FallsBackOnWideTwist(t *testing.T) {
	t.Parallel()

	s := Skill{Flip: 1, Twist: []float64{5}, Shape: Tuck, Notation: "410 o"}
	if got := s.String(); got != "410 o" {
		t.Errorf("String() = %q, want cached notation %q", got, "410 o")
	}
	s.Twist = []float64{0.5}
	if got := s.String(); got != "41 o" {
		t.Errorf("String() = %q, want %q", got, "41 o")
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		skill Skill
		want  error
	}{
		{"valid", Skill{Flip: 1, Twist: []float64{0.5}, Shape: Tuck, Direction: Forward}, nil},
		{"jump", Skill{Shape: Tuck}, nil},
		{"seat", Skill{Flip: 0.25, Twist: []float64{0}, To: Seat}, nil},
		{"negative flip", Skill{Flip: -1}, ErrInvalidFlip},
		{"partial quarter", Skill{Flip: 0.3, Twist: []float64{0}}, ErrInvalidFlip},
		{"twist too wide", Skill{Flip: 1, Twist: []float64{5}}, ErrTwistRange},
		{"quarter twist", Skill{Flip: 1, Twist: []float64{0.25}}, ErrTwistRange},
		{"missing segment", Skill{Flip: 2, Twist: []float64{0}}, ErrTwistCount},
		{"jump with two twists", Skill{Twist: []float64{1, 1}}, ErrTwistCount},
		{"wrong landing", Skill{Flip: 0.5, Twist: []float64{0}, To: Back}, ErrLanding},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.skill.Validate()
			if tt.want == nil {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestSetters_KeepNotationInSync(t *testing.T) {
	t.Parallel()

	s, err := Decode("41 o f", Feet)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	s.SetFlip(2)
	if diff := cmp.Diff([]float64{0.5, 0}, s.Twist); diff != "" {
		t.Errorf("Twist after SetFlip(2) (-want +got):\n%s", diff)
	}
	if s.Notation != "810 o f" {
		t.Errorf("Notation = %q, want %q", s.Notation, "810 o f")
	}

	s.SetFlip(1.25)
	if s.Notation != "510 o f" {
		t.Errorf("Notation = %q, want %q", s.Notation, "510 o f")
	}
	// The half twist turns the forward quarter into a backward one.
	if s.To != Back {
		t.Errorf("To = %s, want back", s.To)
	}

	s.SetSeat(true)
	if s.To != Seat || s.Notation != "510 o f -1" {
		t.Errorf("after SetSeat(true): To = %s, Notation = %q", s.To, s.Notation)
	}
	s.SetSeat(false)
	if s.To != Back || s.Notation != "510 o f" {
		t.Errorf("after SetSeat(false): To = %s, Notation = %q", s.To, s.Notation)
	}

	s.SetTwist(1, 1)
	s.SetShape(Pike)
	s.SetDirection(Backward)
	if s.Notation != "512 <" {
		t.Errorf("Notation = %q, want %q", s.Notation, "512 <")
	}

	s.SetFlip(0.5)
	if len(s.Twist) != 1 || s.To != Head {
		t.Errorf("after SetFlip(0.5): Twist = %v, To = %s", s.Twist, s.To)
	}

	s.SetFrom(Head)
	if s.To != Feet {
		t.Errorf("after SetFrom(head): To = %s, want feet", s.To)
	}

	if err := s.Validate(); err != nil {
		t.Errorf("Validate() after edits: %v", err)
	}
}

func TestSetFlip_ZeroKeepsJumpTwist(t *testing.T) {
	t.Parallel()

	s, err := Decode("810 o f", Feet)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	s.SetFlip(0)
	if diff := cmp.Diff([]float64{0.5}, s.Twist); diff != "" {
		t.Errorf("Twist after SetFlip(0) (-want +got):\n%s", diff)
	}
	if s.Notation != "01 o f" {
		t.Errorf("Notation = %q, want %q", s.Notation, "01 o f")
	}
	if err := s.Validate(); err != nil {
		t.Errorf("Validate(): %v", err)
	}
}
