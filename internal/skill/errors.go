package skill

import "errors"

// Sentinel errors for notation decoding and skill validation.
var (
	// ErrInvalidNotation wraps every decode failure.
	ErrInvalidNotation = errors.New("invalid notation")
	// ErrNoShape indicates the notation carries none of the o, < or / markers.
	ErrNoShape = errors.New("no shape marker")
	// ErrAmbiguousShape indicates the notation carries more than one shape marker.
	ErrAmbiguousShape = errors.New("more than one shape marker")
	// ErrInvalidFlip indicates a negative flip or one that is not a whole number of quarter turns.
	ErrInvalidFlip = errors.New("flip must be a non-negative multiple of 0.25")
	// ErrTwistRange indicates a twist outside 0..4.5 or not a whole number of half turns.
	ErrTwistRange = errors.New("twist must be a multiple of 0.5 between 0 and 4.5")
	// ErrTwistCount indicates the twist list does not hold one entry per flip segment.
	ErrTwistCount = errors.New("twist count does not match flip")
	// ErrLanding indicates To disagrees with the landing derived from From.
	ErrLanding = errors.New("landing does not follow from takeoff")
	// ErrUnknownBodyPart indicates a body part name that ParseBodyPart does not know.
	ErrUnknownBodyPart = errors.New("unknown body part")
	// ErrUnknownShape indicates a shape name that ParseShape does not know.
	ErrUnknownShape = errors.New("unknown shape")
)
