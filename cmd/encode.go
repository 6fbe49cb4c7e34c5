package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/somersault/internal/skill"
)

var encodeCmd = &cobra.Command{
	Use:   "encode",
	Short: "Build a skill from its parts and print its notation",
	Example: `  somersault encode --flip 1 --twist 0.5 --forward
  somersault encode --flip 2 --twist 0,0.5 --shape pike --forward`,
	Args: cobra.NoArgs,
	RunE: runEncode,
}

func init() {
	encodeCmd.Flags().Float64("flip", 0, "somersault rotation in full turns (multiple of 0.25)")
	encodeCmd.Flags().Float64Slice("twist", nil, "twist per flip segment in full turns (multiples of 0.5)")
	encodeCmd.Flags().String("shape", "tuck", "body shape: tuck, pike or straight")
	encodeCmd.Flags().Bool("forward", false, "forward somersault")
	encodeCmd.Flags().Bool("seat", false, "land in a seat drop")
	encodeCmd.Flags().String("from", "", "takeoff body part (default: the configured takeoff)")
	rootCmd.AddCommand(encodeCmd)
}

func runEncode(cmd *cobra.Command, _ []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	flip, _ := cmd.Flags().GetFloat64("flip")
	twists, _ := cmd.Flags().GetFloat64Slice("twist")
	shapeName, _ := cmd.Flags().GetString("shape")
	forward, _ := cmd.Flags().GetBool("forward")
	seat, _ := cmd.Flags().GetBool("seat")
	fromName, _ := cmd.Flags().GetString("from")

	shape, err := skill.ParseShape(shapeName)
	if err != nil {
		return err
	}
	from := s.cfg.TakeoffPart()
	if fromName != "" {
		if from, err = skill.ParseBodyPart(fromName); err != nil {
			return err
		}
	}
	dir := skill.Backward
	if forward {
		dir = skill.Forward
	}

	var sk skill.Skill
	sk.SetFrom(from)
	sk.SetShape(shape)
	sk.SetDirection(dir)
	sk.SetFlip(flip)
	if segments := len(sk.Twist); len(twists) > max(segments, 1) {
		return fmt.Errorf("%w: %d twists for %d flip segments", skill.ErrTwistCount, len(twists), segments)
	}
	for _, t := range twists {
		// Out-of-range twists cannot be rendered as notation digits.
		if t < 0 || t > 4.5 {
			return fmt.Errorf("%w: got %v", skill.ErrTwistRange, t)
		}
	}
	if len(sk.Twist) == 0 && len(twists) == 1 {
		// A twisting jump carries its twist without a flip segment.
		sk.Twist = []float64{twists[0]}
	}
	for i, t := range twists {
		sk.SetTwist(i, t)
	}
	sk.SetSeat(seat)

	if err := sk.Validate(); err != nil {
		return fmt.Errorf("invalid skill: %w", err)
	}
	s.printer.Skill(sk)
	return nil
}
