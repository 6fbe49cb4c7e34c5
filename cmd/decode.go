package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/somersault/internal/skill"
)

var decodeCmd = &cobra.Command{
	Use:   "decode NOTATION...",
	Short: "Decode skill notations",
	Long: `Decodes each notation and prints its canonical form, name, difficulty
and orientation. Each skill takes off where the previous one landed; the
first takes off from --from (default: the configured takeoff).`,
	Example: `  somersault decode "41 o f" "40 o"
  somersault decode --from back "42 /"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runDecode,
}

func init() {
	decodeCmd.Flags().String("from", "", "takeoff body part of the first skill: feet, front, back, head or seat")
	decodeCmd.Flags().Bool("json", false, "print JSON instead of text")
	rootCmd.AddCommand(decodeCmd)
}

// skillReport is the JSON form of a decoded skill.
type skillReport struct {
	skill.Skill
	Name       string  `json:"name"`
	Difficulty float64 `json:"difficulty"`
}

func runDecode(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	from := s.cfg.TakeoffPart()
	if f, _ := cmd.Flags().GetString("from"); f != "" {
		if from, err = skill.ParseBodyPart(f); err != nil {
			return err
		}
	}
	asJSON, _ := cmd.Flags().GetBool("json")

	reports := make([]skillReport, 0, len(args))
	for _, arg := range args {
		sk, err := skill.Decode(arg, from)
		if err != nil {
			return fmt.Errorf("decoding %q: %w", arg, err)
		}
		s.logger.Debug("decoded", "notation", arg, "canonical", sk.Notation, "from", sk.From, "to", sk.To)
		reports = append(reports, skillReport{
			Skill:      sk,
			Name:       skill.Name(sk, s.names),
			Difficulty: skill.Difficulty(sk),
		})
		from = sk.To
	}

	if asJSON {
		return writeJSON(cmd.OutOrStdout(), reports)
	}
	for _, r := range reports {
		s.printer.Skill(r.Skill)
	}
	return nil
}
