package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/somersault/internal/routine"
	"github.com/papapumpkin/somersault/internal/telemetry"
)

var routineCmd = &cobra.Command{
	Use:   "routine FILE",
	Short: "Check a routine sheet and print its difficulty",
	Long: `Loads a routine sheet (TOML or YAML with a name and ten skill notations),
checks every skill and the takeoff chain, and prints each skill with the
routine's total difficulty, largest rotation and largest twist.

With --save the routine is stored in the history database.`,
	Args: cobra.ExactArgs(1),
	RunE: runRoutine,
}

func init() {
	routineCmd.Flags().Bool("json", false, "print JSON instead of text")
	routineCmd.Flags().Bool("save", false, "save the routine to the history store")
	rootCmd.AddCommand(routineCmd)
}

// routineReport is the JSON form of a checked routine.
type routineReport struct {
	Routine *routine.Routine `json:"routine"`
	Stats   routine.Stats    `json:"stats"`
}

func runRoutine(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	path := args[0]

	r, err := routine.Load(path)
	if err == nil {
		err = r.Validate()
	}
	if err != nil {
		s.emit(telemetry.Event{Kind: telemetry.KindSheetInvalid, Sheet: path, Data: map[string]string{"error": err.Error()}})
		return err
	}
	st := r.Stats()
	s.emit(telemetry.Event{Kind: telemetry.KindSheetScored, Sheet: path, Data: st})

	if save, _ := cmd.Flags().GetBool("save"); save {
		db, err := s.openStore(cmd.Context())
		if err != nil {
			return err
		}
		if db == nil {
			return errNoStore
		}
		defer db.Close()
		if err := db.SaveRoutine(cmd.Context(), path, r); err != nil {
			return fmt.Errorf("saving routine: %w", err)
		}
		s.logger.Debug("routine saved", "path", path, "store", s.cfg.StorePath)
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		return writeJSON(cmd.OutOrStdout(), routineReport{Routine: r, Stats: st})
	}
	s.printer.Routine(r, st)
	return nil
}
