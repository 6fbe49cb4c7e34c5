package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/somersault/internal/judge"
	"github.com/papapumpkin/somersault/internal/telemetry"
)

var judgeCmd = &cobra.Command{
	Use:   "judge FILE",
	Short: "Score a judge sheet",
	Long: `Loads a judge sheet (NAME.judge.toml or NAME.judge.yaml) and the routine it
references, checks every mark, and prints difficulty, time of flight,
execution and displacement deductions and the total.

When a history store is configured the score is recorded.`,
	Args: cobra.ExactArgs(1),
	RunE: runJudge,
}

func init() {
	judgeCmd.Flags().Bool("json", false, "print JSON instead of text")
	rootCmd.AddCommand(judgeCmd)
}

func runJudge(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	path := args[0]

	sum, err := judge.Load(path)
	if err != nil {
		s.emit(telemetry.Event{Kind: telemetry.KindSheetInvalid, Sheet: path, Data: map[string]string{"error": err.Error()}})
		return err
	}
	s.emit(telemetry.Event{Kind: telemetry.KindSheetScored, Sheet: path, Data: sum})

	db, err := s.openStore(cmd.Context())
	if err != nil {
		return err
	}
	if db != nil {
		defer db.Close()
		if err := db.RecordScore(cmd.Context(), path, sum); err != nil {
			return fmt.Errorf("recording score: %w", err)
		}
		s.logger.Debug("score recorded", "sheet", path, "store", s.cfg.StorePath)
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		return writeJSON(cmd.OutOrStdout(), sum)
	}
	s.printer.Summary(sum)
	return nil
}
