package cmd

import (
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recorded scores or saved routines",
	Long: `Lists judge scores recorded in the history store, newest first.
With --routines, lists saved routines by difficulty instead.`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().String("routine", "", "only scores for this routine name")
	historyCmd.Flags().Int("limit", 20, "maximum number of scores (0 for all)")
	historyCmd.Flags().Bool("routines", false, "list saved routines instead of scores")
	historyCmd.Flags().Bool("json", false, "print JSON instead of text")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	db, err := s.openStore(cmd.Context())
	if err != nil {
		return err
	}
	if db == nil {
		return errNoStore
	}
	defer db.Close()

	asJSON, _ := cmd.Flags().GetBool("json")
	if routines, _ := cmd.Flags().GetBool("routines"); routines {
		rs, err := db.Routines(cmd.Context())
		if err != nil {
			return err
		}
		if asJSON {
			return writeJSON(cmd.OutOrStdout(), rs)
		}
		s.printer.Routines(rs)
		return nil
	}

	name, _ := cmd.Flags().GetString("routine")
	limit, _ := cmd.Flags().GetInt("limit")
	scores, err := db.Scores(cmd.Context(), name, limit)
	if err != nil {
		return err
	}
	if asJSON {
		return writeJSON(cmd.OutOrStdout(), scores)
	}
	s.printer.Scores(scores)
	return nil
}
