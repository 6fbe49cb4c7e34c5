package cmd

import (
	"github.com/spf13/cobra"

	"github.com/papapumpkin/somersault/internal/tui"
)

var editCmd = &cobra.Command{
	Use:   "edit FILE",
	Short: "Edit a routine sheet interactively",
	Long: `Opens a full-screen editor for the ten skills of a routine sheet. Each
row is decoded as you type, taking off from the previous row's landing,
and the routine's difficulty is shown once every row decodes.
A missing FILE starts a routine of tuck jumps.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession(cmd)
		if err != nil {
			return err
		}
		return tui.Run(args[0], s.names)
	},
}

func init() {
	rootCmd.AddCommand(editCmd)
}
