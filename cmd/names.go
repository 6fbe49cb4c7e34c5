package cmd

import (
	"github.com/spf13/cobra"
)

var namesCmd = &cobra.Command{
	Use:   "names",
	Short: "List well-known skill names",
	Long:  "Lists the built-in skill names merged with the optional names file (--names or names_file).",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		s, err := newSession(cmd)
		if err != nil {
			return err
		}
		entries := s.names.Entries()
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return writeJSON(cmd.OutOrStdout(), entries)
		}
		s.printer.Names(entries)
		return nil
	},
}

func init() {
	namesCmd.Flags().Bool("json", false, "print JSON instead of text")
	rootCmd.AddCommand(namesCmd)
}
