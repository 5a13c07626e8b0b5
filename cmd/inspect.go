package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <id>...",
	Short: "Print which branch of the lookup chain serves each id",
	Long: `inspect prints "<id> <source>" per id, where source is one of
definition, tag, provider, delegate or none. Nothing is resolved.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := newApplication()
		if err != nil {
			return err
		}
		for _, id := range args {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", id, application.Source(id))
		}
		return nil
	},
}
