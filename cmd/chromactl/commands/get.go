package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func getCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "get <name> [ids...]",
		Short: "Fetch records by id (all records when no ids are given)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkOutput(output); err != nil {
				return err
			}
			recs, err := appCtx.Collections.Get(cmd.Context(), args[0], args[1:])
			if err != nil {
				return err
			}
			if output == outputJSON {
				return printJSON(cmd.OutOrStdout(), recs)
			}
			for _, r := range recs {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", r.ID, r.Document)
			}
			return nil
		},
	}
	addOutputFlag(cmd, &output)
	return cmd
}
