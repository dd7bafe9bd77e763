package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func queryCmd() *cobra.Command {
	var (
		embedding []float32
		n         int
		output    string
	)
	cmd := &cobra.Command{
		Use:   "query <name>",
		Short: "Find the records nearest to an embedding",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkOutput(output); err != nil {
				return err
			}
			matches, err := appCtx.Collections.Query(cmd.Context(), args[0], embedding, n)
			if err != nil {
				return err
			}
			if output == outputJSON {
				return printJSON(cmd.OutOrStdout(), matches)
			}
			for i, m := range matches {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%.6f\t%s\n", i+1, m.ID, m.Distance, m.Document)
			}
			return nil
		},
	}
	cmd.Flags().Float32SliceVar(&embedding, "embedding", nil, "query embedding, e.g. 0.1,0.2,0.3")
	cmd.Flags().IntVarP(&n, "n-results", "n", 10, "number of results")
	_ = cmd.MarkFlagRequired("embedding")
	addOutputFlag(cmd, &output)
	return cmd
}
