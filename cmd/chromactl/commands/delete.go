package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// delete [name]: drop a collection and all of its records.
func deleteCmd() *cobra.Command {
	var ignoreMissing bool
	cmd := &cobra.Command{
		Use:     "delete [name]",
		Aliases: []string{"rm"},
		Short:   "Delete a collection (default: the configured collection)",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := appCtx.Config.Collection
			if len(args) == 1 {
				name = args[0]
			}
			if name == "" {
				return fmt.Errorf("collection name required")
			}

			if err := appCtx.Collections.Delete(cmd.Context(), name, ignoreMissing); err != nil {
				return err
			}
			appCtx.Log.Info("deleted collection", "name", name)
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted collection %q\n", name)
			return nil
		},
	}
	cmd.Flags().BoolVar(&ignoreMissing, "ignore-missing", false, "succeed if the collection does not exist")
	return cmd
}
