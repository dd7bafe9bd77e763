package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"chromactl/internal/domain"
)

func createCmd() *cobra.Command {
	var (
		metadata    map[string]string
		space       string
		getOrCreate bool
	)
	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a collection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			md := toAny(metadata)
			if space != "" {
				if md == nil {
					md = map[string]any{}
				}
				md[domain.SpaceMetadataKey] = space
			}

			create := appCtx.Collections.Create
			if getOrCreate {
				create = appCtx.Collections.GetOrCreate
			}
			col, err := create(cmd.Context(), args[0], md)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Collection %q id=%s space=%s\n", col.Name, col.ID, col.Space)
			return nil
		},
	}
	cmd.Flags().StringToStringVar(&metadata, "metadata", nil, "collection metadata as key=value pairs")
	cmd.Flags().StringVar(&space, "space", "", "distance space (l2, cosine, ip)")
	cmd.Flags().BoolVar(&getOrCreate, "get-or-create", false, "return the existing collection instead of failing")
	return cmd
}
