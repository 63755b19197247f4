package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/storeroom/internal/store"
)

func newSeedCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Replace all data with the fixed products and customers",
		Long: `Seed deletes every order, customer and product and loads the fixed
catalog of six products and five customers. Orders are left empty.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(cmd, func(s *store.Store) error {
				if err := s.ResetAndSeed(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d products and %d customers\n",
					len(store.SeedProducts()), len(store.SeedCustomers()))
				return nil
			})
		},
	}
}
