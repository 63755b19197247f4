package cli

import (
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/storeroom/internal/export"
	"github.com/mesh-intelligence/storeroom/internal/store"
)

func newProductsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "products",
		Short: "Inspect the product catalog",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List all products",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(cmd, func(s *store.Store) error {
				products, err := s.ListProducts(cmd.Context())
				if err != nil {
					return err
				}
				return a.render(cmd.OutOrStdout(), products, export.ProductsTable(products))
			})
		},
	})
	return cmd
}

func newCustomersCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "customers",
		Short: "Inspect customers",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List all customers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(cmd, func(s *store.Store) error {
				customers, err := s.ListCustomers(cmd.Context())
				if err != nil {
					return err
				}
				return a.render(cmd.OutOrStdout(), customers, export.CustomersTable(customers))
			})
		},
	})
	return cmd
}
