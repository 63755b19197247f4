package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/storeroom/internal/export"
	"github.com/mesh-intelligence/storeroom/internal/shell"
	"github.com/mesh-intelligence/storeroom/internal/store"
)

func newPricesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prices",
		Short: "Change product prices",
	}
	cmd.AddCommand(newPricesIncreaseCmd(a))
	return cmd
}

func newPricesIncreaseCmd(a *app) *cobra.Command {
	var (
		category string
		factor   float64
	)

	cmd := &cobra.Command{
		Use:   "increase",
		Short: "Multiply the price of every product in a category",
		Long: `Increase multiplies the price of every product whose category matches
--category, ignoring case. Past orders are not repriced, so sales reports
change immediately.

Example:
  storeroom prices increase --category Телефоны --factor 1.10`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(cmd, func(s *store.Store) error {
				n, err := s.IncreasePrices(cmd.Context(), category, factor)
				if err != nil {
					return err
				}
				if a.flags.jsonMode {
					return export.WriteJSON(cmd.OutOrStdout(), map[string]any{
						"category": category,
						"factor":   factor,
						"updated":  n,
					})
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Updated %d products in %s (x%g)\n", n, category, factor)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&category, "category", shell.DefaultPriceCategory, "product category to reprice")
	cmd.Flags().Float64Var(&factor, "factor", shell.DefaultPriceFactor, "price multiplier, must be positive")

	return cmd
}
