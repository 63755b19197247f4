package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/storeroom/internal/batch"
	"github.com/mesh-intelligence/storeroom/internal/export"
	"github.com/mesh-intelligence/storeroom/internal/store"
	"github.com/mesh-intelligence/storeroom/pkg/types"
)

func newOrdersCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "orders",
		Short: "Add or list orders",
	}
	cmd.AddCommand(newOrdersAddCmd(a))
	cmd.AddCommand(newOrdersListCmd(a))
	return cmd
}

type ordersAddOptions struct {
	file   string
	sample bool
	orders []string
}

func newOrdersAddCmd(a *app) *cobra.Command {
	opts := &ordersAddOptions{}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Insert a batch of orders atomically",
		Long: `Add inserts a batch of orders in one transaction. Either every order is
stored or none is.

Orders come from a YAML or JSON batch file, the built-in sample batch, or
repeated --order flags of the form customer,product,quantity,date.

Example:
  storeroom orders add --sample
  storeroom orders add --file batch.yaml
  storeroom orders add --order 1,1,2,2024-05-01 --order 2,3,1,2024-05-02`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOrdersAdd(cmd, a, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "YAML or JSON batch file")
	cmd.Flags().BoolVar(&opts.sample, "sample", false, "insert the built-in sample batch")
	cmd.Flags().StringArrayVar(&opts.orders, "order", nil, "inline order customer,product,quantity,date (repeatable)")
	cmd.MarkFlagsMutuallyExclusive("file", "sample", "order")
	cmd.MarkFlagsOneRequired("file", "sample", "order")

	return cmd
}

func runOrdersAdd(cmd *cobra.Command, a *app, opts *ordersAddOptions) error {
	orders, err := opts.batch()
	if err != nil {
		return userError("read orders", err)
	}

	return a.withStore(cmd, func(s *store.Store) error {
		ids, err := s.InsertOrders(cmd.Context(), orders)
		if err != nil {
			return err
		}
		a.logger.Debug("orders inserted", "count", len(ids))

		if a.flags.jsonMode {
			return export.WriteJSON(cmd.OutOrStdout(), map[string]any{"order_ids": ids})
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Inserted %d orders\n", len(ids))
		return nil
	})
}

func (o *ordersAddOptions) batch() ([]types.NewOrder, error) {
	switch {
	case o.sample:
		return store.SampleOrders(), nil
	case o.file != "":
		return batch.Load(o.file)
	default:
		out := make([]types.NewOrder, 0, len(o.orders))
		for _, line := range o.orders {
			no, err := batch.ParseInline(line)
			if err != nil {
				return nil, err
			}
			out = append(out, no)
		}
		return out, nil
	}
}

func newOrdersListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored orders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(cmd, func(s *store.Store) error {
				orders, err := s.ListOrders(cmd.Context())
				if err != nil {
					return err
				}
				return a.render(cmd.OutOrStdout(), orders, export.OrdersTable(orders))
			})
		},
	}
}
