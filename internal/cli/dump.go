package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/storeroom/internal/export"
	"github.com/mesh-intelligence/storeroom/internal/store"
)

func newDumpCmd(a *app) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Write all tables to JSONL files",
		Long: `Dump writes products.jsonl, customers.jsonl, orders.jsonl and a
manifest.json to --dir, read from a single transaction.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(cmd, func(s *store.Store) error {
				m, err := s.Dump(cmd.Context(), dir)
				if err != nil {
					return err
				}
				if a.flags.jsonMode {
					return export.WriteJSON(cmd.OutOrStdout(), m)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Dumped %d products, %d customers, %d orders to %s (dump %s)\n",
					m.Products, m.Customers, m.Orders, dir, m.DumpID)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "directory for the JSONL files")
	_ = cmd.MarkFlagRequired("dir")

	return cmd
}

func newRestoreCmd(a *app) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "restore",
		Short: "Replace all data with a JSONL dump",
		Long: `Restore deletes every order, customer and product and loads the JSONL
files written by dump, keeping their IDs. Nothing changes if any file is
malformed or violates a constraint.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(cmd, func(s *store.Store) error {
				if err := s.Restore(cmd.Context(), dir); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Restored from %s\n", dir)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "directory holding the JSONL files")
	_ = cmd.MarkFlagRequired("dir")

	return cmd
}
