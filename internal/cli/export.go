package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/storeroom/internal/export"
	"github.com/mesh-intelligence/storeroom/internal/store"
	"github.com/mesh-intelligence/storeroom/pkg/types"
)

func newExportCmd(a *app) *cobra.Command {
	var (
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the report summary to a file",
		Long: `Export writes every report to a single file as csv, xlsx, json or text.
When --format is omitted it is taken from the --output extension.

Example:
  storeroom export --output report.xlsx
  storeroom export --format csv --output report.csv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if format == "" {
				format = strings.TrimPrefix(filepath.Ext(output), ".")
			}
			f, err := export.ParseFormat(format)
			if err != nil {
				return userError("export", err)
			}

			return a.withStore(cmd, func(s *store.Store) error {
				sum, err := s.Summary(cmd.Context())
				if err != nil {
					return err
				}
				if err := writeExport(output, f, sum); err != nil {
					return sysError("export", err)
				}
				a.logger.Info("summary exported", "path", output, "format", string(f))
				fmt.Fprintf(cmd.OutOrStdout(), "Exported summary to %s\n", output)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "output format: csv, xlsx, json or text")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}

// writeExport writes to a temp file in the target directory and renames it
// into place, so a failed export never leaves a partial file.
func writeExport(path string, f export.Format, sum types.Summary) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".export-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := export.WriteSummary(tmp, f, sum); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
