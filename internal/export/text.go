package export

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// WriteText writes each table as a title line followed by aligned columns.
// Tables are separated by a blank line. A table with no rows prints
// "(none)" under its header.
func WriteText(w io.Writer, tables ...Table) error {
	for i, t := range tables {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "== %s ==\n", t.Title); err != nil {
			return err
		}

		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, strings.Join(t.Headers, "\t"))
		for _, row := range t.Rows {
			fmt.Fprintln(tw, strings.Join(row, "\t"))
		}
		if err := tw.Flush(); err != nil {
			return fmt.Errorf("writing %s: %w", t.Name, err)
		}
		if len(t.Rows) == 0 {
			if _, err := io.WriteString(w, "(none)\n"); err != nil {
				return err
			}
		}
	}
	return nil
}
