package export

import (
	"encoding/csv"
	"fmt"
	"io"
)

// WriteCSV writes tables one after another. Each section starts with a
// "# Name" record and its header row; sections are separated by a blank line.
func WriteCSV(w io.Writer, tables ...Table) error {
	for i, t := range tables {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}

		cw := csv.NewWriter(w)
		if err := cw.Write([]string{"# " + t.Name}); err != nil {
			return fmt.Errorf("writing csv %s: %w", t.Name, err)
		}
		if err := cw.Write(t.Headers); err != nil {
			return fmt.Errorf("writing csv headers for %s: %w", t.Name, err)
		}
		if err := cw.WriteAll(t.Rows); err != nil {
			return fmt.Errorf("writing csv rows for %s: %w", t.Name, err)
		}
	}
	return nil
}
