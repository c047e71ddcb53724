// Package export serializes tables for download.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/KaramelBytes/datatidy-cli/internal/table"
)

// WriteCSV writes a header row and every row in canonical form, comma
// separated, UTF-8, without an index column.
func WriteCSV(w io.Writer, t *table.Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Names()); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i := 0; i < t.Rows(); i++ {
		row := t.Row(i)
		if len(row) == 1 && row[0] == "" {
			// a bare empty line would be skipped by readers
			cw.Flush()
			if _, err := io.WriteString(w, "\"\"\n"); err != nil {
				return fmt.Errorf("write row %d: %w", i+1, err)
			}
			continue
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// CSV returns the table as CSV bytes.
func CSV(t *table.Table) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, t); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DefaultSheet is the sheet name used by XLSX.
const DefaultSheet = "Sheet1"

// XLSX returns the table as a single-sheet workbook. Numeric cells are
// written as numbers; temporal and invalid cells as their canonical text so
// a reload infers the same kinds.
func XLSX(t *table.Table) ([]byte, error) {
	wb := excelize.NewFile()
	defer func() {
		_ = wb.Close()
	}()
	for j, name := range t.Names() {
		cell, err := excelize.CoordinatesToCellName(j+1, 1)
		if err != nil {
			return nil, err
		}
		if err := wb.SetCellStr(DefaultSheet, cell, name); err != nil {
			return nil, fmt.Errorf("write header: %w", err)
		}
	}
	for j, col := range t.Columns() {
		for i, c := range col.Cells {
			if c.Status == table.Missing {
				continue
			}
			ref, err := excelize.CoordinatesToCellName(j+1, i+2)
			if err != nil {
				return nil, err
			}
			if c.Status == table.Present && col.Kind == table.Numeric {
				err = wb.SetCellFloat(DefaultSheet, ref, c.Num, -1, 64)
			} else {
				err = wb.SetCellStr(DefaultSheet, ref, col.Format(i))
			}
			if err != nil {
				return nil, fmt.Errorf("write %s: %w", ref, err)
			}
		}
	}
	buf, err := wb.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
