package parser

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/xuri/excelize/v2"

	"github.com/KaramelBytes/datatidy-cli/internal/table"
)

type xlsxLoader struct{}

func (xlsxLoader) Format() Format { return FormatXLSX }

func (xlsxLoader) CanParse(filename string) bool {
	return strings.HasSuffix(strings.ToLower(filename), ".xlsx")
}

// Parse reads the selected sheet of a workbook. If SheetName is empty and
// SheetIndex <= 0, it defaults to the first sheet.
func (xlsxLoader) Parse(data []byte, opt Options) (*table.Table, error) {
	if !isZip(data) {
		return nil, &ParseError{Format: FormatXLSX, Err: fmt.Errorf("content looks like %s, not a workbook", mimetype.Detect(data).String())}
	}
	wb, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, &ParseError{Format: FormatXLSX, Err: fmt.Errorf("open workbook: %w", err)}
	}
	defer func() {
		_ = wb.Close()
	}()

	sheet, err := pickSheet(wb.GetSheetList(), opt.SheetName, opt.SheetIndex)
	if err != nil {
		return nil, &ParseError{Format: FormatXLSX, Err: err}
	}
	rows, err := wb.GetRows(sheet)
	if err != nil {
		return nil, &ParseError{Format: FormatXLSX, Err: fmt.Errorf("read sheet %s: %w", sheet, err)}
	}
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, &ParseError{Format: FormatXLSX, Err: fmt.Errorf("sheet %s is empty", sheet)}
	}
	header := rows[0]
	ncol := len(header)
	records := make([][]string, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if len(row) > ncol {
			for _, extra := range row[ncol:] {
				if strings.TrimSpace(extra) != "" {
					return nil, &ParseError{Format: FormatXLSX, Line: i + 2,
						Err: fmt.Errorf("row has %d cells, header has %d", len(row), ncol)}
				}
			}
			row = row[:ncol]
		}
		if len(row) < ncol {
			// trailing blank cells are omitted by the reader
			tmp := make([]string, ncol)
			copy(tmp, row)
			row = tmp
		}
		records = append(records, row)
	}
	return buildTable(FormatXLSX, header, records)
}

func isZip(data []byte) bool {
	for m := mimetype.Detect(data); m != nil; m = m.Parent() {
		if m.Is("application/zip") {
			return true
		}
	}
	return false
}

func pickSheet(sheets []string, name string, index int) (string, error) {
	if len(sheets) == 0 {
		return "", errors.New("no sheets found in workbook")
	}
	if name != "" {
		for _, s := range sheets {
			if strings.EqualFold(s, name) {
				return s, nil
			}
		}
		return "", fmt.Errorf("sheet '%s' not found.\nAvailable sheets: %s", name, strings.Join(sheets, ", "))
	}
	if index <= 0 {
		index = 1
	}
	if index > len(sheets) {
		return "", fmt.Errorf("sheet index %d out of range (workbook has %d sheets)", index, len(sheets))
	}
	return sheets[index-1], nil
}
