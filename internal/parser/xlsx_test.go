package parser_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/KaramelBytes/datatidy-cli/internal/parser"
	"github.com/KaramelBytes/datatidy-cli/internal/table"
)

// workbook builds an in-memory workbook with a Data sheet at index 2.
func workbook(t *testing.T, rows [][]any) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	if _, err := f.NewSheet("Data"); err != nil {
		t.Fatalf("new sheet: %v", err)
	}
	if err := f.SetCellStr("Sheet1", "A1", "ignored"); err != nil {
		t.Fatalf("set cell: %v", err)
	}
	for i, row := range rows {
		ref, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("coords: %v", err)
		}
		r := row
		if err := f.SetSheetRow("Data", ref, &r); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return buf.Bytes()
}

func TestLoadXLSX_SheetSelection(t *testing.T) {
	data := workbook(t, [][]any{
		{"Group", "Score", "Note"},
		{"A", 10.5, "first"},
		{"B", nil, "NULL"},
		{"A", 3},
	})
	byName, err := parser.Load(bytes.NewReader(data), parser.FormatXLSX, parser.Options{SheetName: "data"})
	if err != nil {
		t.Fatalf("load by name: %v", err)
	}
	byIndex, err := parser.Load(bytes.NewReader(data), parser.FormatXLSX, parser.Options{SheetIndex: 2})
	if err != nil {
		t.Fatalf("load by index: %v", err)
	}
	if !byName.Equal(byIndex) {
		t.Fatalf("sheet selection by name and index disagree")
	}
	if byName.Rows() != 3 {
		t.Fatalf("rows = %d, want 3", byName.Rows())
	}
	score, _ := byName.Column("Score")
	if score.Kind != table.Numeric || score.Format(0) != "10.5" || score.Cells[1].Status != table.Missing {
		t.Fatalf("score column = %#v", score)
	}
	note, _ := byName.Column("Note")
	if note.Cells[1].Status != table.Invalid || note.Cells[2].Status != table.Missing {
		t.Fatalf("note statuses = %#v", note.Cells)
	}
}

func TestLoadXLSX_UnknownSheet(t *testing.T) {
	data := workbook(t, [][]any{{"a"}, {"1"}})
	_, err := parser.Load(bytes.NewReader(data), parser.FormatXLSX, parser.Options{SheetName: "Nope"})
	var pe *parser.ParseError
	if !errors.As(err, &pe) || !strings.Contains(err.Error(), "Available sheets: Sheet1, Data") {
		t.Fatalf("want ParseError listing sheets, got %v", err)
	}
}

func TestLoadXLSX_NotAWorkbook(t *testing.T) {
	_, err := parser.Load(strings.NewReader("a,b\n1,2\n"), parser.FormatXLSX, parser.Options{})
	var pe *parser.ParseError
	if !errors.As(err, &pe) || pe.Format != parser.FormatXLSX {
		t.Fatalf("want xlsx ParseError, got %v", err)
	}
}

func TestLoadXLSX_CorruptContainer(t *testing.T) {
	_, err := parser.Load(strings.NewReader("PK\x03\x04\x14\x00\x00\x00\x08\x00broken"), parser.FormatXLSX, parser.Options{})
	var pe *parser.ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("want ParseError, got %v", err)
	}
}
