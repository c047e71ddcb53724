package parser

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/gabriel-vasile/mimetype"
	"golang.org/x/text/encoding/charmap"

	"github.com/KaramelBytes/datatidy-cli/internal/table"
)

type csvLoader struct{}

func (csvLoader) Format() Format { return FormatCSV }

func (csvLoader) CanParse(filename string) bool {
	name := strings.ToLower(filename)
	return strings.HasSuffix(name, ".csv") || strings.HasSuffix(name, ".tsv")
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

func (csvLoader) Parse(data []byte, opt Options) (*table.Table, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, &ParseError{Format: FormatCSV, Err: errors.New("empty input")}
	}
	if err := sniffText(data); err != nil {
		return nil, &ParseError{Format: FormatCSV, Err: err}
	}
	if !utf8.Valid(data) {
		dec, err := charmap.Windows1252.NewDecoder().Bytes(data)
		if err != nil {
			return nil, &ParseError{Format: FormatCSV, Err: fmt.Errorf("decode input: %w", err)}
		}
		data = dec
	}

	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = ','
	if opt.Delimiter != 0 {
		r.Comma = opt.Delimiter
	}
	header, err := r.Read()
	if err != nil {
		return nil, csvError(err)
	}
	var records [][]string
	for {
		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, csvError(err)
		}
		records = append(records, rec)
	}
	return buildTable(FormatCSV, header, records)
}

// sniffText rejects a workbook uploaded as CSV and content carrying binary
// control bytes. Everything else is left to the CSV reader.
func sniffText(data []byte) error {
	mt := mimetype.Detect(data)
	for m := mt; m != nil; m = m.Parent() {
		if m.Is("application/zip") || m.Is("application/x-ole-storage") {
			return fmt.Errorf("content looks like %s, not CSV", mt.String())
		}
	}
	if i := bytes.IndexFunc(data, isBinaryRune); i >= 0 {
		return fmt.Errorf("binary byte 0x%02x at offset %d, not CSV", data[i], i)
	}
	return nil
}

// isBinaryRune matches the C0 controls that never appear in text files.
func isBinaryRune(r rune) bool {
	return r <= 0x08 || (r >= 0x0E && r <= 0x1A) || (r >= 0x1C && r <= 0x1F)
}

func csvError(err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return &ParseError{Format: FormatCSV, Line: pe.Line, Err: pe.Err}
	}
	return &ParseError{Format: FormatCSV, Err: err}
}
