package parser

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/KaramelBytes/datatidy-cli/internal/table"
)

// Format names an input container.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ParseFormat normalizes a user-supplied format tag.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "csv", "tsv":
		return FormatCSV, nil
	case "xlsx", "spreadsheet", "excel":
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupported, s)
	}
}

// Options controls how raw bytes become a table.
type Options struct {
	// Format overrides detection by file extension.
	Format Format
	// Delimiter for CSV. If 0, ',' is used (tab for .tsv files).
	Delimiter rune
	// SheetName selects an XLSX sheet by name (case-insensitive).
	SheetName string
	// SheetIndex is the 1-based sheet used when SheetName is empty.
	SheetIndex int
}

// Loader turns one input format into a table.
type Loader interface {
	Format() Format
	CanParse(filename string) bool
	Parse(data []byte, opt Options) (*table.Table, error)
}

var registry []Loader

// Register adds a loader implementation to the registry.
func Register(l Loader) {
	registry = append(registry, l)
}

// ParseError reports input that is not well-formed in its declared format.
type ParseError struct {
	Format Format
	// Line is the 1-based source row when known, else 0.
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse %s: line %d: %v", e.Format, e.Line, e.Err)
	}
	return fmt.Sprintf("parse %s: %v", e.Format, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ErrUnsupported indicates a format is not supported.
var ErrUnsupported = errors.New("unsupported table format")

// Load reads r fully and parses it in the given format.
func Load(r io.Reader, format Format, opt Options) (*table.Table, error) {
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	l, err := loaderFor(format)
	if err != nil {
		return nil, err
	}
	return l.Parse(buf.Bytes(), opt)
}

// LoadFile opens path, picks a loader from opt.Format or the file extension,
// and parses it. The file is closed on every path.
func LoadFile(path string, opt Options) (*table.Table, error) {
	format := opt.Format
	if format == "" {
		for _, l := range registry {
			if l.CanParse(path) {
				format = l.Format()
				break
			}
		}
	}
	if format == "" {
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, path)
	}
	if format == FormatCSV && opt.Delimiter == 0 && strings.HasSuffix(strings.ToLower(path), ".tsv") {
		opt.Delimiter = '\t'
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()
	return Load(f, format, opt)
}

func loaderFor(format Format) (Loader, error) {
	for _, l := range registry {
		if l.Format() == format {
			return l, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupported, format)
}

// buildTable infers every column from a header and rectangular records.
func buildTable(format Format, header []string, records [][]string) (*table.Table, error) {
	names, err := columnNames(header)
	if err != nil {
		return nil, &ParseError{Format: format, Line: 1, Err: err}
	}
	cols := make([]*table.Column, len(names))
	raw := make([]string, len(records))
	for j, name := range names {
		for i, rec := range records {
			raw[i] = rec[j]
		}
		cols[j] = table.Infer(name, raw)
	}
	t, err := table.New(cols...)
	if err != nil {
		return nil, &ParseError{Format: format, Err: err}
	}
	return t, nil
}

func columnNames(header []string) ([]string, error) {
	names := make([]string, len(header))
	seen := make(map[string]struct{}, len(header))
	for i, h := range header {
		n := strings.TrimSpace(h)
		if n == "" {
			n = fmt.Sprintf("Unnamed: %d", i)
		}
		if _, dup := seen[n]; dup {
			return nil, fmt.Errorf("duplicate column name %q", n)
		}
		seen[n] = struct{}{}
		names[i] = n
	}
	return names, nil
}

func init() {
	Register(csvLoader{})
	Register(xlsxLoader{})
}
