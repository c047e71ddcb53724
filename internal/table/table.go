package table

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Kind is the inferred type of a column.
type Kind int

const (
	Text Kind = iota
	Numeric
	Temporal
)

func (k Kind) String() string {
	switch k {
	case Numeric:
		return "numeric"
	case Temporal:
		return "temporal"
	default:
		return "text"
	}
}

// MarshalText renders the kind name for JSON reports.
func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// Status tells whether a cell carries a value.
type Status int

const (
	Present Status = iota
	// Missing is a structural null: the source cell was empty.
	Missing
	// Invalid is a non-empty cell whose content is a "no data" sentinel.
	Invalid
)

// Cell is a single value. Only the field matching the owning column's Kind is
// meaningful for Present cells; Invalid cells keep their source text in Text.
type Cell struct {
	Status Status
	Num    float64
	Time   time.Time
	Text   string
}

// Absent reports whether the cell is missing or invalid.
func (c Cell) Absent() bool { return c.Status != Present }

func NumberCell(v float64) Cell   { return Cell{Num: v} }
func TimeCell(t time.Time) Cell   { return Cell{Time: t} }
func TextCell(s string) Cell      { return Cell{Text: s} }
func MissingCell() Cell           { return Cell{Status: Missing} }
func InvalidCell(raw string) Cell { return Cell{Status: Invalid, Text: raw} }

var sentinels = map[string]struct{}{"nan": {}, "none": {}, "null": {}}

// IsSentinel reports whether s is conventionally "no data" text.
func IsSentinel(s string) bool {
	_, ok := sentinels[strings.ToLower(strings.TrimSpace(s))]
	return ok
}

// Column is a named, typed sequence of cells.
type Column struct {
	Name  string
	Kind  Kind
	Cells []Cell
}

// Len returns the number of cells.
func (c *Column) Len() int { return len(c.Cells) }

// Format renders cell i in its canonical export form.
func (c *Column) Format(i int) string {
	return FormatCell(c.Kind, c.Cells[i])
}

// AbsentCount returns structural-missing and sentinel counts.
func (c *Column) AbsentCount() (missing, invalid int) {
	for _, cell := range c.Cells {
		switch cell.Status {
		case Missing:
			missing++
		case Invalid:
			invalid++
		}
	}
	return missing, invalid
}

// Clone returns a deep copy of the column.
func (c *Column) Clone() *Column {
	cells := make([]Cell, len(c.Cells))
	copy(cells, c.Cells)
	return &Column{Name: c.Name, Kind: c.Kind, Cells: cells}
}

// FormatCell renders a cell of the given kind.
func FormatCell(k Kind, c Cell) string {
	switch c.Status {
	case Missing:
		return ""
	case Invalid:
		return c.Text
	}
	switch k {
	case Numeric:
		return FormatNumber(c.Num)
	case Temporal:
		return FormatTime(c.Time)
	default:
		return c.Text
	}
}

// FormatNumber is the canonical decimal rendering of a numeric value.
func FormatNumber(v float64) string {
	if v == 0 {
		// avoid "-0"
		v = 0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatTime renders a date as YYYY-MM-DD when it has no time component.
func FormatTime(t time.Time) string {
	if t.Location() == time.UTC {
		if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
			return t.Format(DateLayout)
		}
		return t.Format("2006-01-02 15:04:05.999999999")
	}
	return t.Format(time.RFC3339Nano)
}

// DateLayout is the display layout for temporal values.
const DateLayout = "2006-01-02"

// Table is an ordered set of equally long columns with unique names.
type Table struct {
	cols  []*Column
	index map[string]int
	rows  int
}

// New builds a table, validating unique names and equal column lengths.
// The row count is taken from the first column.
func New(cols ...*Column) (*Table, error) {
	rows := 0
	if len(cols) > 0 && cols[0] != nil {
		rows = cols[0].Len()
	}
	return NewSized(rows, cols...)
}

// NewSized is New with an explicit row count, so a table keeps its rows
// even when it has no columns.
func NewSized(rows int, cols ...*Column) (*Table, error) {
	t := &Table{cols: cols, index: make(map[string]int, len(cols)), rows: rows}
	for i, c := range cols {
		if c == nil {
			return nil, fmt.Errorf("column %d is nil", i)
		}
		if _, dup := t.index[c.Name]; dup {
			return nil, fmt.Errorf("duplicate column name %q", c.Name)
		}
		if c.Len() != rows {
			return nil, fmt.Errorf("column %q has %d rows, want %d", c.Name, c.Len(), rows)
		}
		t.index[c.Name] = i
	}
	return t, nil
}

// MustNew is New that panics on error; intended for tests and literals.
func MustNew(cols ...*Column) *Table {
	t, err := New(cols...)
	if err != nil {
		panic(err)
	}
	return t
}

// Rows returns the row count.
func (t *Table) Rows() int { return t.rows }

// Width returns the column count.
func (t *Table) Width() int { return len(t.cols) }

// Columns returns the columns in order. Callers must not modify them.
func (t *Table) Columns() []*Column { return t.cols }

// Names returns column names in order.
func (t *Table) Names() []string {
	out := make([]string, len(t.cols))
	for i, c := range t.cols {
		out[i] = c.Name
	}
	return out
}

// Column looks up a column by name.
func (t *Table) Column(name string) (*Column, bool) {
	i, ok := t.index[name]
	if !ok {
		return nil, false
	}
	return t.cols[i], true
}

// Has reports whether a column exists.
func (t *Table) Has(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Row renders row i in canonical form.
func (t *Table) Row(i int) []string {
	out := make([]string, len(t.cols))
	for j, c := range t.cols {
		out[j] = c.Format(i)
	}
	return out
}

// Select returns a new table made of deep copies of the named columns, in
// the given order.
func (t *Table) Select(names []string) (*Table, error) {
	cols := make([]*Column, 0, len(names))
	for _, n := range names {
		c, ok := t.Column(n)
		if !ok {
			return nil, fmt.Errorf("unknown column %q", n)
		}
		cols = append(cols, c.Clone())
	}
	return NewSized(t.rows, cols...)
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	cols := make([]*Column, len(t.cols))
	for i, c := range t.cols {
		cols[i] = c.Clone()
	}
	return &Table{cols: cols, index: t.index, rows: t.rows}
}

// Equal reports whether two tables have the same names, kinds and canonical
// cell renderings in the same order.
func (t *Table) Equal(o *Table) bool {
	if t.Width() != o.Width() || t.Rows() != o.Rows() {
		return false
	}
	for j, c := range t.cols {
		oc := o.cols[j]
		if c.Name != oc.Name || c.Kind != oc.Kind {
			return false
		}
		for i := range c.Cells {
			if c.Cells[i].Status != oc.Cells[i].Status || c.Format(i) != oc.Format(i) {
				return false
			}
		}
	}
	return true
}
