package table

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// DateOrder is the day/month convention of slash and dash dates.
type DateOrder int

const (
	// AnyOrder layouts put the year first and are never ambiguous.
	AnyOrder DateOrder = iota
	DayFirst
	MonthFirst
)

var timeLayouts = []struct {
	layout string
	order  DateOrder
}{
	{time.RFC3339, AnyOrder},
	{"2006-01-02", AnyOrder},
	{"2006/01/02", AnyOrder},
	{"2006-01-02 15:04", AnyOrder},
	{"2006-01-02 15:04:05", AnyOrder},
	{"02/01/2006", DayFirst},
	{"01/02/2006", MonthFirst},
	{"1/2/2006 15:04", MonthFirst},
	{"1/2/2006 15:04:05", MonthFirst},
	{"01-02-06", MonthFirst},
	{"1/2/06", MonthFirst},
	{"1/2/06 15:04", MonthFirst},
}

// ParseTime parses s with the recognized date/time layouts, day-first
// before month-first.
func ParseTime(s string) (time.Time, bool) {
	if t, ok := ParseTimeOrder(s, DayFirst); ok {
		return t, true
	}
	return ParseTimeOrder(s, MonthFirst)
}

// ParseTimeOrder parses s with the year-first layouts and the layouts of
// the given day/month convention only.
func ParseTimeOrder(s string, order DateOrder) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, l := range timeLayouts {
		if l.order != AnyOrder && l.order != order {
			continue
		}
		if t, err := time.Parse(l.layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ParseNumber parses a finite decimal number. NaN and infinities are rejected
// so sentinel text never turns into a numeric value.
func ParseNumber(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// ParseAs converts raw text into a present cell of kind k.
func ParseAs(k Kind, raw string) (Cell, bool) {
	switch k {
	case Numeric:
		v, ok := ParseNumber(raw)
		return NumberCell(v), ok
	case Temporal:
		t, ok := ParseTime(raw)
		return TimeCell(t), ok
	default:
		return TextCell(raw), true
	}
}

// Infer builds a column from raw strings. Empty cells become Missing,
// sentinels become Invalid, and the Kind is the narrowest type every
// remaining cell parses as. A temporal column reads every cell with one
// day/month convention, day-first when both fit.
func Infer(name string, raw []string) *Column {
	col := &Column{Name: name, Cells: make([]Cell, len(raw))}
	var values []string
	for _, v := range raw {
		if strings.TrimSpace(v) != "" && !IsSentinel(v) {
			values = append(values, v)
		}
	}
	order := AnyOrder
	switch {
	case len(values) == 0:
		col.Kind = Text
	case all(values, func(v string) bool { _, ok := ParseNumber(v); return ok }):
		col.Kind = Numeric
	default:
		col.Kind = Text
		for _, o := range []DateOrder{DayFirst, MonthFirst} {
			if all(values, func(v string) bool { _, ok := ParseTimeOrder(v, o); return ok }) {
				col.Kind, order = Temporal, o
				break
			}
		}
	}
	for i, v := range raw {
		switch {
		case strings.TrimSpace(v) == "":
			col.Cells[i] = MissingCell()
		case IsSentinel(v):
			col.Cells[i] = InvalidCell(v)
		case col.Kind == Temporal:
			t, _ := ParseTimeOrder(v, order)
			col.Cells[i] = TimeCell(t)
		default:
			cell, _ := ParseAs(col.Kind, v)
			col.Cells[i] = cell
		}
	}
	return col
}

func all(vals []string, ok func(string) bool) bool {
	for _, v := range vals {
		if !ok(v) {
			return false
		}
	}
	return true
}

// ToText converts a column to text kind using canonical renderings.
func ToText(c *Column) *Column {
	out := &Column{Name: c.Name, Kind: Text, Cells: make([]Cell, len(c.Cells))}
	for i, cell := range c.Cells {
		if cell.Absent() {
			out.Cells[i] = cell
			continue
		}
		out.Cells[i] = TextCell(FormatCell(c.Kind, cell))
	}
	return out
}
