package cleaning

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/KaramelBytes/datatidy-cli/internal/stats"
	"github.com/KaramelBytes/datatidy-cli/internal/table"
)

// Impute applies one directive per named column and returns a new table.
// Columns without a directive are copied unchanged. Fill statistics are
// computed from the input column; DropRows masks are taken from the input
// and unioned, so row removal never depends on directive order.
func Impute(t *table.Table, directives map[string]Directive) (*Result, error) {
	var unknown []string
	for name := range directives {
		if !t.Has(name) {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, &UnknownColumnError{Names: unknown}
	}

	drop := make([]bool, t.Rows())
	for _, c := range t.Columns() {
		d, ok := directives[c.Name]
		if !ok || d.Strategy != DropRows {
			continue
		}
		for i, cell := range c.Cells {
			if cell.Absent() {
				drop[i] = true
			}
		}
	}

	res := &Result{ID: uuid.NewString()}
	for _, dropped := range drop {
		if dropped {
			res.RowsDropped++
		}
	}

	cols := make([]*table.Column, 0, t.Width())
	for _, c := range t.Columns() {
		d, ok := directives[c.Name]
		if !ok {
			cols = append(cols, keepRows(c, drop))
			continue
		}
		out, act, warn := apply(c, d, drop)
		if warn != nil {
			res.Warnings = append(res.Warnings, warn)
		}
		res.Actions = append(res.Actions, act)
		cols = append(cols, keepRows(out, drop))
	}
	out, err := table.NewSized(t.Rows()-res.RowsDropped, cols...)
	if err != nil {
		return nil, err
	}
	res.Table = out
	res.finish()
	return res, nil
}

// apply runs one directive against c. The returned column still has every
// input row.
func apply(c *table.Column, d Directive, drop []bool) (*table.Column, Action, *StrategyWarning) {
	act := Action{Column: c.Name, Op: d.Strategy.String(), Status: StatusApplied}
	warned := func(reason string) (*table.Column, Action, *StrategyWarning) {
		act.Status = StatusWarned
		act.Note = reason
		return c, act, &StrategyWarning{Column: c.Name, Strategy: d.Strategy, Kind: c.Kind, Reason: reason}
	}

	if d.Strategy.NumericOnly() && c.Kind != table.Numeric {
		return warned("requires a numeric column")
	}

	var fill table.Cell
	kind := c.Kind
	switch d.Strategy {
	case DoNothing:
		act.Status = StatusSkipped
		return c, act, nil
	case DropRows:
		for i, cell := range c.Cells {
			if cell.Absent() && drop[i] {
				act.RowsRemoved++
			}
		}
		return c, act, nil
	case FillMean, FillMedian:
		vals := presentNumbers(c)
		if len(vals) == 0 {
			return warned("no present values")
		}
		v := stats.Mean(vals)
		if d.Strategy == FillMedian {
			v = stats.Median(vals)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return warned("statistic is not finite")
		}
		fill = table.NumberCell(v)
	case FillZero:
		fill = table.NumberCell(0)
	case FillMode:
		m, ok := mode(c)
		if !ok {
			return warned("no present values")
		}
		fill = m
	case FillConstant:
		value := d.Constant()
		if strings.TrimSpace(value) == "" || table.IsSentinel(value) {
			return warned("constant " + strconv.Quote(value) + " reads back as missing")
		}
		cell, ok := table.ParseAs(c.Kind, value)
		fill = cell
		if !ok {
			kind = table.Text
			fill = table.TextCell(value)
		}
	default:
		return warned("unsupported strategy")
	}

	for i, cell := range c.Cells {
		if cell.Absent() && !drop[i] {
			act.CellsFilled++
		}
	}
	if act.CellsFilled == 0 {
		act.Note = "nothing to fill"
		return c, act, nil
	}

	src := c
	if kind != c.Kind {
		src = table.ToText(c)
		act.Note = "column converted to text"
	}
	out := src.Clone()
	for i, cell := range out.Cells {
		if cell.Absent() {
			out.Cells[i] = fill
		}
	}
	act.FillValue = table.FormatCell(kind, fill)
	return out, act, nil
}

func presentNumbers(c *table.Column) []float64 {
	var vals []float64
	for _, cell := range c.Cells {
		if cell.Status == table.Present {
			vals = append(vals, cell.Num)
		}
	}
	return vals
}

// mode returns the most frequent present cell; ties go to the value seen first.
func mode(c *table.Column) (table.Cell, bool) {
	counts := map[string]int{}
	first := map[string]table.Cell{}
	var order []string
	for _, cell := range c.Cells {
		if cell.Status != table.Present {
			continue
		}
		key := table.FormatCell(c.Kind, cell)
		if _, ok := counts[key]; !ok {
			order = append(order, key)
			first[key] = cell
		}
		counts[key]++
	}
	if len(order) == 0 {
		return table.Cell{}, false
	}
	best := order[0]
	for _, k := range order[1:] {
		if counts[k] > counts[best] {
			best = k
		}
	}
	return first[best], true
}

// keepRows returns c without the rows marked in drop.
func keepRows(c *table.Column, drop []bool) *table.Column {
	out := &table.Column{Name: c.Name, Kind: c.Kind, Cells: make([]table.Cell, 0, len(c.Cells))}
	for i, cell := range c.Cells {
		if !drop[i] {
			out.Cells = append(out.Cells, cell)
		}
	}
	return out
}
