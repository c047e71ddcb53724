// Package analysis profiles the columns of a table.
package analysis

import (
	"math"
	"sort"

	"github.com/KaramelBytes/datatidy-cli/internal/stats"
	"github.com/KaramelBytes/datatidy-cli/internal/table"
)

// Options controls profiling behavior.
type Options struct {
	// MaxDistinct caps the distinct value list per column; 0 means unlimited.
	MaxDistinct int
	// SampleRows determines how many example rows to include in the report.
	SampleRows int
	// TopValues is the number of most frequent text values kept per column.
	TopValues int
	// Outlier detection via robust Z-score (MAD). If Outliers is true, counts |z|>threshold.
	Outliers         bool
	OutlierThreshold float64
}

// DefaultOptions returns reasonable defaults for column profiling.
func DefaultOptions() Options {
	return Options{
		MaxDistinct:      20,
		SampleRows:       5,
		TopValues:        5,
		OutlierThreshold: 3.5,
	}
}

// minOutlierValues is the smallest sample MAD outlier counts are reported for.
const minOutlierValues = 8

// Report is a markdown-friendly profile of a table.
type Report struct {
	Name     string          `json:"name,omitempty"`
	Rows     int             `json:"rows"`
	Cols     []ColumnProfile `json:"columns"`
	Samples  [][]string      `json:"samples,omitempty"`
	Warnings []string        `json:"notes,omitempty"`
}

// ColumnProfile is the derived summary of one column.
type ColumnProfile struct {
	Name           string     `json:"name"`
	Kind           table.Kind `json:"kind"`
	Rows           int        `json:"rows"`
	Missing        int        `json:"missing"`
	Invalid        int        `json:"invalid"`
	NeedsAttention bool       `json:"needs_attention"`
	Distinct       []string   `json:"distinct"`
	DistinctCount  int        `json:"distinct_count"`
	Truncated      bool       `json:"truncated,omitempty"`

	Numeric *NumericSummary `json:"numeric,omitempty"`
	// Text columns only
	TopValues []CategoryCount `json:"top_values,omitempty"`
}

// NumericSummary holds statistics over the present values of a numeric column.
type NumericSummary struct {
	Count  int     `json:"count"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Std    float64 `json:"std"`
	// Outliers (robust Z via MAD)
	OutliersCount    int     `json:"outliers,omitempty"`
	OutliersMaxAbsZ  float64 `json:"outliers_max_abs_z,omitempty"`
	OutlierThreshold float64 `json:"outlier_threshold,omitempty"`
}

type CategoryCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// Profile summarizes every column of t.
func Profile(t *table.Table, opt Options) *Report {
	rep := &Report{Rows: t.Rows()}
	for _, c := range t.Columns() {
		p := ProfileColumn(c, opt)
		rep.Cols = append(rep.Cols, p)
		if p.Missing+p.Invalid == p.Rows && p.Rows > 0 {
			rep.Warnings = append(rep.Warnings, "column "+safeName(p.Name)+" has no usable values")
		}
	}
	sampleRows := opt.SampleRows
	if sampleRows <= 0 {
		sampleRows = 5
	}
	for i := 0; i < t.Rows() && i < sampleRows; i++ {
		rep.Samples = append(rep.Samples, t.Row(i))
	}
	if t.Rows() == 0 {
		rep.Warnings = append(rep.Warnings, "table has no data rows")
	}
	return rep
}

// ProfileColumn summarizes one column. It does not modify c.
func ProfileColumn(c *table.Column, opt Options) ColumnProfile {
	p := ColumnProfile{Name: c.Name, Kind: c.Kind, Rows: c.Len()}
	p.Missing, p.Invalid = c.AbsentCount()
	p.NeedsAttention = p.Missing+p.Invalid > 0

	seen := make(map[string]struct{})
	for _, cell := range c.Cells {
		if cell.Status == table.Missing {
			continue
		}
		v := distinctValue(c.Kind, cell)
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		p.DistinctCount++
		if opt.MaxDistinct > 0 && len(p.Distinct) >= opt.MaxDistinct {
			p.Truncated = true
			continue
		}
		p.Distinct = append(p.Distinct, v)
	}

	switch c.Kind {
	case table.Numeric:
		p.Numeric = summarize(presentNumbers(c), opt)
	case table.Text:
		p.TopValues = topValues(c, opt.TopValues)
	}
	return p
}

// distinctValue is the display form of a non-missing cell.
func distinctValue(k table.Kind, c table.Cell) string {
	if c.Status == table.Present && k == table.Temporal {
		return c.Time.Format(table.DateLayout)
	}
	return table.FormatCell(k, c)
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

func summarize(vals []float64, opt Options) *NumericSummary {
	if len(vals) == 0 {
		return nil
	}
	s := &NumericSummary{
		Count:  len(vals),
		Min:    math.Inf(1),
		Max:    math.Inf(-1),
		Mean:   stats.Mean(vals),
		Median: stats.Median(vals),
		Std:    stats.StdDev(vals),
	}
	for _, v := range vals {
		s.Min = math.Min(s.Min, v)
		s.Max = math.Max(s.Max, v)
	}
	if opt.Outliers && len(vals) >= minOutlierValues {
		thr := opt.OutlierThreshold
		if thr <= 0 {
			thr = 3.5
		}
		s.OutlierThreshold = thr
		s.OutliersCount, s.OutliersMaxAbsZ = stats.RobustOutliers(vals, thr)
	}
	return s
}

// topValues returns the n most frequent present values, ties in
// first-occurrence order.
func topValues(c *table.Column, n int) []CategoryCount {
	if n <= 0 {
		n = 5
	}
	counts := map[string]int{}
	var order []string
	for _, cell := range c.Cells {
		if cell.Status != table.Present {
			continue
		}
		if _, ok := counts[cell.Text]; !ok {
			order = append(order, cell.Text)
		}
		counts[cell.Text]++
	}
	out := make([]CategoryCount, 0, len(order))
	for _, v := range order {
		out = append(out, CategoryCount{Value: v, Count: counts[v]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// NeedsAttention returns the names of columns with missing or invalid cells.
func (r *Report) NeedsAttention() []string {
	var names []string
	for _, c := range r.Cols {
		if c.NeedsAttention {
			names = append(names, c.Name)
		}
	}
	return names
}
