package analysis

import (
	"fmt"
	"strings"
)

// Markdown renders a compact report suitable for terminals or standalone docs.
func (r *Report) Markdown() string {
	var b strings.Builder
	b.WriteString("[DATASET SUMMARY]\n")
	if r.Name != "" {
		b.WriteString(fmt.Sprintf("File: %s\n", r.Name))
	}
	b.WriteString(fmt.Sprintf("Rows: %d\n", r.Rows))
	b.WriteString(fmt.Sprintf("Columns: %d\n", len(r.Cols)))
	if names := r.NeedsAttention(); len(names) > 0 {
		b.WriteString(fmt.Sprintf("Needs attention: %s\n", strings.Join(names, ", ")))
	}
	b.WriteString("\n")

	b.WriteString("[SCHEMA]\n")
	for _, c := range r.Cols {
		missPct := 0.0
		if c.Rows > 0 {
			missPct = float64(c.Missing+c.Invalid) * 100.0 / float64(c.Rows)
		}
		b.WriteString(fmt.Sprintf("- %s: %s (missing %d, invalid %d, %.1f%%)", safeName(c.Name), c.Kind, c.Missing, c.Invalid, missPct))
		if n := c.Numeric; n != nil {
			b.WriteString(fmt.Sprintf("; min %.4g, max %.4g, mean %.4g, median %.4g, std %.4g", n.Min, n.Max, n.Mean, n.Median, n.Std))
			if n.OutlierThreshold > 0 {
				b.WriteString(fmt.Sprintf("; outliers: %d above |z|>%.1f", n.OutliersCount, n.OutlierThreshold))
				if n.OutliersMaxAbsZ > 0 {
					b.WriteString(fmt.Sprintf(" (max |z|≈%.2f)", n.OutliersMaxAbsZ))
				}
			}
		}
		if len(c.TopValues) > 0 {
			b.WriteString("; top: ")
			for i, kv := range c.TopValues {
				if i > 0 {
					b.WriteString(", ")
				}
				b.WriteString(fmt.Sprintf("%s(%d)", safeVal(kv.Value), kv.Count))
			}
		}
		b.WriteString("\n")
	}

	b.WriteString("\n[DISTINCT VALUES]\n")
	for _, c := range r.Cols {
		vals := make([]string, len(c.Distinct))
		for i, v := range c.Distinct {
			vals[i] = safeVal(v)
		}
		b.WriteString(fmt.Sprintf("- %s (%d): %s", safeName(c.Name), c.DistinctCount, strings.Join(vals, ", ")))
		if c.Truncated {
			b.WriteString(fmt.Sprintf(", ... (%d more)", c.DistinctCount-len(c.Distinct)))
		}
		b.WriteString("\n")
	}

	if len(r.Samples) > 0 {
		b.WriteString("\n[HEAD AND SAMPLE ROWS]\n")
		b.WriteString("| ")
		for i, c := range r.Cols {
			if i > 0 {
				b.WriteString(" | ")
			}
			b.WriteString(safeName(c.Name))
		}
		b.WriteString(" |\n")
		b.WriteString("| ")
		for i := range r.Cols {
			if i > 0 {
				b.WriteString(" | ")
			}
			b.WriteString("---")
		}
		b.WriteString(" |\n")
		for _, row := range r.Samples {
			b.WriteString("| ")
			for i := range r.Cols {
				if i > 0 {
					b.WriteString(" | ")
				}
				val := ""
				if i < len(row) {
					val = row[i]
				}
				if len(val) > 80 {
					val = val[:77] + "..."
				}
				b.WriteString(safeVal(val))
			}
			b.WriteString(" |\n")
		}
	}
	if len(r.Warnings) > 0 {
		b.WriteString("\n[NOTES]\n")
		for _, w := range r.Warnings {
			b.WriteString("- ")
			b.WriteString(w)
			b.WriteString("\n")
		}
	}
	return b.String()
}

func safeName(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "(unnamed)"
	}
	return s
}

func safeVal(s string) string { return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "|", "/") }
