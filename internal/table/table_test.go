package table

import (
	"testing"
	"time"
)

func TestInferKinds(t *testing.T) {
	cases := []struct {
		name string
		raw  []string
		want Kind
	}{
		{"numbers", []string{"1", "", "3.5"}, Numeric},
		{"numbers with sentinels", []string{"1", "NULL", "nan", "2"}, Numeric},
		{"dates", []string{"2024-01-02", "2024/02/03", ""}, Temporal},
		{"mixed", []string{"1", "2024-01-02"}, Text},
		{"text", []string{"a", "b"}, Text},
		{"all missing", []string{"", "None"}, Text},
		{"nan is not a number", []string{"NaN", "Inf"}, Text},
	}
	for _, tc := range cases {
		c := Infer(tc.name, tc.raw)
		if c.Kind != tc.want {
			t.Fatalf("%s: kind = %v, want %v", tc.name, c.Kind, tc.want)
		}
	}
}

func TestInferStatuses(t *testing.T) {
	c := Infer("x", []string{"1", " ", "null", "4"})
	missing, invalid := c.AbsentCount()
	if missing != 1 || invalid != 1 {
		t.Fatalf("missing=%d invalid=%d, want 1 and 1", missing, invalid)
	}
	if got := c.Format(2); got != "null" {
		t.Fatalf("invalid cell formats as %q, want raw text", got)
	}
	if got := c.Format(3); got != "4" {
		t.Fatalf("numeric cell formats as %q", got)
	}
}

func TestFormatTime(t *testing.T) {
	d := time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)
	if got := FormatTime(d); got != "2024-03-09" {
		t.Fatalf("date = %q", got)
	}
	dt := time.Date(2024, 3, 9, 14, 5, 0, 0, time.UTC)
	if got := FormatTime(dt); got != "2024-03-09 14:05:00" {
		t.Fatalf("datetime = %q", got)
	}
	if _, ok := ParseTime(FormatTime(dt)); !ok {
		t.Fatalf("formatted datetime does not parse back")
	}
}

func TestNewRejectsDuplicatesAndRagged(t *testing.T) {
	a := Infer("a", []string{"1"})
	if _, err := New(a, Infer("a", []string{"2"})); err == nil {
		t.Fatalf("expected duplicate name error")
	}
	if _, err := New(a, Infer("b", []string{"1", "2"})); err == nil {
		t.Fatalf("expected row count error")
	}
}

func TestSelectCopies(t *testing.T) {
	tb := MustNew(Infer("a", []string{"1", "2"}), Infer("b", []string{"x", "y"}))
	sel, err := tb.Select([]string{"b", "a"})
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if got := sel.Names(); got[0] != "b" || got[1] != "a" {
		t.Fatalf("names = %v", got)
	}
	c, _ := sel.Column("a")
	c.Cells[0] = NumberCell(99)
	orig, _ := tb.Column("a")
	if orig.Format(0) != "1" {
		t.Fatalf("select mutated the source table")
	}
}

func TestToText(t *testing.T) {
	c := ToText(Infer("n", []string{"1.50", "", "2"}))
	if c.Kind != Text || c.Format(0) != "1.5" || c.Cells[1].Status != Missing {
		t.Fatalf("unexpected text column: %#v", c)
	}
}

func TestInferDateOrderPerColumn(t *testing.T) {
	cases := []struct {
		name string
		raw  []string
		want []string
	}{
		{"month first", []string{"12/31/2020", "01/02/2020"}, []string{"2020-12-31", "2020-01-02"}},
		{"day first", []string{"31/12/2020", "02/01/2020"}, []string{"2020-12-31", "2020-01-02"}},
		{"iso alongside slashes", []string{"2020-03-04", "12/31/2020", "01/02/2020"}, []string{"2020-03-04", "2020-12-31", "2020-01-02"}},
	}
	for _, tc := range cases {
		c := Infer(tc.name, tc.raw)
		if c.Kind != Temporal {
			t.Fatalf("%s: kind = %v", tc.name, c.Kind)
		}
		for i, want := range tc.want {
			if got := c.Format(i); got != want {
				t.Fatalf("%s: row %d = %q, want %q", tc.name, i, got, want)
			}
		}
	}
}

func TestInferConflictingDateOrdersIsText(t *testing.T) {
	c := Infer("d", []string{"31/12/2020", "12/31/2020"})
	if c.Kind != Text {
		t.Fatalf("kind = %v, want Text", c.Kind)
	}
}

func TestSelectNoneKeepsRows(t *testing.T) {
	tb := MustNew(Infer("a", []string{"1", "2", "3"}))
	sel, err := tb.Select(nil)
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if sel.Width() != 0 || sel.Rows() != 3 {
		t.Fatalf("shape = %dx%d, want 3x0", sel.Rows(), sel.Width())
	}
	if sel.Clone().Rows() != 3 {
		t.Fatalf("clone lost the row count")
	}
}
