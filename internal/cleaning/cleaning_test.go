package cleaning_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/KaramelBytes/datatidy-cli/internal/cleaning"
	"github.com/KaramelBytes/datatidy-cli/internal/table"
)

func col(name string, raw ...string) *table.Column { return table.Infer(name, raw) }

func rendered(t *testing.T, tb *table.Table, name string) []string {
	t.Helper()
	c, ok := tb.Column(name)
	require.True(t, ok, "column %s", name)
	out := make([]string, c.Len())
	for i := range c.Cells {
		out[i] = c.Format(i)
	}
	return out
}

func TestPrune(t *testing.T) {
	tb := table.MustNew(col("a", "1", "2"), col("b", "x", "y"), col("c", "", "z"))

	out, err := cleaning.Prune(tb, []string{"b", "b"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c"}, out.Names())
	assert.Equal(t, tb.Rows(), out.Rows())
	assert.Equal(t, 3, tb.Width(), "input must not change")

	_, err = cleaning.Prune(tb, []string{"a", "zz", "yy"})
	var uce *cleaning.UnknownColumnError
	require.ErrorAs(t, err, &uce)
	assert.Equal(t, []string{"zz", "yy"}, uce.Names)

	same, err := cleaning.Prune(tb, nil)
	require.NoError(t, err)
	assert.True(t, same.Equal(tb))
}

func TestImputeFills(t *testing.T) {
	tb := table.MustNew(col("x", "1", "null", "3"), col("y", "1", "", "3"))
	cases := []struct {
		strategy cleaning.Strategy
		want     []string
	}{
		{cleaning.FillMean, []string{"1", "2", "3"}},
		{cleaning.FillMedian, []string{"1", "2", "3"}},
		{cleaning.FillZero, []string{"1", "0", "3"}},
		{cleaning.FillMode, []string{"1", "1", "3"}},
	}
	for _, tc := range cases {
		t.Run(tc.strategy.String(), func(t *testing.T) {
			res, err := cleaning.Impute(tb, map[string]cleaning.Directive{
				"x": {Strategy: tc.strategy},
				"y": {Strategy: tc.strategy},
			})
			require.NoError(t, err)
			assert.Equal(t, tc.want, rendered(t, res.Table, "x"))
			assert.Equal(t, tc.want, rendered(t, res.Table, "y"))
			require.Len(t, res.Actions, 2)
			assert.Equal(t, cleaning.StatusApplied, res.Actions[0].Status)
			assert.Equal(t, 1, res.Actions[0].CellsFilled)
			assert.Empty(t, res.Warnings)
			assert.NotEmpty(t, res.ID)
		})
	}
	assert.Equal(t, []string{"1", "null", "3"}, rendered(t, tb, "x"), "input must not change")
}

func TestImputeModeTieGoesToFirst(t *testing.T) {
	tb := table.MustNew(col("g", "a", "b", "a", "b", ""))
	res, err := cleaning.Impute(tb, map[string]cleaning.Directive{"g": {Strategy: cleaning.FillMode}})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "a", "b", "a"}, rendered(t, res.Table, "g"))
	assert.Equal(t, "a", res.Actions[0].FillValue)
}

func TestImputeDropRowsComposition(t *testing.T) {
	tb := table.MustNew(col("A", "1", "null", "3"), col("B", "", "2", "3"), col("C", "p", "q", "r"))
	res, err := cleaning.Impute(tb, map[string]cleaning.Directive{
		"A": {Strategy: cleaning.DropRows},
		"B": {Strategy: cleaning.DropRows},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Table.Rows())
	assert.Equal(t, []string{"3"}, rendered(t, res.Table, "A"))
	assert.Equal(t, []string{"r"}, rendered(t, res.Table, "C"))
	assert.Equal(t, 2, res.RowsDropped)
	assert.Equal(t, tb.Width(), res.Table.Width())
}

func TestImputeDropThenFillUsesInputStats(t *testing.T) {
	tb := table.MustNew(col("k", "", "x", "y", "z"), col("v", "100", "", "1", "3"))
	res, err := cleaning.Impute(tb, map[string]cleaning.Directive{
		"k": {Strategy: cleaning.DropRows},
		"v": {Strategy: cleaning.FillMean},
	})
	require.NoError(t, err)
	// mean over 100, 1, 3 from the input column
	got := rendered(t, res.Table, "v")
	require.Len(t, got, 3)
	assert.Equal(t, table.FormatNumber(104.0/3), got[0])
	assert.Equal(t, []string{"1", "3"}, got[1:])
}

func TestImputeTypeMismatchWarns(t *testing.T) {
	tb := table.MustNew(col("city", "Lyon", "", "Paris"))
	for _, s := range []cleaning.Strategy{cleaning.FillMean, cleaning.FillMedian, cleaning.FillZero} {
		res, err := cleaning.Impute(tb, map[string]cleaning.Directive{"city": {Strategy: s}})
		require.NoError(t, err)
		assert.True(t, res.Table.Equal(tb))
		require.Len(t, res.Warnings, 1)
		w := res.Warnings[0]
		assert.Equal(t, "city", w.Column)
		assert.Equal(t, s, w.Strategy)
		assert.Equal(t, table.Text, w.Kind)
		assert.Equal(t, cleaning.StatusWarned, res.Actions[0].Status)
		var sw *cleaning.StrategyWarning
		assert.True(t, errors.As(error(w), &sw))
	}
}

func TestImputeNoPresentValuesWarns(t *testing.T) {
	tb := table.MustNew(col("n", "", "nan"))
	res, err := cleaning.Impute(tb, map[string]cleaning.Directive{"n": {Strategy: cleaning.FillMode}})
	require.NoError(t, err)
	require.Len(t, res.Warnings, 1)
	assert.Equal(t, "no present values", res.Warnings[0].Reason)
	assert.True(t, res.Table.Equal(tb))
}

func TestImputeNonFiniteMeanWarns(t *testing.T) {
	tb := table.MustNew(col("big", "1e308", "1e308", ""))
	res, err := cleaning.Impute(tb, map[string]cleaning.Directive{"big": {Strategy: cleaning.FillMean}})
	require.NoError(t, err)
	require.Len(t, res.Warnings, 1)
	assert.Equal(t, "statistic is not finite", res.Warnings[0].Reason)
	assert.True(t, res.Table.Equal(tb))

	res, err = cleaning.Impute(tb, map[string]cleaning.Directive{"big": {Strategy: cleaning.FillMedian}})
	require.NoError(t, err)
	assert.Empty(t, res.Warnings)
	got := rendered(t, res.Table, "big")
	assert.Equal(t, got[0], got[2])
}

func TestPruneEveryColumnKeepsRows(t *testing.T) {
	tb := table.MustNew(col("a", "1", "2"), col("b", "x", "y"))
	out, err := cleaning.Prune(tb, tb.Names())
	require.NoError(t, err)
	assert.Equal(t, 0, out.Width())
	assert.Equal(t, 2, out.Rows())

	res, err := cleaning.Impute(out, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Table.Rows())
}

func TestImputeConstant(t *testing.T) {
	tb := table.MustNew(col("n", "1", "", "3"), col("s", "a", "none", "c"))
	res, err := cleaning.Impute(tb, map[string]cleaning.Directive{
		"n": {Strategy: cleaning.FillConstant},
		"s": {Strategy: cleaning.FillConstant, Value: "zzz"},
	})
	require.NoError(t, err)
	n, _ := res.Table.Column("n")
	assert.Equal(t, table.Text, n.Kind, "non-numeric constant demotes the column")
	assert.Equal(t, []string{"1", "Unknown", "3"}, rendered(t, res.Table, "n"))
	assert.Equal(t, "column converted to text", res.Actions[0].Note)
	assert.Equal(t, []string{"a", "zzz", "c"}, rendered(t, res.Table, "s"))

	res, err = cleaning.Impute(tb, map[string]cleaning.Directive{"n": {Strategy: cleaning.FillConstant, Value: "7"}})
	require.NoError(t, err)
	n, _ = res.Table.Column("n")
	assert.Equal(t, table.Numeric, n.Kind)
	assert.Equal(t, []string{"1", "7", "3"}, rendered(t, res.Table, "n"))
}

func TestImputeDoNothingIsIdentity(t *testing.T) {
	tb := table.MustNew(col("a", "1", "", "null"), col("b", "2024-01-01", "", "x"))
	res, err := cleaning.Impute(tb, map[string]cleaning.Directive{
		"a": {Strategy: cleaning.DoNothing},
		"b": {Strategy: cleaning.DoNothing},
	})
	require.NoError(t, err)
	assert.True(t, res.Table.Equal(tb))
	for _, a := range res.Actions {
		assert.Equal(t, cleaning.StatusSkipped, a.Status)
	}
	assert.Equal(t, []string{"a", "b"}, []string{res.Actions[0].Column, res.Actions[1].Column})
}

func TestImputeUnknownColumn(t *testing.T) {
	tb := table.MustNew(col("a", "1"))
	_, err := cleaning.Impute(tb, map[string]cleaning.Directive{"nope": {Strategy: cleaning.FillZero}})
	var uce *cleaning.UnknownColumnError
	require.ErrorAs(t, err, &uce)
	assert.Equal(t, []string{"nope"}, uce.Names)
}

func TestSplit(t *testing.T) {
	tb := table.MustNew(col("a", "1"), col("b", "2"), col("y", "3"))
	out, err := cleaning.Split(tb, "y", []string{"b", "a"})
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a", "y"}, out.Names())

	bad := []struct {
		target   string
		features []string
	}{
		{"", []string{"a"}},
		{"y", nil},
		{"y", []string{"a", "a"}},
		{"y", []string{"a", "y"}},
	}
	for _, b := range bad {
		_, err := cleaning.Split(tb, b.target, b.features)
		var ise *cleaning.InvalidSelectionError
		assert.ErrorAs(t, err, &ise, "target=%q features=%v", b.target, b.features)
	}

	_, err = cleaning.Split(tb, "q", []string{"a", "zz"})
	var ise *cleaning.InvalidSelectionError
	require.ErrorAs(t, err, &ise)
	var uce *cleaning.UnknownColumnError
	require.ErrorAs(t, err, &uce)
	assert.Equal(t, []string{"zz", "q"}, uce.Names)
}

func TestParseStrategy(t *testing.T) {
	cases := map[string]cleaning.Directive{
		"none":                {Strategy: cleaning.DoNothing},
		"Do Nothing":          {Strategy: cleaning.DoNothing},
		"MEAN":                {Strategy: cleaning.FillMean},
		"Fill with Median":    {Strategy: cleaning.FillMedian},
		"mode":                {Strategy: cleaning.FillMode},
		"zero":                {Strategy: cleaning.FillZero},
		"unknown":             {Strategy: cleaning.FillConstant, Value: "Unknown"},
		"Fill with 'Unknown'": {Strategy: cleaning.FillConstant, Value: "Unknown"},
		"constant:N/A":        {Strategy: cleaning.FillConstant, Value: "N/A"},
		"Drop rows":           {Strategy: cleaning.DropRows},
		"drop":                {Strategy: cleaning.DropRows},
	}
	for in, want := range cases {
		got, err := cleaning.ParseStrategy(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := cleaning.ParseStrategy("interpolate")
	assert.ErrorIs(t, err, cleaning.ErrUnknownStrategy)

	d, _ := cleaning.ParseStrategy("constant:N/A")
	back, err := cleaning.ParseStrategy(d.String())
	require.NoError(t, err)
	assert.Equal(t, d, back)
}

func TestEngineRun(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	eng := cleaning.NewEngine(zap.New(core))
	tb := table.MustNew(col("id", "1", "2", "3"), col("x", "1", "", "3"), col("g", "a", "b", "text"))

	res, err := eng.Run(tb, cleaning.Plan{
		Drop:       []string{"id"},
		Directives: map[string]cleaning.Directive{"x": {Strategy: cleaning.FillMedian}, "g": {Strategy: cleaning.FillMean}},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "g"}, res.ColumnsOut)
	require.Len(t, res.Actions, 3)
	assert.Equal(t, cleaning.OpDropColumn, res.Actions[0].Op)
	assert.Equal(t, "x", res.Actions[1].Column)
	assert.Len(t, res.Warnings, 1)
	assert.Equal(t, 1, logs.FilterMessage("Cleaning run").Len())
	assert.Equal(t, 1, logs.FilterMessage("Strategy not applied").Len())

	_, err = eng.Run(tb, cleaning.Plan{Drop: []string{"x"}, Directives: map[string]cleaning.Directive{"x": {Strategy: cleaning.FillZero}}})
	assert.Error(t, err)

	res, err = eng.Run(tb, cleaning.Plan{Drop: []string{"x"}, Directives: map[string]cleaning.Directive{"x": {Strategy: cleaning.DoNothing}}})
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "g"}, res.ColumnsOut)

	_, err = eng.Run(tb, cleaning.Plan{Drop: []string{"missing"}})
	var uce *cleaning.UnknownColumnError
	assert.ErrorAs(t, err, &uce)
}
