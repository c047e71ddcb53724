// Package cleaning prunes, imputes and splits tables.
package cleaning

import (
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/KaramelBytes/datatidy-cli/internal/table"
)

// Plan is the full set of cleaning instructions for one run.
type Plan struct {
	Drop       []string
	Directives map[string]Directive
}

// Engine runs cleaning plans and logs every action.
type Engine struct {
	logger *zap.Logger
}

// NewEngine creates an Engine. A nil logger discards output.
func NewEngine(logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{logger: logger}
}

// Run prunes the plan's columns, then imputes. Column-drop actions come first
// in the returned log.
func (e *Engine) Run(t *table.Table, p Plan) (*Result, error) {
	directives := make(map[string]Directive, len(p.Directives))
	for name, d := range p.Directives {
		directives[name] = d
	}
	for _, name := range p.Drop {
		d, ok := directives[name]
		if !ok {
			continue
		}
		if d.Strategy != DoNothing {
			return nil, fmt.Errorf("column %s is both dropped and imputed", strconv.Quote(name))
		}
		delete(directives, name)
	}
	pruned, err := Prune(t, p.Drop)
	if err != nil {
		return nil, fmt.Errorf("prune: %w", err)
	}
	res, err := Impute(pruned, directives)
	if err != nil {
		return nil, fmt.Errorf("impute: %w", err)
	}

	var drops []Action
	seen := map[string]struct{}{}
	for _, name := range p.Drop {
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		drops = append(drops, Action{Column: name, Op: OpDropColumn, Status: StatusApplied})
	}
	res.Actions = append(drops, res.Actions...)

	e.logger.Info("Cleaning run",
		zap.String("run_id", res.ID),
		zap.Int("rows_in", t.Rows()),
		zap.Int("rows_out", res.RowsOut),
		zap.Int("columns_in", t.Width()),
		zap.Int("columns_out", len(res.ColumnsOut)),
	)
	for _, a := range res.Actions {
		e.logger.Debug("Action",
			zap.String("run_id", res.ID),
			zap.String("column", a.Column),
			zap.String("op", a.Op),
			zap.String("status", string(a.Status)),
			zap.Int("cells_filled", a.CellsFilled),
			zap.Int("rows_removed", a.RowsRemoved),
			zap.String("fill_value", a.FillValue),
		)
	}
	for _, w := range res.Warnings {
		e.logger.Warn("Strategy not applied",
			zap.String("run_id", res.ID),
			zap.String("column", w.Column),
			zap.Stringer("strategy", w.Strategy),
			zap.String("reason", w.Reason),
		)
	}
	return res, nil
}
