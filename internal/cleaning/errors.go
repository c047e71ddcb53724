package cleaning

import (
	"fmt"
	"strings"

	"github.com/KaramelBytes/datatidy-cli/internal/table"
)

// UnknownColumnError is returned when an operation names columns the table
// does not have.
type UnknownColumnError struct {
	Names []string
}

func (e *UnknownColumnError) Error() string {
	quoted := make([]string, len(e.Names))
	for i, n := range e.Names {
		quoted[i] = fmt.Sprintf("%q", n)
	}
	if len(quoted) == 1 {
		return "unknown column " + quoted[0]
	}
	return "unknown columns " + strings.Join(quoted, ", ")
}

// InvalidSelectionError reports a target/feature selection that cannot be split.
type InvalidSelectionError struct {
	Reason string
	Err    error
}

func (e *InvalidSelectionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid selection: %s: %v", e.Reason, e.Err)
	}
	return "invalid selection: " + e.Reason
}

func (e *InvalidSelectionError) Unwrap() error { return e.Err }

// StrategyWarning is a non-fatal notice that a strategy left a column unchanged.
type StrategyWarning struct {
	Column   string     `json:"column"`
	Strategy Strategy   `json:"strategy"`
	Kind     table.Kind `json:"kind"`
	Reason   string     `json:"reason"`
}

func (w *StrategyWarning) Error() string {
	return fmt.Sprintf("%s on %s column %q: %s", w.Strategy.Label(), w.Kind, w.Column, w.Reason)
}
