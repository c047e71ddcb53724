package cleaning

import "github.com/KaramelBytes/datatidy-cli/internal/table"

// Status is the outcome of one logged action.
type Status string

const (
	StatusApplied Status = "applied"
	StatusWarned  Status = "warned"
	StatusSkipped Status = "skipped"
)

// OpDropColumn marks a column-drop action in the log.
const OpDropColumn = "drop_column"

// Action is one entry of the cleaning log.
type Action struct {
	Column string `json:"column"`
	// Op is OpDropColumn or the strategy name.
	Op          string `json:"op"`
	Status      Status `json:"status"`
	CellsFilled int    `json:"cells_filled,omitempty"`
	RowsRemoved int    `json:"rows_removed,omitempty"`
	FillValue   string `json:"fill_value,omitempty"`
	Note        string `json:"note,omitempty"`
}

// Result is the output of a cleaning run.
type Result struct {
	ID          string             `json:"id"`
	Table       *table.Table       `json:"-"`
	Actions     []Action           `json:"actions"`
	Warnings    []*StrategyWarning `json:"warnings,omitempty"`
	RowsDropped int                `json:"rows_dropped"`
	RowsOut     int                `json:"rows_out"`
	ColumnsOut  []string           `json:"columns_out"`
}

func (r *Result) finish() {
	r.RowsOut = r.Table.Rows()
	r.ColumnsOut = r.Table.Names()
}
