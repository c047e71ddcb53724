package cleaning

import (
	"strconv"

	"github.com/KaramelBytes/datatidy-cli/internal/table"
)

// Split projects t onto features followed by target.
func Split(t *table.Table, target string, features []string) (*table.Table, error) {
	if target == "" {
		return nil, &InvalidSelectionError{Reason: "no target column selected"}
	}
	if len(features) == 0 {
		return nil, &InvalidSelectionError{Reason: "no feature columns selected"}
	}
	seen := make(map[string]struct{}, len(features))
	var unknown []string
	for _, f := range features {
		if _, dup := seen[f]; dup {
			return nil, &InvalidSelectionError{Reason: "feature " + strconv.Quote(f) + " selected twice"}
		}
		seen[f] = struct{}{}
		if f == target {
			return nil, &InvalidSelectionError{Reason: "target " + strconv.Quote(target) + " is also a feature"}
		}
		if !t.Has(f) {
			unknown = append(unknown, f)
		}
	}
	if !t.Has(target) {
		unknown = append(unknown, target)
	}
	if len(unknown) > 0 {
		return nil, &InvalidSelectionError{Reason: "columns not in table", Err: &UnknownColumnError{Names: unknown}}
	}
	cols := make([]string, 0, len(features)+1)
	cols = append(cols, features...)
	cols = append(cols, target)
	return t.Select(cols)
}
