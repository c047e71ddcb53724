package cleaning

import "github.com/KaramelBytes/datatidy-cli/internal/table"

// Prune returns a copy of t without the named columns. Every name must exist;
// otherwise nothing is dropped and an *UnknownColumnError lists the missing
// names. Repeated names are dropped once.
func Prune(t *table.Table, names []string) (*table.Table, error) {
	drop := make(map[string]struct{}, len(names))
	var unknown []string
	for _, n := range names {
		if _, dup := drop[n]; dup {
			continue
		}
		drop[n] = struct{}{}
		if !t.Has(n) {
			unknown = append(unknown, n)
		}
	}
	if len(unknown) > 0 {
		return nil, &UnknownColumnError{Names: unknown}
	}
	keep := make([]string, 0, t.Width())
	for _, n := range t.Names() {
		if _, ok := drop[n]; !ok {
			keep = append(keep, n)
		}
	}
	return t.Select(keep)
}
