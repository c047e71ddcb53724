package cleaning

import (
	"errors"
	"fmt"
	"strings"
)

// Strategy is a missing-value resolution applied to one column.
type Strategy int

const (
	DoNothing Strategy = iota
	FillMean
	FillMedian
	FillMode
	FillZero
	FillConstant
	DropRows
)

// DefaultConstant is the FillConstant value when none is given.
const DefaultConstant = "Unknown"

var strategyNames = map[Strategy]string{
	DoNothing:    "none",
	FillMean:     "mean",
	FillMedian:   "median",
	FillMode:     "mode",
	FillZero:     "zero",
	FillConstant: "constant",
	DropRows:     "drop",
}

var strategyLabels = map[Strategy]string{
	DoNothing:    "Do Nothing",
	FillMean:     "Fill with Mean",
	FillMedian:   "Fill with Median",
	FillMode:     "Fill with Mode",
	FillZero:     "Fill with Zero",
	FillConstant: "Fill with 'Unknown'",
	DropRows:     "Drop rows",
}

func (s Strategy) String() string {
	if n, ok := strategyNames[s]; ok {
		return n
	}
	return fmt.Sprintf("Strategy(%d)", int(s))
}

// Label is the human-readable name shown in menus and logs.
func (s Strategy) Label() string {
	if l, ok := strategyLabels[s]; ok {
		return l
	}
	return s.String()
}

func (s Strategy) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// NumericOnly reports whether the strategy applies to numeric columns only.
func (s Strategy) NumericOnly() bool {
	return s == FillMean || s == FillMedian || s == FillZero
}

// Directive is a strategy plus its parameter.
type Directive struct {
	Strategy Strategy
	// Value is the FillConstant text; empty means DefaultConstant.
	Value string
}

// Constant returns the value FillConstant writes.
func (d Directive) Constant() string {
	if d.Value == "" {
		return DefaultConstant
	}
	return d.Value
}

// String renders the directive in the form ParseStrategy accepts.
func (d Directive) String() string {
	if d.Strategy == FillConstant {
		if d.Constant() == DefaultConstant {
			return "unknown"
		}
		return "constant:" + d.Value
	}
	return d.Strategy.String()
}

// ErrUnknownStrategy is returned by ParseStrategy for unrecognized names.
var ErrUnknownStrategy = errors.New("unknown strategy")

// ParseStrategy maps a strategy name or menu label to a directive.
// Accepted: none, mean, median, mode, zero, unknown, constant[:text], drop,
// and the labels such as "Fill with Mean".
func ParseStrategy(s string) (Directive, error) {
	raw := strings.TrimSpace(s)
	key := strings.ToLower(raw)
	if strings.HasPrefix(key, "constant:") {
		return Directive{Strategy: FillConstant, Value: raw[len("constant:"):]}, nil
	}
	switch key {
	case "unknown", "constant":
		return Directive{Strategy: FillConstant, Value: DefaultConstant}, nil
	case "keep", "skip":
		return Directive{Strategy: DoNothing}, nil
	}
	for st, name := range strategyNames {
		if key == name || key == strings.ToLower(strategyLabels[st]) {
			d := Directive{Strategy: st}
			if st == FillConstant {
				d.Value = DefaultConstant
			}
			return d, nil
		}
	}
	return Directive{}, fmt.Errorf("%w: %q", ErrUnknownStrategy, s)
}
