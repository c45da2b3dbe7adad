package trace

import (
	"slices"
	"strconv"
	"strings"
)

// Selection is the set of cycles to trace.
type Selection struct {
	All    bool  // Trace every cycle.
	Final  bool  // Trace the final state.
	Cycles []int // Traced cycles, ascending.
}

// Last selects only the final state.
var Last = Selection{Final: true}

// ParseSelection parses a comma separated list of cycle numbers, 'all' and
// 'last', such as "30,34,last".
func ParseSelection(text string) (sel Selection, err error) {
	empty := true

	for token := range strings.SplitSeq(text, ",") {
		token = strings.TrimSpace(token)
		if len(token) == 0 {
			continue
		}
		empty = false

		switch strings.ToLower(token) {
		case "all":
			sel.All = true
		case "last":
			sel.Final = true
		default:
			cycle, perr := strconv.Atoi(token)
			if perr != nil || cycle < 1 {
				err = ErrSelectionToken(token)
				return
			}
			sel.Cycles = append(sel.Cycles, cycle)
		}
	}

	if empty {
		err = ErrSelectionEmpty
		return
	}

	slices.Sort(sel.Cycles)
	sel.Cycles = slices.Compact(sel.Cycles)

	return
}

// Contains is true if the cycle is selected.
func (sel Selection) Contains(cycle int) bool {
	if sel.All {
		return true
	}
	_, found := slices.BinarySearch(sel.Cycles, cycle)
	return found
}

// Empty is true if nothing is selected.
func (sel Selection) Empty() bool {
	return !sel.All && !sel.Final && len(sel.Cycles) == 0
}

// String returns the selection in ParseSelection format.
func (sel Selection) String() string {
	var tokens []string
	if sel.All {
		tokens = append(tokens, "all")
	} else {
		for _, cycle := range sel.Cycles {
			tokens = append(tokens, strconv.Itoa(cycle))
		}
	}
	if sel.Final {
		tokens = append(tokens, "last")
	}
	return strings.Join(tokens, ",")
}

// MarshalText implements encoding.TextMarshaler.
func (sel Selection) MarshalText() ([]byte, error) {
	return []byte(sel.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (sel *Selection) UnmarshalText(text []byte) (err error) {
	*sel, err = ParseSelection(string(text))
	return
}
