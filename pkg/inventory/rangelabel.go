package inventory

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Labels are the words used when rendering a bay range.
type Labels struct {
	Singular string // prefix when the set is a single run
	Plural   string // prefix when the set has several runs
	Through  string // joins the ends of a run
}

// DefaultLabels renders {1,2,3,5,6,9} as "Naves 1 a 3, 5 a 6, 9".
var DefaultLabels = Labels{Singular: "Nave", Plural: "Naves", Through: "a"}

// Format collapses bays into runs of consecutive indices. Input may be
// unsorted and contain duplicates; an empty input yields "".
func (l Labels) Format(bays []int) string {
	if len(bays) == 0 {
		return ""
	}
	sorted := append([]int(nil), bays...)
	sort.Ints(sorted)

	var runs []string
	start, prev := sorted[0], sorted[0]
	closeRun := func() {
		if start == prev {
			runs = append(runs, strconv.Itoa(start))
		} else {
			runs = append(runs, fmt.Sprintf("%d %s %d", start, l.Through, prev))
		}
	}
	for _, b := range sorted[1:] {
		switch {
		case b == prev:
			continue
		case b == prev+1:
			prev = b
		default:
			closeRun()
			start, prev = b, b
		}
	}
	closeRun()

	prefix := l.Plural
	if len(runs) == 1 {
		prefix = l.Singular
	}
	return prefix + " " + strings.Join(runs, ", ")
}
