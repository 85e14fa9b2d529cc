// Package fs provides filesystem operations over directories of page images.
package fs

import (
	"regexp"
	"slices"
	"strconv"
)

// numberRun matches a decimal or integer run inside a file name.
var numberRun = regexp.MustCompile(`\d+\.\d+|\d+`)

type chunk struct {
	text   string
	num    float64
	number bool
}

func chunks(s string) []chunk {
	var out []chunk
	last := 0
	for _, loc := range numberRun.FindAllStringIndex(s, -1) {
		if loc[0] > last {
			out = append(out, chunk{text: s[last:loc[0]]})
		}
		n, _ := strconv.ParseFloat(s[loc[0]:loc[1]], 64)
		out = append(out, chunk{text: s[loc[0]:loc[1]], num: n, number: true})
		last = loc[1]
	}
	if last < len(s) {
		out = append(out, chunk{text: s[last:]})
	}
	return out
}

// NaturalCompare orders names so that runs of digits compare by numeric
// value and everything else compares lexically: "2.png" sorts before
// "10.png". A number sorts before text at the same position. Names whose
// chunks are all equal fall back to plain string order.
func NaturalCompare(a, b string) int {
	ca, cb := chunks(a), chunks(b)
	for i := 0; i < len(ca) && i < len(cb); i++ {
		x, y := ca[i], cb[i]
		switch {
		case x.number && y.number:
			if x.num != y.num {
				if x.num < y.num {
					return -1
				}
				return 1
			}
		case x.number:
			return -1
		case y.number:
			return 1
		default:
			if x.text != y.text {
				if x.text < y.text {
					return -1
				}
				return 1
			}
		}
	}
	if len(ca) != len(cb) {
		if len(ca) < len(cb) {
			return -1
		}
		return 1
	}
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// NaturalLess reports whether a sorts before b in natural order.
func NaturalLess(a, b string) bool {
	return NaturalCompare(a, b) < 0
}

// NaturalSort sorts names in place in natural order.
func NaturalSort(names []string) {
	slices.SortStableFunc(names, NaturalCompare)
}
