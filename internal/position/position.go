// Package position orders placement strings such as "3", "5.1" or "after".
// Display locations and admin menu entries share the same rules.
package position

import (
	"strconv"
	"strings"
)

const (
	before = "before"
	after  = "after"
)

// Compare returns -1, 0 or 1 ordering a against b. Dotted segments compare
// numerically when both sides are numbers and lexically otherwise. An empty
// position sorts like "0"; "before" and "after" pin an entry to either end.
func Compare(a, b string) int {
	a = normalize(a)
	b = normalize(b)
	if a == b {
		return 0
	}
	if rank(a) != rank(b) {
		return sign(rank(a) - rank(b))
	}

	left := strings.Split(a, ".")
	right := strings.Split(b, ".")
	for i := 0; i < len(left) && i < len(right); i++ {
		if c := compareSegment(left[i], right[i]); c != 0 {
			return c
		}
	}
	return sign(len(left) - len(right))
}

// Less reports whether a sorts before b.
func Less(a, b string) bool {
	return Compare(a, b) < 0
}

func normalize(value string) string {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return "0"
	}
	return value
}

func rank(value string) int {
	switch {
	case value == before || strings.HasPrefix(value, before+"."):
		return -1
	case value == after || strings.HasPrefix(value, after+"."):
		return 1
	default:
		return 0
	}
}

func compareSegment(a, b string) int {
	left, errLeft := strconv.ParseFloat(a, 64)
	right, errRight := strconv.ParseFloat(b, 64)
	switch {
	case errLeft == nil && errRight == nil:
		switch {
		case left < right:
			return -1
		case left > right:
			return 1
		default:
			return 0
		}
	case errLeft == nil:
		return -1
	case errRight == nil:
		return 1
	default:
		return strings.Compare(a, b)
	}
}

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	default:
		return 0
	}
}
