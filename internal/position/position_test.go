package position

import (
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCompare(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"1", "2", -1},
		{"10", "2", 1},
		{"5.1", "5", 1},
		{"5.1", "5.10", -1},
		{"", "0", 0},
		{"before", "1", -1},
		{"after", "100", 1},
		{"3", "abc", -1},
		{"Settings", "settings", 0},
	}
	for _, tc := range cases {
		if got := Compare(tc.a, tc.b); got != tc.want {
			t.Fatalf("Compare(%q, %q) = %d, want %d", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestSortWithLess(t *testing.T) {
	items := []string{"after", "10", "2", "before", "2.5", ""}
	sort.SliceStable(items, func(i, j int) bool { return Less(items[i], items[j]) })

	want := []string{"before", "", "2", "2.5", "10", "after"}
	if diff := cmp.Diff(want, items); diff != "" {
		t.Fatalf("sorted positions mismatch (-want +got):\n%s", diff)
	}
}
