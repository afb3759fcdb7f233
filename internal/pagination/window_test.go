package pagination

import (
	"strings"
	"testing"
)

func render(items []Item) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		parts = append(parts, item.String())
	}
	return strings.Join(parts, ",")
}

func TestTotalPages(t *testing.T) {
	cases := []struct {
		total, per, want int
	}{
		{0, 25, 0},
		{1, 25, 1},
		{25, 25, 1},
		{26, 25, 2},
		{120, 25, 5},
		{250, 25, 10},
		{10, 0, 0},
	}
	for _, tc := range cases {
		if got := TotalPages(tc.total, tc.per); got != tc.want {
			t.Fatalf("TotalPages(%d, %d) = %d, want %d", tc.total, tc.per, got, tc.want)
		}
	}
}

func TestWindow(t *testing.T) {
	cases := []struct {
		name    string
		total   int
		current int
		want    string
	}{
		{"no pages", 0, 1, ""},
		{"five pages shows all", 5, 3, "1,2,3,4,5"},
		{"one page", 1, 1, "1"},
		{"first page", 10, 1, "1,2,3,4,...,10"},
		{"second page pinned to start", 10, 2, "1,2,3,4,...,10"},
		{"third page", 10, 3, "1,2,3,4,...,10"},
		{"fourth page", 10, 4, "1,...,3,4,5,...,10"},
		{"middle page", 10, 5, "1,...,4,5,6,...,10"},
		{"eighth page", 10, 8, "1,...,7,8,9,10"},
		{"ninth page pinned to end", 10, 9, "1,...,7,8,9,10"},
		{"last page", 10, 10, "1,...,7,8,9,10"},
		{"six pages first", 6, 1, "1,2,3,4,...,6"},
		{"six pages last", 6, 6, "1,...,3,4,5,6"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := render(Window(tc.total, tc.current)); got != tc.want {
				t.Fatalf("Window(%d, %d) = %q, want %q", tc.total, tc.current, got, tc.want)
			}
		})
	}
}

func TestWindowFromItemCounts(t *testing.T) {
	if got := render(Window(TotalPages(120, ItemsPerPage), 1)); got != "1,2,3,4,5" {
		t.Fatalf("120 items = %q, want all five pages", got)
	}
	if got := render(Window(TotalPages(250, ItemsPerPage), 1)); got != "1,2,3,4,...,10" {
		t.Fatalf("250 items page 1 = %q", got)
	}
}

func TestWindowIsDeterministic(t *testing.T) {
	for current := 1; current <= 20; current++ {
		a := render(Window(20, current))
		b := render(Window(20, current))
		if a != b {
			t.Fatalf("Window(20, %d) not deterministic: %q vs %q", current, a, b)
		}
	}
}
