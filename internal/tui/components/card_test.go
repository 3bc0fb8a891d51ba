package components

import (
	"strings"
	"testing"
)

func TestLayoutRow_SumsToTotal(t *testing.T) {
	cases := []struct {
		total, n int
	}{
		{100, 3},
		{100, 4},
		{7, 3},
		{1, 1},
	}
	for _, c := range cases {
		widths := LayoutRow(c.total, c.n)
		if len(widths) != c.n {
			t.Errorf("LayoutRow(%d, %d) returned %d widths", c.total, c.n, len(widths))
			continue
		}
		sum := 0
		for _, w := range widths {
			sum += w
		}
		if sum != c.total {
			t.Errorf("LayoutRow(%d, %d) sums to %d", c.total, c.n, sum)
		}
	}
}

func TestLayoutRow_ZeroItems(t *testing.T) {
	if widths := LayoutRow(100, 0); widths != nil {
		t.Errorf("LayoutRow(100, 0) = %v, want nil", widths)
	}
}

func TestSpreadLabels_NoOverlap(t *testing.T) {
	got := spreadLabels([]string{"Jan", "Feb", "Mar"}, 3, 1, 11)

	// Each label starts under its bar and none overlap.
	if !strings.Contains(got, "Jan") {
		t.Errorf("spreadLabels dropped the first label: %q", got)
	}
	if len(got) > 11 {
		t.Errorf("labels exceed axis length: %q", got)
	}
}

func TestSparkline_LengthMatchesValues(t *testing.T) {
	values := []float64{1, 5, 3, 8, 2}
	got := Sparkline(values, "#3AA99F")

	runes := 0
	for _, r := range got {
		if r >= '▁' && r <= '█' {
			runes++
		}
	}
	if runes != len(values) {
		t.Errorf("sparkline has %d block runes, want %d", runes, len(values))
	}
}
