package cli

import "testing"

func TestFormatNumber(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{1234567, "1,234,567"},
		{-4500, "-4,500"},
	}
	for _, c := range cases {
		if got := FormatNumber(c.in); got != c.want {
			t.Errorf("FormatNumber(%d) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestFormatMoney(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{42.5, "$42.50"},
		{250, "$250"},
		{1234567.8, "$1,234,568"},
		{-99.9, "-$99.90"},
	}
	for _, c := range cases {
		if got := FormatMoney(c.in); got != c.want {
			t.Errorf("FormatMoney(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestFormatROI(t *testing.T) {
	if got := FormatROI(1.534); got != "1.53x" {
		t.Errorf("FormatROI(1.534) = %q, want 1.53x", got)
	}
	if got := FormatROI(-0.25); got != "-0.25x" {
		t.Errorf("FormatROI(-0.25) = %q, want -0.25x", got)
	}
}

func TestFormatPercent(t *testing.T) {
	if got := FormatPercent(0.125); got != "12.5%" {
		t.Errorf("FormatPercent(0.125) = %q, want 12.5%%", got)
	}
}

func TestFormatDelta(t *testing.T) {
	if got := FormatDelta(150, 100); got != "+$50.00" {
		t.Errorf("FormatDelta(150, 100) = %q, want +$50.00", got)
	}
	if got := FormatDelta(100, 150); got != "-$50.00" {
		t.Errorf("FormatDelta(100, 150) = %q, want -$50.00", got)
	}
}
