package money

import "testing"

func TestRoundCents(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{16.3125, 16.31},
		{0.125, 0.13}, // half rounds up
		{3.689999, 3.69},
		{0.005, 0.01},
		{0.004, 0.00},
		{0, 0},
		{100, 100},
	}
	for _, c := range cases {
		if got := RoundCents(c.in); got != c.want {
			t.Errorf("RoundCents(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}
