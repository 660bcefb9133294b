package dsp

import "testing"

func TestNextFastLen(t *testing.T) {
	cases := []struct {
		n    int
		want int
	}{
		{0, 1},
		{1, 1},
		{2, 2},
		{7, 7},
		{11, 12},
		{2048, 2048},
		{2049, 2058}, // 2 * 3 * 7^3
		{2500, 2500}, // 2^2 * 5^4, the default minimum is already fast
		{2501, 2520}, // 2^3 * 3^2 * 5 * 7
	}

	for _, tc := range cases {
		if got := NextFastLen(tc.n); got != tc.want {
			t.Errorf("NextFastLen(%d) = %d, want %d", tc.n, got, tc.want)
		}
	}
}
