package store

import "testing"

func TestClampLimit(t *testing.T) {
	cases := []struct {
		in, want int
	}{
		{-5, DefaultRecentLimit},
		{0, DefaultRecentLimit},
		{1, 1},
		{50, 50},
		{MaxRecentLimit, MaxRecentLimit},
		{MaxRecentLimit + 1, MaxRecentLimit},
	}
	for _, tc := range cases {
		if got := ClampLimit(tc.in); got != tc.want {
			t.Fatalf("ClampLimit(%d)=%d want %d", tc.in, got, tc.want)
		}
	}
}
