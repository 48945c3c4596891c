package poster

import "testing"

func TestOrdinal(t *testing.T) {
	cases := []struct {
		n    int
		want string
	}{
		{0, "0th"},
		{1, "1st"},
		{2, "2nd"},
		{3, "3rd"},
		{4, "4th"},
		{10, "10th"},
		{11, "11th"},
		{12, "12th"},
		{13, "13th"},
		{14, "14th"},
		{21, "21st"},
		{22, "22nd"},
		{23, "23rd"},
		{100, "100th"},
		{101, "101st"},
		{111, "111th"},
		{112, "112th"},
		{113, "113th"},
		{121, "121st"},
	}
	for _, tc := range cases {
		if got := Ordinal(tc.n); got != tc.want {
			t.Errorf("Ordinal(%d) = %q, want %q", tc.n, got, tc.want)
		}
	}
}

func TestOrdinalTeensAlwaysTh(t *testing.T) {
	for n := 0; n <= 1000; n++ {
		rem := n % 100
		if rem >= 11 && rem <= 13 {
			got := Ordinal(n)
			if got[len(got)-2:] != "th" {
				t.Errorf("Ordinal(%d) = %q, want th suffix", n, got)
			}
		}
	}
}
