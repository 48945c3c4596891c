package poster

import "strconv"

// Ordinal returns the ordinal label for a year count, e.g. 1 -> "1st",
// 11 -> "11th", 21 -> "21st".
func Ordinal(n int) string {
	suffix := "th"
	if n%100 < 11 || n%100 > 13 {
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return strconv.Itoa(n) + suffix
}
