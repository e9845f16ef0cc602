package value

import (
	"math"
	"strconv"
	"strings"
)

// FormatNumber returns the canonical decimal text of n: the shortest string that
// reads back as n, in plain notation for magnitudes in [1e-6, 1e21) and in
// exponent notation (1e+21, 1.5e-7) outside it. NaN and the infinities print as
// NaN, Infinity and -Infinity; negative zero prints as 0.
func FormatNumber(n float64) string {
	switch {
	case math.IsNaN(n):
		return "NaN"
	case math.IsInf(n, 1):
		return "Infinity"
	case math.IsInf(n, -1):
		return "-Infinity"
	case n == 0:
		return "0"
	}
	abs := math.Abs(n)
	if abs >= 1e21 || abs < 1e-6 {
		s := strconv.FormatFloat(n, 'e', -1, 64)
		// Go pads the exponent to two digits (1e-07); drop the padding.
		mant, exp, _ := strings.Cut(s, "e")
		sign := exp[:1]
		digits := strings.TrimLeft(exp[1:], "0")
		if digits == "" {
			digits = "0"
		}
		return mant + "e" + sign + digits
	}
	return strconv.FormatFloat(n, 'f', -1, 64)
}
