package pricing

import (
	"strconv"
)

// Round2 rounds to two decimals on the exact binary value, ties to even.
// math.Round(x*100)/100 differs on values such as 2.675, whose product with
// 100 rounds up before the rounding step.
func Round2(x float64) float64 {
	v, err := strconv.ParseFloat(strconv.FormatFloat(x, 'f', 2, 64), 64)
	if err != nil {
		return x
	}
	return v
}
