package prediction

import (
	"math"
	"strconv"
)

// Round rounds the exact binary value of v to the given number of decimal
// places, resolving exact halves to even. 2.675 is stored just below 2.675
// and rounds to 2.67; 0.25 is an exact half and rounds to 0.2.
func Round(v float64, places int) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', places, 64), 64)
	if err != nil {
		return v
	}
	return r
}

func roundHours(v float64) float64 { return Round(v, 1) }
func roundMoney(v float64) float64 { return Round(v, 2) }
func roundPct(v float64) float64   { return Round(v*100, 1) }
