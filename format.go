package piechart

import (
	"math"
	"strconv"
	"strings"
)

const (
	thousandsSeparator = " "
	decimalPoint       = "."
)

// FormatValue formats v with the given number of decimal places, grouping
// the integer part in thousands separated by a single space.
//
//	FormatValue(1234567.891, 2) // "1 234 567.89"
func FormatValue(v float64, decimals int) string {
	if decimals < 0 {
		decimals = 0
	}
	neg := v < 0
	// Round half away from zero before formatting; FormatFloat alone rounds
	// exact halves to even.
	p := math.Pow10(decimals)
	a := math.Abs(v)
	if r := math.Round(a*p) / p; !math.IsInf(r, 0) && !math.IsNaN(r) {
		a = r
	}
	s := strconv.FormatFloat(a, 'f', decimals, 64)

	intPart, fracPart, _ := strings.Cut(s, ".")

	var b strings.Builder
	b.Grow(len(s) + len(intPart)/3 + 1)
	if neg && strings.Trim(s, "0.") != "" {
		b.WriteByte('-')
	}
	for i, d := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteString(thousandsSeparator)
		}
		b.WriteRune(d)
	}
	if decimals > 0 {
		b.WriteString(decimalPoint)
		b.WriteString(fracPart)
	}
	return b.String()
}

// DetectSignificance returns the largest number of digits after the
// decimal point among values, using the shortest decimal representation
// of each value. Integral values count as zero.
//
//	DetectSignificance([]float64{1.5, 2.25, 3}) // 2
func DetectSignificance(values []float64) int {
	var digits int
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		s := strconv.FormatFloat(v, 'f', -1, 64)
		if _, frac, ok := strings.Cut(s, "."); ok && len(frac) > digits {
			digits = len(frac)
		}
	}
	return digits
}
