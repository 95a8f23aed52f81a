package engine

import "strings"

var romanValues = map[byte]int{
	'I': 1, 'V': 5, 'X': 10, 'L': 50,
	'C': 100, 'D': 500, 'M': 1000,
}

// DecodeRoman converts a roman numeral to an integer. The numeral is
// scanned right to left: each character's value is subtracted when it is
// smaller than the largest value seen so far, otherwise added. Returns
// (0, false) for characters outside {I,V,X,L,C,D,M} or a non-positive
// total.
//
// The lenient scan accepts non-canonical forms like "IIII" or "VX". When
// strict is set the result is re-encoded and compared against the input,
// rejecting anything that is not the canonical spelling.
func DecodeRoman(s string, strict bool) (int, bool) {
	if s == "" {
		return 0, false
	}
	upper := strings.ToUpper(s)

	total := 0
	maxSeen := 0
	for i := len(upper) - 1; i >= 0; i-- {
		val, ok := romanValues[upper[i]]
		if !ok {
			return 0, false
		}
		if val < maxSeen {
			total -= val
		} else {
			total += val
			maxSeen = val
		}
	}
	if total <= 0 {
		return 0, false
	}
	if strict && EncodeRoman(total) != upper {
		return 0, false
	}
	return total, true
}

var (
	romanScale   = []int{1000, 900, 500, 400, 100, 90, 50, 40, 10, 9, 5, 4, 1}
	romanSymbols = []string{"M", "CM", "D", "CD", "C", "XC", "L", "XL", "X", "IX", "V", "IV", "I"}
)

// EncodeRoman converts a positive integer to its canonical roman numeral.
func EncodeRoman(n int) string {
	var b strings.Builder
	for i := 0; i < len(romanScale); i++ {
		for n >= romanScale[i] {
			n -= romanScale[i]
			b.WriteString(romanSymbols[i])
		}
	}
	return b.String()
}
