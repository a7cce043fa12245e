package counters

import "strings"

// FormatCounter renders n in the named list-style-type format. Unknown
// styles and styles outside their format's valid range (roman numerals
// above 3999, for instance) fall back to plain decimal.
func FormatCounter(n int, style string) string {
	switch strings.ToLower(style) {
	case "disc":
		return "•"
	case "circle":
		return "◦"
	case "square":
		return "▪"
	case "decimal-leading-zero":
		if n >= -9 && n <= 99 {
			return leadingZero(n)
		}
		return decimal(n)
	case "lower-alpha", "lower-latin":
		if s, ok := alpha(n, lowerLetters); ok {
			return s
		}
		return decimal(n)
	case "upper-alpha", "upper-latin":
		if s, ok := alpha(n, upperLetters); ok {
			return s
		}
		return decimal(n)
	case "lower-roman":
		if s, ok := roman(n, lowerRomanDigits); ok {
			return s
		}
		return decimal(n)
	case "upper-roman":
		if s, ok := roman(n, upperRomanDigits); ok {
			return s
		}
		return decimal(n)
	case "none":
		return ""
	case "decimal":
		return decimal(n)
	default:
		return decimal(n)
	}
}

func decimal(n int) string {
	neg := n < 0
	if neg {
		n = -n
	}
	s := itoa(n)
	if neg {
		return "-" + s
	}
	return s
}

func leadingZero(n int) string {
	neg := n < 0
	if neg {
		n = -n
	}
	s := itoa(n)
	if len(s) < 2 {
		s = "0" + s
	}
	if neg {
		return "-" + s
	}
	return s
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var b [20]byte
	i := len(b)
	for n > 0 {
		i--
		b[i] = byte('0' + n%10)
		n /= 10
	}
	return string(b[i:])
}

const lowerLetters = "abcdefghijklmnopqrstuvwxyz"
const upperLetters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// alpha renders n (1-based, A/a=1) in a base-26 alphabetic numbering
// system with no zero digit, the way spreadsheet column headers work
// (..., Z, AA, AB, ...).
func alpha(n int, letters string) (string, bool) {
	if n < 1 {
		return "", false
	}
	var out []byte
	for n > 0 {
		n--
		out = append([]byte{letters[n%26]}, out...)
		n /= 26
	}
	return string(out), true
}

var romanTable = []struct {
	value int
	lower string
	upper string
}{
	{1000, "m", "M"}, {900, "cm", "CM"}, {500, "d", "D"}, {400, "cd", "CD"},
	{100, "c", "C"}, {90, "xc", "XC"}, {50, "l", "L"}, {40, "xl", "XL"},
	{10, "x", "X"}, {9, "ix", "IX"}, {5, "v", "V"}, {4, "iv", "IV"}, {1, "i", "I"},
}

const lowerRomanDigits = 0
const upperRomanDigits = 1

// roman renders n in classical Roman numerals, valid only for 1..3999.
func roman(n, which int) (string, bool) {
	if n < 1 || n > 3999 {
		return "", false
	}
	var b strings.Builder
	for _, d := range romanTable {
		for n >= d.value {
			if which == upperRomanDigits {
				b.WriteString(d.upper)
			} else {
				b.WriteString(d.lower)
			}
			n -= d.value
		}
	}
	return b.String(), true
}
