package engine

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// Decimal point positions rendered without exponent notation.
const (
	maxPlainPoint = 21
	minPlainPoint = -6
)

// FormatNumber renders f the way the calculator display shows numbers:
// shortest round-trip digits, plain notation for magnitudes in [1e-6, 1e21),
// exponent notation otherwise. Negative zero renders as "0" and non-finite
// values as "Infinity", "-Infinity" or "NaN". No rounding is applied, so
// 0.1+0.2 shows as "0.30000000000000004".
func FormatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}

	sign := ""
	if f < 0 {
		sign = "-"
		f = -f
	}

	mantissa, expPart, _ := strings.Cut(strconv.FormatFloat(f, 'e', -1, 64), "e")
	digits := strings.Replace(mantissa, ".", "", 1)
	exp, _ := strconv.Atoi(expPart)

	// n is the position of the decimal point relative to the first digit.
	n := exp + 1
	k := len(digits)

	var b strings.Builder
	b.WriteString(sign)
	switch {
	case k <= n && n <= maxPlainPoint:
		b.WriteString(digits)
		b.WriteString(strings.Repeat("0", n-k))
	case 0 < n && n <= maxPlainPoint:
		b.WriteString(digits[:n])
		b.WriteByte('.')
		b.WriteString(digits[n:])
	case minPlainPoint < n && n <= 0:
		b.WriteString("0.")
		b.WriteString(strings.Repeat("0", -n))
		b.WriteString(digits)
	default:
		b.WriteByte(digits[0])
		if k > 1 {
			b.WriteByte('.')
			b.WriteString(digits[1:])
		}
		b.WriteByte('e')
		if exp >= 0 {
			b.WriteByte('+')
		}
		b.WriteString(strconv.Itoa(exp))
	}
	return b.String()
}

// ParseNumber reads the longest numeric prefix of s: an optional sign followed
// by "Infinity" or a decimal literal with optional fraction and exponent.
// Trailing text is ignored, so "5." is 5 and "Infinity." is +Inf. Text with no
// numeric prefix, including "NaN", yields NaN. ParseNumber never fails.
func ParseNumber(s string) float64 {
	s = strings.TrimLeft(s, " \t\n\r")

	i := 0
	negative := false
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		negative = s[i] == '-'
		i++
	}
	if strings.HasPrefix(s[i:], "Infinity") {
		if negative {
			return math.Inf(-1)
		}
		return math.Inf(1)
	}

	intDigits := scanDigits(s, i)
	i += intDigits
	fracDigits := 0
	if i < len(s) && s[i] == '.' {
		fracDigits = scanDigits(s, i+1)
		i += 1 + fracDigits
	}
	if intDigits == 0 && fracDigits == 0 {
		return math.NaN()
	}

	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		if n := scanDigits(s, j); n > 0 {
			i = j + n
		}
	}

	f, err := strconv.ParseFloat(strings.TrimSuffix(s[:i], "."), 64)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
			return f
		}
		return math.NaN()
	}
	return f
}

func scanDigits(s string, from int) int {
	n := 0
	for from+n < len(s) && s[from+n] >= '0' && s[from+n] <= '9' {
		n++
	}
	return n
}
