package engine

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// ============================================================
// Number formatting
// ============================================================

// FormatFixed форматирует v с ровно precision знаками после точки.
// NaN и бесконечности выводятся как "NaN", "Infinity", "-Infinity".
func FormatFixed(v float64, precision int) string {
	if s, ok := formatSpecial(v); ok {
		return s
	}
	if math.Abs(v) >= 1e21 {
		return FormatNumber(v)
	}
	if precision < 0 {
		precision = 0
	}
	if v == 0 {
		v = 0 // -0 -> 0
	}
	return strconv.FormatFloat(v, 'f', precision, 64)
}

// FormatNumber возвращает кратчайшее десятичное представление v.
// Экспонента используется только для |v| >= 1e21 и |v| < 1e-6.
func FormatNumber(v float64) string {
	if s, ok := formatSpecial(v); ok {
		return s
	}
	if v == 0 {
		return "0"
	}

	abs := math.Abs(v)
	if abs < 1e21 && abs >= 1e-6 {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}

	// strconv дополняет экспоненту до двух цифр: 1e-07 -> 1e-7
	s := strconv.FormatFloat(v, 'e', -1, 64)
	mantissa, exp, _ := strings.Cut(s, "e")
	sign, digits := exp[:1], strings.TrimLeft(exp[1:], "0")
	if digits == "" {
		digits = "0"
	}
	return mantissa + "e" + sign + digits
}

func formatSpecial(v float64) (string, bool) {
	switch {
	case math.IsNaN(v):
		return "NaN", true
	case math.IsInf(v, 1):
		return "Infinity", true
	case math.IsInf(v, -1):
		return "-Infinity", true
	}
	return "", false
}

// ParseDisplay разбирает текст дисплея. Некорректный текст дает NaN,
// переполнение дает бесконечность соответствующего знака.
func ParseDisplay(text string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err == nil {
		return v
	}
	var numErr *strconv.NumError
	if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
		return v
	}
	return math.NaN()
}
