package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatFixed(t *testing.T) {
	cases := []struct {
		v         float64
		precision int
		want      string
	}{
		{20, 4, "20.0000"},
		{1.5, 2, "1.50"},
		{2.0 / 3.0, 6, "0.666667"},
		{-1.25, 4, "-1.2500"},
		{math.Copysign(0, -1), 2, "0.00"},
		{math.Inf(1), 4, "Infinity"},
		{math.Inf(-1), 4, "-Infinity"},
		{math.NaN(), 4, "NaN"},
		{1e21, 2, "1e+21"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatFixed(tc.v, tc.precision), "FormatFixed(%v, %d)", tc.v, tc.precision)
	}
}

func TestFormatNumber(t *testing.T) {
	// складываем в рантайме: константное 0.1 + 0.2 равно ровно 0.3
	a, b := 0.1, 0.2

	cases := []struct {
		v    float64
		want string
	}{
		{5, "5"},
		{-5, "-5"},
		{a + b, "0.30000000000000004"},
		{1.5, "1.5"},
		{math.Copysign(0, -1), "0"},
		{1e21, "1e+21"},
		{1.5e-7, "1.5e-7"},
		{123456789012, "123456789012"},
		{math.NaN(), "NaN"},
		{math.Inf(1), "Infinity"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatNumber(tc.v), "FormatNumber(%v)", tc.v)
	}
}

func TestParseDisplay(t *testing.T) {
	assert.Equal(t, 0.0, ParseDisplay("0."))
	assert.Equal(t, 12.5, ParseDisplay("12.5"))
	assert.True(t, math.IsInf(ParseDisplay("Infinity"), 1))
	assert.True(t, math.IsInf(ParseDisplay("-Infinity"), -1))
	assert.True(t, math.IsInf(ParseDisplay("1e400"), 1))
	assert.True(t, math.IsNaN(ParseDisplay("NaN")))
	assert.True(t, math.IsNaN(ParseDisplay("abc")))
}
