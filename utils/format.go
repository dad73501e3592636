// Package utils
package utils

import (
	"math"
	"strconv"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const NotAvailable = "N/A"

type scale struct {
	threshold float64
	suffix    string
}

// Largest first: the first threshold the value reaches wins.
var scales = []scale{
	{threshold: 1e12, suffix: "T"},
	{threshold: 1e9, suffix: "B"},
	{threshold: 1e6, suffix: "M"},
	{threshold: 1e3, suffix: "K"},
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func scaled(v float64, places int32) (string, bool) {
	for _, s := range scales {
		if v >= s.threshold {
			d := decimal.NewFromFloat(v).Div(decimal.NewFromFloat(s.threshold))
			return d.StringFixed(places) + s.suffix, true
		}
	}
	return "", false
}

// FormatCurrencyScaled renders a dollar amount with a T/B/M/K suffix and two
// decimals, e.g. 1234000000 => "$1.23B". Nil means the value is missing.
func FormatCurrencyScaled(n *float64) string {
	if n == nil || !finite(*n) {
		return NotAvailable
	}
	if s, ok := scaled(*n, 2); ok {
		return "$" + s
	}
	return "$" + decimal.NewFromFloat(*n).StringFixed(2)
}

// FormatCompactCount is FormatCurrencyScaled for plain counts: no currency
// sign, one decimal, and values below a thousand are printed as is.
func FormatCompactCount(n *float64) string {
	if n == nil || !finite(*n) {
		return NotAvailable
	}
	if s, ok := scaled(*n, 1); ok {
		return s
	}
	return strconv.FormatFloat(*n, 'f', -1, 64)
}

// FormatPrice groups prices of at least one dollar (en-US, up to three
// fraction digits) and prints smaller prices unrounded.
func FormatPrice(p *float64) string {
	if p == nil || !finite(*p) {
		return NotAvailable
	}
	if *p >= 1 {
		return "$" + GroupNumber(*p)
	}
	return "$" + strconv.FormatFloat(*p, 'f', -1, 64)
}

// FormatPercent renders a percentage with two decimals. When signed is set,
// non-negative values get a leading "+".
func FormatPercent(p *float64, signed bool) string {
	if p == nil || !finite(*p) {
		return NotAvailable
	}
	s := decimal.NewFromFloat(*p).StringFixed(2) + "%"
	if signed && *p >= 0 {
		return "+" + s
	}
	return s
}

// FormatUSD2 renders a dollar amount with exactly two decimals, no grouping.
func FormatUSD2(v float64) string {
	if !finite(v) {
		return NotAvailable
	}
	return "$" + decimal.NewFromFloat(v).StringFixed(2)
}

func FormatInteger(n int64) string {
	return message.NewPrinter(language.English).Sprint(number.Decimal(n))
}

// GroupNumber applies en-US digit grouping, keeping at most three fraction
// digits.
func GroupNumber(v float64) string {
	p := message.NewPrinter(language.English)
	return p.Sprint(number.Decimal(v, number.MaxFractionDigits(3)))
}
