// Package odds converts bookmaker quotes between American odds, decimal
// odds, and implied probabilities.
package odds

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrUnparseablePrice is returned when a quote is neither a number nor a
// recognized label.
var ErrUnparseablePrice = errors.New("unparseable odds price")

var hundred = decimal.NewFromInt(100)

// ParseAmerican parses an American odds quote such as "-150" or "+130".
// The labels "EVEN" and "PUSH" parse as +100.
func ParseAmerican(price string) (decimal.Decimal, error) {
	s := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(price), "+"))
	switch strings.ToUpper(s) {
	case "EVEN", "PUSH":
		return hundred, nil
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrUnparseablePrice, price)
	}
	if d.IsZero() {
		return decimal.Zero, fmt.Errorf("%w: zero price %q", ErrUnparseablePrice, price)
	}
	return d, nil
}

// ImpliedProbability converts an American odds quote to the bookmaker's
// implied win probability (vig included).
func ImpliedProbability(price string) (float64, error) {
	o, err := ParseAmerican(price)
	if err != nil {
		return 0, err
	}

	var p decimal.Decimal
	if o.IsPositive() {
		// 100 / (odds + 100)
		p = hundred.Div(o.Add(hundred))
	} else {
		// -odds / (-odds + 100)
		n := o.Neg()
		p = n.Div(n.Add(hundred))
	}
	f, _ := p.Float64()
	return f, nil
}

// ToDecimalOdds converts an American odds quote to European decimal odds.
func ToDecimalOdds(price string) (float64, error) {
	o, err := ParseAmerican(price)
	if err != nil {
		return 0, err
	}

	var d decimal.Decimal
	if o.IsPositive() {
		d = o.Div(hundred).Add(decimal.NewFromInt(1))
	} else {
		d = hundred.Div(o.Neg()).Add(decimal.NewFromInt(1))
	}
	f, _ := d.Float64()
	return f, nil
}

// RemoveVig2 strips the bookmaker overround from a two-way market, scaling
// the implied probabilities so they sum to one.
func RemoveVig2(a, b float64) (float64, float64) {
	total := a + b
	if total <= 0 {
		return 0, 0
	}
	return a / total, b / total
}

// HomeFairProbability parses both sides of a moneyline and returns the
// vig-free home win probability.
func HomeFairProbability(homePrice, awayPrice string) (float64, error) {
	ph, err := ImpliedProbability(homePrice)
	if err != nil {
		return 0, err
	}
	pa, err := ImpliedProbability(awayPrice)
	if err != nil {
		return 0, err
	}
	fair, _ := RemoveVig2(ph, pa)
	return fair, nil
}
