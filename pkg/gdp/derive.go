// Package gdp implements the per-record GDP derivation applied during a
// refresh cycle. Derivation is pure: the multiplier source is injected so
// tests can pin it.
package gdp

import (
	"math/rand/v2"

	"github.com/shopspring/decimal"

	"github.com/izuchukwuMcGibson/HNG-Task-2/pkg/country"
	"github.com/izuchukwuMcGibson/HNG-Task-2/pkg/upstream"
)

// Multiplier bounds for the estimated GDP draw, inclusive.
const (
	MultiplierMin = 1000
	MultiplierMax = 2000
)

// MultiplierFunc returns a fresh integer multiplier. It is called once per
// derived record, so re-deriving the same input may produce a different
// estimated GDP while the exchange rate stays fixed.
type MultiplierFunc func() int64

// RandomMultiplier draws uniformly from [MultiplierMin, MultiplierMax].
func RandomMultiplier() int64 {
	return MultiplierMin + rand.Int64N(MultiplierMax-MultiplierMin+1)
}

// Derive enriches one raw country entry using the exchange-rate table.
//
// The null/zero/unknown contract:
//   - no currency listed: currency code and exchange rate are null, the
//     estimated GDP is a defined zero
//   - currency listed but not quoted (or quoted non-positive): exchange rate
//     and estimated GDP are both null, meaning unknown
//   - currency quoted positive: estimated GDP = population * m / rate with a
//     fresh multiplier m
func Derive(raw upstream.RawCountry, rates map[string]float64, multiplier MultiplierFunc) *country.Country {
	c := country.New(raw.Name)

	if raw.Capital != "" {
		capital := raw.Capital
		c.Capital = &capital
	}
	if raw.Region != "" {
		region := raw.Region
		c.Region = &region
	}
	if raw.Flag != "" {
		flag := raw.Flag
		c.FlagURL = &flag
	}
	if raw.Population > 0 {
		c.Population = raw.Population
	}

	code := firstCurrencyCode(raw.Currencies)
	if code == "" {
		// No currency: GDP is a defined zero, not unknown.
		zero := 0.0
		c.EstimatedGDP = &zero
		return c
	}
	c.CurrencyCode = &code

	rate, ok := rates[code]
	if !ok || rate <= 0 {
		// Currency exists but is not quoted: both stay null (unknown).
		return c
	}
	c.ExchangeRate = &rate

	estimated := estimate(c.Population, multiplier(), rate)
	c.EstimatedGDP = &estimated
	return c
}

// DeriveAll derives every raw entry into one enriched record each.
func DeriveAll(raw []upstream.RawCountry, rates map[string]float64, multiplier MultiplierFunc) []*country.Country {
	derived := make([]*country.Country, 0, len(raw))
	for _, entry := range raw {
		derived = append(derived, Derive(entry, rates, multiplier))
	}
	return derived
}

// estimate computes population * multiplier / rate using decimal arithmetic
// to avoid float accumulation on large populations.
func estimate(population, multiplier int64, rate float64) float64 {
	return decimal.NewFromInt(population).
		Mul(decimal.NewFromInt(multiplier)).
		Div(decimal.NewFromFloat(rate)).
		InexactFloat64()
}

// firstCurrencyCode extracts the code of the first listed currency.
// Only the first entry counts; a first entry with no code means no currency.
func firstCurrencyCode(currencies []upstream.RawCurrency) string {
	if len(currencies) == 0 {
		return ""
	}
	return currencies[0].Code
}
