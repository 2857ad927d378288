package domain

import (
	"cmp"
	"slices"
)

// CurrencyRate is the number of QuoteCode units per one unit of BaseIso.
type CurrencyRate struct {
	QuoteCode string
	BaseIso   string
	Rate      float64
	Name      string
}

type RatePair struct {
	Base  string
	Quote string
}

func (r CurrencyRate) Pair() RatePair {
	return RatePair{Base: r.BaseIso, Quote: r.QuoteCode}
}

func (p RatePair) String() string {
	return p.Base + "/" + p.Quote
}

// RateSet is a set of rates keyed by full value: identical records collapse,
// records that differ only in Rate or Name for the same pair are both kept.
type RateSet map[CurrencyRate]struct{}

func NewRateSet(rates ...CurrencyRate) RateSet {
	s := make(RateSet, len(rates))
	for _, r := range rates {
		s[r] = struct{}{}
	}
	return s
}

func (s RateSet) Add(r CurrencyRate) {
	s[r] = struct{}{}
}

func (s RateSet) Has(r CurrencyRate) bool {
	_, ok := s[r]
	return ok
}

func (s RateSet) Len() int {
	return len(s)
}

// Union returns a new set holding the records of s and all others.
func (s RateSet) Union(others ...RateSet) RateSet {
	size := len(s)
	for _, o := range others {
		size += len(o)
	}
	out := make(RateSet, size)
	for r := range s {
		out[r] = struct{}{}
	}
	for _, o := range others {
		for r := range o {
			out[r] = struct{}{}
		}
	}
	return out
}

// Find returns the first record for the pair in Slice order.
func (s RateSet) Find(base, quote string) (CurrencyRate, bool) {
	var (
		found CurrencyRate
		ok    bool
	)
	for r := range s {
		if r.BaseIso != base || r.QuoteCode != quote {
			continue
		}
		if !ok || compareRates(r, found) < 0 {
			found, ok = r, true
		}
	}
	return found, ok
}

// Slice returns the records ordered by quote, base, rate and name.
func (s RateSet) Slice() []CurrencyRate {
	out := make([]CurrencyRate, 0, len(s))
	for r := range s {
		out = append(out, r)
	}
	slices.SortFunc(out, compareRates)
	return out
}

func compareRates(a, b CurrencyRate) int {
	return cmp.Or(
		cmp.Compare(a.QuoteCode, b.QuoteCode),
		cmp.Compare(a.BaseIso, b.BaseIso),
		cmp.Compare(a.Rate, b.Rate),
		cmp.Compare(a.Name, b.Name),
	)
}
