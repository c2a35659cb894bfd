package currency

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/wonny/screener/internal/contracts"
)

// anchor is the quote currency of the reference-rate source
const anchor = "EUR"

// RateTable is an immutable snapshot of reference rates quoted against EUR.
// Safe for concurrent use; built once at startup and never mutated.
// ⭐ SSOT: 환율 변환은 여기서만
type RateTable struct {
	date   string
	source string
	rates  map[string]float64 // units of currency per 1 EUR
}

// RateSnapshot is the serialized form of a RateTable (cache payload)
type RateSnapshot struct {
	Date   string             `json:"date"`
	Source string             `json:"source"`
	Rates  map[string]float64 `json:"rates"`
}

// NewRateTable validates and copies the given EUR-quoted rates
func NewRateTable(date, source string, rates map[string]float64) (*RateTable, error) {
	cp := make(map[string]float64, len(rates)+1)
	for code, rate := range rates {
		code = strings.ToUpper(strings.TrimSpace(code))
		if len(code) != 3 {
			return nil, fmt.Errorf("invalid currency code %q", code)
		}
		if rate <= 0 || math.IsNaN(rate) || math.IsInf(rate, 0) {
			return nil, fmt.Errorf("invalid rate for %s: %v", code, rate)
		}
		cp[code] = rate
	}
	cp[anchor] = 1

	if len(cp) < 2 {
		return nil, fmt.Errorf("rate table has no quoted currencies")
	}

	return &RateTable{date: date, source: source, rates: cp}, nil
}

// FromSnapshot rebuilds a table from its serialized form
func FromSnapshot(s RateSnapshot) (*RateTable, error) {
	return NewRateTable(s.Date, s.Source, s.Rates)
}

// Snapshot returns the serialized form of the table
func (t *RateTable) Snapshot() RateSnapshot {
	cp := make(map[string]float64, len(t.rates))
	for k, v := range t.rates {
		cp[k] = v
	}
	return RateSnapshot{Date: t.date, Source: t.source, Rates: cp}
}

// Convert converts amount between two currency codes.
// Both codes must be quoted, even when they are equal.
func (t *RateTable) Convert(amount float64, from, to string) (float64, error) {
	from = strings.ToUpper(from)
	to = strings.ToUpper(to)

	fromRate, ok := t.rates[from]
	if !ok {
		return 0, &contracts.ConversionError{From: from, To: to, Reason: fmt.Sprintf("no reference rate for %s", from)}
	}
	toRate, ok := t.rates[to]
	if !ok {
		return 0, &contracts.ConversionError{From: from, To: to, Reason: fmt.Sprintf("no reference rate for %s", to)}
	}

	if from == to {
		return amount, nil
	}
	return amount / fromRate * toRate, nil
}

// Has reports whether the currency is quoted
func (t *RateTable) Has(code string) bool {
	_, ok := t.rates[strings.ToUpper(code)]
	return ok
}

// Rate returns the units of code per 1 EUR
func (t *RateTable) Rate(code string) (float64, bool) {
	r, ok := t.rates[strings.ToUpper(code)]
	return r, ok
}

// Currencies returns all quoted codes, sorted
func (t *RateTable) Currencies() []string {
	out := make([]string, 0, len(t.rates))
	for code := range t.rates {
		out = append(out, code)
	}
	sort.Strings(out)
	return out
}

// Date is the publication date of the rates (YYYY-MM-DD)
func (t *RateTable) Date() string { return t.date }

// Source names where the rates came from (ecb, cache, embedded)
func (t *RateTable) Source() string { return t.source }

// WithSource returns a copy labelled with another source
func (t *RateTable) WithSource(source string) *RateTable {
	return &RateTable{date: t.date, source: source, rates: t.rates}
}
