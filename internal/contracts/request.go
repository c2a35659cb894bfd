package contracts

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Mode selects which screening path a request takes
type Mode string

const (
	ModePredefined Mode = "predefined"
	ModeEquity     Mode = "equity"
	ModeFund       Mode = "fund"
)

// ParseMode parses a mode name (case-insensitive)
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModePredefined:
		return ModePredefined, nil
	case ModeEquity:
		return ModeEquity, nil
	case ModeFund:
		return ModeFund, nil
	}
	return "", fmt.Errorf("unknown screening mode %q", s)
}

// Canonical returns the lower-case form of a known mode; unknown modes are returned unchanged
func (m Mode) Canonical() Mode {
	if parsed, err := ParseMode(string(m)); err == nil {
		return parsed
	}
	return m
}

// UnmarshalJSON accepts any casing of a known mode ("Equity" -> "equity")
func (m *Mode) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*m = Mode(s).Canonical()
	return nil
}

// QuoteType is the instrument class a query is evaluated against
type QuoteType string

const (
	QuoteTypeEquity     QuoteType = "EQUITY"
	QuoteTypeMutualFund QuoteType = "MUTUALFUND"
	QuoteTypeETF        QuoteType = "ETF"
)

// QuoteType returns the instrument class screened by equity/fund modes
func (m Mode) QuoteType() QuoteType {
	if m == ModeFund {
		return QuoteTypeMutualFund
	}
	return QuoteTypeEquity
}

const (
	// DefaultLimit is the number of rows requested when the caller gives none
	DefaultLimit = 10

	// DefaultSortField matches the interpreter's default ordering
	DefaultSortField = "percentchange"
)

// ScreeningRequest is the structured form of one user screening query.
// Created fresh per query and consumed by a single dispatch.
type ScreeningRequest struct {
	Mode                Mode           `json:"mode"`
	CombinationOperator Operator       `json:"combination_operator,omitempty"`
	Filters             []FilterTriple `json:"filters,omitempty"`
	PredefinedNames     []string       `json:"predefined_names,omitempty"`
	SortField           string         `json:"sort_field,omitempty"`
	SortAscending       bool           `json:"sort_ascending"`
	Limit               int            `json:"limit,omitempty"`
}

// WithDefaults returns a copy with the mode canonicalized and limit, sort field
// and combinator defaults applied
func (r ScreeningRequest) WithDefaults() ScreeningRequest {
	r.Mode = r.Mode.Canonical()
	if r.Limit <= 0 {
		r.Limit = DefaultLimit
	}
	if r.SortField == "" {
		r.SortField = DefaultSortField
	}
	if r.CombinationOperator == "" {
		r.CombinationOperator = OpAnd
	}
	return r
}

// Validate checks the request shape before dispatch
func (r ScreeningRequest) Validate() error {
	mode, err := ParseMode(string(r.Mode))
	if err != nil {
		return &InvalidFilterError{Reason: err.Error()}
	}

	if r.Limit < 0 {
		return &InvalidFilterError{Reason: fmt.Sprintf("limit must be positive, got %d", r.Limit)}
	}

	switch mode {
	case ModePredefined:
		if len(r.PredefinedNames) == 0 {
			return &InvalidFilterError{Reason: "predefined mode requires at least one screener name"}
		}
	case ModeEquity, ModeFund:
		if r.CombinationOperator != "" {
			op, err := ParseOperator(string(r.CombinationOperator))
			if err != nil {
				return &InvalidFilterError{Reason: err.Error()}
			}
			if op != OpAnd && op != OpOr {
				return &InvalidFilterError{Reason: fmt.Sprintf("combination operator must be and/or, got %q", r.CombinationOperator)}
			}
		}
	}

	return nil
}
