package compiler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/wonny/screener/internal/contracts"
	"github.com/wonny/screener/internal/currency"
	"github.com/wonny/screener/internal/fields"
)

// Compiler turns filter triples into a single boolean query tree.
// Stateless apart from its read-only converter; safe for concurrent use.
// ⭐ SSOT: 필터 → 쿼리 트리 변환은 여기서만
type Compiler struct {
	converter    contracts.CurrencyConverter
	baseCurrency string
}

// Option configures a Compiler
type Option func(*Compiler)

// WithBaseCurrency sets the currency filter amounts are written in (default USD)
func WithBaseCurrency(code string) Option {
	return func(c *Compiler) {
		if code != "" {
			c.baseCurrency = strings.ToUpper(code)
		}
	}
}

// New creates a compiler backed by converter
func New(converter contracts.CurrencyConverter, opts ...Option) *Compiler {
	c := &Compiler{
		converter:    converter,
		baseCurrency: currency.DefaultCurrency,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseCurrency returns the currency filter amounts are assumed to be in
func (c *Compiler) BaseCurrency() string {
	return c.baseCurrency
}

// Compile builds one leaf per filter, in order, under a root combinator.
// An empty filter list yields a root with no children ("no constraint").
func (c *Compiler) Compile(filters []contracts.FilterTriple, combOp contracts.Operator) (*contracts.Combinator, error) {
	root, err := rootOperator(combOp)
	if err != nil {
		return nil, err
	}

	target := c.NormalizationCurrency(filters)

	children := make([]contracts.QueryNode, 0, len(filters))
	for i, f := range filters {
		leaf, err := c.compileFilter(f, target)
		if err != nil {
			return nil, fmt.Errorf("filter %d: %w", i, err)
		}
		children = append(children, leaf)
	}

	return contracts.NewCombinator(root, children...), nil
}

// NormalizationCurrency resolves the currency converted fields are rewritten into.
// Region filters are scanned in order and the last one wins. A list-valued region
// and the absence of any region filter both resolve to the base currency (no-op).
func (c *Compiler) NormalizationCurrency(filters []contracts.FilterTriple) string {
	target := c.baseCurrency
	for _, f := range filters {
		if !f.IsRegion() {
			continue
		}
		if _, single := f.Value.Single(); !single {
			target = c.baseCurrency
			continue
		}
		target = currency.ResolveRegionCurrency(f.Value)
	}
	return target
}

func rootOperator(combOp contracts.Operator) (contracts.Operator, error) {
	if combOp == "" {
		return contracts.OpAnd, nil
	}

	op, err := contracts.ParseOperator(string(combOp))
	if err != nil {
		return "", &contracts.InvalidFilterError{Reason: err.Error()}
	}
	if op != contracts.OpAnd && op != contracts.OpOr {
		return "", &contracts.InvalidFilterError{Reason: fmt.Sprintf("combination operator must be and/or, got %q", combOp)}
	}
	return op, nil
}

func (c *Compiler) compileFilter(f contracts.FilterTriple, target string) (*contracts.Leaf, error) {
	if strings.TrimSpace(f.Field) == "" {
		return nil, &contracts.InvalidFilterError{Reason: "filter without field"}
	}

	op, err := contracts.ParseOperator(string(f.Operator))
	if err != nil {
		return nil, &contracts.InvalidFilterError{Field: f.Field, Reason: err.Error()}
	}
	if !op.IsLeaf() {
		return nil, &contracts.InvalidFilterError{Field: f.Field, Reason: fmt.Sprintf("%s is a combinator, not a comparison", op)}
	}

	values := f.Value.Items()
	if len(values) == 0 {
		return nil, &contracts.InvalidFilterError{Field: f.Field, Reason: "filter without value"}
	}
	if op == contracts.OpBetween && len(values) != 2 {
		return nil, &contracts.InvalidFilterError{Field: f.Field, Reason: fmt.Sprintf("between takes 2 values, got %d", len(values))}
	}

	if fields.NeedsConversion(f.Field) {
		values, err = c.convertAll(f.Field, values, target)
		if err != nil {
			return nil, err
		}
	}

	return contracts.NewLeaf(op, f.Field, values...), nil
}

// convertAll rewrites every amount from the base currency into target
func (c *Compiler) convertAll(field string, values []contracts.Scalar, target string) ([]contracts.Scalar, error) {
	out := make([]contracts.Scalar, len(values))
	for i, v := range values {
		amount, ok := v.Float()
		if !ok {
			return nil, &contracts.ConversionError{
				From:   c.baseCurrency,
				To:     target,
				Field:  field,
				Reason: fmt.Sprintf("value %q is not numeric", v.String()),
			}
		}

		converted, err := c.converter.Convert(amount, c.baseCurrency, target)
		if err != nil {
			var convErr *contracts.ConversionError
			if errors.As(err, &convErr) {
				tagged := *convErr
				tagged.Field = field
				return nil, &tagged
			}
			return nil, &contracts.ConversionError{From: c.baseCurrency, To: target, Field: field, Reason: err.Error()}
		}
		out[i] = contracts.Number(converted)
	}
	return out, nil
}
