package contracts

import (
	"fmt"
	"strings"
)

// Operator is the closed set of query operators understood by the screening service
// ⭐ SSOT: 연산자 정의는 여기서만
type Operator string

const (
	OpEq      Operator = "eq"
	OpGt      Operator = "gt"
	OpLt      Operator = "lt"
	OpGte     Operator = "gte"
	OpLte     Operator = "lte"
	OpBetween Operator = "between"
	OpIsIn    Operator = "is-in"

	// Combinators
	OpAnd     Operator = "and"
	OpOr      Operator = "or"
	OpMustNot Operator = "must-not"
)

// operatorAliases maps accepted spellings to the canonical operator
var operatorAliases = map[string]Operator{
	"eq":       OpEq,
	"gt":       OpGt,
	"lt":       OpLt,
	"gte":      OpGte,
	"lte":      OpLte,
	"between":  OpBetween,
	"btwn":     OpBetween,
	"is-in":    OpIsIn,
	"is_in":    OpIsIn,
	"isin":     OpIsIn,
	"and":      OpAnd,
	"or":       OpOr,
	"must-not": OpMustNot,
	"must_not": OpMustNot,
	"not":      OpMustNot,
}

// ParseOperator normalizes an operator string (case-insensitive) to its canonical form
func ParseOperator(s string) (Operator, error) {
	op, ok := operatorAliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return "", fmt.Errorf("unknown operator %q", s)
	}
	return op, nil
}

// IsCombinator reports whether operands of this operator are query nodes
func (o Operator) IsCombinator() bool {
	return o == OpAnd || o == OpOr || o == OpMustNot
}

// IsLeaf reports whether this is a field comparison operator
func (o Operator) IsLeaf() bool {
	switch o {
	case OpEq, OpGt, OpLt, OpGte, OpLte, OpBetween, OpIsIn:
		return true
	}
	return false
}

// Arity returns the number of comparison values a leaf operator takes.
// -1 means one or more.
func (o Operator) Arity() int {
	switch o {
	case OpBetween:
		return 2
	case OpIsIn:
		return -1
	case OpEq, OpGt, OpLt, OpGte, OpLte:
		return 1
	}
	return 0
}
