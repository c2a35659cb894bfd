package yahoo

import (
	"fmt"

	"github.com/wonny/screener/internal/contracts"
)

// WireNode is the screener service's {"operator", "operands"} query document
type WireNode struct {
	Operator string        `json:"operator"`
	Operands []interface{} `json:"operands"`
}

// wireOperators maps canonical operators to the service's spelling
var wireOperators = map[contracts.Operator]string{
	contracts.OpEq:      "eq",
	contracts.OpGt:      "gt",
	contracts.OpLt:      "lt",
	contracts.OpGte:     "gte",
	contracts.OpLte:     "lte",
	contracts.OpBetween: "btwn",
	contracts.OpAnd:     "and",
	contracts.OpOr:      "or",
	contracts.OpMustNot: "must_not",
}

// Encode converts a query tree into the service's wire document.
// is-in has no wire form and is expanded to or(eq(field, v1), eq(field, v2)...).
// A nil node encodes to nil (no constraint).
// ⭐ SSOT: 쿼리 트리 → 와이어 포맷 변환은 여기서만
func Encode(node contracts.QueryNode) (*WireNode, error) {
	if node == nil {
		return nil, nil
	}

	switch n := node.(type) {
	case *contracts.Leaf:
		return encodeLeaf(n)
	case *contracts.Combinator:
		return encodeCombinator(n)
	}
	return nil, fmt.Errorf("unsupported query node %T", node)
}

func encodeLeaf(l *contracts.Leaf) (*WireNode, error) {
	if len(l.Values) == 0 {
		return nil, fmt.Errorf("leaf %s on %s has no values", l.Op, l.Field)
	}

	if l.Op == contracts.OpIsIn {
		operands := make([]interface{}, len(l.Values))
		for i, v := range l.Values {
			operands[i] = &WireNode{Operator: "eq", Operands: []interface{}{l.Field, v.Interface()}}
		}
		return &WireNode{Operator: "or", Operands: operands}, nil
	}

	op, ok := wireOperators[l.Op]
	if !ok || l.Op.IsCombinator() {
		return nil, fmt.Errorf("operator %q is not a comparison", l.Op)
	}
	return &WireNode{Operator: op, Operands: l.Operands()}, nil
}

func encodeCombinator(c *contracts.Combinator) (*WireNode, error) {
	op, ok := wireOperators[c.Op]
	if !ok || !c.Op.IsCombinator() {
		return nil, fmt.Errorf("operator %q is not a combinator", c.Op)
	}

	operands := make([]interface{}, 0, len(c.Children))
	for _, child := range c.Children {
		encoded, err := Encode(child)
		if err != nil {
			return nil, err
		}
		operands = append(operands, encoded)
	}
	return &WireNode{Operator: op, Operands: operands}, nil
}
