package contracts

import (
	"encoding/json"
	"fmt"
	"strings"
)

// QueryNode is a node of a compiled boolean query tree.
// It is either a *Leaf (field comparison) or a *Combinator (and/or/must-not).
type QueryNode interface {
	Operator() Operator
	String() string
	queryNode()
}

// Leaf compares a field against one or more values
type Leaf struct {
	Op     Operator
	Field  string
	Values []Scalar
}

// Combinator joins child nodes with a boolean operator
type Combinator struct {
	Op       Operator
	Children []QueryNode
}

// NewLeaf creates a leaf node
func NewLeaf(op Operator, field string, values ...Scalar) *Leaf {
	return &Leaf{Op: op, Field: field, Values: values}
}

// NewCombinator creates a combinator node
func NewCombinator(op Operator, children ...QueryNode) *Combinator {
	if children == nil {
		children = []QueryNode{}
	}
	return &Combinator{Op: op, Children: children}
}

// And joins children with "and"
func And(children ...QueryNode) *Combinator { return NewCombinator(OpAnd, children...) }

// Or joins children with "or"
func Or(children ...QueryNode) *Combinator { return NewCombinator(OpOr, children...) }

// MustNot negates its children
func MustNot(children ...QueryNode) *Combinator { return NewCombinator(OpMustNot, children...) }

// Eq, Gt, Lt, Gte, Lte, Between and IsIn build leaves; used mostly by the predefined catalog.
func Eq(field string, v Scalar) *Leaf { return NewLeaf(OpEq, field, v) }
func Gt(field string, v float64) *Leaf { return NewLeaf(OpGt, field, Number(v)) }
func Lt(field string, v float64) *Leaf { return NewLeaf(OpLt, field, Number(v)) }
func Gte(field string, v float64) *Leaf { return NewLeaf(OpGte, field, Number(v)) }
func Lte(field string, v float64) *Leaf { return NewLeaf(OpLte, field, Number(v)) }
func IsIn(field string, vs ...Scalar) *Leaf { return NewLeaf(OpIsIn, field, vs...) }
func Between(field string, lo, hi float64) *Leaf {
	return NewLeaf(OpBetween, field, Number(lo), Number(hi))
}

func (l *Leaf) Operator() Operator { return l.Op }
func (l *Leaf) queryNode() {}

// Operands returns [field, values...] in the service's flat operand layout
func (l *Leaf) Operands() []interface{} {
	out := make([]interface{}, 0, len(l.Values)+1)
	out = append(out, l.Field)
	for _, v := range l.Values {
		out = append(out, v.Interface())
	}
	return out
}

// String renders the leaf as op(field, v1, v2...)
func (l *Leaf) String() string {
	parts := make([]string, 0, len(l.Values)+1)
	parts = append(parts, l.Field)
	for _, v := range l.Values {
		parts = append(parts, v.String())
	}
	return fmt.Sprintf("%s(%s)", l.Op, strings.Join(parts, ", "))
}

func (c *Combinator) Operator() Operator { return c.Op }
func (c *Combinator) queryNode() {}

// String renders the combinator as op(child1, child2...)
func (c *Combinator) String() string {
	parts := make([]string, len(c.Children))
	for i, child := range c.Children {
		parts[i] = child.String()
	}
	return fmt.Sprintf("%s(%s)", c.Op, strings.Join(parts, ", "))
}

// Empty reports whether the combinator carries no constraint
func (c *Combinator) Empty() bool { return len(c.Children) == 0 }

// Walk visits every node depth-first, parents before children
func Walk(node QueryNode, fn func(QueryNode)) {
	if node == nil {
		return
	}
	fn(node)
	if c, ok := node.(*Combinator); ok {
		for _, child := range c.Children {
			Walk(child, fn)
		}
	}
}

// Leaves returns every leaf in the tree in depth-first order
func Leaves(node QueryNode) []*Leaf {
	var out []*Leaf
	Walk(node, func(n QueryNode) {
		if l, ok := n.(*Leaf); ok {
			out = append(out, l)
		}
	})
	return out
}

// queryJSON is the generic {"operator", "operands"} document shape
type queryJSON struct {
	Operator Operator      `json:"operator"`
	Operands []interface{} `json:"operands"`
}

// MarshalJSON encodes the leaf as {"operator":"gt","operands":["field",5]}
func (l *Leaf) MarshalJSON() ([]byte, error) {
	return json.Marshal(queryJSON{Operator: l.Op, Operands: l.Operands()})
}

// MarshalJSON encodes the combinator with nested child documents
func (c *Combinator) MarshalJSON() ([]byte, error) {
	operands := make([]interface{}, len(c.Children))
	for i, child := range c.Children {
		operands[i] = child
	}
	return json.Marshal(queryJSON{Operator: c.Op, Operands: operands})
}
