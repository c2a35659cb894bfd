package yahoo

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	c "github.com/wonny/screener/internal/contracts"
)

func TestEncode(t *testing.T) {
	tests := []struct {
		name string
		node c.QueryNode
		want string
	}{
		{
			name: "nil query",
			node: nil,
			want: `null`,
		},
		{
			name: "simple leaf",
			node: c.Gt("intradayprice", 5),
			want: `{"operator":"gt","operands":["intradayprice",5]}`,
		},
		{
			name: "between is btwn",
			node: c.Between("intradaymarketcap", 2e9, 1e10),
			want: `{"operator":"btwn","operands":["intradaymarketcap",2000000000,10000000000]}`,
		},
		{
			name: "is-in expands to or of eq",
			node: c.IsIn("exchange", c.String("NMS"), c.String("NYQ")),
			want: `{"operator":"or","operands":[{"operator":"eq","operands":["exchange","NMS"]},{"operator":"eq","operands":["exchange","NYQ"]}]}`,
		},
		{
			name: "nested combinators",
			node: c.And(
				c.Eq("region", c.String("us")),
				c.MustNot(c.Eq("exchange", c.String("PNK"))),
			),
			want: `{"operator":"and","operands":[{"operator":"eq","operands":["region","us"]},{"operator":"must_not","operands":[{"operator":"eq","operands":["exchange","PNK"]}]}]}`,
		},
		{
			name: "empty combinator",
			node: c.And(),
			want: `{"operator":"and","operands":[]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Encode(tt.node)
			require.NoError(t, err)

			data, err := json.Marshal(got)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(data))
		})
	}
}

func TestEncode_Invalid(t *testing.T) {
	tests := []struct {
		name string
		node c.QueryNode
	}{
		{"leaf without values", c.NewLeaf(c.OpGt, "beta")},
		{"combinator as leaf", c.NewLeaf(c.OpAnd, "beta", c.Number(1))},
		{"leaf op as combinator", c.NewCombinator(c.OpGt, c.Gt("beta", 1))},
		{"nested invalid", c.And(c.NewLeaf(c.OpEq, "beta"))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Encode(tt.node)
			assert.Error(t, err)
		})
	}
}
