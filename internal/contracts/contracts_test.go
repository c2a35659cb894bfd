package contracts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOperator(t *testing.T) {
	tests := []struct {
		in   string
		want Operator
	}{
		{"eq", OpEq},
		{"GT", OpGt},
		{" lte ", OpLte},
		{"btwn", OpBetween},
		{"Between", OpBetween},
		{"is_in", OpIsIn},
		{"IS-IN", OpIsIn},
		{"AND", OpAnd},
		{"must_not", OpMustNot},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseOperator(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseOperator("xor")
	assert.Error(t, err)
}

func TestOperatorClasses(t *testing.T) {
	assert.True(t, OpAnd.IsCombinator())
	assert.True(t, OpMustNot.IsCombinator())
	assert.False(t, OpEq.IsCombinator())

	assert.True(t, OpIsIn.IsLeaf())
	assert.False(t, OpOr.IsLeaf())

	assert.Equal(t, 1, OpGt.Arity())
	assert.Equal(t, 2, OpBetween.Arity())
	assert.Equal(t, -1, OpIsIn.Arity())
	assert.Equal(t, 0, OpAnd.Arity())
}

func TestScalar(t *testing.T) {
	f, ok := Number(2.5).Float()
	assert.True(t, ok)
	assert.Equal(t, 2.5, f)

	_, ok = String("us").Float()
	assert.False(t, ok)

	assert.Equal(t, "400", Number(400).String())
	assert.Equal(t, "true", Bool(true).String())
	assert.Equal(t, "<nil>", Scalar{}.String())

	var s Scalar
	require.NoError(t, json.Unmarshal([]byte(`1e9`), &s))
	assert.Equal(t, Number(1e9), s)

	assert.Error(t, json.Unmarshal([]byte(`{"a":1}`), &s))
}

func TestValueOf(t *testing.T) {
	v, err := ValueOf("in")
	require.NoError(t, err)
	assert.False(t, v.IsList())
	single, ok := v.Single()
	require.True(t, ok)
	assert.Equal(t, String("in"), single)

	v, err = ValueOf([]interface{}{0, int64(25)})
	require.NoError(t, err)
	assert.True(t, v.IsList())
	assert.Equal(t, []Scalar{Number(0), Number(25)}, v.Items())
	_, ok = v.Single()
	assert.False(t, ok)

	// A one-element list stays a list
	v, err = ValueOf([]interface{}{"us"})
	require.NoError(t, err)
	assert.True(t, v.IsList())
	assert.Equal(t, 1, v.Len())

	_, err = ValueOf(map[string]interface{}{})
	assert.Error(t, err)
	_, err = ValueOf([]interface{}{"ok", nil})
	assert.Error(t, err)
}

func TestFilterTripleJSON(t *testing.T) {
	var filters []FilterTriple
	raw := `[{"field":"region","operator":"eq","value":"jp"},{"field":"peratio.lasttwelvemonths","operator":"btwn","value":[0,25]}]`
	require.NoError(t, json.Unmarshal([]byte(raw), &filters))
	require.Len(t, filters, 2)

	assert.True(t, filters[0].IsRegion())
	assert.False(t, filters[1].IsRegion())
	assert.Equal(t, []Scalar{Number(0), Number(25)}, filters[1].Value.Items())

	out, err := json.Marshal(filters[1])
	require.NoError(t, err)
	assert.JSONEq(t, `{"field":"peratio.lasttwelvemonths","operator":"btwn","value":[0,25]}`, string(out))
}

func TestQueryString(t *testing.T) {
	q := And(
		Eq("region", String("us")),
		Or(Gt("percentchange", 3), Between("intradaymarketcap", 2e9, 1e10)),
		MustNot(IsIn("exchange", String("PNK"), String("OQB"))),
	)

	assert.Equal(t,
		"and(eq(region, us), or(gt(percentchange, 3), between(intradaymarketcap, 2000000000, 10000000000)), must-not(is-in(exchange, PNK, OQB)))",
		q.String())
	assert.False(t, q.Empty())
	assert.True(t, And().Empty())
}

func TestQueryJSON(t *testing.T) {
	q := And(Gt("percentchange", 3), Eq("region", String("us")))

	out, err := json.Marshal(q)
	require.NoError(t, err)
	assert.JSONEq(t, `{"operator":"and","operands":[
		{"operator":"gt","operands":["percentchange",3]},
		{"operator":"eq","operands":["region","us"]}
	]}`, string(out))

	empty, err := json.Marshal(And())
	require.NoError(t, err)
	assert.JSONEq(t, `{"operator":"and","operands":[]}`, string(empty))
}

func TestWalkAndLeaves(t *testing.T) {
	q := And(Gt("a", 1), Or(Lt("b", 2), Eq("c", Bool(true))))

	var ops []Operator
	Walk(q, func(n QueryNode) { ops = append(ops, n.Operator()) })
	assert.Equal(t, []Operator{OpAnd, OpGt, OpOr, OpLt, OpEq}, ops)

	leaves := Leaves(q)
	require.Len(t, leaves, 3)
	assert.Equal(t, "c", leaves[2].Field)

	assert.Empty(t, Leaves(nil))
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode(" Equity ")
	require.NoError(t, err)
	assert.Equal(t, ModeEquity, m)
	assert.Equal(t, QuoteTypeEquity, m.QuoteType())
	assert.Equal(t, QuoteTypeMutualFund, ModeFund.QuoteType())

	_, err = ParseMode("bonds")
	assert.Error(t, err)
}

func TestMode_CaseInsensitive(t *testing.T) {
	assert.Equal(t, ModeFund, Mode("FUND").Canonical())
	assert.Equal(t, Mode("bonds"), Mode("bonds").Canonical())

	var req ScreeningRequest
	require.NoError(t, json.Unmarshal([]byte(`{"mode":"Equity","limit":5}`), &req))
	assert.Equal(t, ModeEquity, req.Mode)

	require.NoError(t, json.Unmarshal([]byte(`{"mode":"Bonds"}`), &req))
	assert.Equal(t, Mode("Bonds"), req.Mode)
	assert.ErrorIs(t, req.Validate(), ErrInvalidFilter)

	assert.Error(t, json.Unmarshal([]byte(`{"mode":3}`), &req))
}

func TestScreeningRequest_WithDefaults(t *testing.T) {
	req := ScreeningRequest{Mode: ModeEquity}.WithDefaults()
	assert.Equal(t, DefaultLimit, req.Limit)
	assert.Equal(t, DefaultSortField, req.SortField)
	assert.Equal(t, OpAnd, req.CombinationOperator)

	mixed := ScreeningRequest{Mode: "Predefined"}.WithDefaults()
	assert.Equal(t, ModePredefined, mixed.Mode)

	kept := ScreeningRequest{Mode: ModeFund, Limit: 3, SortField: "fundnetassets", CombinationOperator: OpOr}.WithDefaults()
	assert.Equal(t, 3, kept.Limit)
	assert.Equal(t, "fundnetassets", kept.SortField)
	assert.Equal(t, OpOr, kept.CombinationOperator)
}

func TestScreeningRequest_Validate(t *testing.T) {
	tests := []struct {
		name  string
		req   ScreeningRequest
		isErr bool
	}{
		{"equity", ScreeningRequest{Mode: ModeEquity}, false},
		{"fund with or", ScreeningRequest{Mode: ModeFund, CombinationOperator: "OR"}, false},
		{"predefined", ScreeningRequest{Mode: ModePredefined, PredefinedNames: []string{"day_gainers"}}, false},
		{"mixed-case mode", ScreeningRequest{Mode: "Equity"}, false},
		{"mixed-case predefined without names", ScreeningRequest{Mode: "PREDEFINED"}, true},
		{"missing mode", ScreeningRequest{}, true},
		{"unknown mode", ScreeningRequest{Mode: "bonds"}, true},
		{"negative limit", ScreeningRequest{Mode: ModeEquity, Limit: -1}, true},
		{"predefined without names", ScreeningRequest{Mode: ModePredefined}, true},
		{"must-not combinator", ScreeningRequest{Mode: ModeEquity, CombinationOperator: OpMustNot}, true},
		{"unknown combinator", ScreeningRequest{Mode: ModeEquity, CombinationOperator: "xor"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.isErr {
				assert.ErrorIs(t, err, ErrInvalidFilter)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestRow(t *testing.T) {
	row := Row{
		"price":  json.Number("12.5"),
		"volume": 1200,
		"symbol": "AAPL",
		"empty":  "",
	}

	f, ok := row.Float("price")
	assert.True(t, ok)
	assert.Equal(t, 12.5, f)

	f, ok = row.Float("volume")
	assert.True(t, ok)
	assert.Equal(t, 1200.0, f)

	_, ok = row.Float("symbol")
	assert.False(t, ok)

	s, ok := row.Text("symbol")
	assert.True(t, ok)
	assert.Equal(t, "AAPL", s)

	_, ok = row.Text("empty")
	assert.False(t, ok)
	_, ok = row.Text("missing")
	assert.False(t, ok)

	rs := ResultSet{}
	assert.True(t, rs.Empty())
}

func TestErrorTaxonomy(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
		message  string
	}{
		{"conversion", &ConversionError{From: "KWD", To: "USD", Field: "intradayprice", Reason: "no rate"}, ErrConversion,
			"field intradayprice: cannot convert KWD to USD: no rate"},
		{"unknown screener", &UnknownScreenerError{Name: "foo"}, ErrUnknownScreener, `unknown predefined screener "foo"`},
		{"backend status", &BackendExecutionError{StatusCode: 500, Err: errors.New("boom")}, ErrBackendExecution,
			"screening backend returned status 500: boom"},
		{"backend transport", &BackendExecutionError{Err: errors.New("refused")}, ErrBackendExecution, "screening backend failed: refused"},
		{"invalid filter", &InvalidFilterError{Field: "region", Reason: "empty"}, ErrInvalidFilter, "invalid filter on region: empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := fmt.Errorf("screener x: %w", tt.err)
			assert.ErrorIs(t, wrapped, tt.sentinel)
			assert.Equal(t, tt.message, tt.err.Error())
		})
	}

	var backendErr *BackendExecutionError
	err := fmt.Errorf("wrap: %w", &BackendExecutionError{Err: context.DeadlineExceeded})
	require.ErrorAs(t, err, &backendErr)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.NotErrorIs(t, err, ErrConversion)
}
